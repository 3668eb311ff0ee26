package storage

import (
	"context"
	"time"

	"github.com/theralab/startmatch/core"
)

// CandidateFilter narrows a candidate query. Zero values mean "no filter".
type CandidateFilter struct {
	Industry string // Exact match on the candidate's Industry field
	Country  string // Exact match on the candidate's Country field
	Limit    int    // Maximum records to return; <= 0 means no limit
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CandidateRepository provides operations for managing candidate company
// records. Candidates are written by ingestion and read-only to scoring.
type CandidateRepository interface {
	Repository
	// PutCandidates inserts or replaces candidate records keyed by CompanyKey.
	// Sets InsertedAt on first write and refreshes UpdatedAt on every write.
	// Returns the records with timestamps populated.
	PutCandidates(ctx context.Context, candidates ...*core.Candidate) ([]*core.Candidate, error)

	// GetCandidate retrieves a single candidate by company key.
	// Returns ErrNotFound if the record doesn't exist.
	GetCandidate(ctx context.Context, companyKey string) (*core.Candidate, error)

	// QueryCandidates returns candidates matching the filter, ordered by
	// UpdatedAt descending (most recently refreshed first), up to filter.Limit.
	// An empty result is valid, not an error.
	QueryCandidates(ctx context.Context, filter CandidateFilter) ([]*core.Candidate, error)

	// ForEachCandidate invokes fn for every stored candidate in key order.
	// Iteration stops at the first error, which is returned.
	ForEachCandidate(ctx context.Context, fn func(*core.Candidate) error) error

	// CountCandidates returns the number of stored candidate records.
	CountCandidates(ctx context.Context) (int, error)
}

// OutcomeRepository provides operations for the append-only history of
// presented matches and their engagement signals.
type OutcomeRepository interface {
	Repository
	// AddOutcomes appends outcome rows. Sets CreatedAt if not already set.
	AddOutcomes(ctx context.Context, outcomes ...*core.Outcome) error

	// GetOutcomesByDateRange retrieves outcomes within a time range.
	// Returns rows where start <= CreatedAt < end, ordered by CreatedAt.
	GetOutcomesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Outcome, error)
}

// ModelRepository provides operations for versioned model artifacts and the
// deployed pointer selecting the active version.
//
// Artifacts are immutable: PutArtifact refuses to overwrite an existing
// version. The deployed pointer advances only through Promote, in a single
// transaction, so concurrent readers only ever observe a fully-formed
// artifact.
type ModelRepository interface {
	Repository
	// PutArtifact stores a new artifact version.
	// Returns ErrDuplicateKey if the version already exists.
	PutArtifact(ctx context.Context, artifact *core.ModelArtifact) error

	// GetArtifact retrieves an artifact by version.
	// Returns ErrNotFound if the version doesn't exist.
	GetArtifact(ctx context.Context, version string) (*core.ModelArtifact, error)

	// Deployed retrieves the currently deployed artifact.
	// Returns ErrNoDeployedModel if no version has been promoted yet.
	Deployed(ctx context.Context) (*core.ModelArtifact, error)

	// Promote atomically advances the deployed pointer to the given version.
	// Returns ErrNotFound if the version doesn't exist.
	Promote(ctx context.Context, version string) error
}

// ReportRepository provides operations for the append-only evaluation
// report history.
type ReportRepository interface {
	Repository
	// AddReport appends an evaluation report.
	// Sets EvaluatedAt if not already set.
	AddReport(ctx context.Context, report *core.EvaluationReport) error

	// ListReports returns up to limit reports, newest first.
	ListReports(ctx context.Context, limit int) ([]*core.EvaluationReport, error)
}
