package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// OutcomeRepository implements storage.OutcomeRepository for BadgerDB.
// Outcome rows live directly under their created-at composite key, so a
// lookback scan is one forward prefix iteration in time order.
type OutcomeRepository struct {
	backend *Backend
}

var _ storage.OutcomeRepository = (*OutcomeRepository)(nil)

// NewOutcomeRepository creates a new OutcomeRepository.
func NewOutcomeRepository(backend *Backend) *OutcomeRepository {
	return &OutcomeRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *OutcomeRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *OutcomeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddOutcomes appends outcome rows.
func (r *OutcomeRepository) AddOutcomes(ctx context.Context, outcomes ...*core.Outcome) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, outcome := range outcomes {
			if outcome.CreatedAt.IsZero() {
				outcome.CreatedAt = time.Now().UTC()
			}

			key := makeOutcomeKey(outcome.CreatedAt, outcome.ChallengeID, outcome.CompanyKey)
			value := storage.MarshalOutcome(outcome)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetOutcomesByDateRange retrieves outcomes where start <= CreatedAt < end,
// ordered by CreatedAt ascending.
func (r *OutcomeRepository) GetOutcomesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Outcome, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Outcome
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialOutcomeKey(start)
		endKey := makePartialOutcomeKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		prefix := []byte(outcomeRecordPrefix + ":")

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the outcome keyspace
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}
			if slices.Compare(key[:len(endKey)], endKey) >= 0 {
				break
			}

			var outcome *core.Outcome
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				outcome, err = storage.UnmarshalOutcome(val)
				return err
			}); err != nil {
				return err
			}
			results = append(results, outcome)
		}
		return nil
	}, false)

	return results, err
}
