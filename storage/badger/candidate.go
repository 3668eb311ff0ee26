package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// CandidateRepository implements storage.CandidateRepository for BadgerDB.
type CandidateRepository struct {
	backend *Backend
}

var _ storage.CandidateRepository = (*CandidateRepository)(nil)

// NewCandidateRepository creates a new CandidateRepository.
func NewCandidateRepository(backend *Backend) *CandidateRepository {
	return &CandidateRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *CandidateRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CandidateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutCandidates inserts or replaces candidate records keyed by CompanyKey.
func (r *CandidateRepository) PutCandidates(ctx context.Context, candidates ...*core.Candidate) ([]*core.Candidate, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, candidate := range candidates {
			if err := core.ValidateCandidate(candidate); err != nil {
				return err
			}

			key := makeCandidateKey(candidate.CompanyKey)
			old, err := r.readCandidate(tx, key)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}

			now := time.Now().UTC()
			if old != nil {
				candidate.InsertedAt = old.InsertedAt
				// Drop the stale index entry before writing the new one
				if err := tx.Delete(makeCandidateUpdatedKey(old.UpdatedAt, old.CompanyKey)); err != nil {
					return err
				}
			} else {
				candidate.InsertedAt = now
			}
			candidate.UpdatedAt = now

			value := storage.MarshalCandidate(candidate)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update the updated-at index
			updatedKey := makeCandidateUpdatedKey(candidate.UpdatedAt, candidate.CompanyKey)
			if err := tx.Set(updatedKey, []byte(candidate.CompanyKey)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// GetCandidate retrieves a single candidate by company key.
func (r *CandidateRepository) GetCandidate(ctx context.Context, companyKey string) (*core.Candidate, error) {
	var candidate *core.Candidate
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		candidate, err = r.readCandidate(tx, makeCandidateKey(companyKey))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// QueryCandidates returns candidates matching the filter, most recently
// updated first, up to filter.Limit records.
func (r *CandidateRepository) QueryCandidates(ctx context.Context, filter storage.CandidateFilter) ([]*core.Candidate, error) {
	var results []*core.Candidate
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Walk the updated-at index newest-first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key with the index prefix
		startKey := makeCandidateUpdatedKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), "")
		prefix := []byte(candidateUpdatedPrefix + ":")

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the updated-at index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the company key from the index
			var companyKey string
			if err := iter.Item().Value(func(val []byte) error {
				companyKey = string(val)
				return nil
			}); err != nil {
				return err
			}

			// Look up the full record
			candidate, err := r.readCandidate(tx, makeCandidateKey(companyKey))
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					continue
				}
				return err
			}

			if filter.Industry != "" && candidate.Industry != filter.Industry {
				continue
			}
			if filter.Country != "" && candidate.Country != filter.Country {
				continue
			}

			results = append(results, candidate)
			if filter.Limit > 0 && len(results) >= filter.Limit {
				break
			}
		}
		return nil
	}, false)

	return results, err
}

// ForEachCandidate invokes fn for every stored candidate in key order.
func (r *CandidateRepository) ForEachCandidate(ctx context.Context, fn func(*core.Candidate) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(candidateRecordPrefix + ":")

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var candidate *core.Candidate
			err := iter.Item().Value(func(val []byte) error {
				var err error
				candidate, err = storage.UnmarshalCandidate(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(candidate); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountCandidates returns the number of stored candidate records.
func (r *CandidateRepository) CountCandidates(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(candidateRecordPrefix + ":")
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readCandidate reads and unmarshals a candidate record within a transaction.
// Returns storage.ErrNotFound if the key does not exist.
func (r *CandidateRepository) readCandidate(tx *badger.Txn, key []byte) (*core.Candidate, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var candidate *core.Candidate
	err = item.Value(func(val []byte) error {
		var err error
		candidate, err = storage.UnmarshalCandidate(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return candidate, nil
}
