package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/theralab/startmatch/core"
	"github.com/theralab/startmatch/storage"
)

// ReportRepository implements storage.ReportRepository for BadgerDB.
// Reports are append-only; ListReports walks the time index in reverse
// so the most recent evaluation comes back first.
type ReportRepository struct {
	backend *Backend
}

var _ storage.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(backend *Backend) *ReportRepository {
	return &ReportRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *ReportRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ReportRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddReport appends an evaluation report, stamping EvaluatedAt if unset.
func (r *ReportRepository) AddReport(ctx context.Context, report *core.EvaluationReport) error {
	if report.EvaluatedAt.IsZero() {
		report.EvaluatedAt = time.Now()
	}

	value, err := storage.MarshalReport(report)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeReportKey(report.EvaluatedAt, report.ModelVersion)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListReports returns up to limit reports, newest first.
// A limit <= 0 returns all stored reports.
func (r *ReportRepository) ListReports(ctx context.Context, limit int) ([]*core.EvaluationReport, error) {
	var reports []*core.EvaluationReport

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(reportRecordPrefix + ":")
		opts.Reverse = true

		it := tx.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts past the end of the prefix range.
		seekKey := makeReportKey(time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC), "")

		for it.Seek(seekKey); it.Valid(); it.Next() {
			if limit > 0 && len(reports) >= limit {
				break
			}

			var report *core.EvaluationReport
			err := it.Item().Value(func(val []byte) error {
				var err error
				report, err = storage.UnmarshalReport(val)
				return err
			})
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return reports, nil
}
