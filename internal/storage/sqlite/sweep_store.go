package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/reef-data/depthclass.report/internal/metrics"
	"github.com/reef-data/depthclass.report/internal/reef"
	"github.com/reef-data/depthclass.report/internal/sweep"
)

// SweepStore persists one-vs-rest sweep tables.
type SweepStore struct {
	db *DB
}

// NewSweepStore creates a SweepStore backed by the given database.
func NewSweepStore(db *DB) *SweepStore {
	return &SweepStore{db: db}
}

// InsertRows persists a full sweep table for one run and target class in a
// single transaction, preserving grid order.
func (s *SweepStore) InsertRows(runID string, class reef.Class, rows []sweep.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sweep insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sweep_rows (
			run_id, class, threshold, tp, tn, fp, fn,
			precision, recall, f1, accuracy
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare sweep insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			runID, class.String(), r.Threshold, r.TP, r.TN, r.FP, r.FN,
			nullIfNaN(r.Precision), nullIfNaN(r.Recall), nullIfNaN(r.F1), nullIfNaN(r.Accuracy),
		); err != nil {
			return fmt.Errorf("insert sweep row at threshold %g: %w", r.Threshold, err)
		}
	}
	return tx.Commit()
}

// ListByRun returns the sweep rows for one run and class in threshold order.
func (s *SweepStore) ListByRun(runID string, class reef.Class) ([]sweep.Row, error) {
	rows, err := s.db.Query(`
		SELECT threshold, tp, tn, fp, fn, precision, recall, f1, accuracy
		FROM sweep_rows
		WHERE run_id = ? AND class = ?
		ORDER BY threshold ASC`, runID, class.String())
	if err != nil {
		return nil, fmt.Errorf("query sweep rows: %w", err)
	}
	defer rows.Close()

	var out []sweep.Row
	for rows.Next() {
		var r sweep.Row
		var m metrics.BinaryMetrics
		var precision, recall, f1, accuracy sql.NullFloat64
		if err := rows.Scan(
			&r.Threshold, &m.TP, &m.TN, &m.FP, &m.FN,
			&precision, &recall, &f1, &accuracy,
		); err != nil {
			return nil, fmt.Errorf("scan sweep row: %w", err)
		}
		m.Precision = nanIfNull(precision)
		m.Recall = nanIfNull(recall)
		m.F1 = nanIfNull(f1)
		m.Accuracy = nanIfNull(accuracy)
		r.BinaryMetrics = m
		out = append(out, r)
	}
	return out, rows.Err()
}
