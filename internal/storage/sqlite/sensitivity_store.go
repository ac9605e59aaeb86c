package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/reef-data/depthclass.report/internal/montecarlo"
	"github.com/reef-data/depthclass.report/internal/reef"
)

// SensitivityStore persists Monte Carlo sensitivity results: the
// per-replicate table and the aggregate summary.
type SensitivityStore struct {
	db *DB
}

// NewSensitivityStore creates a SensitivityStore backed by the given
// database.
func NewSensitivityStore(db *DB) *SensitivityStore {
	return &SensitivityStore{db: db}
}

// Insert persists all replicates and the summary for one run in a single
// transaction.
func (s *SensitivityStore) Insert(runID string, result *montecarlo.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sensitivity insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sensitivity_replicates (
			run_id, replicate, accuracy, flip_very_shallow, flip_shallow, flip_deep
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare replicate insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range result.Replicates {
		if _, err := stmt.Exec(
			runID, r.Index, r.Accuracy,
			nullIfNaN(r.FlipRates[reef.ClassVeryShallow]),
			nullIfNaN(r.FlipRates[reef.ClassShallow]),
			nullIfNaN(r.FlipRates[reef.ClassDeep]),
		); err != nil {
			return fmt.Errorf("insert replicate %d: %w", r.Index, err)
		}
	}

	sum := result.Summary
	if _, err := tx.Exec(`
		INSERT INTO sensitivity_summaries (
			run_id, replicates, mean_accuracy, ci_low, ci_high,
			overall_flip_rate, flip_rate_very_shallow, flip_rate_shallow, flip_rate_deep
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, sum.Replicates, sum.MeanAccuracy, sum.CILow, sum.CIHigh,
		sum.OverallFlipRate,
		nullIfNaN(sum.FlipRates[reef.ClassVeryShallow]),
		nullIfNaN(sum.FlipRates[reef.ClassShallow]),
		nullIfNaN(sum.FlipRates[reef.ClassDeep]),
	); err != nil {
		return fmt.Errorf("insert sensitivity summary: %w", err)
	}
	return tx.Commit()
}

// GetSummary returns the persisted summary for one run.
func (s *SensitivityStore) GetSummary(runID string) (*montecarlo.Summary, error) {
	row := s.db.QueryRow(`
		SELECT replicates, mean_accuracy, ci_low, ci_high, overall_flip_rate,
		       flip_rate_very_shallow, flip_rate_shallow, flip_rate_deep
		FROM sensitivity_summaries
		WHERE run_id = ?`, runID)

	var sum montecarlo.Summary
	var flipVS, flipShallow, flipDeep sql.NullFloat64
	err := row.Scan(
		&sum.Replicates, &sum.MeanAccuracy, &sum.CILow, &sum.CIHigh,
		&sum.OverallFlipRate, &flipVS, &flipShallow, &flipDeep,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sensitivity summary for run %s not found", runID)
		}
		return nil, fmt.Errorf("scan sensitivity summary: %w", err)
	}
	sum.FlipRates[reef.ClassVeryShallow] = nanIfNull(flipVS)
	sum.FlipRates[reef.ClassShallow] = nanIfNull(flipShallow)
	sum.FlipRates[reef.ClassDeep] = nanIfNull(flipDeep)
	return &sum, nil
}

// ListReplicates returns the per-replicate table for one run in replicate
// order.
func (s *SensitivityStore) ListReplicates(runID string) ([]montecarlo.Replicate, error) {
	rows, err := s.db.Query(`
		SELECT replicate, accuracy, flip_very_shallow, flip_shallow, flip_deep
		FROM sensitivity_replicates
		WHERE run_id = ?
		ORDER BY replicate ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query replicates: %w", err)
	}
	defer rows.Close()

	var out []montecarlo.Replicate
	for rows.Next() {
		var r montecarlo.Replicate
		var flipVS, flipShallow, flipDeep sql.NullFloat64
		if err := rows.Scan(&r.Index, &r.Accuracy, &flipVS, &flipShallow, &flipDeep); err != nil {
			return nil, fmt.Errorf("scan replicate: %w", err)
		}
		r.FlipRates[reef.ClassVeryShallow] = nanIfNull(flipVS)
		r.FlipRates[reef.ClassShallow] = nanIfNull(flipShallow)
		r.FlipRates[reef.ClassDeep] = nanIfNull(flipDeep)
		out = append(out, r)
	}
	return out, rows.Err()
}
