package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reef-data/depthclass.report/internal/reef"
)

// AnalysisRun is the persisted record of one calibration run.
type AnalysisRun struct {
	RunID             string          `json:"run_id"`
	Source            string          `json:"source"`
	Thresholds        reef.Thresholds `json:"thresholds"`
	Seed              uint64          `json:"seed"`
	Replicates        int             `json:"replicates"`
	FeatureCount      int             `json:"feature_count"`
	InconsistentCount int             `json:"inconsistent_count"`
	CreatedAt         int64           `json:"created_at"`
}

// RunStore provides persistence for analysis-run records.
type RunStore struct {
	db *DB
}

// NewRunStore creates a RunStore backed by the given database.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// Insert persists a new run. If RunID is empty, a UUID is generated.
func (s *RunStore) Insert(run *AnalysisRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	_, err := s.db.Exec(`
		INSERT INTO analysis_runs (
			run_id, source, very_shallow_cut, deep_cut, seed, replicates,
			feature_count, inconsistent_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Source, run.Thresholds.VeryShallow, run.Thresholds.Deep,
		int64(run.Seed), run.Replicates, run.FeatureCount, run.InconsistentCount,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

// Get returns a single run by ID.
func (s *RunStore) Get(runID string) (*AnalysisRun, error) {
	row := s.db.QueryRow(`
		SELECT run_id, source, very_shallow_cut, deep_cut, seed, replicates,
		       feature_count, inconsistent_count, created_at
		FROM analysis_runs
		WHERE run_id = ?`, runID)

	var run AnalysisRun
	var seed int64
	err := row.Scan(
		&run.RunID, &run.Source, &run.Thresholds.VeryShallow, &run.Thresholds.Deep,
		&seed, &run.Replicates, &run.FeatureCount, &run.InconsistentCount,
		&run.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analysis run %s not found", runID)
		}
		return nil, fmt.Errorf("scan analysis run: %w", err)
	}
	run.Seed = uint64(seed)
	return &run, nil
}

// List returns all runs ordered by creation time descending.
func (s *RunStore) List() ([]*AnalysisRun, error) {
	rows, err := s.db.Query(`
		SELECT run_id, source, very_shallow_cut, deep_cut, seed, replicates,
		       feature_count, inconsistent_count, created_at
		FROM analysis_runs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		var seed int64
		if err := rows.Scan(
			&run.RunID, &run.Source, &run.Thresholds.VeryShallow, &run.Thresholds.Deep,
			&seed, &run.Replicates, &run.FeatureCount, &run.InconsistentCount,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis run row: %w", err)
		}
		run.Seed = uint64(seed)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
