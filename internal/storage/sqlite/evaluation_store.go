package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/reef-data/depthclass.report/internal/evaluate"
	"github.com/reef-data/depthclass.report/internal/reef"
)

// EvaluationStore persists multiclass confusion-matrix results.
type EvaluationStore struct {
	db *DB
}

// NewEvaluationStore creates an EvaluationStore backed by the given database.
func NewEvaluationStore(db *DB) *EvaluationStore {
	return &EvaluationStore{db: db}
}

// Insert persists a multiclass evaluation: nine matrix cells plus the
// scalar accuracy row, in one transaction.
func (s *EvaluationStore) Insert(runID string, result *evaluate.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin evaluation insert: %w", err)
	}
	defer tx.Rollback()

	for _, truth := range reef.Classes {
		for _, predicted := range reef.Classes {
			if _, err := tx.Exec(`
				INSERT INTO multiclass_cells (run_id, truth, predicted, count)
				VALUES (?, ?, ?, ?)`,
				runID, truth.String(), predicted.String(), result.Cell(truth, predicted),
			); err != nil {
				return fmt.Errorf("insert matrix cell [%s][%s]: %w", truth, predicted, err)
			}
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO multiclass_results (run_id, total, accuracy)
		VALUES (?, ?, ?)`,
		runID, result.Total, nullIfNaN(result.Accuracy),
	); err != nil {
		return fmt.Errorf("insert multiclass result: %w", err)
	}
	return tx.Commit()
}

// Get reconstructs a persisted evaluation. The stored threshold pair lives
// on the analysis run row, so the returned result carries the thresholds
// from there.
func (s *EvaluationStore) Get(runID string) (*evaluate.Result, error) {
	run, err := NewRunStore(s.db).Get(runID)
	if err != nil {
		return nil, err
	}

	result := &evaluate.Result{Thresholds: run.Thresholds}

	rows, err := s.db.Query(`
		SELECT truth, predicted, count
		FROM multiclass_cells
		WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query matrix cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var truthName, predictedName string
		var count int
		if err := rows.Scan(&truthName, &predictedName, &count); err != nil {
			return nil, fmt.Errorf("scan matrix cell: %w", err)
		}
		truth, err := reef.ParseClass(truthName)
		if err != nil {
			return nil, err
		}
		predicted, err := reef.ParseClass(predictedName)
		if err != nil {
			return nil, err
		}
		result.Matrix[truth][predicted] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var accuracy sql.NullFloat64
	row := s.db.QueryRow(`
		SELECT total, accuracy FROM multiclass_results WHERE run_id = ?`, runID)
	if err := row.Scan(&result.Total, &accuracy); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("multiclass result for run %s not found", runID)
		}
		return nil, fmt.Errorf("scan multiclass result: %w", err)
	}
	result.Accuracy = nanIfNull(accuracy)
	return result, nil
}
