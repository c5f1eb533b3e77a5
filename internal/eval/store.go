package eval

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store persists finished evaluation reports.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveReport records the report's metadata and its results in report order
// and returns the new evaluation run's id.
func (s *Store) SaveReport(ctx context.Context, evalSet string, report *Report) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	insertRun := `INSERT INTO eval_runs (id, eval_set, total_questions, correct_answers, accuracy, created_at)
	VALUES (?, ?, ?, ?, ?, ?);`
	if _, err := tx.ExecContext(ctx, insertRun,
		runID, evalSet, report.TotalQuestions(), report.CorrectAnswers(), report.Accuracy(), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("insert eval run: %w", err)
	}

	insertResult := `INSERT INTO eval_results (run_id, position, question, expected_answer, predicted_answer, grade, is_correct)
	VALUES (?, ?, ?, ?, ?, ?, ?);`
	for i, result := range report.Results() {
		if _, err := tx.ExecContext(ctx, insertResult,
			runID, i, result.Question, result.ExpectedAnswer, result.PredictedAnswer, result.Grade, result.IsCorrect); err != nil {
			return "", fmt.Errorf("insert eval result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit eval run: %w", err)
	}
	return runID, nil
}
