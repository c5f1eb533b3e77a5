package services

import (
	"context"
	"database/sql"
	"fmt"

	"pdfpilot/internal/models"
)

const defaultHistoryLimit = 20

// RunService persists and lists answered runs.
type RunService struct {
	db *sql.DB
}

func NewRunService(db *sql.DB) *RunService {
	return &RunService{db: db}
}

// Record inserts one finished run.
func (s *RunService) Record(ctx context.Context, run models.Run) error {
	stmt := `INSERT INTO qa_runs (id, question, answer, page, steps, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);`
	_, err := s.db.ExecContext(ctx, stmt,
		run.ID, run.Question, run.Answer, run.Page, run.Steps, run.Status, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *RunService) Recent(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `SELECT id, question, answer, page, steps, status, created_at
	FROM qa_runs ORDER BY created_at DESC LIMIT ?;`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.Question, &run.Answer, &run.Page,
			&run.Steps, &run.Status, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
