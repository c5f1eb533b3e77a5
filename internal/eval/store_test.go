package eval

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfpilot/internal/db"
)

func TestStoreSaveReport(t *testing.T) {
	conn, err := db.Open(filepath.Join(t.TempDir(), "eval.db"))
	require.NoError(t, err)
	defer conn.Close()

	report := &Report{}
	report.Add("q1", "a1", "a1", GradeCorrect)
	report.Add("q2", "a2", "wrong", GradeIncorrect)

	runID, err := NewStore(conn).SaveReport(context.Background(), "eval/eval_set.jsonl", report)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	var total, correct int
	var accuracy float64
	row := conn.QueryRow(`SELECT total_questions, correct_answers, accuracy FROM eval_runs WHERE id = ?`, runID)
	require.NoError(t, row.Scan(&total, &correct, &accuracy))
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, correct)
	assert.InDelta(t, 50.0, accuracy, 0.01)

	rows, err := conn.Query(`SELECT position, question, grade, is_correct FROM eval_results WHERE run_id = ? ORDER BY position`, runID)
	require.NoError(t, err)
	defer rows.Close()

	type resultRow struct {
		position  int
		question  string
		grade     string
		isCorrect bool
	}
	var got []resultRow
	for rows.Next() {
		var r resultRow
		require.NoError(t, rows.Scan(&r.position, &r.question, &r.grade, &r.isCorrect))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 2)
	assert.Equal(t, resultRow{position: 0, question: "q1", grade: GradeCorrect, isCorrect: true}, got[0])
	assert.Equal(t, resultRow{position: 1, question: "q2", grade: GradeIncorrect, isCorrect: false}, got[1])
}

func TestStoreSaveEmptyReport(t *testing.T) {
	conn, err := db.Open(filepath.Join(t.TempDir(), "eval.db"))
	require.NoError(t, err)
	defer conn.Close()

	runID, err := NewStore(conn).SaveReport(context.Background(), "empty.jsonl", &Report{})
	require.NoError(t, err)

	var count int
	row := conn.QueryRow(`SELECT COUNT(*) FROM eval_results WHERE run_id = ?`, runID)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 0, count)
}
