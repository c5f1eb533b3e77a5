package eval

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfpilot/internal/llm"
)

// queueCompleter hands out verdicts in call order.
type queueCompleter struct {
	verdicts []string
	calls    int
}

func (q *queueCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	verdict := GradeIncorrect
	if q.calls < len(q.verdicts) {
		verdict = q.verdicts[q.calls]
	}
	q.calls++
	return verdict, nil
}

func TestHarnessRunGradesEveryItem(t *testing.T) {
	items := []Item{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}
	judge := NewJudge(&queueCompleter{verdicts: []string{GradeCorrect, GradeIncorrect, GradeCorrect}})
	predict := func(ctx context.Context, question string) (string, error) {
		return "answer to " + question, nil
	}

	report := NewHarness(judge, predict, 1).Run(context.Background(), items)

	require.Len(t, report.Results(), 3)
	for i, result := range report.Results() {
		assert.Equal(t, items[i].Question, result.Question)
		assert.Equal(t, items[i].Answer, result.ExpectedAnswer)
		assert.Equal(t, "answer to "+items[i].Question, result.PredictedAnswer)
	}
	assert.True(t, report.Results()[0].IsCorrect)
	assert.False(t, report.Results()[1].IsCorrect)
	assert.InDelta(t, 66.67, report.Accuracy(), 0.01)
}

func TestHarnessSingleItemReport(t *testing.T) {
	items := []Item{{Question: "total employees", Answer: "1,250 employees"}}
	judge := NewJudge(&fakeCompleter{reply: GradeCorrect})
	predict := func(ctx context.Context, question string) (string, error) {
		return "1250 full-time employees", nil
	}

	report := NewHarness(judge, predict, 1).Run(context.Background(), items)

	assert.Equal(t, 1, report.TotalQuestions())
	assert.Equal(t, 1, report.CorrectAnswers())
	assert.Equal(t, 100.0, report.Accuracy())
	require.Len(t, report.Results(), 1)
	assert.Equal(t, "1250 full-time employees", report.Results()[0].PredictedAnswer)
}

func TestHarnessPredictorErrorIsGraded(t *testing.T) {
	items := []Item{
		{Question: "fine", Answer: "a"},
		{Question: "broken", Answer: "b"},
	}
	judge := NewJudge(&fakeCompleter{reply: GradeIncorrect})
	predict := func(ctx context.Context, question string) (string, error) {
		if question == "broken" {
			return "", errors.New("boom")
		}
		return "ok", nil
	}

	report := NewHarness(judge, predict, 1).Run(context.Background(), items)

	require.Len(t, report.Results(), 2)
	assert.Equal(t, "ok", report.Results()[0].PredictedAnswer)
	assert.Equal(t, "Error: boom", report.Results()[1].PredictedAnswer)
}

func TestHarnessWorkersPreserveInputOrder(t *testing.T) {
	const n = 12
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Question: fmt.Sprintf("q%02d", i), Answer: "a"}
	}

	judge := NewJudge(&fakeCompleter{reply: GradeCorrect})
	// Later items finish first so completion order inverts input order.
	predict := func(ctx context.Context, question string) (string, error) {
		idx, err := strconv.Atoi(question[1:])
		if err != nil {
			return "", err
		}
		time.Sleep(time.Duration(n-idx) * time.Millisecond)
		return "p" + question, nil
	}

	report := NewHarness(judge, predict, 4).Run(context.Background(), items)

	require.Len(t, report.Results(), n)
	for i, result := range report.Results() {
		assert.Equal(t, items[i].Question, result.Question)
		assert.Equal(t, "p"+items[i].Question, result.PredictedAnswer)
	}
	assert.InDelta(t, 100.0, report.Accuracy(), 0.01)
}

func TestHarnessAppliesPredictTimeout(t *testing.T) {
	items := []Item{{Question: "slow", Answer: "a"}}
	judge := NewJudge(&fakeCompleter{reply: GradeIncorrect})
	predict := func(ctx context.Context, question string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}

	harness := NewHarness(judge, predict, 1)
	harness.timeout = 10 * time.Millisecond

	report := harness.Run(context.Background(), items)

	require.Len(t, report.Results(), 1)
	assert.Contains(t, report.Results()[0].PredictedAnswer, "Error: context deadline exceeded")
}
