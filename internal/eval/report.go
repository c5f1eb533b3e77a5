package eval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Result is one graded question.
type Result struct {
	Question        string `json:"question"`
	ExpectedAnswer  string `json:"expected_answer"`
	PredictedAnswer string `json:"predicted_answer"`
	Grade           string `json:"grade"`
	IsCorrect       bool   `json:"is_correct"`
}

// Report accumulates graded results in the order they are added and
// derives aggregate accuracy.
type Report struct {
	results        []Result
	totalQuestions int
	correctAnswers int
}

// Add appends one graded result.
func (r *Report) Add(question, expected, predicted, grade string) {
	isCorrect := strings.TrimSpace(strings.ToLower(grade)) == GradeCorrect
	r.results = append(r.results, Result{
		Question:        question,
		ExpectedAnswer:  expected,
		PredictedAnswer: predicted,
		Grade:           grade,
		IsCorrect:       isCorrect,
	})
	r.totalQuestions++
	if isCorrect {
		r.correctAnswers++
	}
}

func (r *Report) Results() []Result   { return r.results }
func (r *Report) TotalQuestions() int { return r.totalQuestions }
func (r *Report) CorrectAnswers() int { return r.correctAnswers }

// Accuracy returns the percentage of correct answers, 0.0 for an empty
// report.
func (r *Report) Accuracy() float64 {
	if r.totalQuestions == 0 {
		return 0.0
	}
	return float64(r.correctAnswers) / float64(r.totalQuestions) * 100
}

type reportMetadata struct {
	Timestamp      string  `json:"timestamp"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
}

type reportFile struct {
	EvaluationMetadata reportMetadata `json:"evaluation_metadata"`
	Results            []Result       `json:"results"`
}

// Save writes the detailed report as one indented JSON document.
func (r *Report) Save(path string) error {
	results := r.results
	if results == nil {
		results = []Result{}
	}
	out := reportFile{
		EvaluationMetadata: reportMetadata{
			Timestamp:      time.Now().Format(time.RFC3339),
			TotalQuestions: r.totalQuestions,
			CorrectAnswers: r.correctAnswers,
			Accuracy:       r.Accuracy(),
		},
		Results: results,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// PrintSummary writes a human-readable summary of the report.
func (r *Report) PrintSummary(w io.Writer) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, "\n"+line)
	fmt.Fprintln(w, "EVALUATION SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Total Questions: %d\n", r.totalQuestions)
	fmt.Fprintf(w, "Correct Answers: %d\n", r.correctAnswers)
	fmt.Fprintf(w, "Incorrect Answers: %d\n", r.totalQuestions-r.correctAnswers)
	fmt.Fprintf(w, "Accuracy: %.1f%%\n", r.Accuracy())
	fmt.Fprintln(w, line)

	fmt.Fprintln(w, "\nDETAILED RESULTS:")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, result := range r.results {
		status := "✓"
		if !result.IsCorrect {
			status = "✗"
		}
		fmt.Fprintf(w, "%2d. %s Question: %s\n", i+1, status, result.Question)
		fmt.Fprintf(w, "    Expected: %s\n", result.ExpectedAnswer)
		fmt.Fprintf(w, "    Predicted: %s\n", result.PredictedAnswer)
		fmt.Fprintf(w, "    Grade: %s\n", result.Grade)
		fmt.Fprintln(w)
	}
}
