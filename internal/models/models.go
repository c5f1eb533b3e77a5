package models

import "time"

// Run statuses recorded for answered questions.
const (
	RunStatusDone    = "done"
	RunStatusAborted = "aborted"
)

// AskResponse is the answering boundary's result shape. Answer is either a
// single string or an ordered list of strings, as produced by the model.
type AskResponse struct {
	Answer any `json:"answer"`
	Page   int `json:"page"`
}

// Run is one persisted question-answering invocation.
type Run struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Page      int       `json:"page"`
	Steps     int       `json:"steps"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// EvalRun is the persisted metadata of one evaluation batch.
type EvalRun struct {
	ID             string    `json:"id"`
	EvalSet        string    `json:"eval_set"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Accuracy       float64   `json:"accuracy"`
	CreatedAt      time.Time `json:"created_at"`
}
