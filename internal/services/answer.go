package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfpilot/internal/agent"
	"pdfpilot/internal/document"
	"pdfpilot/internal/llm"
	"pdfpilot/internal/log"
	"pdfpilot/internal/models"
)

// ProgressCallback is called during a run to report per-step progress.
type ProgressCallback func(step, message string, current, total int)

// Completer is the chat-completion boundary the services drive.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// AnswerService runs the page-navigation agent over an uploaded PDF and
// records finished runs.
type AnswerService struct {
	completer Completer
	runs      *RunService
	maxSteps  int
	window    int
}

// NewAnswerService builds the answering service. runs may be nil when run
// history is not wanted.
func NewAnswerService(completer Completer, runs *RunService, maxSteps, memoryWindow int) *AnswerService {
	return &AnswerService{
		completer: completer,
		runs:      runs,
		maxSteps:  maxSteps,
		window:    memoryWindow,
	}
}

// Ask answers one question about one PDF buffer.
func (s *AnswerService) Ask(ctx context.Context, pdfBytes []byte, question string) (*models.AskResponse, error) {
	return s.AskWithProgress(ctx, pdfBytes, question, nil)
}

// AskWithProgress answers one question, reporting per-step progress. Each
// call constructs its own document and cursor; nothing is shared between
// concurrent runs.
func (s *AnswerService) AskWithProgress(ctx context.Context, pdfBytes []byte, question string, progress ProgressCallback) (*models.AskResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is empty")
	}
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("pdf is empty")
	}

	doc := document.New(pdfBytes)
	cursor := document.NewCursor(doc)

	cfg := agent.Config{MaxSteps: s.maxSteps, MemoryWindow: s.window}
	if progress != nil {
		total := s.maxSteps
		if total <= 0 {
			total = agent.DefaultMaxSteps
		}
		cfg.OnStep = func(step agent.Step) {
			progress("step", step.Observation, step.StepNumber, total)
		}
	}

	loop := agent.NewLoop(s.completer, cursor, cfg)
	result, err := loop.Run(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("agent run: %w", err)
	}

	s.record(ctx, question, result)

	return &models.AskResponse{Answer: result.Answer, Page: result.Page}, nil
}

// record persists the finished run. Persistence failures are logged, never
// surfaced to the caller.
func (s *AnswerService) record(ctx context.Context, question string, result agent.Result) {
	if s.runs == nil {
		return
	}
	status := models.RunStatusDone
	if result.Aborted {
		status = models.RunStatusAborted
	}
	run := models.Run{
		ID:        uuid.NewString(),
		Question:  question,
		Answer:    FlattenAnswer(result.Answer),
		Page:      result.Page,
		Steps:     result.Steps,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.runs.Record(ctx, run); err != nil {
		log.Warnf("record run: %v", err)
	}
}

// FlattenAnswer renders an answer value (a string or an ordered list of
// strings) as one string.
func FlattenAnswer(answer any) string {
	switch v := answer.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
