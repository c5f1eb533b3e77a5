// Package agent implements the page-navigation loop: a bounded sequence of
// think/act/observe steps that lets a vision model move through a document
// one rendered page at a time until it commits to a final answer.
package agent

import (
	"context"
	"fmt"

	"pdfpilot/internal/document"
	"pdfpilot/internal/llm"
)

// Loop defaults, overridable through Config.
const (
	DefaultMaxSteps     = 10
	DefaultMemoryWindow = 2
)

const (
	stepTemperature = 0.2
	stepMaxTokens   = 1024
)

// budgetExhaustedAnswer is the best-effort answer returned when the step
// budget runs out before the model commits to a final answer.
const budgetExhaustedAnswer = "No answer found within the step budget."

// Completer is the opaque chat-completion boundary the loop drives.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Config bounds one run of the loop.
type Config struct {
	// MaxSteps is the step budget; the run aborts with a best-effort answer
	// once it is exhausted. Zero means DefaultMaxSteps.
	MaxSteps int
	// MemoryWindow is how many of the most recent steps keep their page
	// images; older steps keep text only. Zero means DefaultMemoryWindow.
	MemoryWindow int
	// OnStep, when set, is invoked after each completed step.
	OnStep func(step Step)
}

// Result is the outcome of one run.
type Result struct {
	// Answer is a single string or an ordered list of strings.
	Answer any
	// Page is the 1-based page the cursor ended on.
	Page int
	// Steps is the number of think/act/observe cycles consumed.
	Steps int
	// Aborted reports that the step budget ran out and Answer is best-effort.
	Aborted bool
}

// Loop drives think/act/observe cycles against a model until it produces a
// final answer or exhausts its step budget.
type Loop struct {
	completer Completer
	cursor    *document.PageCursor
	tools     *Toolset
	maxSteps  int
	window    int
	onStep    func(Step)

	memory       Memory
	taskText     string
	initialImage string
}

// NewLoop builds a loop over one cursor. The cursor and its document must
// not be shared with any other run.
func NewLoop(completer Completer, cursor *document.PageCursor, cfg Config) *Loop {
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	window := cfg.MemoryWindow
	if window <= 0 {
		window = DefaultMemoryWindow
	}
	return &Loop{
		completer: completer,
		cursor:    cursor,
		tools:     NewToolset(cursor),
		maxSteps:  maxSteps,
		window:    window,
		onStep:    cfg.OnStep,
	}
}

// Steps returns the steps recorded so far, in order.
func (l *Loop) Steps() []Step {
	return l.memory.Steps()
}

// Run answers the question, navigating the document as the model directs.
// The run starts already holding the current page's image and text, so a
// first-step final answer needs no navigation.
func (l *Loop) Run(ctx context.Context, question string) (Result, error) {
	image, err := l.cursor.CurrentImage()
	if err != nil {
		return Result{}, fmt.Errorf("render initial page: %w", err)
	}
	l.initialImage = image
	l.taskText = fmt.Sprintf("Task: %s\n\nYou are currently on page %d of %d.",
		question, l.cursor.Page(), l.cursor.TotalPages())
	if text := l.cursor.CurrentText(); text != "" {
		l.taskText += "\nPage text: " + text
	}

	for stepNumber := 1; stepNumber <= l.maxSteps; stepNumber++ {
		content, err := l.completer.Complete(ctx, l.request())
		if err != nil {
			return Result{}, fmt.Errorf("model call on step %d: %w", stepNumber, err)
		}

		step := Step{StepNumber: stepNumber}
		thought, action, parseErr := parseStep(content)
		if parseErr != nil {
			step.Thought = content
			step.Observation = fmt.Sprintf("Error: could not parse an action from your output (%v). Respond with a single JSON object as instructed.", parseErr)
			l.observe(&step)
			continue
		}
		step.Thought = thought
		step.Action = action

		if action.Name == ActionFinalAnswer {
			answer, err := action.AnswerValue()
			if err != nil {
				step.Observation = fmt.Sprintf("Error: %v", err)
				l.observe(&step)
				continue
			}
			return Result{Answer: answer, Page: l.cursor.Page(), Steps: stepNumber}, nil
		}

		observation, err := l.tools.Dispatch(action)
		if err != nil {
			observation = fmt.Sprintf("Error: %v", err)
		}
		step.Observation = observation
		l.observe(&step)
	}

	return Result{
		Answer:  budgetExhaustedAnswer,
		Page:    l.cursor.Page(),
		Steps:   l.maxSteps,
		Aborted: true,
	}, nil
}

// observe captures the current page image into the step, appends the step to
// the run memory, and prunes images that fell outside the memory window.
func (l *Loop) observe(step *Step) {
	image, err := l.cursor.CurrentImage()
	if err != nil {
		step.Observation += fmt.Sprintf(" (current page could not be rendered: %v)", err)
	} else {
		step.RetainedImages = []string{image}
	}
	l.memory.Append(*step)
	l.memory.PruneImages(step.StepNumber, l.window)
	if l.onStep != nil {
		l.onStep(*step)
	}
}

// request assembles the exchange for the next think step: the task with the
// initial page context, then each recorded step as an assistant turn echoing
// its output and a user turn carrying the observation and retained images.
// The initial page image is part of the task turn and is never pruned.
func (l *Loop) request() llm.Request {
	steps := l.memory.Steps()
	turns := make([]llm.Turn, 0, 2*len(steps)+1)
	turns = append(turns, llm.Turn{
		Role:   llm.RoleUser,
		Text:   l.taskText,
		Images: []string{l.initialImage},
	})
	for _, step := range steps {
		turns = append(turns, llm.Turn{
			Role: llm.RoleAssistant,
			Text: step.assistantEcho(),
		})
		turns = append(turns, llm.Turn{
			Role:   llm.RoleUser,
			Text:   "Observation: " + step.Observation,
			Images: step.RetainedImages,
		})
	}
	return llm.Request{
		System:      systemPrompt,
		Turns:       turns,
		Temperature: llm.Ptr(float32(stepTemperature)),
		MaxTokens:   stepMaxTokens,
	}
}
