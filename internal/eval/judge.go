package eval

import (
	"context"
	"fmt"
	"strings"

	"pdfpilot/internal/llm"
	"pdfpilot/internal/log"
)

// Verdict tokens. Grade never returns anything else.
const (
	GradeCorrect   = "correct"
	GradeIncorrect = "incorrect"
)

// judgeMaxTokens is tiny because the verdict is a single word.
const judgeMaxTokens = 10

// judgeSystemPrompt fixes the equivalence policy the judge applies.
const judgeSystemPrompt = `You are an expert evaluator for question-answering systems.

Your task is to compare a predicted answer with the expected answer and determine if they are semantically equivalent.

Consider these factors:
- Exact matches are always correct
- Different formatting of the same information should be considered correct (e.g., "978,35 EUR" vs "978.35 EUR")
- Minor variations in date formats should be considered correct (e.g., "04.10.2018" vs "4.10.2018")
- Semantic equivalence matters more than exact string matching
- When the expected answer lists multiple items or values, the predicted answer must contain every one of them to be correct; an answer covering only some of them is incorrect
- Ignore page references or other context notes around the core answer content
- If the predicted answer contains "No answer in page" or similar, it should be considered incorrect unless the expected answer also indicates no answer

Respond with exactly one word: either "correct" or "incorrect".`

// Completer is the chat-completion boundary the judge calls.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Judge grades predicted answers against expected answers using a second
// model with deterministic decoding.
type Judge struct {
	completer Completer
}

func NewJudge(completer Completer) *Judge {
	return &Judge{completer: completer}
}

// Grade returns "correct" or "incorrect". Transport failures and verdicts
// outside the two-token vocabulary degrade to "incorrect".
func (j *Judge) Grade(ctx context.Context, question, expectedAnswer, predictedAnswer string) string {
	userPrompt := fmt.Sprintf(`Question: %s

Expected Answer: %s

Predicted Answer: %s

Are these answers semantically equivalent?`, question, expectedAnswer, predictedAnswer)

	content, err := j.completer.Complete(ctx, llm.Request{
		System:      judgeSystemPrompt,
		Turns:       []llm.Turn{{Role: llm.RoleUser, Text: userPrompt}},
		Temperature: llm.Ptr(float32(0)),
		MaxTokens:   judgeMaxTokens,
	})
	if err != nil {
		log.Errorf("llm judge: %v", err)
		return GradeIncorrect
	}

	grade := strings.ToLower(strings.TrimSpace(content))
	if grade != GradeCorrect && grade != GradeIncorrect {
		log.Warnf("unexpected judge response %q, defaulting to %q", grade, GradeIncorrect)
		return GradeIncorrect
	}
	return grade
}
