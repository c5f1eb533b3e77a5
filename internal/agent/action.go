package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action names form the closed set of operations the model may request.
const (
	ActionNextPage     = "next_page"
	ActionPreviousPage = "previous_page"
	ActionGoToPage     = "go_to_page"
	ActionFinalAnswer  = "final_answer"
)

// Action is one tagged operation parsed from the model's JSON output.
type Action struct {
	Name       string          `json:"name"`
	PageNumber int             `json:"page_number,omitempty"`
	Answer     json.RawMessage `json:"answer,omitempty"`
}

// AnswerValue decodes a final answer as a single string or an ordered list
// of strings.
func (a Action) AnswerValue() (any, error) {
	if len(a.Answer) == 0 {
		return nil, fmt.Errorf("final_answer carries no answer")
	}
	var single string
	if err := json.Unmarshal(a.Answer, &single); err == nil {
		return single, nil
	}
	var list []string
	if err := json.Unmarshal(a.Answer, &list); err == nil {
		return list, nil
	}
	return nil, fmt.Errorf("answer must be a string or a list of strings, got %s", string(a.Answer))
}

// stepOutput is the JSON shape the model is prompted to produce each step.
type stepOutput struct {
	Thought string `json:"thought"`
	Action  Action `json:"action"`
}

// parseStep extracts the thought and action from one model completion. The
// model may wrap its JSON in markdown fences or surrounding prose.
func parseStep(content string) (string, Action, error) {
	jsonStr := extractJSON(content)
	if jsonStr == "" {
		return "", Action{}, fmt.Errorf("no JSON object found in model output")
	}

	var out stepOutput
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return "", Action{}, fmt.Errorf("unmarshal step output: %w", err)
	}

	switch out.Action.Name {
	case ActionNextPage, ActionPreviousPage, ActionGoToPage, ActionFinalAnswer:
	case "":
		return "", Action{}, fmt.Errorf("step output names no action")
	default:
		return "", Action{}, fmt.Errorf("unknown action %q", out.Action.Name)
	}
	return out.Thought, out.Action, nil
}

// extractJSON removes markdown code block formatting if present and extracts the JSON
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Remove markdown code blocks like ```json ... ``` or ``` ... ```
	if strings.HasPrefix(content, "```") {
		// Skip past the opening ``` and optional language identifier (e.g., "json")
		start := 3
		// Find the first newline to skip the language identifier line
		if newlineIdx := strings.Index(content[start:], "\n"); newlineIdx != -1 {
			start += newlineIdx + 1
		}

		// Find the closing ```
		if endIdx := strings.Index(content[start:], "```"); endIdx != -1 {
			content = content[start : start+endIdx]
		} else {
			// No closing ```, just take everything after the opening
			content = content[start:]
		}
	}

	content = strings.TrimSpace(content)

	// Additional safety: find the first { and last } to extract just the JSON object
	if startIdx := strings.Index(content, "{"); startIdx != -1 {
		if endIdx := strings.LastIndex(content, "}"); endIdx != -1 && endIdx > startIdx {
			content = content[startIdx : endIdx+1]
		} else {
			return ""
		}
	} else {
		return ""
	}

	return strings.TrimSpace(content)
}
