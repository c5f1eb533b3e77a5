package agent

import (
	"fmt"

	"pdfpilot/internal/document"
)

// Toolset binds the navigation actions to one PageCursor for one run. It
// carries no state of its own: every dispatch is fully determined by the
// cursor's state plus the action's arguments, so a toolset can be driven
// directly without a live model.
type Toolset struct {
	cursor *document.PageCursor
}

// NewToolset binds the navigation actions to the given cursor.
func NewToolset(cursor *document.PageCursor) *Toolset {
	return &Toolset{cursor: cursor}
}

// Dispatch executes one navigation action and returns the cursor's status
// text verbatim. final_answer is terminal and handled by the loop, not here.
func (t *Toolset) Dispatch(action Action) (string, error) {
	switch action.Name {
	case ActionNextPage:
		return t.cursor.Next(), nil
	case ActionPreviousPage:
		return t.cursor.Previous(), nil
	case ActionGoToPage:
		return t.cursor.GoTo(action.PageNumber), nil
	default:
		return "", fmt.Errorf("action %q is not dispatchable", action.Name)
	}
}
