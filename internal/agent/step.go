package agent

import "encoding/json"

// Step records one completed think/act/observe cycle. Steps are owned by a
// single run and are never shared across runs.
type Step struct {
	StepNumber     int
	Thought        string
	Action         Action
	Observation    string
	RetainedImages []string
}

// assistantEcho reconstructs the assistant turn for this step when the
// exchange is replayed to the model. Parsed steps are echoed as canonical
// JSON; steps whose output never parsed are echoed raw.
func (s Step) assistantEcho() string {
	if s.Action.Name == "" {
		return s.Thought
	}
	echo, err := json.Marshal(stepOutput{Thought: s.Thought, Action: s.Action})
	if err != nil {
		return s.Thought
	}
	return string(echo)
}

// Memory is the append-only arena of Steps for one run.
type Memory struct {
	steps []Step
}

// Append records a completed step.
func (m *Memory) Append(step Step) {
	m.steps = append(m.steps, step)
}

// Steps returns the recorded steps in order.
func (m *Memory) Steps() []Step {
	return m.steps
}

// PruneImages clears the retained images of every step at least window steps
// older than current. Thought and observation text stay intact so the model
// keeps the trail of pages it has already visited.
func (m *Memory) PruneImages(current, window int) {
	for i := range m.steps {
		if m.steps[i].StepNumber <= current-window {
			m.steps[i].RetainedImages = nil
		}
	}
}
