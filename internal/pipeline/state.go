package pipeline

// TaskState represents the lifecycle state of a chain stage.
type TaskState string

const (
	StatePending TaskState = "PENDING"
	StateRunning TaskState = "RUNNING"
	StateSkipped TaskState = "SKIPPED" // valid cached output found, execution elided
	StateSuccess TaskState = "SUCCESS"
	StateFailed  TaskState = "FAILED"
)

// String returns the string representation of the state.
func (s TaskState) String() string {
	return string(s)
}

// IsTerminal returns true if the stage is in a final state.
func (s TaskState) IsTerminal() bool {
	switch s {
	case StateSuccess, StateFailed, StateSkipped:
		return true
	}
	return false
}

// validTransitions defines the allowed state transitions for stages.
// A failed stage is terminal: the chain aborts, there is no retry.
var validTransitions = map[TaskState][]TaskState{
	StatePending: {StateRunning, StateSkipped},
	StateRunning: {StateSuccess, StateFailed},
}

// CanTransitionTo returns true if moving from the current state to next
// is valid.
func (s TaskState) CanTransitionTo(next TaskState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
