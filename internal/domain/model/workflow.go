package model

// WorkflowState is one step of the production sequence an order moves through.
type WorkflowState string

const (
	StateDesign     WorkflowState = "Design"
	StateProduction WorkflowState = "Production"
	StateFinishing  WorkflowState = "Finishing"
	StateDone       WorkflowState = "Done"
	StateDelivered  WorkflowState = "Delivered"

	// StateDispatched is retired. Records still carrying it are rewritten to
	// StateDone during synchronization.
	StateDispatched WorkflowState = "Dispatched"
)

var workflow = [...]WorkflowState{
	StateDesign,
	StateProduction,
	StateFinishing,
	StateDone,
	StateDelivered,
}

var legacyStates = map[WorkflowState]WorkflowState{
	StateDispatched: StateDone,
}

// States returns the ordered workflow sequence.
func States() []WorkflowState {
	out := make([]WorkflowState, len(workflow))
	copy(out[:], workflow[:])
	return out
}

// Index returns the position of s in the workflow, or -1 when unknown.
func (s WorkflowState) Index() int {
	for i, state := range workflow {
		if state == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a member of the current workflow.
func (s WorkflowState) Valid() bool {
	return s.Index() >= 0
}

// Progress returns the completion percentage for s. Each step contributes an
// equal share, so the first state is already partially complete and the last
// is 100. Unknown states clamp to 0.
func (s WorkflowState) Progress() int {
	idx := s.Index()
	if idx < 0 {
		return 0
	}
	return (idx + 1) * 100 / len(workflow)
}

// Step returns the state dir positions away, clamped at both ends of the
// sequence. Stepping past either end returns s unchanged.
func (s WorkflowState) Step(dir int) WorkflowState {
	idx := s.Index()
	if idx < 0 {
		return s
	}
	next := idx + dir
	if next < 0 {
		next = 0
	}
	if next > len(workflow)-1 {
		next = len(workflow) - 1
	}
	return workflow[next]
}

// Normalize substitutes the first workflow state for anything that is not a
// recognized member. Callers accepting external input use it instead of
// propagating invalid values.
func Normalize(s WorkflowState) WorkflowState {
	if s.Valid() {
		return s
	}
	return workflow[0]
}

// MigrateLegacy maps a retired state value to its designated successor.
// The second result reports whether a rewrite happened; applying the mapping
// to an already migrated value is a no-op.
func MigrateLegacy(s WorkflowState) (WorkflowState, bool) {
	if next, ok := legacyStates[s]; ok {
		return next, true
	}
	return s, false
}
