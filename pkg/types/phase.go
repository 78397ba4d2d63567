// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Phase is the current stage of an upload session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSelecting  Phase = "selecting"
	PhaseProcessing Phase = "processing"
	PhaseError      Phase = "error"
	PhaseDone       Phase = "done"
)

// phaseTransitions lists, per phase, the phases reachable by one event.
// Every phase but Processing can be reset to Idle; a running batch only
// ends in Done or Error.
var phaseTransitions = map[Phase][]Phase{
	PhaseIdle:       {PhaseIdle, PhaseSelecting},
	PhaseSelecting:  {PhaseIdle, PhaseSelecting, PhaseProcessing},
	PhaseProcessing: {PhaseDone, PhaseError},
	PhaseDone:       {PhaseIdle},
	PhaseError:      {PhaseIdle},
}

// CanTransition reports whether a session may move from p to next.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether p ends a batch.
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseError
}

func (p Phase) String() string { return string(p) }
