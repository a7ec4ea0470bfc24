// Package parsing holds small line-oriented heuristics over resume and job posting text.
// Each heuristic is an explicit state machine so its termination is easy to follow.
package parsing

// scanState is the state of a line scanner
type scanState int

const (
	stateSearching scanState = iota
	stateCollecting
	stateDone
)

func (s scanState) String() string {
	switch s {
	case stateSearching:
		return "searching"
	case stateCollecting:
		return "collecting"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}
