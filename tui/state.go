package tui

type state int

const (
	waitingState state = iota
	watchingState
	endedState
	errorState
)

func (s state) String() string {
	switch s {
	case waitingState:
		return "waiting"
	case watchingState:
		return "watching"
	case endedState:
		return "ended"
	case errorState:
		return "error"
	default:
		return "unknown"
	}
}
