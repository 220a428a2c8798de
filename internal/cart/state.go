package cart

// State tracks where a cart session is in its lifecycle. Transitions are
// user-driven only: there are no background timers and no automatic retries,
// so an Error state persists until the user triggers another load.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateMutating
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
