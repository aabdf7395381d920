package collection

// State is the load lifecycle of a Store or Value.
type State int32

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}
