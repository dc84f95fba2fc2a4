package navigator

import "github.com/google/uuid"

// ChangeKind enumerates the mutations observers are notified about.
type ChangeKind int

const (
	// ChangePush is an append to a node's path.
	ChangePush ChangeKind = iota
	// ChangePop is a path truncation.
	ChangePop
	// ChangePresent is a presentation slot being filled.
	ChangePresent
	// ChangeDismiss is a modal dismissal or a slot being cleared.
	ChangeDismiss
	// ChangeCheckpoint is a checkpoint being added or updated.
	ChangeCheckpoint
	// ChangeRestore is a node's state being replaced from persisted state.
	ChangeRestore
)

// String returns the string representation of ChangeKind
func (k ChangeKind) String() string {
	switch k {
	case ChangePush:
		return "push"
	case ChangePop:
		return "pop"
	case ChangePresent:
		return "present"
	case ChangeDismiss:
		return "dismiss"
	case ChangeCheckpoint:
		return "checkpoint"
	case ChangeRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Change describes one observed tree mutation.
type Change struct {
	NodeID   uuid.UUID
	NodeName string
	Kind     ChangeKind
	Depth    int // path length after the change
}

// Observer receives change notifications after every mutating operation.
// The embedding UI uses this to re-render; the eventstream package uses it
// to publish navigation events.
type Observer interface {
	NavigationChanged(Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

// NavigationChanged implements Observer.
func (f ObserverFunc) NavigationChanged(ch Change) { f(ch) }
