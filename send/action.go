package send

import "fmt"

// ActionKind enumerates the built-in navigation actions that can appear as
// values in a send queue. Actions are closed variants rather than captured
// closures so equality and dedup reduce to discriminant + label comparison.
type ActionKind int

const (
	// ActionDismissAll dismisses every presented modal in the tree.
	ActionDismissAll ActionKind = iota
	// ActionPopAll empties every navigation path in the tree.
	ActionPopAll
	// ActionReset dismisses everything, then pops everything.
	ActionReset
	// ActionSend re-enqueues a plain value ahead of the remaining tail.
	ActionSend
	// ActionCustom runs a handler registered on the tree by identifier.
	ActionCustom
)

// String returns the string representation of ActionKind
func (k ActionKind) String() string {
	switch k {
	case ActionDismissAll:
		return "dismiss-all"
	case ActionPopAll:
		return "pop-all"
	case ActionReset:
		return "reset"
	case ActionSend:
		return "send"
	case ActionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Action is a named, callable queue entry. When the router pops an action it
// invokes it against the current navigator immediately instead of publishing
// it to receivers; the action's resume decision drives the rest of the queue.
type Action struct {
	Kind      ActionKind
	Value     any    // ActionSend only
	HandlerID string // ActionCustom only
}

// DismissAll returns the dismiss-everything action.
func DismissAll() Action { return Action{Kind: ActionDismissAll} }

// PopAll returns the pop-everything action.
func PopAll() Action { return Action{Kind: ActionPopAll} }

// Reset returns the action chain equivalent of [DismissAll, PopAll].
func Reset() Action { return Action{Kind: ActionReset} }

// SendValue returns an action that re-enqueues value ahead of the tail.
func SendValue(value any) Action { return Action{Kind: ActionSend, Value: value} }

// Custom returns an action dispatched to the tree handler registered under
// handlerID.
func Custom(handlerID string) Action { return Action{Kind: ActionCustom, HandlerID: handlerID} }

// Label returns the action's identity label for logging and dedup.
func (a Action) Label() string {
	if a.Kind == ActionCustom {
		return fmt.Sprintf("custom(%s)", a.HandlerID)
	}
	return a.Kind.String()
}

// Equal reports action identity: same discriminant and, for custom actions,
// the same handler identifier. ActionSend values are not compared; two sends
// are distinct queue entries even when they carry equal payloads.
func (a Action) Equal(other Action) bool {
	if a.Kind != other.Kind {
		return false
	}
	if a.Kind == ActionCustom {
		return a.HandlerID == other.HandlerID
	}
	return true
}

// Navigator is the context actions run against. The tree's root node
// implements it.
type Navigator interface {
	// PopAllPaths empties every path in the tree. Returns the lock error
	// when the tree is locked.
	PopAllPaths() (bool, error)

	// DismissAllPresented dismisses every presented modal. Returns the lock
	// error when the tree is locked.
	DismissAllPresented() (bool, error)

	// InvokeHandler runs the custom action handler registered under
	// handlerID with the given value. Reports whether a handler was found.
	InvokeHandler(handlerID string, value any) (Resume, bool)
}

// Invoke runs the action against the navigator and returns the resume
// decision for the remaining queue. A locked tree cancels the queue: a
// destructive deep-link step that cannot run must not leave its tail
// half-applied later.
func (a Action) Invoke(nav Navigator) Resume {
	switch a.Kind {
	case ActionDismissAll:
		if _, err := nav.DismissAllPresented(); err != nil {
			return Cancel()
		}
		return Auto()
	case ActionPopAll:
		if _, err := nav.PopAllPaths(); err != nil {
			return Cancel()
		}
		return Auto()
	case ActionReset:
		return Inserting(DismissAll(), PopAll())
	case ActionSend:
		return Inserting(a.Value)
	case ActionCustom:
		if resume, ok := nav.InvokeHandler(a.HandlerID, nil); ok {
			return resume
		}
		return Cancel()
	default:
		return Cancel()
	}
}
