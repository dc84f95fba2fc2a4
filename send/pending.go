package send

// ReturnMarker is the sentinel delivered to a checkpoint's completion handler
// when ReturnToCheckpoint was called without a value.
type ReturnMarker struct {
	Checkpoint string
}

// Pending is one published queue entry: the value being offered to receivers,
// the remaining tail behind it, and an optional target handler identifier for
// routed (rather than type-matched) delivery.
//
// Consumption is a one-shot transition. The first matching receiver consumes
// the entry; any further matches observe it consumed and must treat that as a
// silent no-op. An entry torn down unconsumed signals a wiring bug in the
// embedding application and is reported by the router.
type Pending struct {
	value     any
	tail      []any
	handlerID string
	consumed  bool
}

// NewPending wraps a queue value for publication.
func NewPending(value any, tail []any, handlerID string) *Pending {
	return &Pending{value: value, tail: tail, handlerID: handlerID}
}

// Value returns the published value.
func (p *Pending) Value() any { return p.value }

// Tail returns the values remaining behind this entry.
func (p *Pending) Tail() []any { return p.tail }

// HandlerID returns the target handler identifier, or "" for type-matched
// delivery.
func (p *Pending) HandlerID() string { return p.handlerID }

// Consume attempts the unconsumed -> consumed transition. It returns true
// exactly once; later calls return false.
func (p *Pending) Consume() bool {
	if p.consumed {
		return false
	}
	p.consumed = true
	return true
}

// Consumed reports whether the entry has been consumed.
func (p *Pending) Consumed() bool { return p.consumed }
