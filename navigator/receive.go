package navigator

import (
	"fmt"
	"reflect"

	"github.com/zeroxpunk/navtree/send"
)

// ReceiverFunc handles a published queue value. The pending entry is exposed
// so a receiver can inspect the remaining tail; the returned resume decision
// drives the rest of the queue.
type ReceiverFunc func(value any, entry *send.Pending) send.Resume

// receiver is one registered handler: a payload type it wants (or a routing
// identifier for targeted sends) and the function to run.
type receiver struct {
	typ       reflect.Type
	handlerID string
	fn        ReceiverFunc
	removed   bool
}

// matches reports whether this receiver should observe the entry. Targeted
// sends route purely by handler identifier; plain sends match by runtime
// payload type, with interface receivers matching implementing types.
func (r *receiver) matches(entry *send.Pending) bool {
	if entry.HandlerID() != "" {
		return r.handlerID == entry.HandlerID()
	}
	if r.handlerID != "" {
		return false
	}

	vt := reflect.TypeOf(entry.Value())
	if vt == nil {
		return false
	}
	if r.typ == vt {
		return true
	}
	return r.typ != nil && r.typ.Kind() == reflect.Interface && vt.Implements(r.typ)
}

// register appends the receiver and returns its removal function.
func (n *Node) register(r *receiver) func() {
	n.receivers = append(n.receivers, r)
	return func() {
		r.removed = true
		for i, existing := range n.receivers {
			if existing == r {
				n.receivers = append(n.receivers[:i], n.receivers[i+1:]...)
				return
			}
		}
	}
}

// Receive registers a receiver for values with the same runtime type as
// prototype. Returns a removal function.
func (n *Node) Receive(prototype any, fn ReceiverFunc) func() {
	return n.register(&receiver{typ: reflect.TypeOf(prototype), fn: fn})
}

// ReceiveFor registers a receiver for targeted sends routed to handlerID —
// checkpoint completion handlers register this way.
func (n *Node) ReceiveFor(handlerID string, fn ReceiverFunc) func() {
	return n.register(&receiver{handlerID: handlerID, fn: fn})
}

// On registers a typed receiver on the node. The receiver is invoked only
// for values whose runtime type is exactly T (or implements T when T is an
// interface type).
func On[T any](n *Node, fn func(T) send.Resume) func() {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	return n.register(&receiver{
		typ: typ,
		fn: func(value any, _ *send.Pending) send.Resume {
			return fn(value.(T))
		},
	})
}

// dispatch publishes a pending entry to every registered receiver in the
// tree, walking from the root depth-first in registration order. The first
// matching receiver consumes the entry; further matches are silent no-ops
// recorded as duplicate deliveries. Returns the consumer's resume decision
// and whether anyone consumed.
func (t *Tree) dispatch(entry *send.Pending) (send.Resume, bool) {
	var resume send.Resume
	consumed := false

	t.root.walkAll(func(node *Node) {
		if node.closed {
			return
		}
		// Snapshot: a receiver may register or remove receivers while running.
		receivers := append([]*receiver(nil), node.receivers...)
		for _, r := range receivers {
			if r.removed || !r.matches(entry) {
				continue
			}
			if entry.Consume() {
				resume = r.fn(entry.Value(), entry)
				consumed = true
				continue
			}
			t.logger.Error("duplicate receiver for send value",
				"tree", t.name, "node", node.name,
				"type", fmt.Sprintf("%T", entry.Value()))
			if t.metrics != nil {
				t.metrics.DuplicateDeliveries.Inc()
			}
		}
	})

	return resume, consumed
}
