package navigator

import (
	"github.com/zeroxpunk/navtree/destination"
)

// Push appends a destination to the node's path. Unregistered tags are
// flagged with a debug diagnostic; navigation proceeds regardless.
func (n *Node) Push(d destination.Destination) {
	if n.closed {
		n.tree.logger.Warn("push on closed navigator", "tree", n.tree.name, "node", n.name)
		return
	}
	if n.tree.registry != nil && !n.tree.registry.Known(d.Tag) {
		n.tree.logger.Debug("pushing unregistered destination type",
			"tree", n.tree.name, "node", n.name, "tag", d.Tag)
	}

	n.path = append(n.path, d)
	n.notify(ChangePush)
}

// PopTo truncates the path to the given length. Positions outside
// [0, len(path)] clamp to the nearest bound. Reports whether any truncation
// occurred.
func (n *Node) PopTo(position int) bool {
	if position < 0 {
		position = 0
	}
	if position >= len(n.path) {
		return false
	}
	n.truncate(position)
	n.notify(ChangePop)
	return true
}

// PopLast removes the last k entries from the path. A k larger than the
// current length is a no-op returning false, as is k <= 0.
func (n *Node) PopLast(k int) bool {
	if k <= 0 || k > len(n.path) {
		return false
	}
	return n.PopTo(len(n.path) - k)
}

// PopAll empties the path, reporting whether anything was removed.
func (n *Node) PopAll() bool {
	return n.PopTo(0)
}

// Count returns the current path length.
func (n *Node) Count() int { return len(n.path) }

// IsEmpty reports whether the node has no pushed destinations and is not
// presenting anything.
func (n *Node) IsEmpty() bool {
	return len(n.path) == 0 && !n.IsPresenting()
}

// Path returns a copy of the node's path.
func (n *Node) Path() []destination.Destination {
	return append([]destination.Destination(nil), n.path...)
}

// truncate shrinks the path and purges checkpoints stranded above the new
// length.
func (n *Node) truncate(position int) {
	n.path = n.path[:position]
	if purged := n.checkpoints.GC(len(n.path)); len(purged) > 0 {
		n.tree.logger.Debug("purged stranded checkpoints",
			"tree", n.tree.name, "node", n.name, "purged", len(purged))
	}
}
