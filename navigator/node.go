package navigator

import (
	"github.com/google/uuid"

	"github.com/zeroxpunk/navtree/checkpoint"
	"github.com/zeroxpunk/navtree/destination"
)

// Node is a single navigator in the tree. It owns an ordered path of pushed
// destinations, a checkpoint registry, sheet/cover presentation slots, and
// its child nodes. A node is created when a navigable scope is entered and
// closed when that scope is torn down.
type Node struct {
	id   uuid.UUID
	name string
	tree *Tree

	parent   *Node
	children []*Node

	path        []destination.Destination
	checkpoints *checkpoint.Registry
	sheet       *destination.Destination
	cover       *destination.Destination

	receivers []*receiver
	locks     map[*LockToken]struct{}

	// dismiss is the capability supplied by the host when this node is a
	// presented modal scope; invoking it tells the host to tear the modal
	// down. Nil for non-modal nodes.
	dismiss func()

	closed bool
}

func newNode(t *Tree, parent *Node, name string, dismiss func()) *Node {
	return &Node{
		id:          uuid.New(),
		name:        name,
		tree:        t,
		parent:      parent,
		checkpoints: checkpoint.NewRegistry(),
		locks:       make(map[*LockToken]struct{}),
		dismiss:     dismiss,
	}
}

// ChildOption configures a child node at construction.
type ChildOption func(*childOptions)

type childOptions struct {
	dismiss func()
}

// WithDismiss marks the child as a presented modal scope and supplies the
// host capability that tears the modal down.
func WithDismiss(dismiss func()) ChildOption {
	return func(o *childOptions) { o.dismiss = dismiss }
}

// NewChild creates a child navigator under this node. The parent owns the
// child; Close detaches it.
func (n *Node) NewChild(name string, opts ...ChildOption) *Node {
	var o childOptions
	for _, opt := range opts {
		opt(&o)
	}

	child := newNode(n.tree, n, name, o.dismiss)
	n.children = append(n.children, child)
	n.tree.logger.Debug("navigator created",
		"tree", n.tree.name, "node", name, "parent", n.name, "presented", o.dismiss != nil)
	return child
}

// Close tears the node down: children close first, held lock tokens are
// released, and the node detaches from its parent. Closing twice is a no-op.
func (n *Node) Close() {
	if n.closed {
		return
	}
	n.closed = true

	children := n.children
	n.children = nil
	for _, child := range children {
		child.Close()
	}

	for token := range n.locks {
		token.release()
	}
	n.locks = nil

	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}

	n.tree.logger.Debug("navigator closed", "tree", n.tree.name, "node", n.name)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// ID returns the node's stable identifier.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the node's label; not required unique.
func (n *Node) Name() string { return n.name }

// Parent returns the parent node, nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Tree returns the owning tree.
func (n *Node) Tree() *Tree { return n.tree }

// Closed reports whether the node has been torn down.
func (n *Node) Closed() bool { return n.closed }

// FindByName searches depth-first, visiting this node before its children,
// and returns the first node with the given name. Calling it on the root
// searches the whole tree.
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.walk(func(node *Node) bool {
		if node.name == name {
			found = node
			return true
		}
		return false
	})
	return found
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// walk visits nodes depth-first, self before children, stopping when fn
// returns true. Reports whether the walk was stopped.
func (n *Node) walk(fn func(*Node) bool) bool {
	if fn(n) {
		return true
	}
	for _, c := range n.children {
		if c.walk(fn) {
			return true
		}
	}
	return false
}

// walkAll visits every node depth-first, self before children.
func (n *Node) walkAll(fn func(*Node)) {
	n.walk(func(node *Node) bool {
		fn(node)
		return false
	})
}

// notify reports a mutation of this node to the tree's observers.
func (n *Node) notify(kind ChangeKind) {
	if n.tree.metrics != nil && n.name != "" {
		n.tree.metrics.PathDepth.WithLabelValues(n.name).Set(float64(len(n.path)))
	}
	n.tree.notify(Change{
		NodeID:   n.id,
		NodeName: n.name,
		Kind:     kind,
		Depth:    len(n.path),
	})
}
