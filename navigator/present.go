package navigator

import (
	"github.com/zeroxpunk/navtree/destination"
	"github.com/zeroxpunk/navtree/errors"
)

// Present places a destination into the node's sheet or cover slot,
// replacing any pending destination already there. Push destinations are
// rejected.
func (n *Node) Present(d destination.Destination) error {
	var slot **destination.Destination
	switch d.Method {
	case destination.MethodSheet:
		slot = &n.sheet
	case destination.MethodCover:
		slot = &n.cover
	default:
		return errors.WrapInvalid(errors.ErrInvalidDestination, "Node", "Present", "presentation method check")
	}

	if *slot != nil {
		n.tree.logger.Debug("replacing pending presentation",
			"tree", n.tree.name, "node", n.name, "method", d.Method.String())
	}
	dest := d
	*slot = &dest
	n.notify(ChangePresent)
	return nil
}

// PresentedSheet returns the pending sheet destination, if any.
func (n *Node) PresentedSheet() (destination.Destination, bool) {
	if n.sheet == nil {
		return destination.Destination{}, false
	}
	return *n.sheet, true
}

// PresentedCover returns the pending cover destination, if any.
func (n *Node) PresentedCover() (destination.Destination, bool) {
	if n.cover == nil {
		return destination.Destination{}, false
	}
	return *n.cover, true
}

// ClearPresented empties the slot for the given method when the host tears
// the corresponding modal down. Reports whether a slot was cleared.
func (n *Node) ClearPresented(m destination.Method) bool {
	switch m {
	case destination.MethodSheet:
		if n.sheet == nil {
			return false
		}
		n.sheet = nil
	case destination.MethodCover:
		if n.cover == nil {
			return false
		}
		n.cover = nil
	default:
		return false
	}
	n.notify(ChangeDismiss)
	return true
}

// Dismiss invokes the host-supplied dismiss capability when this node is a
// presented modal scope. The capability is consumed on use: once dismissed
// the node no longer counts as presented, even if the host tears the scope
// down later. Reports whether a dismissal was triggered.
func (n *Node) Dismiss() bool {
	if n.dismiss == nil {
		return false
	}
	dismiss := n.dismiss
	n.dismiss = nil
	dismiss()
	n.notify(ChangeDismiss)
	return true
}

// IsPresented reports whether this node was itself presented as a modal
// (the host supplied a dismiss capability).
func (n *Node) IsPresented() bool { return n.dismiss != nil }

// IsPresenting reports whether this node has a pending sheet or cover.
func (n *Node) IsPresenting() bool { return n.sheet != nil || n.cover != nil }

// IsAnyChildPresenting reports whether any descendant is presenting or is
// itself a presented modal.
func (n *Node) IsAnyChildPresenting() bool {
	for _, c := range n.children {
		if c.IsPresented() || c.IsPresenting() || c.IsAnyChildPresenting() {
			return true
		}
	}
	return false
}

// DismissAnyChild dismisses exactly one presented modal: per child, all of
// the child's descendants are attempted first, then the child itself, so the
// innermost presented modal always wins. Stops after the first success.
func (n *Node) DismissAnyChild() bool {
	for _, child := range n.children {
		if child.DismissAnyChild() {
			return true
		}
		if child.Dismiss() {
			return true
		}
	}
	return false
}
