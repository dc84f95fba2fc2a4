package navigator

// LockToken represents one held navigation lock. A scope that must not be
// destructively reset out from under it (an in-progress authentication
// modal, say) acquires a token and releases it when the flow completes.
// While any token is held anywhere in the tree, PopAny and DismissAny fail
// fast instead of partially executing.
type LockToken struct {
	node     *Node
	released bool
}

// Lock acquires a navigation lock token held by this node. Tokens a node
// still holds when it closes are released automatically.
func (n *Node) Lock() *LockToken {
	token := &LockToken{node: n}
	n.locks[token] = struct{}{}
	n.tree.lockCount.Inc()
	n.tree.logger.Debug("navigation locked", "tree", n.tree.name, "node", n.name)
	return token
}

// Release releases the token. Releasing twice is a no-op.
func (lt *LockToken) Release() {
	if lt.released {
		return
	}
	if lt.node.locks != nil {
		delete(lt.node.locks, lt)
	}
	lt.release()
}

// release drops the tree-wide count without touching the node's token set;
// Node.Close uses it while iterating that set.
func (lt *LockToken) release() {
	if lt.released {
		return
	}
	lt.released = true
	lt.node.tree.lockCount.Dec()
	lt.node.tree.logger.Debug("navigation unlocked", "tree", lt.node.tree.name, "node", lt.node.name)
}
