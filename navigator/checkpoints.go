package navigator

import (
	"github.com/zeroxpunk/navtree/checkpoint"
	"github.com/zeroxpunk/navtree/errors"
	"github.com/zeroxpunk/navtree/send"
)

// AddCheckpoint records a checkpoint at the node's current path position.
// Re-adding an identical checkpoint is a no-op with no notification.
func (n *Node) AddCheckpoint(cp checkpoint.Checkpoint) bool {
	changed := n.checkpoints.Add(cp, len(n.path))
	if changed {
		n.notify(ChangeCheckpoint)
	}
	return changed
}

// FindCheckpoint resolves a checkpoint name to its owning node and record.
// Local checkpoints are searched first — the deepest reachable one wins —
// then the search delegates to the parent, walking toward the root.
func (n *Node) FindCheckpoint(name string) (*Node, checkpoint.Record, error) {
	for node := n; node != nil; node = node.parent {
		if rec, ok := node.checkpoints.Resolve(name, len(node.path), node.IsPresented()); ok {
			return node, rec, nil
		}
	}
	return nil, checkpoint.Record{}, errors.WrapRecoverable(
		errors.ErrCheckpointNotFound, "Node", "FindCheckpoint", "checkpoint lookup")
}

// ReturnToCheckpoint returns navigation to the named checkpoint: presented
// descendants of the owning node are dismissed innermost-first, the owner's
// path truncates to the recorded index, and a checkpoint with a completion
// handler receives value through a targeted send. An unresolved checkpoint
// is a warning and a no-op, never a failure.
func (n *Node) ReturnToCheckpoint(name string, value any) {
	owner, rec, err := n.FindCheckpoint(name)
	if err != nil {
		n.tree.logger.Warn("checkpoint not found",
			"tree", n.tree.name, "node", n.name, "checkpoint", name)
		if n.tree.metrics != nil {
			n.tree.metrics.CheckpointMisses.Inc()
		}
		return
	}

	for owner.DismissAnyChild() {
	}
	owner.PopTo(rec.Index)

	if n.tree.metrics != nil {
		n.tree.metrics.CheckpointReturns.Inc()
	}
	n.tree.logger.Debug("returned to checkpoint",
		"tree", n.tree.name, "node", owner.name, "checkpoint", name, "index", rec.Index)

	if rec.HandlerID != "" {
		if value == nil {
			value = send.ReturnMarker{Checkpoint: name}
		}
		owner.sendTargeted(rec.HandlerID, value)
	}
}

// Checkpoints returns the node's checkpoint records for inspection.
func (n *Node) Checkpoints() []checkpoint.Record {
	return n.checkpoints.Records()
}
