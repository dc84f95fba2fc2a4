package navigator

import (
	"fmt"
	"time"

	"github.com/zeroxpunk/navtree/send"
)

// Send starts a queue-processing cycle over the given values. Values are
// processed strictly in order; each is either an action invoked against this
// navigator or a plain value published to receivers. The consuming
// receiver's resume decision controls how the remaining values continue.
//
// Nested Send calls made from within a receiver start independent cycles;
// they are never interleaved with the cycle in progress.
func (n *Node) Send(values ...any) {
	if len(values) == 0 {
		return
	}
	n.process(append([]any(nil), values...), "")
}

// sendTargeted routes a single value to the receiver registered under
// handlerID, bypassing type matching.
func (n *Node) sendTargeted(handlerID string, value any) {
	n.process([]any{value}, handlerID)
}

// process runs one step of the queue algorithm: pop the head, deliver it,
// and apply the resulting resume decision to the tail.
func (n *Node) process(values []any, handlerID string) {
	if len(values) == 0 {
		return
	}
	head, tail := values[0], values[1:]

	var resume send.Resume
	if action, ok := head.(send.Action); ok {
		n.tree.logger.Debug("invoking navigation action",
			"tree", n.tree.name, "node", n.name, "action", action.Label())
		if n.tree.metrics != nil {
			n.tree.metrics.ActionsInvoked.WithLabelValues(action.Kind.String()).Inc()
		}
		resume = action.Invoke(n)
	} else {
		entry := send.NewPending(head, tail, handlerID)
		var consumed bool
		resume, consumed = n.tree.dispatch(entry)
		if !consumed {
			// The entry is torn down unconsumed: a wiring bug in the
			// embedding application, not a reason to crash. The tail dies
			// with it since nothing produced a resume decision.
			n.tree.logger.Error("send value had no receiver",
				"tree", n.tree.name, "node", n.name,
				"type", fmt.Sprintf("%T", head), "dropped", len(tail))
			if n.tree.metrics != nil {
				n.tree.metrics.SendsUnclaimed.Inc()
			}
			return
		}
		if n.tree.metrics != nil {
			n.tree.metrics.SendsDispatched.Inc()
		}
	}

	n.applyResume(resume, tail)
}

// applyResume transforms the tail per the decision and continues, defers, or
// stops processing.
func (n *Node) applyResume(r send.Resume, tail []any) {
	next, cont := r.Apply(tail)
	if !cont {
		if r.Kind == send.ResumePause {
			n.tree.storePaused(n, next)
		}
		return
	}
	if len(next) == 0 {
		return
	}

	switch r.Kind {
	case send.ResumeImmediate, send.ResumeReplacing, send.ResumeInserting, send.ResumeAppending:
		n.process(next, "")
	case send.ResumeAfter:
		n.deferProcess(r.Delay, next)
	default: // send.ResumeAuto
		n.deferProcess(n.tree.resumeDelay, next)
	}
}

// deferProcess schedules a continuation of the queue on the tree's executor.
func (n *Node) deferProcess(delay time.Duration, values []any) {
	err := n.tree.exec.SubmitAfter(delay, func() {
		n.process(values, "")
	})
	if err != nil {
		n.tree.logger.Error("failed to schedule send continuation",
			"tree", n.tree.name, "node", n.name, "error", err, "dropped", len(values))
	}
}

// PopAllPaths implements send.Navigator by delegating to the tree-wide
// PopAny operation.
func (n *Node) PopAllPaths() (bool, error) {
	changed, err := n.tree.PopAny()
	if err != nil {
		n.tree.logger.Warn("pop-all action rejected",
			"tree", n.tree.name, "node", n.name, "error", err)
	}
	return changed, err
}

// DismissAllPresented implements send.Navigator by delegating to the
// tree-wide DismissAny operation.
func (n *Node) DismissAllPresented() (bool, error) {
	changed, err := n.tree.DismissAny()
	if err != nil {
		n.tree.logger.Warn("dismiss-all action rejected",
			"tree", n.tree.name, "node", n.name, "error", err)
	}
	return changed, err
}

// InvokeHandler implements send.Navigator: it runs the custom action handler
// registered on the tree under handlerID.
func (n *Node) InvokeHandler(handlerID string, value any) (send.Resume, bool) {
	fn, ok := n.tree.actions[handlerID]
	if !ok {
		n.tree.logger.Warn("custom action handler not registered",
			"tree", n.tree.name, "node", n.name, "handler", handlerID)
		return send.Cancel(), false
	}
	return fn(value), true
}
