// Package navigator implements the navigation state tree: a hierarchy of
// nodes each owning a path of pushed destinations, named checkpoints, and
// modal presentation slots, plus a broadcast router that dispatches ordered
// queues of typed values to receivers registered anywhere in the tree.
//
// All tree mutation must happen on a single logical thread (the embedding
// UI's main loop); callers on other goroutines submit onto the tree's
// executor first. The only state safe to sample off-loop is the navigation
// lock flag.
package navigator

import (
	"log/slog"
	"time"

	uberatomic "go.uber.org/atomic"

	"github.com/zeroxpunk/navtree/destination"
	"github.com/zeroxpunk/navtree/errors"
	"github.com/zeroxpunk/navtree/metric"
	"github.com/zeroxpunk/navtree/send"
)

// Executor schedules work onto the tree's single mutation thread. The
// runloop package provides implementations.
type Executor interface {
	Submit(task func()) error
	SubmitAfter(delay time.Duration, task func()) error
}

// inlineExecutor is the fallback when no executor is supplied: immediate
// tasks run on the caller, delayed tasks via a timer goroutine. Hosts that
// need the single-writer guarantee for delayed continuations must supply a
// real run loop.
type inlineExecutor struct{}

func (inlineExecutor) Submit(task func()) error {
	task()
	return nil
}

func (inlineExecutor) SubmitAfter(delay time.Duration, task func()) error {
	time.AfterFunc(delay, task)
	return nil
}

// ActionHandler runs a custom navigation action registered on the tree.
type ActionHandler func(value any) send.Resume

// pausedValues is the tree's single paused-send slot. A pause decision parks
// the remaining queue here until an explicit ResumeSends; a second pause
// before that overwrites the slot (last-pause-wins).
type pausedValues struct {
	node   *Node
	values []any
}

// Tree composes navigation nodes and owns the state they share: the
// executor, logger, destination registry, custom action table, navigation
// lock, and the paused-send slot.
type Tree struct {
	name        string
	root        *Node
	exec        Executor
	logger      *slog.Logger
	registry    *destination.Registry
	metrics     *metric.Navigation
	resumeDelay time.Duration

	observers []Observer
	actions   map[string]ActionHandler
	paused    *pausedValues

	// lockCount is readable off-loop so UI bindings can sample
	// IsNavigationLocked without hopping onto the executor.
	lockCount *uberatomic.Int64
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the tree's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) { t.logger = logger }
}

// WithExecutor sets the executor delayed send continuations are scheduled on.
func WithExecutor(exec Executor) Option {
	return func(t *Tree) { t.exec = exec }
}

// WithDestinationRegistry sets the registry used to decode persisted
// payloads and to flag unregistered destination tags.
func WithDestinationRegistry(registry *destination.Registry) Option {
	return func(t *Tree) { t.registry = registry }
}

// WithMetrics wires navigation metrics.
func WithMetrics(m *metric.Navigation) Option {
	return func(t *Tree) { t.metrics = m }
}

// WithResumeDelay sets the delay applied by the auto resume decision.
func WithResumeDelay(d time.Duration) Option {
	return func(t *Tree) { t.resumeDelay = d }
}

// WithObserver registers a change observer at construction.
func WithObserver(o Observer) Option {
	return func(t *Tree) { t.observers = append(t.observers, o) }
}

// New creates a navigation tree with a single root node.
func New(name string, opts ...Option) *Tree {
	t := &Tree{
		name:        name,
		exec:        inlineExecutor{},
		logger:      slog.Default(),
		resumeDelay: 700 * time.Millisecond,
		actions:     make(map[string]ActionHandler),
		lockCount:   uberatomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.exec == nil {
		t.exec = inlineExecutor{}
	}

	t.root = newNode(t, nil, name, nil)
	return t
}

// Name returns the tree's name.
func (t *Tree) Name() string { return t.name }

// Root returns the root navigation node.
func (t *Tree) Root() *Node { return t.root }

// AddObserver registers a change observer.
func (t *Tree) AddObserver(o Observer) {
	t.observers = append(t.observers, o)
}

// RegisterAction registers a custom action handler invocable through
// send.Custom(handlerID). Duplicate identifiers are rejected.
func (t *Tree) RegisterAction(handlerID string, fn ActionHandler) error {
	if handlerID == "" || fn == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Tree", "RegisterAction", "handler validation")
	}
	if _, exists := t.actions[handlerID]; exists {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Tree", "RegisterAction", "duplicate handler check")
	}
	t.actions[handlerID] = fn
	return nil
}

// IsNavigationLocked reports whether any lock token is held anywhere in the
// tree. Safe to call from any goroutine.
func (t *Tree) IsNavigationLocked() bool {
	return t.lockCount.Load() > 0
}

// PopAny empties every node's path in the whole tree. It fails fast with
// ErrNavigationLocked while any lock token is held; callers treat that as a
// normal, recoverable outcome.
func (t *Tree) PopAny() (bool, error) {
	if t.IsNavigationLocked() {
		if t.metrics != nil {
			t.metrics.LockRejections.Inc()
		}
		return false, errors.WrapRecoverable(errors.ErrNavigationLocked, "Tree", "PopAny", "lock check")
	}

	changed := false
	t.root.walkAll(func(n *Node) {
		if n.PopAll() {
			changed = true
		}
	})
	return changed, nil
}

// DismissAny dismisses presented modals layer by layer, innermost first,
// until none remain. Gated by the navigation lock like PopAny.
func (t *Tree) DismissAny() (bool, error) {
	if t.IsNavigationLocked() {
		if t.metrics != nil {
			t.metrics.LockRejections.Inc()
		}
		return false, errors.WrapRecoverable(errors.ErrNavigationLocked, "Tree", "DismissAny", "lock check")
	}

	changed := false
	for t.root.DismissAnyChild() {
		changed = true
	}
	return changed, nil
}

// HasPausedSends reports whether a paused send tail is waiting for
// ResumeSends.
func (t *Tree) HasPausedSends() bool {
	return t.paused != nil
}

// ResumeSends continues the paused send queue, if any.
func (t *Tree) ResumeSends() error {
	if t.paused == nil {
		return errors.WrapRecoverable(errors.ErrNoPausedValues, "Tree", "ResumeSends", "paused lookup")
	}

	p := t.paused
	t.paused = nil
	t.logger.Debug("resuming paused sends", "tree", t.name, "values", len(p.values))
	p.node.process(p.values, "")
	return nil
}

// CancelPausedSends drops a paused tail without processing it.
func (t *Tree) CancelPausedSends() bool {
	if t.paused == nil {
		return false
	}
	t.logger.Debug("cancelling paused sends", "tree", t.name, "values", len(t.paused.values))
	t.paused = nil
	return true
}

// storePaused parks a send tail in the tree's single resume slot.
// Last-pause-wins: an occupied slot is overwritten and the previous tail is
// dropped with a warning.
func (t *Tree) storePaused(n *Node, values []any) {
	if t.paused != nil {
		t.logger.Warn("overwriting paused send values",
			"tree", t.name, "dropped", len(t.paused.values))
		if t.metrics != nil {
			t.metrics.PausedOverwrites.Inc()
		}
	}
	t.paused = &pausedValues{node: n, values: values}
}

// notify fans a change out to all observers.
func (t *Tree) notify(ch Change) {
	for _, o := range t.observers {
		o.NavigationChanged(ch)
	}
}
