package navigator

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroxpunk/navtree/checkpoint"
	"github.com/zeroxpunk/navtree/destination"
	naverrors "github.com/zeroxpunk/navtree/errors"
)

// manualExec runs immediate submissions inline and collects delayed tasks so
// tests control when deferred send continuations fire.
type manualExec struct {
	deferred []func()
	delays   []time.Duration
}

func (m *manualExec) Submit(task func()) error {
	task()
	return nil
}

func (m *manualExec) SubmitAfter(delay time.Duration, task func()) error {
	m.deferred = append(m.deferred, task)
	m.delays = append(m.delays, delay)
	return nil
}

func (m *manualExec) runDeferred() {
	for len(m.deferred) > 0 {
		task := m.deferred[0]
		m.deferred = m.deferred[1:]
		m.delays = m.delays[1:]
		task()
	}
}

func newTestTree(t *testing.T, opts ...Option) (*Tree, *manualExec) {
	t.Helper()
	exec := &manualExec{}
	opts = append([]Option{
		WithExecutor(exec),
		WithLogger(slog.Default()),
	}, opts...)
	return New("test", opts...), exec
}

func page(slug string) destination.Destination {
	return destination.New("page", slug)
}

func TestNode_PushPop(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	assert.True(t, root.IsEmpty())
	assert.Equal(t, 0, root.Count())

	root.Push(page("home"))
	root.Push(page("settings"))
	root.Push(page("about"))
	assert.Equal(t, 3, root.Count())
	assert.False(t, root.IsEmpty())

	// PopTo at the current length is a no-op.
	assert.False(t, root.PopTo(3))
	assert.Equal(t, 3, root.Count())

	assert.True(t, root.PopTo(1))
	assert.Equal(t, 1, root.Count())

	// Positions clamp rather than fail.
	assert.False(t, root.PopTo(99))
	assert.True(t, root.PopTo(-5))
	assert.Equal(t, 0, root.Count())
}

func TestNode_PopTo_AllPositions(t *testing.T) {
	for k := 0; k <= 5; k++ {
		tree, _ := newTestTree(t)
		root := tree.Root()
		for i := 0; i < 5; i++ {
			root.Push(page("p"))
		}

		changed := root.PopTo(k)
		assert.Equal(t, k, root.Count(), "PopTo(%d)", k)
		assert.Equal(t, k != 5, changed, "PopTo(%d) changed", k)
	}
}

func TestNode_PopLast(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()
	for i := 0; i < 3; i++ {
		root.Push(page("p"))
	}

	// k beyond the path is a no-op returning false.
	assert.False(t, root.PopLast(4))
	assert.Equal(t, 3, root.Count())

	assert.False(t, root.PopLast(0))
	assert.False(t, root.PopLast(-1))

	assert.True(t, root.PopLast(2))
	assert.Equal(t, 1, root.Count())

	assert.True(t, root.PopLast(1))
	assert.Equal(t, 0, root.Count())
}

func TestNode_PopAll(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	assert.False(t, root.PopAll(), "empty path pops nothing")

	root.Push(page("a"))
	root.Push(page("b"))
	assert.True(t, root.PopAll())
	assert.Equal(t, 0, root.Count())
}

func TestNode_TruncationPurgesCheckpoints(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	root.AddCheckpoint(checkpoint.Named("home")) // index 0
	root.Push(page("a"))
	root.Push(page("b"))
	root.AddCheckpoint(checkpoint.Named("deep")) // index 2
	root.Push(page("c"))

	require.True(t, root.PopTo(1))

	records := root.Checkpoints()
	require.Len(t, records, 1, "checkpoint above the new length must be purged")
	assert.Equal(t, "home", records[0].Name)
	for _, rec := range records {
		assert.LessOrEqual(t, rec.Index, root.Count())
	}
}

func TestNode_AddCheckpoint_IdempotentNoNotification(t *testing.T) {
	var changes []Change
	tree, _ := newTestTree(t, WithObserver(ObserverFunc(func(ch Change) {
		changes = append(changes, ch)
	})))
	root := tree.Root()

	assert.True(t, root.AddCheckpoint(checkpoint.Named("home")))
	notified := len(changes)

	// Identical re-add: no change, no notification.
	assert.False(t, root.AddCheckpoint(checkpoint.Named("home")))
	assert.Equal(t, notified, len(changes))
}

func TestNode_ChangeNotifications(t *testing.T) {
	var kinds []ChangeKind
	tree, _ := newTestTree(t, WithObserver(ObserverFunc(func(ch Change) {
		kinds = append(kinds, ch.Kind)
	})))
	root := tree.Root()

	root.Push(page("a"))
	root.PopTo(0)
	require.NoError(t, root.Present(destination.Sheet("modal", "m")))
	root.ClearPresented(destination.MethodSheet)
	root.AddCheckpoint(checkpoint.Named("cp"))

	assert.Equal(t, []ChangeKind{
		ChangePush, ChangePop, ChangePresent, ChangeDismiss, ChangeCheckpoint,
	}, kinds)
}

func TestNode_FindByName(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	a := root.NewChild("a")
	b := root.NewChild("b")
	deep := a.NewChild("target")
	_ = b.NewChild("target") // second match, must not win

	// DFS visits self, then children in creation order.
	assert.Equal(t, deep, root.FindByName("target"))
	assert.Equal(t, root, root.FindByName("test"))
	assert.Nil(t, root.FindByName("missing"))

	assert.Equal(t, a, root.Child("a"))
	assert.Nil(t, root.Child("target"), "Child only looks at direct children")
}

func TestNode_Close(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	child := root.NewChild("child")
	grandchild := child.NewChild("grandchild")
	token := grandchild.Lock()
	_ = token

	require.True(t, tree.IsNavigationLocked())

	child.Close()

	assert.True(t, child.Closed())
	assert.True(t, grandchild.Closed(), "children close with their parent")
	assert.False(t, tree.IsNavigationLocked(), "held tokens release on close")
	assert.Nil(t, root.Child("child"), "closed child detaches from parent")

	// Idempotent.
	child.Close()
}

func TestNode_PushOnClosedIsIgnored(t *testing.T) {
	tree, _ := newTestTree(t)
	child := tree.Root().NewChild("child")
	child.Close()

	child.Push(page("a"))
	assert.Equal(t, 0, child.Count())
}

func TestLock_TokenLifecycle(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	assert.False(t, tree.IsNavigationLocked())

	t1 := root.Lock()
	t2 := root.Lock()
	assert.True(t, tree.IsNavigationLocked())

	t1.Release()
	assert.True(t, tree.IsNavigationLocked(), "second token still held")

	t2.Release()
	assert.False(t, tree.IsNavigationLocked())

	// Double release is a no-op.
	t2.Release()
	assert.False(t, tree.IsNavigationLocked())
}

func TestTree_PopAny(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()
	child := root.NewChild("child")

	root.Push(page("a"))
	child.Push(page("b"))
	child.Push(page("c"))

	changed, err := tree.PopAny()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, root.Count())
	assert.Equal(t, 0, child.Count())

	changed, err = tree.PopAny()
	require.NoError(t, err)
	assert.False(t, changed, "second PopAny finds nothing to do")
}

func TestTree_PopAny_LockGated(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()
	child := root.NewChild("child")

	root.Push(page("a"))
	child.Push(page("b"))

	token := root.Lock()
	defer token.Release()

	before := [2]int{root.Count(), child.Count()}

	changed, err := tree.PopAny()
	assert.False(t, changed)
	require.Error(t, err)
	assert.ErrorIs(t, err, naverrors.ErrNavigationLocked)

	// Snapshot comparison: nothing moved.
	assert.Equal(t, before, [2]int{root.Count(), child.Count()})
}

func TestTree_DismissAny_LockGated(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	dismissed := false
	_ = root.NewChild("modal", WithDismiss(func() { dismissed = true }))

	token := root.Lock()
	changed, err := tree.DismissAny()
	assert.False(t, changed)
	assert.Error(t, err)
	assert.False(t, dismissed)
	token.Release()

	changed, err = tree.DismissAny()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, dismissed)
}

func TestNode_DismissAnyChild_InnermostWins(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	var order []string
	outer := root.NewChild("outer", WithDismiss(func() { order = append(order, "outer") }))
	inner := outer.NewChild("inner", WithDismiss(func() { order = append(order, "inner") }))

	// One layer at a time, deepest first.
	assert.True(t, root.DismissAnyChild())
	assert.Equal(t, []string{"inner"}, order)

	// Host tears the dismissed modal down before the next layer.
	inner.Close()

	assert.True(t, root.DismissAnyChild())
	assert.Equal(t, []string{"inner", "outer"}, order)

	outer.Close()
	assert.False(t, root.DismissAnyChild())
}

func TestNode_PresentationObservables(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()

	assert.False(t, root.IsPresenting())
	assert.False(t, root.IsPresented())
	assert.False(t, root.IsAnyChildPresenting())

	require.NoError(t, root.Present(destination.Sheet("modal", "m")))
	assert.True(t, root.IsPresenting())

	sheet, ok := root.PresentedSheet()
	require.True(t, ok)
	assert.Equal(t, "modal", sheet.Tag)
	_, ok = root.PresentedCover()
	assert.False(t, ok)

	// Push destinations cannot be presented.
	assert.Error(t, root.Present(page("nope")))

	modal := root.NewChild("modal", WithDismiss(func() {}))
	assert.True(t, modal.IsPresented())
	assert.True(t, root.IsAnyChildPresenting())

	assert.True(t, root.ClearPresented(destination.MethodSheet))
	assert.False(t, root.ClearPresented(destination.MethodSheet))
	assert.False(t, root.IsPresenting())
}
