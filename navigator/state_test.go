package navigator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroxpunk/navtree/checkpoint"
	"github.com/zeroxpunk/navtree/destination"
	naverrors "github.com/zeroxpunk/navtree/errors"
	"github.com/zeroxpunk/navtree/statestore"
)

type profilePayload struct {
	Slug string `json:"slug"`
}

func registryWithProfile(t *testing.T) *destination.Registry {
	t.Helper()
	reg := destination.NewRegistry()
	require.NoError(t, reg.Register(&destination.Registration{
		Tag:         "profile",
		Description: "user profile page",
		Factory:     func() any { return &profilePayload{} },
	}))
	return reg
}

func TestState_RoundTrip(t *testing.T) {
	reg := registryWithProfile(t)

	src, _ := newTestTree(t, WithDestinationRegistry(reg))
	srcRoot := src.Root()
	srcRoot.AddCheckpoint(checkpoint.Named("home"))
	srcRoot.Push(destination.New("profile", profilePayload{Slug: "alice"}))
	srcRoot.Push(destination.New("profile", profilePayload{Slug: "bob"}))
	srcRoot.AddCheckpoint(checkpoint.WithHandler("done", "onDone"))
	require.NoError(t, srcRoot.Present(destination.Sheet("profile", profilePayload{Slug: "eve"})))

	data, err := srcRoot.EncodeState("session-1")
	require.NoError(t, err)

	dst, _ := newTestTree(t, WithDestinationRegistry(reg))
	dstRoot := dst.Root()
	require.NoError(t, dstRoot.RestoreState("session-1", data))

	assert.Equal(t, srcRoot.Count(), dstRoot.Count())
	assert.Equal(t, srcRoot.Checkpoints(), dstRoot.Checkpoints())

	restored := dstRoot.Path()
	require.Len(t, restored, 2)
	assert.Equal(t, "profile", restored[0].Tag)
	assert.Equal(t, &profilePayload{Slug: "alice"}, restored[0].Payload)
	assert.Equal(t, &profilePayload{Slug: "bob"}, restored[1].Payload)

	sheet, ok := dstRoot.PresentedSheet()
	require.True(t, ok)
	assert.Equal(t, &profilePayload{Slug: "eve"}, sheet.Payload)
	_, ok = dstRoot.PresentedCover()
	assert.False(t, ok)
}

func TestState_KeyMismatchLeavesNodeUntouched(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()
	root.Push(page("a"))

	data, err := root.EncodeState("key-A")
	require.NoError(t, err)

	other, _ := newTestTree(t)
	otherRoot := other.Root()
	otherRoot.Push(page("existing"))
	otherRoot.AddCheckpoint(checkpoint.Named("kept"))

	err = otherRoot.RestoreState("key-B", data)
	require.Error(t, err)
	assert.ErrorIs(t, err, naverrors.ErrRestorationKeyMismatch)

	// The failed restore changed nothing.
	assert.Equal(t, 1, otherRoot.Count())
	assert.Equal(t, "page", otherRoot.Path()[0].Tag)
	assert.Equal(t, "existing", otherRoot.Path()[0].Payload)
	require.Len(t, otherRoot.Checkpoints(), 1)
	assert.Equal(t, "kept", otherRoot.Checkpoints()[0].Name)
}

func TestState_CorruptBlob(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()
	root.Push(page("a"))

	err := root.RestoreState("k", []byte("{not json"))
	require.Error(t, err)
	assert.Equal(t, 1, root.Count())
}

func TestState_UnknownTagFallsBackToRawPayload(t *testing.T) {
	reg := registryWithProfile(t)

	src, _ := newTestTree(t, WithDestinationRegistry(reg))
	src.Root().Push(destination.New("legacy.screen", map[string]any{"v": 1}))

	data, err := src.Root().EncodeState("k")
	require.NoError(t, err)

	dst, _ := newTestTree(t, WithDestinationRegistry(reg))
	require.NoError(t, dst.Root().RestoreState("k", data))

	restored := dst.Root().Path()
	require.Len(t, restored, 1)
	raw, ok := restored[0].Payload.(destination.RawPayload)
	require.True(t, ok)
	assert.Equal(t, "legacy.screen", raw.Tag)
	assert.JSONEq(t, `{"v":1}`, string(raw.Data))

	// The raw bytes survive a second save untouched.
	again, err := dst.Root().EncodeState("k")
	require.NoError(t, err)

	third, _ := newTestTree(t, WithDestinationRegistry(reg))
	require.NoError(t, third.Root().RestoreState("k", again))
	raw2 := third.Root().Path()[0].Payload.(destination.RawPayload)
	assert.JSONEq(t, `{"v":1}`, string(raw2.Data))
}

func TestState_CheckpointGCOnRestore(t *testing.T) {
	tree, _ := newTestTree(t)
	root := tree.Root()
	root.Push(page("a"))

	// Hand-build a blob whose checkpoint index exceeds its path length.
	src, _ := newTestTree(t)
	srcRoot := src.Root()
	srcRoot.Push(page("a"))
	srcRoot.Push(page("b"))
	srcRoot.AddCheckpoint(checkpoint.Named("deep")) // index 2
	data, err := srcRoot.EncodeState("k")
	require.NoError(t, err)

	// Restore into a node, then truncate the source and re-restore from the
	// shorter encoding: the stale checkpoint must not survive.
	require.NoError(t, root.RestoreState("k", data))
	require.Len(t, root.Checkpoints(), 1)

	srcRoot.PopTo(1)
	shorter, err := srcRoot.EncodeState("k")
	require.NoError(t, err)
	require.NoError(t, root.RestoreState("k", shorter))
	assert.Empty(t, root.Checkpoints())
}

func TestState_SaveLoadThroughStore(t *testing.T) {
	ctx := context.Background()
	store := statestore.NewMemory()

	src, _ := newTestTree(t)
	src.Root().Push(page("a"))
	src.Root().Push(page("b"))
	require.NoError(t, src.Root().SaveState(ctx, store, "nav/main"))

	dst, _ := newTestTree(t)
	require.NoError(t, dst.Root().LoadState(ctx, store, "nav/main"))
	assert.Equal(t, 2, dst.Root().Count())

	err := dst.Root().LoadState(ctx, store, "nav/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, naverrors.ErrKeyNotFound)
}
