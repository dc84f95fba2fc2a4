package navigator

import (
	"context"
	"encoding/json"

	"github.com/zeroxpunk/navtree/checkpoint"
	"github.com/zeroxpunk/navtree/destination"
	"github.com/zeroxpunk/navtree/errors"
	"github.com/zeroxpunk/navtree/statestore"
)

// pathEntry is the persisted form of one destination.
type pathEntry struct {
	Tag     string             `json:"tag"`
	Method  destination.Method `json:"method"`
	Payload json.RawMessage    `json:"payload,omitempty"`
}

// persistedNode is the serialized state of one navigation node, wrapped with
// the restoration key it was written under. The blob format is JSON here; to
// the host it is an opaque byte slice.
type persistedNode struct {
	RestorationKey string              `json:"restoration_key"`
	Name           string              `json:"name,omitempty"`
	Path           []pathEntry         `json:"path"`
	Checkpoints    []checkpoint.Record `json:"checkpoints,omitempty"`
	Sheet          *pathEntry          `json:"sheet,omitempty"`
	Cover          *pathEntry          `json:"cover,omitempty"`
}

func encodeEntry(d destination.Destination) (pathEntry, error) {
	payload, err := json.Marshal(d.Payload)
	if err != nil {
		return pathEntry{}, errors.WrapInvalid(err, "Node", "EncodeState", "payload marshal")
	}
	return pathEntry{Tag: d.Tag, Method: d.Method, Payload: payload}, nil
}

func (n *Node) decodeEntry(e pathEntry) (destination.Destination, error) {
	var payload any
	if n.tree.registry != nil {
		decoded, err := n.tree.registry.DecodePayload(e.Tag, e.Payload)
		if err != nil {
			return destination.Destination{}, err
		}
		payload = decoded
	} else {
		payload = destination.RawPayload{Tag: e.Tag, Data: append(json.RawMessage(nil), e.Payload...)}
	}
	return destination.Destination{Tag: e.Tag, Payload: payload, Method: e.Method}, nil
}

// EncodeState serializes the node's restorable state — name, path,
// checkpoint positions, and pending presentation slots — under the given
// restoration key.
func (n *Node) EncodeState(restorationKey string) ([]byte, error) {
	state := persistedNode{
		RestorationKey: restorationKey,
		Name:           n.name,
		Path:           make([]pathEntry, 0, len(n.path)),
		Checkpoints:    n.checkpoints.Records(),
	}

	for _, d := range n.path {
		entry, err := encodeEntry(d)
		if err != nil {
			return nil, err
		}
		state.Path = append(state.Path, entry)
	}
	if n.sheet != nil {
		entry, err := encodeEntry(*n.sheet)
		if err != nil {
			return nil, err
		}
		state.Sheet = &entry
	}
	if n.cover != nil {
		entry, err := encodeEntry(*n.cover)
		if err != nil {
			return nil, err
		}
		state.Cover = &entry
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Node", "EncodeState", "state marshal")
	}
	return data, nil
}

// RestoreState replaces the node's restorable state from a blob previously
// produced by EncodeState. A blob written under a different restoration key
// leaves the node untouched and returns an invalid-class error, as does any
// decode failure.
func (n *Node) RestoreState(restorationKey string, data []byte) error {
	var state persistedNode
	if err := json.Unmarshal(data, &state); err != nil {
		return errors.WrapInvalid(err, "Node", "RestoreState", "state unmarshal")
	}
	if state.RestorationKey != restorationKey {
		return errors.WrapInvalid(errors.ErrRestorationKeyMismatch,
			"Node", "RestoreState", "restoration key check")
	}

	// Decode everything before mutating so a bad blob cannot leave the node
	// half-restored.
	path := make([]destination.Destination, 0, len(state.Path))
	for _, e := range state.Path {
		d, err := n.decodeEntry(e)
		if err != nil {
			return err
		}
		path = append(path, d)
	}

	var sheet, cover *destination.Destination
	if state.Sheet != nil {
		d, err := n.decodeEntry(*state.Sheet)
		if err != nil {
			return err
		}
		sheet = &d
	}
	if state.Cover != nil {
		d, err := n.decodeEntry(*state.Cover)
		if err != nil {
			return err
		}
		cover = &d
	}

	n.path = path
	n.checkpoints.Restore(state.Checkpoints)
	n.checkpoints.GC(len(n.path))
	n.sheet = sheet
	n.cover = cover
	n.notify(ChangeRestore)
	return nil
}

// SaveState encodes the node's state and writes it to the store under key.
// The key doubles as the restoration key.
func (n *Node) SaveState(ctx context.Context, store statestore.Store, key string) error {
	data, err := n.EncodeState(key)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, key, data); err != nil {
		return errors.Wrap(err, "Node", "SaveState", "state write")
	}
	return nil
}

// LoadState reads the blob stored under key and restores the node from it.
func (n *Node) LoadState(ctx context.Context, store statestore.Store, key string) error {
	data, err := store.Get(ctx, key)
	if err != nil {
		return errors.Wrap(err, "Node", "LoadState", "state read")
	}
	return n.RestoreState(key, data)
}
