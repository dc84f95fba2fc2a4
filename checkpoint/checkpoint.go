// Package checkpoint provides named return positions within a navigation
// path. A checkpoint records the path index at which it was set; returning
// to a checkpoint truncates the path back to that index. Multiple
// checkpoints may share a name at different depths (a reusable component
// instantiated at several points in the path sets the same checkpoint each
// time); resolution always honors the deepest reachable one.
package checkpoint

// Checkpoint identifies a return position by name, optionally carrying the
// identifier of a completion handler to run after the return.
type Checkpoint struct {
	Name      string
	HandlerID string
}

// Named returns a checkpoint with no completion handler.
func Named(name string) Checkpoint {
	return Checkpoint{Name: name}
}

// WithHandler returns a checkpoint bound to a completion handler identifier.
func WithHandler(name, handlerID string) Checkpoint {
	return Checkpoint{Name: name, HandlerID: handlerID}
}

// WithHandler returns a copy of the checkpoint bound to a handler identifier.
func (c Checkpoint) WithHandler(handlerID string) Checkpoint {
	c.HandlerID = handlerID
	return c
}

// Key uniquely identifies a checkpoint record within one node: the name plus
// the path index at which it was set.
type Key struct {
	Name  string
	Index int
}

// Record is a stored checkpoint: its name, optional handler identifier, and
// the path index recorded when it was set.
type Record struct {
	Name      string `json:"name"`
	HandlerID string `json:"handler_id,omitempty"`
	Index     int    `json:"index"`
}

// Key returns the registry key for this record.
func (r Record) Key() Key {
	return Key{Name: r.Name, Index: r.Index}
}
