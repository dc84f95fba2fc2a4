package checkpoint

import "sort"

// Registry holds the checkpoint records for a single navigation node.
//
// The registry is not safe for concurrent use; like the rest of a node's
// state it is mutated only from the owning tree's run loop.
type Registry struct {
	records map[Key]Record
}

// NewRegistry creates an empty checkpoint registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[Key]Record)}
}

// Add records a checkpoint at the given path index and reports whether the
// registry changed.
//
// Semantics:
//   - An exact match (name, handler, index) is a no-op.
//   - A record with the same name at index 0 is immutable once set: its
//     handler identifier may be updated, but no new record is created at a
//     deeper index. This keeps deep-link re-entry converging on the original
//     root checkpoint instead of accumulating duplicates.
//   - Otherwise same name + same index with a different handler updates the
//     handler in place.
//   - Anything else creates a new record, so the same name can legitimately
//     exist at several distinct depths.
func (r *Registry) Add(cp Checkpoint, index int) bool {
	if index < 0 {
		index = 0
	}

	key := Key{Name: cp.Name, Index: index}
	if existing, ok := r.records[key]; ok {
		if existing.HandlerID == cp.HandlerID {
			return false
		}
		existing.HandlerID = cp.HandlerID
		r.records[key] = existing
		return true
	}

	// Index-0 records win over re-registration at deeper positions.
	rootKey := Key{Name: cp.Name, Index: 0}
	if existing, ok := r.records[rootKey]; ok {
		if existing.HandlerID == cp.HandlerID {
			return false
		}
		existing.HandlerID = cp.HandlerID
		r.records[rootKey] = existing
		return true
	}

	r.records[key] = Record{Name: cp.Name, HandlerID: cp.HandlerID, Index: index}
	return true
}

// Resolve returns the deepest reachable record with the given name. A record
// is reachable when the owning node is currently presented as a modal, or
// when its index lies strictly below the current path length.
func (r *Registry) Resolve(name string, pathLen int, presented bool) (Record, bool) {
	best := Record{Index: -1}
	found := false
	for key, rec := range r.records {
		if key.Name != name {
			continue
		}
		if !presented && rec.Index >= pathLen {
			continue
		}
		if !found || rec.Index > best.Index {
			best = rec
			found = true
		}
	}
	return best, found
}

// GC purges every record whose index exceeds the current path length and
// returns the purged records. Called after any path truncation.
func (r *Registry) GC(pathLen int) []Record {
	var purged []Record
	for key, rec := range r.records {
		if rec.Index > pathLen {
			purged = append(purged, rec)
			delete(r.records, key)
		}
	}
	return purged
}

// Len returns the number of stored records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns all records ordered by (name, index) for persistence.
func (r *Registry) Records() []Record {
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Restore replaces the registry contents with the given records.
func (r *Registry) Restore(records []Record) {
	r.records = make(map[Key]Record, len(records))
	for _, rec := range records {
		r.records[rec.Key()] = rec
	}
}
