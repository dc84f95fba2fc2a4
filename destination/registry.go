package destination

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/zeroxpunk/navtree/errors"
)

// Factory creates an empty payload instance for a destination tag.
// The returned value must be a pointer so persisted JSON can be decoded
// into it.
type Factory func() any

// Registration holds the factory and metadata for a destination type.
type Registration struct {
	Factory     Factory `json:"-"`           // Factory function (not serializable)
	Tag         string  `json:"tag"`         // Destination tag (e.g. "settings.page")
	Description string  `json:"description"` // Human-readable description
}

// Registry manages destination payload factories for state restoration.
// It provides thread-safe registration and lookup, enabling persisted paths
// to recreate typed payloads from JSON. Tags never seen by the registry are
// decoded into RawPayload so restoration degrades gracefully.
type Registry struct {
	registrations map[string]*Registration // Registry by tag
	mu            sync.RWMutex             // Protects the map
}

// NewRegistry creates a new empty destination registry.
func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[string]*Registration),
	}
}

// Register registers a destination type with validation.
// Returns an error if validation fails or the tag is already registered.
func (r *Registry) Register(registration *Registration) error {
	if registration == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "Register", "registration validation")
	}
	if registration.Factory == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "Register", "factory function validation")
	}
	if registration.Tag == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "Register", "tag validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[registration.Tag]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("destination tag '%s' is already registered", registration.Tag),
			"Registry", "Register", "duplicate tag check")
	}

	r.registrations[registration.Tag] = registration
	return nil
}

// Known reports whether a tag has been registered. Pushing an unknown tag is
// legal; callers use Known only for advisory diagnostics.
func (r *Registry) Known(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.registrations[tag]
	return ok
}

// CreatePayload creates an empty payload instance using the registered
// factory. Returns nil if the tag is not registered.
func (r *Registry) CreatePayload(tag string) any {
	r.mu.RLock()
	registration, exists := r.registrations[tag]
	r.mu.RUnlock()

	if !exists {
		return nil
	}
	return registration.Factory()
}

// DecodePayload decodes persisted payload JSON for the given tag. Unknown
// tags fall back to RawPayload, preserving the original bytes so a later
// save does not lose data.
func (r *Registry) DecodePayload(tag string, data json.RawMessage) (any, error) {
	payload := r.CreatePayload(tag)
	if payload == nil {
		return RawPayload{Tag: tag, Data: append(json.RawMessage(nil), data...)}, nil
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, errors.WrapInvalid(err, "Registry", "DecodePayload", "payload unmarshal")
	}
	return payload, nil
}

// List returns all registered tags in lexicographic order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.registrations))
	for tag := range r.registrations {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// RawPayload preserves the payload of a destination whose tag was never
// registered. The JSON bytes round-trip unchanged.
type RawPayload struct {
	Tag  string
	Data json.RawMessage
}

// MarshalJSON re-emits the preserved bytes.
func (rp RawPayload) MarshalJSON() ([]byte, error) {
	if len(rp.Data) == 0 {
		return []byte("null"), nil
	}
	return rp.Data, nil
}
