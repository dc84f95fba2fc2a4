// Package destination defines the values that navigation paths are built
// from: a type tag, an arbitrary payload, and a presentation method. It also
// provides a registry of destination types so persisted paths can be decoded
// back into their concrete payload types.
package destination

import (
	"fmt"
	"reflect"
)

// Method describes how a destination is presented by the embedding UI.
type Method int

const (
	// MethodPush appends the destination to the navigation path.
	MethodPush Method = iota
	// MethodSheet presents the destination in the sheet slot.
	MethodSheet
	// MethodCover presents the destination in the cover slot.
	MethodCover
)

// String returns the string representation of Method
func (m Method) String() string {
	switch m {
	case MethodPush:
		return "push"
	case MethodSheet:
		return "sheet"
	case MethodCover:
		return "cover"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for persisted state.
func (m Method) MarshalText() ([]byte, error) {
	s := m.String()
	if s == "unknown" {
		return nil, fmt.Errorf("unknown presentation method %d", int(m))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for persisted state.
func (m *Method) UnmarshalText(text []byte) error {
	switch string(text) {
	case "push":
		*m = MethodPush
	case "sheet":
		*m = MethodSheet
	case "cover":
		*m = MethodCover
	default:
		return fmt.Errorf("unknown presentation method %q", string(text))
	}
	return nil
}

// Destination is a single navigable entry: a registered type tag, the payload
// carried to the destination view, and the presentation method.
//
// Payloads should be plain data (comparable or DeepEqual-comparable); payload
// equality is used for path-position comparisons.
type Destination struct {
	Tag     string
	Payload any
	Method  Method
}

// New returns a push destination for the given tag and payload.
func New(tag string, payload any) Destination {
	return Destination{Tag: tag, Payload: payload, Method: MethodPush}
}

// Sheet returns a sheet-presented destination.
func Sheet(tag string, payload any) Destination {
	return Destination{Tag: tag, Payload: payload, Method: MethodSheet}
}

// Cover returns a cover-presented destination.
func Cover(tag string, payload any) Destination {
	return Destination{Tag: tag, Payload: payload, Method: MethodCover}
}

// Equal reports whether two destinations are the same entry: same tag, same
// presentation method, and equal payloads.
func (d Destination) Equal(other Destination) bool {
	if d.Tag != other.Tag || d.Method != other.Method {
		return false
	}
	return reflect.DeepEqual(d.Payload, other.Payload)
}
