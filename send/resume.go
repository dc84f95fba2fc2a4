// Package send defines the values that flow through the navigation broadcast
// queue: resume decisions returned by receivers, built-in navigation actions,
// and the pending entry published per queue value.
package send

import "time"

// ResumeKind enumerates the decisions a receiver can return to control how
// queue processing continues after it consumes a value.
type ResumeKind int

const (
	// ResumeAuto continues with the remaining values after the tree's
	// configured delay, giving the embedding UI time to settle.
	ResumeAuto ResumeKind = iota
	// ResumeImmediate continues synchronously with no delay.
	ResumeImmediate
	// ResumeAfter continues after an explicit delay.
	ResumeAfter
	// ResumeReplacing discards the remaining values and continues with the
	// decision's values instead.
	ResumeReplacing
	// ResumeInserting prepends the decision's values to the remaining tail.
	ResumeInserting
	// ResumeAppending appends the decision's values to the remaining tail.
	ResumeAppending
	// ResumePause suspends processing; the remaining tail is parked on the
	// tree until an explicit resume.
	ResumePause
	// ResumeCancel drops the remaining tail and stops.
	ResumeCancel
)

// String returns the string representation of ResumeKind
func (k ResumeKind) String() string {
	switch k {
	case ResumeAuto:
		return "auto"
	case ResumeImmediate:
		return "immediate"
	case ResumeAfter:
		return "after"
	case ResumeReplacing:
		return "replacing"
	case ResumeInserting:
		return "inserting"
	case ResumeAppending:
		return "appending"
	case ResumePause:
		return "pause"
	case ResumeCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Resume is the decision returned by a consuming receiver (or an invoked
// action): how, when, and with which values queue processing continues.
type Resume struct {
	Kind   ResumeKind
	Delay  time.Duration // only meaningful for ResumeAfter
	Values []any         // only meaningful for the transforming kinds
}

// Auto continues after the tree's configured delay.
func Auto() Resume { return Resume{Kind: ResumeAuto} }

// Immediate continues synchronously.
func Immediate() Resume { return Resume{Kind: ResumeImmediate} }

// After continues after the given delay.
func After(d time.Duration) Resume { return Resume{Kind: ResumeAfter, Delay: d} }

// Replacing discards the remaining tail and continues with values.
func Replacing(values ...any) Resume { return Resume{Kind: ResumeReplacing, Values: values} }

// Inserting prepends values to the remaining tail and continues.
func Inserting(values ...any) Resume { return Resume{Kind: ResumeInserting, Values: values} }

// Appending appends values to the remaining tail and continues.
func Appending(values ...any) Resume { return Resume{Kind: ResumeAppending, Values: values} }

// Pause suspends processing until an explicit resume.
func Pause() Resume { return Resume{Kind: ResumePause} }

// Cancel drops the remaining tail and stops.
func Cancel() Resume { return Resume{Kind: ResumeCancel} }

// Apply transforms the remaining tail per the decision and reports whether
// processing continues. For ResumePause the returned tail is the one to park;
// for ResumeCancel it is nil.
func (r Resume) Apply(tail []any) ([]any, bool) {
	switch r.Kind {
	case ResumeReplacing:
		return append([]any(nil), r.Values...), true
	case ResumeInserting:
		out := make([]any, 0, len(r.Values)+len(tail))
		out = append(out, r.Values...)
		out = append(out, tail...)
		return out, true
	case ResumeAppending:
		out := make([]any, 0, len(tail)+len(r.Values))
		out = append(out, tail...)
		out = append(out, r.Values...)
		return out, true
	case ResumePause:
		return tail, false
	case ResumeCancel:
		return nil, false
	default:
		return tail, true
	}
}
