// Package cascade implements the property registry and cascade: parsing
// a style attribute or a stylesheet rule's declaration block into a
// fixed set of typed properties, and resolving inheritance between a
// parent and child element's registries.
package cascade

import (
	"cssvg/internal/perr"
	"cssvg/selector"
)

// PropertyState tags what kind of value, if any, a Property holds.
type PropertyState int

const (
	// StateNotSet means the declaration was never present; the
	// property's CSS initial value applies once resolved.
	StateNotSet PropertyState = iota
	// StateSet means a concrete value was parsed successfully.
	StateSet
	// StateInherit is the literal "inherit" keyword: always takes the
	// parent's resolved value regardless of whether the property
	// inherits by default.
	StateInherit
	// StateInitial is the literal "initial" keyword: always resets to
	// the CSS initial value regardless of whether the property
	// inherits by default.
	StateInitial
	// StateUnset is the literal "unset" keyword: behaves as Inherit for
	// properties that inherit by default, Initial otherwise. Since that
	// distinction is already encoded in which InheritMode the registry
	// picks per field (see Registry.InheritFrom), Unset is carried here
	// only so a round-trip back to the serialized keyword is possible;
	// InheritFrom treats it identically to StateNotSet.
	StateUnset
)

// InheritMode is the single knob InheritFrom takes: whether a property
// without an explicit "inherit" keyword still inherits from its parent.
type InheritMode int

const (
	// InheritExplicitlySetOnly only pulls the parent's value when the
	// child declared the literal "inherit" keyword. Used for properties
	// that don't inherit by default in CSS/SVG (e.g. opacity, display).
	InheritExplicitlySetOnly InheritMode = iota
	// InheritAll pulls the parent's value whenever the child has no
	// value of its own, whether or not "inherit" was written. Used for
	// properties that inherit by default (e.g. color, fill, font-size).
	InheritAll
)

// Property is one cascaded property slot: a value of type T tagged with
// the state that produced it, the specificity of the declaration that
// set it (for future multi-rule cascade resolution), and the source
// offset (for diagnostics).
type Property[T any] struct {
	State       PropertyState
	Value       T
	Specificity selector.Specificity
	Offset      perr.Offset
}

// HasValue reports whether p holds a concrete parsed value.
func (p Property[T]) HasValue() bool { return p.State == StateSet }

// Get returns p's value and whether it HasValue.
func (p Property[T]) Get() (T, bool) { return p.Value, p.HasValue() }

// GetRequired returns p's value, or T's zero value if not set. Callers
// that have already resolved inheritance and applied CSS initial values
// upstream use this to avoid repeating the HasValue check at every use
// site.
func (p Property[T]) GetRequired() T {
	if !p.HasValue() {
		var zero T
		return zero
	}
	return p.Value
}

// Set records a successfully parsed value.
func (p *Property[T]) Set(value T, specificity selector.Specificity, offset perr.Offset) {
	p.State = StateSet
	p.Value = value
	p.Specificity = specificity
	p.Offset = offset
}

// SetState records a keyword state (inherit/initial/unset) without a
// concrete value, matching declarations like "color: inherit".
func (p *Property[T]) SetState(state PropertyState, specificity selector.Specificity, offset perr.Offset) {
	p.State = state
	p.Specificity = specificity
	p.Offset = offset
}

// InheritFrom resolves p against parent: p wins if it already has a
// value, parent wins if inheritance is requested (explicitly via the
// "inherit" keyword, or implicitly when mode is InheritAll and p is not
// "initial"), and otherwise p is returned unchanged (falls through to
// the CSS initial value, which this package does not itself materialize).
func (p Property[T]) InheritFrom(parent Property[T], mode InheritMode) Property[T] {
	if p.HasValue() {
		return p
	}
	requested := p.State == StateInherit || (mode == InheritAll && p.State != StateInitial)
	if !requested {
		return p
	}
	return parent
}
