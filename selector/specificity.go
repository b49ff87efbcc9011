package selector

// Specificity is the (a, b, c) triple from Selectors Level 4 §17:
// a counts ID selectors, b counts class/attribute/pseudo-class
// selectors, c counts type selectors and pseudo-elements.
//
// Override holds a special value that, when set, takes precedence over
// the (a,b,c) comparison entirely — used for inline style and
// !important, which this module's caller (package cascade) attaches
// after the fact rather than computing from selector syntax.
type Specificity struct {
	A, B, C  int
	Override OverrideLevel
}

// OverrideLevel orders the out-of-band specificity tiers. None means
// "use (a,b,c)"; the others always win regardless of (a,b,c).
type OverrideLevel int

const (
	OverrideNone OverrideLevel = iota
	OverrideStyleAttribute
	OverrideImportant
	OverrideOverride // e.g. a user-agent !important, or cascade layer override
)

// Less reports whether s sorts before other in cascade order (other
// wins ties, matching "later rule of equal specificity wins").
func (s Specificity) Less(other Specificity) bool {
	if s.Override != other.Override {
		return s.Override < other.Override
	}
	if s.Override != OverrideNone {
		return false // equal override tier: caller breaks ties by source order
	}
	if s.A != other.A {
		return s.A < other.A
	}
	if s.B != other.B {
		return s.B < other.B
	}
	return s.C < other.C
}

// Specificity computes the specificity of a single complex selector.
func (c ComplexSelector) Specificity() Specificity {
	var s Specificity
	for _, entry := range c.Entries {
		entry.Compound.addSpecificity(&s)
	}
	return s
}

func (c CompoundSelector) addSpecificity(s *Specificity) {
	for _, e := range c.Entries {
		e.addSpecificity(s)
	}
}

func (e CompoundEntry) addSpecificity(s *Specificity) {
	switch e.Kind {
	case EntryType:
		if e.Type.Name.Local != "*" {
			s.C++
		}
	case EntryID:
		s.A++
	case EntryClass, EntryAttribute:
		s.B++
	case EntryPseudoElement:
		s.C++
	case EntryPseudoClass:
		e.PseudoClass.addSpecificity(s)
	}
}

// addSpecificity handles the pseudo-classes whose specificity is
// derived from an inner selector list rather than counted directly:
// :is()/:has() contribute the specificity of their most specific
// argument, :where() contributes zero, and :not() contributes its
// argument's specificity (it doesn't zero out like :where does).
func (p PseudoClassSelector) addSpecificity(s *Specificity) {
	lower := lowerASCII(p.Ident)
	if lower == "where" {
		return
	}
	if (lower == "is" || lower == "has" || lower == "not") && p.Inner != nil {
		best := mostSpecific(p.Inner.Entries)
		s.A += best.A
		s.B += best.B
		s.C += best.C
		return
	}
	s.B++
}

func mostSpecific(entries []ComplexSelector) Specificity {
	var best Specificity
	for i, e := range entries {
		sp := e.Specificity()
		if i == 0 || best.Less(sp) {
			best = sp
		}
	}
	return best
}
