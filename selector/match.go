package selector

import (
	"strings"

	"cssvg/domtree"
)

// Matches reports whether el satisfies any complex selector in the
// list.
func (s Selector) Matches(el domtree.Element) bool {
	for _, complex := range s.Entries {
		if complex.Matches(el) {
			return true
		}
	}
	return false
}

// Matches implements the right-to-left algorithm: the last compound
// selector must match el itself, and each combinator moving leftward
// constrains which ancestor/sibling compound must match next. Matching
// right-to-left lets a mismatch on the rightmost (usually most
// selective) compound fail fast without walking the tree at all.
func (c ComplexSelector) Matches(el domtree.Element) bool {
	if len(c.Entries) == 0 {
		return false
	}
	last := len(c.Entries) - 1
	if !c.Entries[last].Compound.matches(el) {
		return false
	}
	return matchFromIndex(c.Entries, last, el)
}

// matchFromIndex verifies that c.Entries[idx] matches el (the caller
// has already checked this for the initial call) and then recurses
// leftward according to Entries[idx].Combinator, trying every
// candidate element the combinator admits.
func matchFromIndex(entries []ComplexEntry, idx int, el domtree.Element) bool {
	if idx == 0 {
		return true
	}
	combinator := entries[idx].Combinator
	prevIdx := idx - 1
	compound := entries[prevIdx].Compound

	switch combinator {
	case Descendant:
		for anc, ok := el.Parent(); ok; anc, ok = anc.Parent() {
			if compound.matches(anc) && matchFromIndex(entries, prevIdx, anc) {
				return true
			}
		}
		return false

	case Child:
		anc, ok := el.Parent()
		if !ok {
			return false
		}
		return compound.matches(anc) && matchFromIndex(entries, prevIdx, anc)

	case NextSibling:
		sib, ok := el.PreviousSibling()
		if !ok {
			return false
		}
		return compound.matches(sib) && matchFromIndex(entries, prevIdx, sib)

	case SubsequentSibling:
		for sib, ok := el.PreviousSibling(); ok; sib, ok = sib.PreviousSibling() {
			if compound.matches(sib) && matchFromIndex(entries, prevIdx, sib) {
				return true
			}
		}
		return false

	case Column:
		// SVG has no table-column concept; this combinator never matches.
		return false

	default:
		return false
	}
}

func (c CompoundSelector) matches(el domtree.Element) bool {
	for _, e := range c.Entries {
		if !e.matches(el) {
			return false
		}
	}
	return true
}

func (e CompoundEntry) matches(el domtree.Element) bool {
	switch e.Kind {
	case EntryType:
		return e.Type.matches(el)
	case EntryID:
		return el.ID() == e.ID.Name
	case EntryClass:
		for _, cl := range el.ClassList() {
			if cl == e.Class.Name {
				return true
			}
		}
		return false
	case EntryAttribute:
		return e.Attribute.matches(el)
	case EntryPseudoClass:
		return e.PseudoClass.matches(el)
	case EntryPseudoElement:
		// No box tree to represent generated content against.
		return false
	default:
		return false
	}
}

func (t TypeSelector) matches(el domtree.Element) bool {
	if t.Name.Local == "*" {
		return true
	}
	return el.TagName().Local == t.Name.Local
}

func (a AttributeSelector) matches(el domtree.Element) bool {
	qn := domtree.QualifiedName{Local: a.Name.Local}
	if a.Name.HasPrefix {
		qn.Namespace = a.Name.Prefix
	} else {
		qn.Namespace = "*"
	}
	value, ok := el.Attribute(qn)
	if !ok {
		return false
	}
	if a.Op == AttrExists {
		return true
	}
	want, got := a.Value, value
	if a.CaseInsensitive {
		want, got = strings.ToLower(want), strings.ToLower(got)
	}
	switch a.Op {
	case AttrEq:
		return got == want
	case AttrIncludes:
		for _, tok := range strings.Fields(got) {
			if tok == want {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return got == want || strings.HasPrefix(got, want+"-")
	case AttrPrefixMatch:
		return want != "" && strings.HasPrefix(got, want)
	case AttrSuffixMatch:
		return want != "" && strings.HasSuffix(got, want)
	case AttrSubstringMatch:
		return want != "" && strings.Contains(got, want)
	default:
		return false
	}
}

func (p PseudoClassSelector) matches(el domtree.Element) bool {
	lower := lowerASCII(p.Ident)
	switch {
	case p.HasANB:
		return matchANB(lower, p, el)
	case lower == "is" || lower == "where":
		return p.Inner != nil && p.Inner.Matches(el)
	case lower == "not":
		return p.Inner == nil || !p.Inner.Matches(el)
	case lower == "has":
		return p.Inner != nil && matchesHas(*p.Inner, el)
	default:
		return matchStructural(lower, el)
	}
}

func matchStructural(ident string, el domtree.Element) bool {
	switch ident {
	case "root":
		_, hasParent := el.Parent()
		return !hasParent
	case "empty":
		_, hasChild := el.FirstChild()
		return !hasChild
	case "first-child":
		_, ok := el.PreviousSibling()
		return !ok
	case "last-child":
		_, ok := el.NextSibling()
		return !ok
	case "only-child":
		_, prev := el.PreviousSibling()
		_, next := el.NextSibling()
		return !prev && !next
	case "first-of-type":
		return indexAmongSiblingsOfType(el, true) == 0
	case "last-of-type":
		return indexAmongSiblingsOfType(el, false) == 0
	case "only-of-type":
		return indexAmongSiblingsOfType(el, true) == 0 && indexAmongSiblingsOfType(el, false) == 0
	default:
		return false
	}
}

// indexAmongSiblingsOfType walks from el toward the front (forward=true)
// or back (forward=false) counting same-type siblings, returning how
// many same-type siblings lie strictly in that direction.
func indexAmongSiblingsOfType(el domtree.Element, forward bool) int {
	tag := el.TagName().Local
	count := 0
	cur := el
	for {
		var sib domtree.Element
		var ok bool
		if forward {
			sib, ok = cur.PreviousSibling()
		} else {
			sib, ok = cur.NextSibling()
		}
		if !ok {
			return count
		}
		if sib.TagName().Local == tag {
			count++
		}
		cur = sib
	}
}

// matchANB evaluates the nth-child family, including the optional "of
// S" selector filter.
func matchANB(ident string, p PseudoClassSelector, el domtree.Element) bool {
	var siblingFilter func(domtree.Element) bool
	sameType := strings.Contains(ident, "of-type")
	reverse := strings.Contains(ident, "last")

	switch {
	case sameType:
		tag := el.TagName().Local
		siblingFilter = func(e domtree.Element) bool { return e.TagName().Local == tag }
	case p.Inner != nil:
		siblingFilter = p.Inner.Matches
	default:
		siblingFilter = func(domtree.Element) bool { return true }
	}
	if !siblingFilter(el) {
		return false
	}

	index := 0 // 0-based position among matching siblings, counted in the nth-child direction
	cur := el
	for {
		var sib domtree.Element
		var ok bool
		if reverse {
			sib, ok = cur.NextSibling()
		} else {
			sib, ok = cur.PreviousSibling()
		}
		if !ok {
			break
		}
		if siblingFilter(sib) {
			index++
		}
		cur = sib
	}

	n1based := index + 1
	a, b := p.ANB.A, p.ANB.B
	if a == 0 {
		return n1based == b
	}
	diff := n1based - b
	if diff%a != 0 {
		return false
	}
	return diff/a >= 0
}

// matchesHas reports whether any descendant (or, when the relative
// selector list carries an explicit leading combinator, any
// specifically-related element) of el satisfies rel.
func matchesHas(rel Selector, el domtree.Element) bool {
	for _, complex := range rel.Entries {
		if hasMatchesFrom(complex, el) {
			return true
		}
	}
	return false
}

// hasMatchesFrom walks the subtree rooted at el (el itself is the
// implicit :scope anchor) looking for any node from which complex, read
// right-to-left starting at that node, matches back up to el's
// relationship with it.
func hasMatchesFrom(complex ComplexSelector, scope domtree.Element) bool {
	var walk func(domtree.Element) bool
	walk = func(el domtree.Element) bool {
		if complex.Matches(el) && isDescendantOrSelf(scope, el) {
			return true
		}
		for child, ok := el.FirstChild(); ok; child, ok = child.NextSibling() {
			if walk(child) {
				return true
			}
		}
		return false
	}
	for child, ok := scope.FirstChild(); ok; child, ok = child.NextSibling() {
		if walk(child) {
			return true
		}
	}
	return false
}

// isDescendantOrSelf reports whether el is scope or a descendant of it,
// used to bound :has()'s search to scope's own subtree even though
// complex.Matches may walk past it through ordinary ancestor
// combinators.
func isDescendantOrSelf(scope, el domtree.Element) bool {
	for cur := el; ; {
		if cur.Equal(scope) {
			return true
		}
		parent, ok := cur.Parent()
		if !ok {
			return false
		}
		cur = parent
	}
}
