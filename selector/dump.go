package selector

import "cssvg/internal/debug"

// Dump renders the selector list as an indented tree, for test failures
// and diagnostic logging.
func (s Selector) Dump() string {
	tw := debug.NewTreeWriter()
	for i, c := range s.Entries {
		tw.Line(0, "complex[%d]", i)
		c.dump(tw, 1)
	}
	return tw.String()
}

func (c ComplexSelector) dump(tw *debug.TreeWriter, depth int) {
	for _, e := range c.Entries {
		tw.Line(depth, "combinator=%v", e.Combinator)
		e.Compound.dump(tw, depth+1)
	}
}

func (c CompoundSelector) dump(tw *debug.TreeWriter, depth int) {
	for _, e := range c.Entries {
		e.dump(tw, depth)
	}
}

func (e CompoundEntry) dump(tw *debug.TreeWriter, depth int) {
	switch e.Kind {
	case EntryType:
		tw.Line(depth, "type %s|%s", qnamePrefix(e.Type.Name), e.Type.Name.Local)
	case EntryID:
		tw.Line(depth, "id #%s", e.ID.Name)
	case EntryClass:
		tw.Line(depth, "class .%s", e.Class.Name)
	case EntryAttribute:
		tw.Line(depth, "attr [%s%s op=%v value=%q]", qnamePrefix(e.Attribute.Name), e.Attribute.Name.Local, e.Attribute.Op, e.Attribute.Value)
	case EntryPseudoClass:
		tw.Line(depth, "pseudo-class :%s", e.PseudoClass.Ident)
		if e.PseudoClass.Inner != nil {
			e.PseudoClass.Inner.dumpInner(tw, depth+1)
		}
	case EntryPseudoElement:
		tw.Line(depth, "pseudo-element ::%s", e.PseudoElement.Ident)
	}
}

func (s Selector) dumpInner(tw *debug.TreeWriter, depth int) {
	for i, c := range s.Entries {
		tw.Line(depth, "complex[%d]", i)
		c.dump(tw, depth+1)
	}
}

func qnamePrefix(n QName) string {
	if !n.HasPrefix {
		return ""
	}
	return n.Prefix + "|"
}
