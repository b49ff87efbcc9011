package selector

import (
	"fmt"
	"strings"

	"cssvg/anb"
	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

// cursor walks a component-value slice with lookahead, treating
// whitespace tokens as meaningful (they're the descendant combinator
// and separate compound selectors from each other).
type cursor struct {
	vals []cssvalue.ComponentValue
	pos  int
}

func (c *cursor) atEnd() bool { return c.pos >= len(c.vals) }

func (c *cursor) peek() (cssvalue.ComponentValue, bool) {
	if c.atEnd() {
		return cssvalue.ComponentValue{}, false
	}
	return c.vals[c.pos], true
}

func (c *cursor) peekAt(offset int) (cssvalue.ComponentValue, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.vals) {
		return cssvalue.ComponentValue{}, false
	}
	return c.vals[i], true
}

func (c *cursor) advance() { c.pos++ }

func (c *cursor) isWhitespace(cv cssvalue.ComponentValue) bool {
	return cv.IsToken() && cv.Token.Kind == csstoken.Whitespace
}

// skipWhitespace consumes any whitespace tokens, reporting whether it
// consumed at least one.
func (c *cursor) skipWhitespace() bool {
	skipped := false
	for {
		cv, ok := c.peek()
		if !ok || !c.isWhitespace(cv) {
			return skipped
		}
		c.advance()
		skipped = true
	}
}

func (c *cursor) offset() perr.Offset {
	if cv, ok := c.peek(); ok {
		return cv.Token.Offset
	}
	if len(c.vals) > 0 {
		return c.vals[len(c.vals)-1].Token.Offset
	}
	return perr.Offset{}
}

// isDelim reports whether cv is a Delim token matching r.
func isDelim(cv cssvalue.ComponentValue, r rune) bool {
	return cv.IsToken() && cv.Token.Kind == csstoken.Delim && cv.Token.Delim == r
}

// Parse is the strict entry point: a <complex-selector-list>. The
// whole list fails if any entry fails to parse.
func Parse(values []cssvalue.ComponentValue) (Selector, *perr.Error) {
	return parseSelectorList(values, selectorListOptions{})
}

// ParseForgivingSelectorList parses a <forgiving-selector-list>: entries
// that fail to parse are dropped rather than failing the whole list.
// Used for :is()/:where() arguments. Errors only when the list has a
// single entry and that entry is unparsable; when every entry of a
// longer list fails, the result is an empty Selector and no error.
func ParseForgivingSelectorList(values []cssvalue.ComponentValue) (Selector, *perr.Error) {
	return parseSelectorList(values, selectorListOptions{forgiving: true})
}

// ParseForgivingRelativeSelectorList parses a
// <forgiving-relative-selector-list>: like ParseForgivingSelectorList,
// but each entry may open with an explicit combinator (e.g. "> img"),
// understood as relative to an implicit :scope. Used for :has()
// arguments.
func ParseForgivingRelativeSelectorList(values []cssvalue.ComponentValue) (Selector, *perr.Error) {
	return parseSelectorList(values, selectorListOptions{forgiving: true, relative: true})
}

type selectorListOptions struct {
	forgiving bool
	relative  bool
}

func parseSelectorList(values []cssvalue.ComponentValue, opts selectorListOptions) (Selector, *perr.Error) {
	groups := splitTopLevelComma(values)
	var sel Selector
	var firstErr *perr.Error
	for _, g := range groups {
		c := &cursor{vals: trimWS(g)}
		complex, err := parseComplexSelector(c, opts.relative)
		if err == nil {
			c.skipWhitespace()
			if !c.atEnd() {
				err = perr.New("unexpected trailing content in selector", c.offset())
			}
		}
		if err != nil {
			if opts.forgiving {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			return Selector{}, err
		}
		sel.Entries = append(sel.Entries, complex)
	}
	if len(sel.Entries) == 0 && opts.forgiving && firstErr != nil && len(groups) == 1 {
		// A single, entirely-unparsable forgiving list still reports
		// why, rather than silently producing "matches nothing" — that
		// would hide a genuine typo in, e.g., `:is(#bad[)`.
		return Selector{}, firstErr
	}
	return sel, nil
}

func splitTopLevelComma(values []cssvalue.ComponentValue) [][]cssvalue.ComponentValue {
	var groups [][]cssvalue.ComponentValue
	start := 0
	for i, cv := range values {
		if cv.IsToken() && cv.Token.Kind == csstoken.Comma {
			groups = append(groups, values[start:i])
			start = i + 1
		}
	}
	groups = append(groups, values[start:])
	return groups
}

func trimWS(values []cssvalue.ComponentValue) []cssvalue.ComponentValue {
	start := 0
	for start < len(values) && values[start].IsToken() && values[start].Token.Kind == csstoken.Whitespace {
		start++
	}
	end := len(values)
	for end > start && values[end-1].IsToken() && values[end-1].Token.Kind == csstoken.Whitespace {
		end--
	}
	return values[start:end]
}

// parseComplexSelector parses one compound selector followed by zero or
// more (combinator, compound-selector) pairs. When allowLeadingCombinator
// is set, an explicit combinator may appear before the first compound
// (a relative selector, implicitly anchored to :scope).
func parseComplexSelector(c *cursor, allowLeadingCombinator bool) (ComplexSelector, *perr.Error) {
	var result ComplexSelector

	leadingCombinator, hasLeading := tryParseExplicitCombinator(c)
	if hasLeading && !allowLeadingCombinator {
		return ComplexSelector{}, perr.New("unexpected combinator at start of selector", c.offset())
	}
	if hasLeading {
		c.skipWhitespace()
	}

	first, err := parseCompoundSelector(c)
	if err != nil {
		return ComplexSelector{}, err
	}
	comb := Descendant
	if hasLeading {
		comb = leadingCombinator
	}
	result.Entries = append(result.Entries, ComplexEntry{Combinator: comb, Compound: first})

	for {
		hadSpace := c.skipWhitespace()
		if c.atEnd() {
			break
		}
		if cv, ok := c.peek(); ok && cv.IsToken() && cv.Token.Kind == csstoken.Comma {
			break
		}
		combinator := Descendant
		if explicit, ok := tryParseExplicitCombinator(c); ok {
			combinator = explicit
			c.skipWhitespace()
		} else if !hadSpace {
			// No whitespace and no explicit combinator: whatever
			// follows isn't a new compound selector at all (the
			// caller's loop over top-level commas handles this, but a
			// stray token here is a syntax error).
			return ComplexSelector{}, perr.New("unexpected token in selector", c.offset())
		}
		compound, err := parseCompoundSelector(c)
		if err != nil {
			return ComplexSelector{}, err
		}
		result.Entries = append(result.Entries, ComplexEntry{Combinator: combinator, Compound: compound})
	}
	return result, nil
}

// tryParseExplicitCombinator consumes '>', '+', '~', or '||' if present
// at the cursor (optionally preceded by whitespace the caller already
// skipped), reporting ok=false and leaving the cursor untouched
// otherwise.
func tryParseExplicitCombinator(c *cursor) (Combinator, bool) {
	cv, ok := c.peek()
	if !ok || !cv.IsToken() || cv.Token.Kind != csstoken.Delim {
		return 0, false
	}
	switch cv.Token.Delim {
	case '>':
		c.advance()
		return Child, true
	case '+':
		c.advance()
		return NextSibling, true
	case '~':
		c.advance()
		return SubsequentSibling, true
	case '|':
		if next, ok := c.peekAt(1); ok && isDelim(next, '|') {
			c.advance()
			c.advance()
			return Column, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// parseCompoundSelector parses an optional type selector followed by
// any run of id/class/attribute/pseudo-class/pseudo-element selectors,
// with no whitespace between them (whitespace ends the compound).
func parseCompoundSelector(c *cursor) (CompoundSelector, *perr.Error) {
	var comp CompoundSelector

	if ts, ok, err := tryParseTypeSelector(c); err != nil {
		return CompoundSelector{}, err
	} else if ok {
		comp.Entries = append(comp.Entries, CompoundEntry{Kind: EntryType, Type: ts})
	}

	for {
		cv, ok := c.peek()
		if !ok {
			break
		}
		switch {
		case cv.IsToken() && cv.Token.Kind == csstoken.Hash:
			c.advance()
			comp.Entries = append(comp.Entries, CompoundEntry{Kind: EntryID, ID: IDSelector{Name: cv.Token.Text}})

		case isDelim(cv, '.'):
			c.advance()
			name, ok := c.peek()
			if !ok || !name.IsToken() || name.Token.Kind != csstoken.Ident {
				return CompoundSelector{}, perr.New("expected class name after '.'", c.offset())
			}
			c.advance()
			comp.Entries = append(comp.Entries, CompoundEntry{Kind: EntryClass, Class: ClassSelector{Name: name.Token.Text}})

		case cv.IsSimpleBlock() && cv.Token.Kind == csstoken.LBracket:
			c.advance()
			attr, err := parseAttributeSelector(cv)
			if err != nil {
				return CompoundSelector{}, err
			}
			comp.Entries = append(comp.Entries, CompoundEntry{Kind: EntryAttribute, Attribute: attr})

		case cv.IsToken() && cv.Token.Kind == csstoken.Colon:
			c.advance()
			entry, err := parsePseudo(c)
			if err != nil {
				return CompoundSelector{}, err
			}
			comp.Entries = append(comp.Entries, entry)

		default:
			if len(comp.Entries) == 0 {
				return CompoundSelector{}, perr.New("expected a selector", c.offset())
			}
			return comp, nil
		}
	}
	if len(comp.Entries) == 0 {
		return CompoundSelector{}, perr.New("expected a selector", c.offset())
	}
	return comp, nil
}

// tryParseTypeSelector handles the five qualified-name shapes a type
// selector can take: `ns|local`, `*|local`, `|local`, `ns|*`/`*|*`, and
// bare `local`/`*` (no namespace information at all).
func tryParseTypeSelector(c *cursor) (TypeSelector, bool, *perr.Error) {
	cv, ok := c.peek()
	if !ok || !cv.IsToken() {
		return TypeSelector{}, false, nil
	}

	// '|local' or '|*' — explicit empty namespace.
	if isDelim(cv, '|') {
		c.advance()
		local, err := parseLocalNameOrStar(c)
		if err != nil {
			return TypeSelector{}, false, err
		}
		return TypeSelector{Name: QName{HasPrefix: true, Local: local}}, true, nil
	}

	if cv.Token.Kind != csstoken.Ident && !isDelim(cv, '*') {
		return TypeSelector{}, false, nil
	}

	// Two-token lookahead for 'prefix|local'.
	if next, ok := c.peekAt(1); ok && isDelim(next, '|') {
		if after, ok := c.peekAt(2); ok && (after.Token.Kind == csstoken.Ident || isDelim(after, '*')) {
			prefix := tokenText(cv)
			c.advance()
			c.advance()
			local, err := parseLocalNameOrStar(c)
			if err != nil {
				return TypeSelector{}, false, err
			}
			return TypeSelector{Name: QName{Prefix: prefix, HasPrefix: true, Local: local}}, true, nil
		}
	}

	// Bare ident or '*' with no namespace syntax at all.
	c.advance()
	return TypeSelector{Name: QName{Local: tokenText(cv)}}, true, nil
}

func parseLocalNameOrStar(c *cursor) (string, *perr.Error) {
	cv, ok := c.peek()
	if !ok || !cv.IsToken() || (cv.Token.Kind != csstoken.Ident && !isDelim(cv, '*')) {
		return "", perr.New("expected a name or '*' after namespace separator", c.offset())
	}
	c.advance()
	return tokenText(cv), nil
}

func tokenText(cv cssvalue.ComponentValue) string {
	if cv.Token.Kind == csstoken.Delim {
		return string(cv.Token.Delim)
	}
	return cv.Token.Text
}

var attrOpForDelim = map[string]AttrOp{
	"=":  AttrEq,
	"~=": AttrIncludes,
	"|=": AttrDashMatch,
	"^=": AttrPrefixMatch,
	"$=": AttrSuffixMatch,
	"*=": AttrSubstringMatch,
}

// parseAttributeSelector parses the contents of a '[...]' simple block.
func parseAttributeSelector(block cssvalue.ComponentValue) (AttributeSelector, *perr.Error) {
	c := &cursor{vals: trimWS(block.Children)}
	c.skipWhitespace()

	name, ok, err := tryParseAttrName(c)
	if err != nil {
		return AttributeSelector{}, err
	}
	if !ok {
		return AttributeSelector{}, perr.New("expected an attribute name", c.offset())
	}

	c.skipWhitespace()
	if c.atEnd() {
		return AttributeSelector{Name: name, Op: AttrExists}, nil
	}

	op, err := parseAttrOperator(c)
	if err != nil {
		return AttributeSelector{}, err
	}
	c.skipWhitespace()

	cv, ok := c.peek()
	if !ok || !cv.IsToken() || (cv.Token.Kind != csstoken.String && cv.Token.Kind != csstoken.Ident) {
		return AttributeSelector{}, perr.New("expected a string or identifier attribute value", c.offset())
	}
	value := cv.Token.Text
	c.advance()
	c.skipWhitespace()

	caseInsensitive := false
	if cv, ok := c.peek(); ok && cv.IsToken() && cv.Token.Kind == csstoken.Ident {
		switch strings.ToLower(cv.Token.Text) {
		case "i":
			caseInsensitive = true
			c.advance()
		case "s":
			c.advance()
		default:
			return AttributeSelector{}, perr.New(fmt.Sprintf("unexpected attribute modifier %q", cv.Token.Text), c.offset())
		}
	}
	c.skipWhitespace()
	if !c.atEnd() {
		return AttributeSelector{}, perr.New("unexpected trailing content in attribute selector", c.offset())
	}
	return AttributeSelector{Name: name, Op: op, Value: value, CaseInsensitive: caseInsensitive}, nil
}

func tryParseAttrName(c *cursor) (QName, bool, *perr.Error) {
	cv, ok := c.peek()
	if !ok || !cv.IsToken() {
		return QName{}, false, nil
	}

	if isDelim(cv, '|') {
		c.advance()
		local, err := parseLocalNameOrStar(c)
		if err != nil {
			return QName{}, false, err
		}
		return QName{HasPrefix: true, Local: local}, true, nil
	}
	if cv.Token.Kind != csstoken.Ident && !isDelim(cv, '*') {
		return QName{}, false, nil
	}
	if next, ok := c.peekAt(1); ok && isDelim(next, '|') {
		if after, ok := c.peekAt(2); ok && (after.Token.Kind == csstoken.Ident || isDelim(after, '*')) {
			prefix := tokenText(cv)
			c.advance()
			c.advance()
			local, err := parseLocalNameOrStar(c)
			if err != nil {
				return QName{}, false, err
			}
			return QName{Prefix: prefix, HasPrefix: true, Local: local}, true, nil
		}
	}
	if cv.Token.Kind != csstoken.Ident {
		return QName{}, false, nil
	}
	c.advance()
	return QName{Local: cv.Token.Text}, true, nil
}

// parseAttrOperator consumes one of the six match operators. Each is
// tokenized as a Delim (possibly '=' alone) optionally preceded by a
// Delim prefix char ('~','|','^','$','*'); only that shape, '=' alone
// or a prefix Delim directly followed by an '=' Delim, is accepted.
func parseAttrOperator(c *cursor) (AttrOp, *perr.Error) {
	cv, ok := c.peek()
	if !ok || !cv.IsToken() || cv.Token.Kind != csstoken.Delim {
		return 0, perr.New("expected an attribute match operator", c.offset())
	}
	prefix := cv.Token.Delim
	if prefix == '=' {
		c.advance()
		return AttrEq, nil
	}
	if _, ok := attrOpForDelim[string(prefix)+"="]; !ok {
		return 0, perr.New(fmt.Sprintf("unexpected attribute operator %q", string(prefix)), c.offset())
	}
	next, ok := c.peekAt(1)
	if !ok || !isDelim(next, '=') {
		return 0, perr.New("expected '=' to complete attribute operator", c.offset())
	}
	c.advance()
	c.advance()
	return attrOpForDelim[string(prefix)+"="], nil
}

// parsePseudo parses everything after a ':' that the caller already
// consumed: either a second ':' (pseudo-element) or a pseudo-class,
// bare or functional.
func parsePseudo(c *cursor) (CompoundEntry, *perr.Error) {
	if cv, ok := c.peek(); ok && cv.IsToken() && cv.Token.Kind == csstoken.Colon {
		c.advance()
		return parsePseudoElement(c)
	}

	cv, ok := c.peek()
	if ok && cv.IsFunction() {
		c.advance()
		return parsePseudoClassFunction(cv)
	}
	if !ok || !cv.IsToken() {
		return CompoundEntry{}, perr.New("expected a pseudo-class name", c.offset())
	}
	if cv.Token.Kind != csstoken.Ident {
		return CompoundEntry{}, perr.New("expected a pseudo-class name", c.offset())
	}
	c.advance()
	return CompoundEntry{Kind: EntryPseudoClass, PseudoClass: PseudoClassSelector{Ident: cv.Token.Text}}, nil
}

func parsePseudoElement(c *cursor) (CompoundEntry, *perr.Error) {
	cv, ok := c.peek()
	if ok && cv.IsFunction() {
		c.advance()
		return CompoundEntry{Kind: EntryPseudoElement, PseudoElement: PseudoElementSelector{
			Ident: cv.Token.Text, HasArgs: true, Args: cv.Children,
		}}, nil
	}
	if !ok || !cv.IsToken() {
		return CompoundEntry{}, perr.New("expected a pseudo-element name", c.offset())
	}
	if cv.Token.Kind != csstoken.Ident {
		return CompoundEntry{}, perr.New("expected a pseudo-element name", c.offset())
	}
	c.advance()
	return CompoundEntry{Kind: EntryPseudoElement, PseudoElement: PseudoElementSelector{Ident: cv.Token.Text}}, nil
}

var anbFunctionIdents = map[string]bool{
	"nth-child": true, "nth-last-child": true,
	"nth-of-type": true, "nth-last-of-type": true,
}

func parsePseudoClassFunction(fn cssvalue.ComponentValue) (CompoundEntry, *perr.Error) {
	name := fn.FunctionName()
	args := trimWS(fn.Children)

	switch {
	case anbFunctionIdents[name]:
		value, rest, err := anb.Parse(args)
		if err != nil {
			return CompoundEntry{}, err
		}
		rest = trimWS(rest)
		sel := PseudoClassSelector{Ident: fn.Token.Text, HasArgs: true, Args: fn.Children, HasANB: true, ANB: value}
		if len(rest) > 0 {
			inner, err := parseOfClause(rest)
			if err != nil {
				return CompoundEntry{}, err
			}
			sel.Inner = &inner
		}
		return CompoundEntry{Kind: EntryPseudoClass, PseudoClass: sel}, nil

	case name == "is" || name == "where":
		inner, err := ParseForgivingSelectorList(args)
		if err != nil {
			return CompoundEntry{}, err
		}
		return CompoundEntry{Kind: EntryPseudoClass, PseudoClass: PseudoClassSelector{
			Ident: fn.Token.Text, HasArgs: true, Args: fn.Children, Inner: &inner,
		}}, nil

	case name == "not":
		inner, err := Parse(args)
		if err != nil {
			return CompoundEntry{}, err
		}
		return CompoundEntry{Kind: EntryPseudoClass, PseudoClass: PseudoClassSelector{
			Ident: fn.Token.Text, HasArgs: true, Args: fn.Children, Inner: &inner,
		}}, nil

	case name == "has":
		inner, err := ParseForgivingRelativeSelectorList(args)
		if err != nil {
			return CompoundEntry{}, err
		}
		return CompoundEntry{Kind: EntryPseudoClass, PseudoClass: PseudoClassSelector{
			Ident: fn.Token.Text, HasArgs: true, Args: fn.Children, Inner: &inner,
		}}, nil

	default:
		return CompoundEntry{Kind: EntryPseudoClass, PseudoClass: PseudoClassSelector{
			Ident: fn.Token.Text, HasArgs: true, Args: fn.Children,
		}}, nil
	}
}

// parseOfClause parses the "of <complex-selector-list>" tail that may
// follow an An+B value in :nth-child() and friends.
func parseOfClause(rest []cssvalue.ComponentValue) (Selector, *perr.Error) {
	if len(rest) == 0 || !rest[0].IsToken() || rest[0].Token.Kind != csstoken.Ident || !strings.EqualFold(rest[0].Token.Text, "of") {
		return Selector{}, perr.New("expected 'of' after An+B", offsetOf(rest))
	}
	return Parse(rest[1:])
}

func offsetOf(values []cssvalue.ComponentValue) perr.Offset {
	if len(values) == 0 {
		return perr.Offset{}
	}
	return values[0].Token.Offset
}
