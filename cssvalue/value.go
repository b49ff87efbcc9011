// Package cssvalue implements the CSS Syntax Level 3 component-value
// parser: a thin recursive layer over csstoken that groups tokens into a
// tree of plain tokens, functions, and simple blocks, bounded by a fixed
// recursion depth so pathological input can't blow the Go stack.
package cssvalue

import (
	"strings"

	"cssvg/csstoken"
	"cssvg/internal/perr"
)

// maxDepth bounds component-value nesting. Reached only by deliberately
// pathological input; beyond it nested structure is dropped rather than
// recursed into, per the component-value grammar's recursion-depth rule.
const maxDepth = 64

// Kind tags the tagged union of component-value shapes.
type Kind int

const (
	// KindToken is a plain token: anything that doesn't open a block or function.
	KindToken Kind = iota
	// KindFunction is an ident-followed-by-"(" span, terminated by ")".
	KindFunction
	// KindSimpleBlock is a "[…]", "(…)", or "{…}" span.
	KindSimpleBlock
)

// ComponentValue is one node of the component-value tree. For KindToken,
// Token holds the token itself. For KindFunction, Token is the Function
// token (its Text is the function name) and Children holds the
// component values up to (not including) the closing ")". For
// KindSimpleBlock, Token is the opening bracket token (its Kind says
// which bracket) and Children holds the contents up to the matching
// closer.
type ComponentValue struct {
	Kind     Kind
	Token    csstoken.Token
	Children []ComponentValue
}

// IsToken reports whether cv is a plain token.
func (cv ComponentValue) IsToken() bool { return cv.Kind == KindToken }

// IsFunction reports whether cv is a function.
func (cv ComponentValue) IsFunction() bool { return cv.Kind == KindFunction }

// IsSimpleBlock reports whether cv is a simple block.
func (cv ComponentValue) IsSimpleBlock() bool { return cv.Kind == KindSimpleBlock }

// FunctionName returns the function's name, lowercased for
// case-insensitive dispatch. It does not check cv's kind: for a value
// that isn't a function it returns its token's text, lowercased.
func (cv ComponentValue) FunctionName() string {
	return strings.ToLower(cv.Token.Text)
}

// closingKind maps an opening bracket token kind to its closer.
var closingKind = map[csstoken.Kind]csstoken.Kind{
	csstoken.LBracket: csstoken.RBracket,
	csstoken.LParen:   csstoken.RParen,
	csstoken.LBrace:   csstoken.RBrace,
}

// Parser wraps a Tokenizer with the recursion-depth bookkeeping the
// component-value grammar requires.
type Parser struct {
	tz       *csstoken.Tokenizer
	warnings *perr.Collector
	depth    int
}

// NewParser creates a Parser reading from tz. warnings may be nil.
func NewParser(tz *csstoken.Tokenizer, warnings *perr.Collector) *Parser {
	return &Parser{tz: tz, warnings: warnings}
}

// ParseListOfComponentValues consumes component values until EOF. If
// trim is set, leading and trailing whitespace-only tokens are dropped
// from the result (interior whitespace is preserved, since it's
// significant to several downstream grammars — selector combinators,
// An+B, color channel separators).
func ParseListOfComponentValues(tz *csstoken.Tokenizer, warnings *perr.Collector, trim bool) []ComponentValue {
	p := NewParser(tz, warnings)
	list := p.consumeListUntil(csstoken.EOF)
	if trim {
		list = trimWhitespace(list)
	}
	return list
}

func trimWhitespace(list []ComponentValue) []ComponentValue {
	start := 0
	for start < len(list) && list[start].Kind == KindToken && list[start].Token.Kind == csstoken.Whitespace {
		start++
	}
	end := len(list)
	for end > start && list[end-1].Kind == KindToken && list[end-1].Token.Kind == csstoken.Whitespace {
		end--
	}
	return list[start:end]
}

// consumeListUntil consumes component values until a token of the given
// stop kind is the next token (which is itself consumed and discarded)
// or EOF. Pass csstoken.EOF to consume through end of input.
func (p *Parser) consumeListUntil(stop csstoken.Kind) []ComponentValue {
	var out []ComponentValue
	for {
		tok := p.tz.Peek()
		if tok.Kind == csstoken.EOF {
			return out
		}
		if stop != csstoken.EOF && tok.Kind == stop {
			p.tz.Next()
			return out
		}
		out = append(out, p.consumeComponentValue())
	}
}

// ConsumeComponentValue consumes and returns the next component value,
// delegating to a block or function consumer when the next token opens
// one. Exported for callers (selector/anb/color parsers) that work
// directly off a token stream rather than a pre-parsed list.
func (p *Parser) ConsumeComponentValue() ComponentValue {
	return p.consumeComponentValue()
}

func (p *Parser) consumeComponentValue() ComponentValue {
	tok := p.tz.Peek()
	if tok.Kind == csstoken.Function {
		p.tz.Next()
		return p.consumeFunction(tok)
	}
	if _, isOpen := closingKind[tok.Kind]; isOpen {
		p.tz.Next()
		return p.consumeSimpleBlock(tok)
	}
	p.tz.Next()
	return ComponentValue{Kind: KindToken, Token: tok}
}

// consumeSimpleBlock consumes until the matching closer, recursing on
// nested blocks/functions, per "consume a simple block".
func (p *Parser) consumeSimpleBlock(open csstoken.Token) ComponentValue {
	closeKind := closingKind[open.Kind]
	if p.depth >= maxDepth {
		p.warnings.Pushf(open.Offset, "component value nesting exceeds depth limit (%d); dropping nested content", maxDepth)
		p.skipToMatchingClose(open.Kind, closeKind)
		return ComponentValue{Kind: KindSimpleBlock, Token: open}
	}
	p.depth++
	children := p.consumeListUntil(closeKind)
	p.depth--
	return ComponentValue{Kind: KindSimpleBlock, Token: open, Children: children}
}

// consumeFunction consumes until the closing ")", recursing on nested
// blocks/functions, per "consume a function".
func (p *Parser) consumeFunction(name csstoken.Token) ComponentValue {
	if p.depth >= maxDepth {
		p.warnings.Pushf(name.Offset, "component value nesting exceeds depth limit (%d); dropping nested content", maxDepth)
		p.skipToMatchingClose(csstoken.LParen, csstoken.RParen)
		return ComponentValue{Kind: KindFunction, Token: name}
	}
	p.depth++
	children := p.consumeListUntil(csstoken.RParen)
	p.depth--
	return ComponentValue{Kind: KindFunction, Token: name, Children: children}
}

// skipToMatchingClose scans raw tokens (without building a tree) up to
// the bracket that closes the one just opened, tracking nesting of the
// same bracket kind so interior brackets don't prematurely end the
// scan. Function tokens nest like "(" for this purpose. Used only once
// the depth cap is hit, to keep the token stream aligned for whatever
// comes after this block without recursing into it.
func (p *Parser) skipToMatchingClose(open, close csstoken.Kind) {
	depth := 1
	for {
		tok := p.tz.Peek()
		if tok.Kind == csstoken.EOF {
			return
		}
		p.tz.Next()
		switch {
		case tok.Kind == open || (tok.Kind == csstoken.Function && open == csstoken.LParen):
			depth++
		case tok.Kind == close:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}
