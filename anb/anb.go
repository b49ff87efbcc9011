// Package anb parses the CSS "An+B" microsyntax used by :nth-child and
// its siblings: https://www.w3.org/TR/css-syntax-3/#anb-microsyntax.
// Its tokenization is famously awkward — "3n-2" is a single dimension
// token with unit text "n-2", "-n-" is a single ident, "+n" is a delim
// followed by an ident — so this package works directly off a
// component-value slice rather than re-deriving text from source.
package anb

import (
	"regexp"
	"strconv"
	"strings"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

// Value is the {a, b} result of a successful parse: the nth-child index
// set is { a*n + b : n >= 0 }.
type Value struct {
	A, B int
}

// identPattern matches a bare ident's An+B text: "n", "-n", "n-5",
// "-n-5". A trailing "-" with no digits in the same ident ("n-", "-n-")
// is not matched. A leading "+" never appears here since the tokenizer
// always splits "+n" into a separate delim and ident.
var identPattern = regexp.MustCompile(`^(-?)n(-([0-9]+))?$`)

// unitPattern matches a dimension token's unit text: "n", "n-5" (not a
// bare "n-").
// The dimension's own sign lives in its NumValue, not in the unit.
var unitPattern = regexp.MustCompile(`^n(-([0-9]+))?$`)

// Parse consumes an An+B value from the front of values (skipping
// leading whitespace) and returns it along with whatever component
// values remain, so callers (the nth-child selector grammar) can go on
// to parse an "of <selector-list>" tail from the remainder.
func Parse(values []cssvalue.ComponentValue) (Value, []cssvalue.ComponentValue, *perr.Error) {
	i := skipWhitespace(values, 0)
	if i >= len(values) {
		return Value{}, nil, perr.New("unexpected end of list", endOffset(values))
	}
	cv := values[i]
	if !cv.IsToken() {
		return Value{}, nil, perr.New("unexpected token", offsetOf(cv))
	}
	tok := cv.Token

	switch {
	case tok.Kind == csstoken.Ident && strings.EqualFold(tok.Text, "even"):
		return Value{A: 2, B: 0}, values[i+1:], nil
	case tok.Kind == csstoken.Ident && strings.EqualFold(tok.Text, "odd"):
		return Value{A: 2, B: 1}, values[i+1:], nil

	case tok.Kind == csstoken.Number:
		n, ok := asInteger(tok)
		if !ok {
			return Value{}, nil, perr.New("unexpected token: non-integer number in An+B", tok.Offset)
		}
		return Value{A: 0, B: n}, values[i+1:], nil

	case tok.Kind == csstoken.Dimension:
		n, ok := asInteger(tok)
		if !ok {
			return Value{}, nil, perr.New("unexpected token: non-integer dimension in An+B", tok.Offset)
		}
		m := unitPattern.FindStringSubmatch(strings.ToLower(tok.Unit))
		if m == nil {
			return Value{}, nil, perr.New("unexpected token: not an An+B unit", tok.Offset)
		}
		return finishA(n, m[2], values, i+1)

	case tok.Kind == csstoken.Ident:
		m := identPattern.FindStringSubmatch(strings.ToLower(tok.Text))
		if m == nil {
			return Value{}, nil, perr.New("unexpected token", tok.Offset)
		}
		a := 1
		if m[1] == "-" {
			a = -1
		}
		return finishA(a, m[3], values, i+1)

	case tok.Kind == csstoken.Delim && tok.Delim == '+':
		// "+n", "+n-5": only valid directly followed (no
		// whitespace) by an ident starting with "n".
		j := i + 1
		if j >= len(values) || !values[j].IsToken() || values[j].Token.Kind != csstoken.Ident {
			return Value{}, nil, perr.New("unexpected token after '+'", tok.Offset)
		}
		next := values[j].Token
		m := unitPattern.FindStringSubmatch(strings.ToLower(next.Text))
		if m == nil {
			return Value{}, nil, perr.New("unexpected token after '+'", tok.Offset)
		}
		return finishA(1, m[2], values, j+1)

	default:
		return Value{}, nil, perr.New("unexpected token", offsetOf(cv))
	}
}

// finishA has already determined A; bDigits is an optional digit-only B
// already embedded in the unit/ident text ("" means no embedded B). It
// then looks for an optional, separately tokenized signed integer to
// serve as B when one wasn't embedded.
func finishA(a int, bDigits string, values []cssvalue.ComponentValue, rest int) (Value, []cssvalue.ComponentValue, *perr.Error) {
	if bDigits != "" {
		b, err := strconv.Atoi(bDigits)
		if err != nil {
			return Value{}, nil, perr.New("malformed An+B integer", offsetAt(values, rest))
		}
		return Value{A: a, B: -b}, values[rest:], nil
	}

	j := skipWhitespace(values, rest)
	if j >= len(values) || !values[j].IsToken() {
		return Value{A: a, B: 0}, values[rest:], nil
	}
	tok := values[j].Token

	switch tok.Kind {
	case csstoken.Delim:
		if tok.Delim != '+' && tok.Delim != '-' {
			return Value{A: a, B: 0}, values[rest:], nil
		}
		sign := 1
		if tok.Delim == '-' {
			sign = -1
		}
		k := skipWhitespace(values, j+1)
		if k >= len(values) || !values[k].IsToken() || values[k].Token.Kind != csstoken.Number {
			return Value{}, nil, perr.New("unexpected end of list: expected integer after sign", tok.Offset)
		}
		bTok := values[k].Token
		n, ok := asInteger(bTok)
		if !ok || strings.HasPrefix(bTok.Verbatim, "+") || strings.HasPrefix(bTok.Verbatim, "-") {
			return Value{}, nil, perr.New("unexpected token: expected unsigned integer after sign", bTok.Offset)
		}
		return Value{A: a, B: sign * n}, values[k+1:], nil
	case csstoken.Number:
		n, ok := asInteger(tok)
		if !ok {
			return Value{}, nil, perr.New("unexpected token: non-integer B", tok.Offset)
		}
		return Value{A: a, B: n}, values[j+1:], nil
	default:
		return Value{A: a, B: 0}, values[rest:], nil
	}
}

func asInteger(tok csstoken.Token) (int, bool) {
	if tok.NumKind != csstoken.KindInteger {
		return 0, false
	}
	return int(tok.NumValue), true
}

func skipWhitespace(values []cssvalue.ComponentValue, i int) int {
	for i < len(values) && values[i].IsToken() && values[i].Token.Kind == csstoken.Whitespace {
		i++
	}
	return i
}

func offsetOf(cv cssvalue.ComponentValue) perr.Offset {
	return cv.Token.Offset
}

func offsetAt(values []cssvalue.ComponentValue, i int) perr.Offset {
	if i < len(values) {
		return offsetOf(values[i])
	}
	return endOffset(values)
}

func endOffset(values []cssvalue.ComponentValue) perr.Offset {
	if len(values) == 0 {
		return perr.Offset{}
	}
	return values[len(values)-1].Token.Offset
}
