// Package csscolor implements every modern CSS color grammar: hex,
// named colors, legacy and modern rgb()/hsl()/hwb(), the CIE lab()/
// lch() and OKLab oklab()/oklch() spaces, the color(<space> …) function
// with a pluggable space registry, and currentColor. device-cmyk() is
// accepted syntactically but reports a not-implemented error, per this
// module's Open Question resolution (see DESIGN.md).
package csscolor

import (
	"fmt"
	"strings"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

// Kind tags Color's tagged union.
type Kind int

const (
	// KindRGBA is a resolved sRGB color: hex, named, rgb(), hsl(), hwb()
	// all land here, since none of those grammars describe a distinct
	// color space from sRGB.
	KindRGBA Kind = iota
	KindLab
	KindLCH
	KindOKLab
	KindOKLCH
	// KindSpace is color(<ident> c1 c2 c3 [/ a]) in a named color space.
	KindSpace
	KindCurrentColor
	KindNotImplemented
)

// Color is the tagged union over every color grammar this package
// parses. Which of R/G/B/C1/C2/C3/SpaceName is meaningful depends on
// Kind; Alpha is always a 0..1 fraction.
type Color struct {
	Kind  Kind
	R, G, B uint8 // KindRGBA
	C1, C2, C3 float64 // KindLab (L,a,b), KindLCH (L,C,H), KindOKLab/KindOKLCH (same shape in OK-native ranges), KindSpace (space-defined)
	SpaceName string // KindSpace: the resolved space name
	Alpha float64
}

// Space describes one entry in a color-space registry for color().
type Space struct {
	Name string
	// ToRGBA converts this space's three channels (already clamped to
	// whatever range the space defines) plus alpha into sRGB 0..255.
	ToRGBA func(c1, c2, c3, alpha float64) (r, g, b uint8)
}

// Registry is a pluggable set of color() spaces, keyed by lowercase name.
type Registry struct {
	spaces map[string]Space
}

// NewRegistry builds a Registry seeded with the built-in predefined
// color spaces (srgb, srgb-linear, display-p3, a98-rgb, prophoto-rgb,
// rec2020, xyz, xyz-d50, xyz-d65). Callers may Register additional
// spaces or override these.
func NewRegistry() *Registry {
	r := &Registry{spaces: map[string]Space{}}
	for _, s := range builtinSpaces {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a space in the registry.
func (r *Registry) Register(s Space) { r.spaces[strings.ToLower(s.Name)] = s }

// Lookup finds a space by name, case-insensitively.
func (r *Registry) Lookup(name string) (Space, bool) {
	s, ok := r.spaces[strings.ToLower(name)]
	return s, ok
}

// ParseOptions configures Parse. A nil Registry uses NewRegistry()'s
// built-in set.
type ParseOptions struct {
	Registry *Registry
}

// Parse accepts a trimmed span of component values describing a single
// color and dispatches to the matching grammar.
func Parse(values []cssvalue.ComponentValue, opts ParseOptions) (Color, *perr.Error) {
	values = trimWhitespace(values)
	if len(values) == 0 {
		return Color{}, perr.New("unexpected end of list: expected a color", perr.Offset{})
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}

	first := values[0]
	if first.IsToken() {
		switch first.Token.Kind {
		case csstoken.Hash:
			if len(values) != 1 {
				return Color{}, perr.New("unexpected token after hex color", values[1].Token.Offset)
			}
			return parseHex(first.Token)
		case csstoken.Ident:
			if len(values) != 1 {
				return Color{}, perr.New("unexpected token after color keyword", values[1].Token.Offset)
			}
			return parseIdent(first.Token)
		}
	}
	if first.IsFunction() {
		if len(values) != 1 {
			return Color{}, perr.New("unexpected token after color function", values[1].Token.Offset)
		}
		return parseFunction(first, opts)
	}
	return Color{}, perr.New("unexpected token: expected a color", offsetOf(first))
}

func parseIdent(tok csstoken.Token) (Color, *perr.Error) {
	if strings.EqualFold(tok.Text, "currentColor") {
		return Color{Kind: KindCurrentColor}, nil
	}
	if strings.EqualFold(tok.Text, "transparent") {
		return Color{Kind: KindRGBA, Alpha: 0}, nil
	}
	if packed, ok := namedColors[strings.ToLower(tok.Text)]; ok {
		r, g, b, a := unpackRGBA(packed)
		return Color{Kind: KindRGBA, R: r, G: g, B: b, Alpha: float64(a) / 255}, nil
	}
	return Color{}, perr.New(fmt.Sprintf("unknown color keyword %q", tok.Text), tok.Offset)
}

func unpackRGBA(v uint32) (r, g, b, a uint8) {
	return uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// parseHex implements the #rgb/#rgba/#rrggbb/#rrggbbaa forms.
func parseHex(tok csstoken.Token) (Color, *perr.Error) {
	s := tok.Text
	hexDigit := func(c byte) (int, bool) {
		switch {
		case c >= '0' && c <= '9':
			return int(c - '0'), true
		case c >= 'a' && c <= 'f':
			return int(c-'a') + 10, true
		case c >= 'A' && c <= 'F':
			return int(c-'A') + 10, true
		default:
			return 0, false
		}
	}
	digits := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return Color{}, perr.New(fmt.Sprintf("invalid hex color %q", s), tok.Offset)
		}
		digits[i] = d
	}
	expand := func(d int) uint8 { return uint8(d<<4 | d) }
	switch len(s) {
	case 3:
		return Color{Kind: KindRGBA, R: expand(digits[0]), G: expand(digits[1]), B: expand(digits[2]), Alpha: 1}, nil
	case 4:
		return Color{Kind: KindRGBA, R: expand(digits[0]), G: expand(digits[1]), B: expand(digits[2]), Alpha: float64(expand(digits[3])) / 255}, nil
	case 6:
		return Color{
			Kind: KindRGBA,
			R:    uint8(digits[0]<<4 | digits[1]),
			G:    uint8(digits[2]<<4 | digits[3]),
			B:    uint8(digits[4]<<4 | digits[5]),
			Alpha: 1,
		}, nil
	case 8:
		a := uint8(digits[6]<<4 | digits[7])
		return Color{
			Kind: KindRGBA,
			R:    uint8(digits[0]<<4 | digits[1]),
			G:    uint8(digits[2]<<4 | digits[3]),
			B:    uint8(digits[4]<<4 | digits[5]),
			Alpha: float64(a) / 255,
		}, nil
	default:
		return Color{}, perr.New(fmt.Sprintf("hex color must be 3, 4, 6, or 8 digits, got %d", len(s)), tok.Offset)
	}
}

func parseFunction(cv cssvalue.ComponentValue, opts ParseOptions) (Color, *perr.Error) {
	name := cv.FunctionName()
	args := trimWhitespace(cv.Children)
	switch name {
	case "rgb", "rgba":
		return parseRGBFunction(args)
	case "hsl", "hsla":
		return parseHSLFunction(args)
	case "hwb":
		return parseHWBFunction(args)
	case "lab":
		return parseLabLike(args, KindLab, 100, 125)
	case "lch":
		return parseLCHLike(args, KindLCH, 100, 150)
	case "oklab":
		return parseLabLike(args, KindOKLab, 1, 0.4)
	case "oklch":
		return parseLCHLike(args, KindOKLCH, 1, 0.4)
	case "color":
		return parseColorFunction(args, opts)
	case "device-cmyk":
		return Color{Kind: KindNotImplemented}, perr.New("device-cmyk() is not implemented", cv.Token.Offset)
	default:
		return Color{}, perr.New(fmt.Sprintf("unknown color function %q", name), cv.Token.Offset)
	}
}

func offsetOf(cv cssvalue.ComponentValue) perr.Offset { return cv.Token.Offset }
