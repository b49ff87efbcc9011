// Package svgattr parses the presentation-attribute microsyntaxes this
// module's rendering pipeline needs beyond plain CSS values: lengths
// with SVG's unitless-number rule, angles, numbers, the transform-list
// grammar, and preserveAspectRatio.
package svgattr

import (
	"fmt"
	"strings"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

// LengthUnit enumerates the units a Length may carry. None is SVG's
// "user unit" (a bare number, interpreted relative to the current
// viewport/font depending on the property).
type LengthUnit int

const (
	UnitNone LengthUnit = iota
	UnitPercent
	UnitEm
	UnitEx
	UnitPx
	UnitIn
	UnitCm
	UnitMm
	UnitPt
	UnitPc
	UnitCh
	UnitRem
	UnitQ
	UnitVw
	UnitVh
	UnitVmin
	UnitVmax
)

var cssUnitToLengthUnit = map[string]LengthUnit{
	"em": UnitEm, "ex": UnitEx, "px": UnitPx, "in": UnitIn,
	"cm": UnitCm, "mm": UnitMm, "pt": UnitPt, "pc": UnitPc,
	"ch": UnitCh, "rem": UnitRem, "q": UnitQ,
	"vw": UnitVw, "vh": UnitVh, "vmin": UnitVmin, "vmax": UnitVmax,
}

// Length is a CSS/SVG <length-percentage>: a number tagged with its unit.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// ToPixels converts a length to pixels given the conversion factors
// that depend on context: the font size (for em/ex/ch/rem), the
// viewport diagonal/width/height (for percent and the v* units), and
// the DPI (for in/cm/mm/pt/pc/Q). fontSize, percentBasis, and dpi must
// all be supplied by the caller from the cascaded/viewport state; this
// package has no notion of either.
func (l Length) ToPixels(fontSize, percentBasis, dpi float64) float64 {
	switch l.Unit {
	case UnitNone, UnitPx:
		return l.Value
	case UnitPercent:
		return l.Value / 100 * percentBasis
	case UnitEm, UnitRem:
		return l.Value * fontSize
	case UnitEx:
		return l.Value * fontSize / 2
	case UnitCh:
		return l.Value * fontSize / 2
	case UnitIn:
		return l.Value * dpi
	case UnitCm:
		return l.Value * dpi / 2.54
	case UnitMm:
		return l.Value * dpi / 25.4
	case UnitQ:
		return l.Value * dpi / 101.6
	case UnitPt:
		return l.Value * dpi / 72
	case UnitPc:
		return l.Value * dpi / 6
	case UnitVw, UnitVh, UnitVmin, UnitVmax:
		return l.Value / 100 * percentBasis
	default:
		return l.Value
	}
}

// ParseLengthPercentage parses a single <length-percentage> component
// value: a dimension token with a recognized unit, a percentage token,
// or — only when allowUserUnits is set — a bare number as a user unit.
// A bare "0" is always accepted regardless of allowUserUnits, matching
// SVG's historical allowance for unitless zero on any length property.
func ParseLengthPercentage(cv cssvalue.ComponentValue, allowUserUnits bool) (Length, *perr.Error) {
	if !cv.IsToken() {
		return Length{}, perr.New("invalid length or percentage", cv.Token.Offset)
	}
	tok := cv.Token
	switch tok.Kind {
	case csstoken.Dimension:
		unit, ok := cssUnitToLengthUnit[strings.ToLower(tok.Unit)]
		if !ok {
			return Length{}, perr.New(fmt.Sprintf("unrecognized length unit %q", tok.Unit), tok.Offset)
		}
		return Length{Value: tok.NumValue, Unit: unit}, nil
	case csstoken.Percentage:
		return Length{Value: tok.NumValue, Unit: UnitPercent}, nil
	case csstoken.Number:
		if tok.NumValue == 0 {
			return Length{Value: 0, Unit: UnitNone}, nil
		}
		if allowUserUnits {
			return Length{Value: tok.NumValue, Unit: UnitNone}, nil
		}
	}
	return Length{}, perr.New("invalid length or percentage", tok.Offset)
}

// ParseLengthPercentageList parses a sequence of component values
// expected to hold exactly one length-percentage (callers have already
// split a property value on whitespace/commas as appropriate).
func ParseLengthPercentageList(values []cssvalue.ComponentValue, allowUserUnits bool) (Length, *perr.Error) {
	values = trimWS(values)
	if len(values) == 0 {
		return Length{}, perr.New("unexpected end of input", perr.Offset{})
	}
	if len(values) > 1 {
		return Length{}, perr.New("unexpected token when parsing length or percentage", offsetOf(values[1]))
	}
	return ParseLengthPercentage(values[0], allowUserUnits)
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

func offsetOf(cv cssvalue.ComponentValue) perr.Offset { return cv.Token.Offset }
