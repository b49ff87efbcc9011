package svgattr

import (
	"math"
	"strings"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

// ParseNumber parses a single <number> component value.
func ParseNumber(cv cssvalue.ComponentValue) (float64, *perr.Error) {
	if !cv.IsToken() || cv.Token.Kind != csstoken.Number {
		return 0, perr.New("expected a number", cv.Token.Offset)
	}
	return cv.Token.NumValue, nil
}

var angleUnitToDegrees = map[string]float64{
	"deg": 1, "grad": 0.9, "rad": 180 / math.Pi, "turn": 360,
}

// ParseAngle parses a <number> (bare degrees, SVG's historical
// allowance on presentation attributes like rotate) or <dimension> in
// deg/grad/rad/turn, returning degrees.
func ParseAngle(cv cssvalue.ComponentValue) (float64, *perr.Error) {
	if !cv.IsToken() {
		return 0, perr.New("expected an angle", cv.Token.Offset)
	}
	tok := cv.Token
	switch tok.Kind {
	case csstoken.Number:
		return tok.NumValue, nil
	case csstoken.Dimension:
		factor, ok := angleUnitToDegrees[strings.ToLower(tok.Unit)]
		if !ok {
			return 0, perr.New("unrecognized angle unit", tok.Offset)
		}
		return tok.NumValue * factor, nil
	default:
		return 0, perr.New("expected an angle", tok.Offset)
	}
}
