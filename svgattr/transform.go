package svgattr

import (
	"fmt"
	"math"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/geom"
	"cssvg/internal/perr"
)

// ParseTransformList parses the SVG/CSS transform-list grammar: a
// whitespace-separated sequence of matrix/translate/scale/rotate/
// skewX/skewY functions. Per the SVG/CSS transform-list semantics, the
// net effect is as if each were applied as nested coordinate systems in
// list order, so "translate(10) rotate(45)" rotates about the
// already-translated origin: the later function in the list (rotate)
// is applied to the point first, and the earlier one (translate) last.
func ParseTransformList(values []cssvalue.ComponentValue) (geom.Transform, *perr.Error) {
	result := geom.Identity
	for _, cv := range trimWS(values) {
		if cv.IsToken() && cv.Token.Kind == csstoken.Whitespace {
			continue
		}
		if !cv.IsFunction() {
			return geom.Transform{}, perr.New(fmt.Sprintf("expected a transform function, got %q", cv.Token.Text), offsetOf(cv))
		}
		t, err := parseTransformFunction(cv)
		if err != nil {
			return geom.Transform{}, err
		}
		result = t.Mult(result)
	}
	return result, nil
}

func parseTransformFunction(fn cssvalue.ComponentValue) (geom.Transform, *perr.Error) {
	nums, err := transformArgs(fn.Children)
	if err != nil {
		return geom.Transform{}, err
	}
	name := fn.FunctionName()
	switch name {
	case "matrix":
		if len(nums) != 6 {
			return geom.Transform{}, perr.New("matrix() requires exactly 6 numbers", fn.Token.Offset)
		}
		return geom.Transform{A: nums[0], B: nums[1], C: nums[2], D: nums[3], E: nums[4], F: nums[5]}, nil

	case "translate":
		switch len(nums) {
		case 1:
			return geom.Translate(nums[0], 0), nil
		case 2:
			return geom.Translate(nums[0], nums[1]), nil
		default:
			return geom.Transform{}, perr.New("translate() requires 1 or 2 numbers", fn.Token.Offset)
		}

	case "scale":
		switch len(nums) {
		case 1:
			return geom.Scale(nums[0], nums[0]), nil
		case 2:
			return geom.Scale(nums[0], nums[1]), nil
		default:
			return geom.Transform{}, perr.New("scale() requires 1 or 2 numbers", fn.Token.Offset)
		}

	case "rotate":
		switch len(nums) {
		case 1:
			return geom.Rotate(nums[0] * math.Pi / 180), nil
		case 3:
			offset := geom.Vector2{X: nums[1], Y: nums[2]}
			return geom.Translate(-offset.X, -offset.Y).
				Mult(geom.Rotate(nums[0] * math.Pi / 180)).
				Mult(geom.Translate(offset.X, offset.Y)), nil
		default:
			return geom.Transform{}, perr.New("rotate() requires 1 or 3 numbers", fn.Token.Offset)
		}

	case "skewx":
		if len(nums) != 1 {
			return geom.Transform{}, perr.New("skewX() requires exactly 1 number", fn.Token.Offset)
		}
		return geom.SkewX(nums[0] * math.Pi / 180), nil

	case "skewy":
		if len(nums) != 1 {
			return geom.Transform{}, perr.New("skewY() requires exactly 1 number", fn.Token.Offset)
		}
		return geom.SkewY(nums[0] * math.Pi / 180), nil

	default:
		return geom.Transform{}, perr.New(fmt.Sprintf("unknown transform function %q", fn.Token.Text), fn.Token.Offset)
	}
}

// transformArgs splits a transform function's arguments on SVG's
// comma-wsp separator, requiring each argument to be a single number.
func transformArgs(children []cssvalue.ComponentValue) ([]float64, *perr.Error) {
	var nums []float64
	i := 0
	children = trimWS(children)
	for i < len(children) {
		cv := children[i]
		if cv.IsToken() && (cv.Token.Kind == csstoken.Whitespace || cv.Token.Kind == csstoken.Comma) {
			i++
			continue
		}
		n, err := ParseNumber(cv)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
		i++
	}
	return nums, nil
}
