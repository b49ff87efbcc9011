package svgattr_test

import (
	"math"
	"testing"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/geom"
	"cssvg/svgattr"
)

func parseValues(src string) []cssvalue.ComponentValue {
	tz := csstoken.New(src)
	return cssvalue.ParseListOfComponentValues(tz, nil, true)
}

func TestParseLengthPercentage(t *testing.T) {
	l, err := svgattr.ParseLengthPercentageList(parseValues("10px"), false)
	if err != nil || l.Value != 10 || l.Unit != svgattr.UnitPx {
		t.Fatalf("got %+v, %v", l, err)
	}
	l, err = svgattr.ParseLengthPercentageList(parseValues("50%"), false)
	if err != nil || l.Value != 50 || l.Unit != svgattr.UnitPercent {
		t.Fatalf("got %+v, %v", l, err)
	}
	l, err = svgattr.ParseLengthPercentageList(parseValues("0"), false)
	if err != nil || l.Value != 0 || l.Unit != svgattr.UnitNone {
		t.Fatalf("got %+v, %v", l, err)
	}
	if _, err := svgattr.ParseLengthPercentageList(parseValues("5"), false); err == nil {
		t.Fatal("expected an error for a non-zero bare number without allowUserUnits")
	}
	l, err = svgattr.ParseLengthPercentageList(parseValues("5"), true)
	if err != nil || l.Value != 5 || l.Unit != svgattr.UnitNone {
		t.Fatalf("got %+v, %v", l, err)
	}
}

func TestParseAngle(t *testing.T) {
	vals := parseValues("90deg")
	deg, err := svgattr.ParseAngle(vals[0])
	if err != nil || deg != 90 {
		t.Fatalf("got %v, %v", deg, err)
	}
	vals = parseValues("0.5turn")
	deg, err = svgattr.ParseAngle(vals[0])
	if err != nil || deg != 180 {
		t.Fatalf("got %v, %v", deg, err)
	}
}

func TestParseTransformListTranslateScaleRotate(t *testing.T) {
	tr, err := svgattr.ParseTransformList(parseValues("translate(10, 20)"))
	if err != nil {
		t.Fatalf("ParseTransformList failed: %v", err)
	}
	if tr.E != 10 || tr.F != 20 {
		t.Fatalf("got %+v", tr)
	}

	tr, err = svgattr.ParseTransformList(parseValues("scale(2)"))
	if err != nil {
		t.Fatalf("ParseTransformList failed: %v", err)
	}
	if tr.A != 2 || tr.D != 2 {
		t.Fatalf("got %+v", tr)
	}

	tr, err = svgattr.ParseTransformList(parseValues("rotate(90)"))
	if err != nil {
		t.Fatalf("ParseTransformList failed: %v", err)
	}
	if math.Abs(tr.A) > 1e-9 || math.Abs(tr.B-1) > 1e-9 {
		t.Fatalf("got %+v", tr)
	}
}

func TestParseTransformListMatrixAndCompose(t *testing.T) {
	tr, err := svgattr.ParseTransformList(parseValues("matrix(1,0,0,1,5,5) translate(1,1)"))
	if err != nil {
		t.Fatalf("ParseTransformList failed: %v", err)
	}
	if tr.E != 6 || tr.F != 6 {
		t.Fatalf("got %+v", tr)
	}
}

func TestParseTransformListNestedCompositionOrder(t *testing.T) {
	// translate(10,0) rotate(90) rotates a point about its local origin
	// before shifting it, matching the "nested coordinate system"
	// reading: the origin (0,0) stays fixed under rotation, then lands
	// at (10,0) after the translation.
	tr, err := svgattr.ParseTransformList(parseValues("translate(10,0) rotate(90)"))
	if err != nil {
		t.Fatalf("ParseTransformList failed: %v", err)
	}
	p := tr.TransformPosition(geom.Vector2{X: 0, Y: 0})
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Fatalf("got %+v, want (10, 0)", p)
	}
}

func TestParseTransformListInvalidArgCount(t *testing.T) {
	if _, err := svgattr.ParseTransformList(parseValues("translate(1,2,3)")); err == nil {
		t.Fatal("expected an error for too many translate() args")
	}
}

func TestParsePreserveAspectRatio(t *testing.T) {
	par, err := svgattr.ParsePreserveAspectRatio(parseValues("xMidYMid meet"))
	if err != nil || par.Align != svgattr.AlignXMidYMid || par.MeetOrSlice != svgattr.Meet {
		t.Fatalf("got %+v, %v", par, err)
	}
	par, err = svgattr.ParsePreserveAspectRatio(parseValues("none"))
	if err != nil || par.Align != svgattr.AlignNone {
		t.Fatalf("got %+v, %v", par, err)
	}
	par, err = svgattr.ParsePreserveAspectRatio(parseValues("defer xMaxYMax slice"))
	if err != nil || !par.Defer || par.Align != svgattr.AlignXMaxYMax || par.MeetOrSlice != svgattr.Slice {
		t.Fatalf("got %+v, %v", par, err)
	}
}
