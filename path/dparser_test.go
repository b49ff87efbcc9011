package path_test

import (
	"testing"

	"cssvg/geom"
	"cssvg/path"
)

func mustParse(t *testing.T, d string) *path.Spline {
	t.Helper()
	res := path.ParsePath(d)
	if !res.Ok() {
		t.Fatalf("ParsePath(%q) failed: %v", d, res.Err)
	}
	return res.Value
}

func TestParsePathMoveLineClose(t *testing.T) {
	s := mustParse(t, "M0 0 L10 0 L10 10 Z")
	if len(s.Commands) != 4 {
		t.Fatalf("len(Commands) = %d, want 4", len(s.Commands))
	}
	want := []path.CommandType{path.MoveTo, path.LineTo, path.LineTo, path.ClosePath}
	for i, w := range want {
		if s.Commands[i].Type != w {
			t.Errorf("commands[%d] = %v, want %v", i, s.Commands[i].Type, w)
		}
	}
}

func TestParsePathImplicitLineToAfterMoveTo(t *testing.T) {
	// A MoveTo followed by extra coordinate pairs (no repeated "L") is
	// implicit LineTo.
	s := mustParse(t, "M0,0 10,0 10,10")
	if len(s.Commands) != 3 {
		t.Fatalf("len(Commands) = %d, want 3", len(s.Commands))
	}
	if s.Commands[1].Type != path.LineTo || s.Commands[2].Type != path.LineTo {
		t.Fatalf("commands = %v, want implicit LineTo after MoveTo", s.Commands)
	}
}

func TestParsePathRelativeCommands(t *testing.T) {
	s := mustParse(t, "m10,10 l5,0 l0,5")
	approxPoint(t, s.Points[s.Commands[0].PointIndex], geom.Vector2{X: 10, Y: 10}, 1e-9, "move-to")
	approxPoint(t, s.Points[s.Commands[1].PointIndex], geom.Vector2{X: 15, Y: 10}, 1e-9, "relative line 1")
	approxPoint(t, s.Points[s.Commands[2].PointIndex], geom.Vector2{X: 15, Y: 15}, 1e-9, "relative line 2")
}

func TestParsePathHorizontalVerticalLineTo(t *testing.T) {
	s := mustParse(t, "M0,0 H10 V10 h-5 v-5")
	got := make([]geom.Vector2, len(s.Commands))
	for i, cmd := range s.Commands {
		got[i] = s.Points[cmd.PointIndex]
	}
	want := []geom.Vector2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 10}, {X: 5, Y: 5}}
	for i := range want {
		approxPoint(t, got[i], want[i], 1e-9, "H/V command point")
	}
}

func TestParsePathCurveTo(t *testing.T) {
	s := mustParse(t, "M0,0 C0,10 10,10 10,0")
	if s.Commands[1].Type != path.CurveTo {
		t.Fatalf("commands[1] = %v, want CurveTo", s.Commands[1].Type)
	}
	approxPoint(t, s.PointAt(1, 1.0), geom.Vector2{X: 10, Y: 0}, 1e-9, "curve end")
}

func TestParsePathSmoothCurveReflectsPreviousControl(t *testing.T) {
	// After "C0,10 10,10 10,0", the reflection of (10,10) through the
	// current point (10,0) is (10,-10); "s" continues with that as its
	// first control point.
	s := mustParse(t, "M0,0 C0,10 10,10 10,0 s10,-10 20,0")
	c1 := s.Points[s.Commands[2].PointIndex]
	approxPoint(t, c1, geom.Vector2{X: 10, Y: -10}, 1e-6, "reflected control point")
}

func TestParsePathSmoothCurveWithoutPrecedingCurveUsesCurrentPoint(t *testing.T) {
	// "S" immediately after a MoveTo (no preceding C/S) must use the
	// current point itself as the first control point.
	s := mustParse(t, "M0,0 S10,10 20,0")
	c1 := s.Points[s.Commands[1].PointIndex]
	approxPoint(t, c1, geom.Vector2{X: 0, Y: 0}, 1e-9, "fallback control point")
}

func TestParsePathQuadraticElevatesToCubic(t *testing.T) {
	s := mustParse(t, "M0,0 Q10,10 20,0")
	if s.Commands[1].Type != path.CurveTo {
		t.Fatalf("quadratic should elevate to a cubic CurveTo, got %v", s.Commands[1].Type)
	}
	// The elevated cubic must still pass through the same endpoints.
	approxPoint(t, s.PointAt(1, 0.0), geom.Vector2{X: 0, Y: 0}, 1e-9, "quad start")
	approxPoint(t, s.PointAt(1, 1.0), geom.Vector2{X: 20, Y: 0}, 1e-9, "quad end")
}

func TestParsePathSmoothQuadraticReflectsPreviousControl(t *testing.T) {
	s := mustParse(t, "M0,0 Q10,10 20,0 T40,0")
	// Reflection of (10,10) through (20,0) is (30,-10); the elevated
	// cubic's first control point should reflect that quadratic control.
	c1 := s.Points[s.Commands[2].PointIndex]
	expectedQuadControl := geom.Vector2{X: 30, Y: -10}
	expectedCubicC1 := geom.Vector2{X: 20, Y: 0}.Add(expectedQuadControl.Sub(geom.Vector2{X: 20, Y: 0}).Scale(2.0 / 3.0))
	approxPoint(t, c1, expectedCubicC1, 1e-6, "smooth quadratic elevated control")
}

func TestParsePathEllipticalArc(t *testing.T) {
	s := mustParse(t, "M10,0 A10,10 0 0,1 0,10")
	if s.Commands[1].Type != path.CurveTo {
		t.Fatalf("arc should append at least one CurveTo, got %v", s.Commands[1].Type)
	}
	last := len(s.Commands) - 1
	approxPoint(t, s.PointAt(last, 1.0), geom.Vector2{X: 0, Y: 10}, 1e-6, "arc end")
}

func TestParsePathCloseThenReopen(t *testing.T) {
	s := mustParse(t, "M0,0 L10,0 Z L0,10")
	var types []path.CommandType
	for _, c := range s.Commands {
		types = append(types, c.Type)
	}
	want := []path.CommandType{path.MoveTo, path.LineTo, path.ClosePath, path.MoveTo, path.LineTo}
	if len(types) != len(want) {
		t.Fatalf("commands = %v, want %v", types, want)
	}
}

func TestParsePathNumbersWithoutSeparators(t *testing.T) {
	s := mustParse(t, "M0,0 l-1-2 1.5.5")
	approxPoint(t, s.Points[s.Commands[1].PointIndex], geom.Vector2{X: -1, Y: -2}, 1e-9, "glued signed numbers")
	approxPoint(t, s.Points[s.Commands[2].PointIndex], geom.Vector2{X: -1 + 1.5, Y: -2 + 0.5}, 1e-9, "glued decimal numbers")
}

func TestParsePathMissingLeadingMoveToIsError(t *testing.T) {
	res := path.ParsePath("L10,10")
	if res.Ok() {
		t.Fatal("expected an error when the path doesn't start with M/m")
	}
}

func TestParsePathLeadingCommaIsError(t *testing.T) {
	res := path.ParsePath("M0,0 ,L10,10")
	if res.Ok() {
		t.Fatal("expected an error for a comma immediately before a command")
	}
	if res.Value == nil || len(res.Value.Commands) == 0 {
		t.Fatal("expected the partial result (at least the MoveTo) to be returned alongside the error")
	}
}

func TestParsePathDoubleCommaIsError(t *testing.T) {
	res := path.ParsePath("M0,,0")
	if res.Ok() {
		t.Fatal("expected an error for a doubled comma")
	}
}

func TestParsePathCommaAtEndOfStringIsError(t *testing.T) {
	res := path.ParsePath("M0,0 L10,10,")
	if res.Ok() {
		t.Fatal("expected an error for a trailing comma at end of string")
	}
}

func TestParsePathEmptyStringIsValidEmptySpline(t *testing.T) {
	res := path.ParsePath("")
	if !res.Ok() {
		t.Fatalf("empty path data should parse successfully, got error: %v", res.Err)
	}
	if !res.Value.Empty() {
		t.Fatal("empty path data should produce an empty spline")
	}
}
