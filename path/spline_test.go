package path_test

import (
	"math"
	"testing"

	"cssvg/geom"
	"cssvg/path"
)

func approxEqual(t *testing.T, got, want float64, tolerance float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v (tolerance %v)", what, got, want, tolerance)
	}
}

func approxPoint(t *testing.T, got, want geom.Vector2, tolerance float64, what string) {
	t.Helper()
	if !got.NearEquals(want, tolerance) {
		t.Errorf("%s = %v, want %v (tolerance %v)", what, got, want, tolerance)
	}
}

func TestBuilderBasics(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 0, Y: 0}).
		LineTo(geom.Vector2{X: 10, Y: 0}).
		LineTo(geom.Vector2{X: 10, Y: 10}).
		ClosePath().
		Build()

	if s.Empty() {
		t.Fatal("built spline reports Empty")
	}
	if len(s.Commands) != 4 {
		t.Fatalf("len(Commands) = %d, want 4", len(s.Commands))
	}
	if s.Commands[0].Type != path.MoveTo || s.Commands[3].Type != path.ClosePath {
		t.Fatalf("unexpected command sequence: %v", s.Commands)
	}
}

func TestBuilderConsecutiveMoveToCollapses(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 0, Y: 0}).
		MoveTo(geom.Vector2{X: 5, Y: 5}).
		LineTo(geom.Vector2{X: 10, Y: 10}).
		Build()

	if len(s.Commands) != 2 {
		t.Fatalf("len(Commands) = %d, want 2 (consecutive MoveTo should collapse)", len(s.Commands))
	}
	if s.Points[s.Commands[0].PointIndex] != (geom.Vector2{X: 5, Y: 5}) {
		t.Fatalf("collapsed MoveTo point = %v, want (5,5)", s.Points[s.Commands[0].PointIndex])
	}
}

func TestBuilderAutoReopenAfterClose(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 0, Y: 0}).
		LineTo(geom.Vector2{X: 10, Y: 0}).
		ClosePath().
		LineTo(geom.Vector2{X: 0, Y: 10}).
		Build()

	// ClosePath is immediately followed by a drawing command, so a fresh
	// MoveTo should have been silently inserted at the subpath's start.
	var types []path.CommandType
	for _, c := range s.Commands {
		types = append(types, c.Type)
	}
	want := []path.CommandType{path.MoveTo, path.LineTo, path.ClosePath, path.MoveTo, path.LineTo}
	if len(types) != len(want) {
		t.Fatalf("commands = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("commands[%d] = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestLineToWithoutMoveToPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling LineTo before MoveTo")
		}
	}()
	path.NewBuilder().LineTo(geom.Vector2{X: 1, Y: 1})
}

func TestClosePathWithoutOpenPathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling ClosePath with no open path")
		}
	}()
	path.NewBuilder().ClosePath()
}

func TestCircleBounds(t *testing.T) {
	s := path.NewBuilder().Circle(geom.Vector2{X: 10, Y: 10}, 5).Build()
	b := s.Bounds()

	approxPoint(t, b.Min, geom.Vector2{X: 5, Y: 5}, 1e-6, "circle bounds min")
	approxPoint(t, b.Max, geom.Vector2{X: 15, Y: 15}, 1e-6, "circle bounds max")
}

func TestBoundsOnEmptySplinePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic computing Bounds of an empty spline")
		}
	}()
	(&path.Spline{}).Bounds()
}
