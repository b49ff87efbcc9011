package path_test

import (
	"math"
	"testing"

	"cssvg/geom"
	"cssvg/path"
)

func TestArcToQuarterCircle(t *testing.T) {
	// A quarter-circle arc of radius 10 from (10,0) to (0,10), centered at
	// the origin, swept the short way round.
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 10, Y: 0}).
		ArcTo(geom.Vector2{X: 10, Y: 10}, 0, false, true, geom.Vector2{X: 0, Y: 10}).
		Build()

	end := s.PointAt(len(s.Commands)-1, 1.0)
	approxPoint(t, end, geom.Vector2{X: 0, Y: 10}, 1e-6, "arc end point")

	// Every generated point should lie approximately on the circle of
	// radius 10 centered at the origin.
	for _, cmd := range s.Commands {
		if cmd.Type != path.CurveTo {
			continue
		}
		for _, idx := range []int{cmd.PointIndex, cmd.PointIndex + 1, cmd.PointIndex + 2} {
			p := s.Points[idx]
			r := p.Length()
			if math.Abs(r-10) > 0.5 {
				t.Errorf("control/end point %v has radius %v, want ~10", p, r)
			}
		}
	}
}

func TestArcToDegenerateSameEndpointsIsNoop(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 5, Y: 5}).
		ArcTo(geom.Vector2{X: 10, Y: 10}, 0, false, true, geom.Vector2{X: 5, Y: 5}).
		Build()

	if len(s.Commands) != 1 {
		t.Fatalf("len(Commands) = %d, want 1 (arc to same point should be a no-op)", len(s.Commands))
	}
}

func TestArcToZeroRadiusFallsBackToLine(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 0, Y: 0}).
		ArcTo(geom.Vector2{X: 0, Y: 0}, 0, false, true, geom.Vector2{X: 10, Y: 10}).
		Build()

	if len(s.Commands) != 2 || s.Commands[1].Type != path.LineTo {
		t.Fatalf("commands = %v, want [MoveTo LineTo]", s.Commands)
	}
	approxPoint(t, s.Points[s.Commands[1].PointIndex], geom.Vector2{X: 10, Y: 10}, 1e-9, "line endpoint")
}

func TestArcToMarksSegmentsInternal(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 10, Y: 0}).
		ArcTo(geom.Vector2{X: 10, Y: 10}, 0, true, true, geom.Vector2{X: -10, Y: 0}).
		LineTo(geom.Vector2{X: -10, Y: 20}).
		Build()

	// A large-arc sweep decomposes into more than one cubic; all but the
	// very last appended command should be marked internal so Vertices
	// treats the whole arc as a single corner-free run.
	internalCount := 0
	for _, cmd := range s.Commands {
		if cmd.IsInternalPoint {
			internalCount++
		}
	}
	if internalCount == 0 {
		t.Fatal("expected at least one command marked IsInternalPoint for a multi-segment arc")
	}
	last := s.Commands[len(s.Commands)-1]
	if last.IsInternalPoint {
		t.Fatal("the final appended command (the trailing LineTo) must not be marked internal")
	}
}
