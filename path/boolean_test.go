package path_test

import (
	"testing"

	"cssvg/geom"
	"cssvg/path"
)

func TestSegmentForBooleanLineIsSingleSpan(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 0, Y: 0}).
		LineTo(geom.Vector2{X: 10, Y: 0}).
		Build()

	seg := path.SegmentForBoolean(s, 0.1)
	if len(seg.Subpaths) != 1 {
		t.Fatalf("len(Subpaths) = %d, want 1", len(seg.Subpaths))
	}
	if len(seg.Subpaths[0].Spans) != 1 {
		t.Fatalf("len(Spans) = %d, want 1 (a line needs no subdivision)", len(seg.Subpaths[0].Spans))
	}
}

func TestSegmentForBooleanSubdividesCurve(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 0, Y: 0}).
		CurveTo(geom.Vector2{X: 0, Y: 30}, geom.Vector2{X: 10, Y: 30}, geom.Vector2{X: 10, Y: 0}).
		Build()

	seg := path.SegmentForBoolean(s, 0.5)
	spans := seg.Subpaths[0].Spans
	if len(spans) < 2 {
		t.Fatalf("len(Spans) = %d, want > 1 (a bulging curve should subdivide)", len(spans))
	}

	// Spans must be contiguous in parameter space, each picking up where
	// the last left off.
	for i := 1; i < len(spans); i++ {
		approxEqual(t, spans[i-1].EndT, spans[i].StartT, 1e-9, "span boundary continuity")
	}
	approxEqual(t, spans[0].StartT, 0.0, 1e-9, "first span StartT")
	approxEqual(t, spans[len(spans)-1].EndT, 1.0, 1e-9, "last span EndT")
}

func TestSegmentForBooleanMultipleSubpathsStaySeparate(t *testing.T) {
	s := path.NewBuilder().
		MoveTo(geom.Vector2{X: 0, Y: 0}).
		LineTo(geom.Vector2{X: 10, Y: 0}).
		ClosePath().
		MoveTo(geom.Vector2{X: 100, Y: 100}).
		LineTo(geom.Vector2{X: 110, Y: 100}).
		ClosePath().
		Build()

	seg := path.SegmentForBoolean(s, 0.1)
	if len(seg.Subpaths) != 2 {
		t.Fatalf("len(Subpaths) = %d, want 2 (each closed subpath must stay distinct)", len(seg.Subpaths))
	}
	if !seg.Subpaths[0].Closed || !seg.Subpaths[1].Closed {
		t.Fatal("both subpaths should be marked closed")
	}
	approxPoint(t, seg.Subpaths[0].MoveTo, geom.Vector2{X: 0, Y: 0}, 1e-9, "subpath 0 move-to")
	approxPoint(t, seg.Subpaths[1].MoveTo, geom.Vector2{X: 100, Y: 100}, 1e-9, "subpath 1 move-to")
}

func TestSegmentForBooleanZeroToleranceIsRejected(t *testing.T) {
	s := path.NewBuilder().MoveTo(geom.Vector2{}).LineTo(geom.Vector2{X: 1, Y: 1}).Build()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive tolerance")
		}
	}()
	path.SegmentForBoolean(s, 0)
}
