package geom_test

import (
	"math"
	"testing"

	"github.com/srwiley/rasterx"

	"cssvg/geom"
)

func TestTransformMatrixTransformPosition(t *testing.T) {
	// matrix(1 2 3 4 5 6) from S6: row-major [[1,2],[3,4],[5,6]]
	m := geom.Transform{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	p := m.TransformPosition(geom.Vector2{X: 1, Y: 1})
	want := geom.Vector2{X: 1*1 + 3*1 + 5, Y: 2*1 + 4*1 + 6}
	if !p.NearEquals(want, 1e-9) {
		t.Fatalf("got %v want %v", p, want)
	}
}

func TestRotateAroundPoint(t *testing.T) {
	// translate(50,50) rotate(90) translate(-50,-50), composed left to right,
	// applied to (50,0) should yield (100,50) per S6.
	t1 := geom.Translate(50, 50)
	r := geom.Rotate(math.Pi / 2)
	t2 := geom.Translate(-50, -50)
	combined := t2.Mult(r).Mult(t1)
	got := combined.TransformPosition(geom.Vector2{X: 50, Y: 0})
	want := geom.Vector2{X: 100, Y: 50}
	if !got.NearEquals(want, 1e-6) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSolveQuadraticTwoRoots(t *testing.T) {
	sol := geom.SolveQuadratic(1, -3, 2) // (t-1)(t-2)
	if sol.Count != 2 {
		t.Fatalf("expected 2 roots, got %d", sol.Count)
	}
}

func TestTransformMatrix2DRoundTrip(t *testing.T) {
	// ToMatrix2D/FromMatrix2D are the handoff point to a rasterx-based
	// rasterizer: a Transform must survive the trip through rasterx's
	// matrix type unchanged.
	orig := geom.Transform{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	m := orig.ToMatrix2D()
	want := rasterx.Matrix2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	if m != want {
		t.Fatalf("ToMatrix2D() = %+v, want %+v", m, want)
	}
	if back := geom.FromMatrix2D(m); back != orig {
		t.Fatalf("FromMatrix2D(ToMatrix2D(t)) = %+v, want %+v", back, orig)
	}
}

func TestBoxIntersect(t *testing.T) {
	a := geom.EmptyBoxAt(geom.Vector2{X: 0, Y: 0}).AddPoint(geom.Vector2{X: 10, Y: 10})
	b := geom.EmptyBoxAt(geom.Vector2{X: 5, Y: 5}).AddPoint(geom.Vector2{X: 15, Y: 15})
	i := a.Intersect(b)
	if i.IsEmpty() {
		t.Fatal("expected overlap")
	}
	if i.Min != (geom.Vector2{X: 5, Y: 5}) || i.Max != (geom.Vector2{X: 10, Y: 10}) {
		t.Fatalf("got %+v", i)
	}
}
