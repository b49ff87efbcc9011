// Package geom provides the 2D geometry primitives shared by the selector
// matcher's specificity-free code paths, the SVG attribute parsers, and the
// path spline: vectors, an affine transform, axis-aligned boxes, and the
// small numeric helpers (quadratic solving, epsilon comparisons) that the
// rest of the core leans on.
package geom

import (
	"math"

	"github.com/srwiley/rasterx"
)

const epsilon = 1e-9

// Vector2 is a 2D vector or point, matching the donner Vector2d this
// package is modeled on.
type Vector2 struct {
	X, Y float64
}

func (v Vector2) Add(o Vector2) Vector2      { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2      { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(k float64) Vector2    { return Vector2{v.X * k, v.Y * k} }
func (v Vector2) Negate() Vector2            { return Vector2{-v.X, -v.Y} }
func (v Vector2) Dot(o Vector2) float64      { return v.X*o.X + v.Y*o.Y }
func (v Vector2) Cross(o Vector2) float64    { return v.X*o.Y - v.Y*o.X }
func (v Vector2) LengthSquared() float64     { return v.X*v.X + v.Y*v.Y }
func (v Vector2) Length() float64            { return math.Sqrt(v.LengthSquared()) }
func (v Vector2) DistanceSquared(o Vector2) float64 { return v.Sub(o).LengthSquared() }
func (v Vector2) Distance(o Vector2) float64        { return v.Sub(o).Length() }

// Angle returns the angle of the vector from the positive x-axis, in
// (-π, π], as atan2(y, x).
func (v Vector2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// AngleWith returns the angle between v and o, in [0, π]. Returns 0 when
// either vector has near-zero length.
func (v Vector2) AngleWith(o Vector2) float64 {
	lenProduct := v.Length() * o.Length()
	if NearZero(lenProduct, epsilon) {
		return 0
	}
	cos := Clamp(v.Dot(o)/lenProduct, -1, 1)
	return math.Acos(cos)
}

// Rotate rotates v by radians counter-clockwise.
func (v Vector2) Rotate(radians float64) Vector2 {
	return v.RotateCosSin(math.Cos(radians), math.Sin(radians))
}

// RotateCosSin rotates v using precomputed cos/sin, avoiding repeated
// trig calls when rotating many vectors by the same angle (as the path
// spline's arc decomposition does).
func (v Vector2) RotateCosSin(cos, sin float64) Vector2 {
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Normalize returns a unit vector in the same direction, or the zero
// vector if v's length is near zero.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if NearZero(l, epsilon) {
		return Vector2{}
	}
	return v.Scale(1 / l)
}

// NearEquals reports whether v and o are within ε of each other in both
// components.
func (v Vector2) NearEquals(o Vector2, eps float64) bool {
	return NearEquals(v.X, o.X, eps) && NearEquals(v.Y, o.Y, eps)
}

func (v Vector2) Zero() bool { return v.X == 0 && v.Y == 0 }

// Transform is a row-major affine 2D transform, matching the convention
// SVG and CSS use: x' = a*x + c*y + e, y' = b*x + d*y + f.
//
// The field layout mirrors github.com/srwiley/rasterx.Matrix2D (itself
// the matrix type the teacher's SVG rasterizer builds on) so a Transform
// can be converted to/from a rasterx.Matrix2D with a plain struct literal
// when handing geometry to a rasterizer — this package owns the algebra
// itself rather than guessing at rasterx's method surface, since the
// arithmetic here must match the spec's composition order exactly.
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Transform{A: 1, D: 1}

// ToMatrix2D converts to the rasterx matrix type for handoff to a
// rasterizer.
func (t Transform) ToMatrix2D() rasterx.Matrix2D {
	return rasterx.Matrix2D{A: t.A, B: t.B, C: t.C, D: t.D, E: t.E, F: t.F}
}

// FromMatrix2D builds a Transform from a rasterx matrix.
func FromMatrix2D(m rasterx.Matrix2D) Transform {
	return Transform{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

// Translate returns a translation transform.
func Translate(x, y float64) Transform { return Transform{A: 1, D: 1, E: x, F: y} }

// Scale returns a scale transform.
func Scale(x, y float64) Transform { return Transform{A: x, D: y} }

// Rotate returns a rotation transform by radians counter-clockwise.
func Rotate(radians float64) Transform {
	cos, sin := math.Cos(radians), math.Sin(radians)
	return Transform{A: cos, B: sin, C: -sin, D: cos}
}

// SkewX returns a transform that skews along the x-axis by radians.
func SkewX(radians float64) Transform { return Transform{A: 1, D: 1, C: math.Tan(radians)} }

// SkewY returns a transform that skews along the y-axis by radians.
func SkewY(radians float64) Transform { return Transform{A: 1, D: 1, B: math.Tan(radians)} }

// Mult composes t, then other: the result applies t first, then other,
// i.e. (t.Mult(other)).TransformPosition(p) == other.TransformPosition(t.TransformPosition(p)).
// This is the left-to-right composition order the SVG transform list and
// CSS transform list both use.
func (t Transform) Mult(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.C,
		B: t.A*other.B + t.B*other.D,
		C: t.C*other.A + t.D*other.C,
		D: t.C*other.B + t.D*other.D,
		E: t.E*other.A + t.F*other.C + other.E,
		F: t.E*other.B + t.F*other.D + other.F,
	}
}

// TransformPosition applies the transform to a point (including the
// translation components).
func (t Transform) TransformPosition(p Vector2) Vector2 {
	return Vector2{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// TransformVector applies only the linear part of the transform (no
// translation), appropriate for direction vectors rather than points.
func (t Transform) TransformVector(v Vector2) Vector2 {
	return Vector2{
		X: t.A*v.X + t.C*v.Y,
		Y: t.B*v.X + t.D*v.Y,
	}
}

// IsIdentity reports whether t is the identity transform within ε.
func (t Transform) IsIdentity() bool {
	return NearEquals(t.A, 1, epsilon) && NearEquals(t.D, 1, epsilon) &&
		NearZero(t.B, epsilon) && NearZero(t.C, epsilon) &&
		NearZero(t.E, epsilon) && NearZero(t.F, epsilon)
}

// Inverse returns the inverse transform. Returns Identity if the
// transform is singular (determinant near zero).
func (t Transform) Inverse() Transform {
	det := t.A*t.D - t.B*t.C
	if NearZero(det, epsilon) {
		return Identity
	}
	invDet := 1 / det
	a := t.D * invDet
	b := -t.B * invDet
	c := -t.C * invDet
	d := t.A * invDet
	e := -(a*t.E + c*t.F)
	f := -(b*t.E + d*t.F)
	return Transform{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vector2
	empty    bool
}

// EmptyBoxAt returns a degenerate box that contains only p; subsequent
// AddPoint calls grow it.
func EmptyBoxAt(p Vector2) Box {
	return Box{Min: p, Max: p}
}

// IsEmpty reports whether the box is the empty result of intersecting
// two boxes that do not overlap. A zero-value Box, a box from EmptyBoxAt
// and any box grown by AddPoint all report false.
func (b Box) IsEmpty() bool { return b.empty }

// AddPoint grows the box to include p.
func (b Box) AddPoint(p Vector2) Box {
	return Box{
		Min: Vector2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Vector2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Inflate grows the box by amt in every direction, used by callers that
// want an epsilon-tolerant containment check.
func (b Box) Inflate(amt float64) Box {
	return Box{
		Min: Vector2{X: b.Min.X - amt, Y: b.Min.Y - amt},
		Max: Vector2{X: b.Max.X + amt, Y: b.Max.Y + amt},
	}
}

// Contains reports whether p lies within the box, inclusive of the edges.
func (b Box) Contains(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Intersect returns the intersection of b and o. The result IsEmpty if
// they don't overlap.
func (b Box) Intersect(o Box) Box {
	min := Vector2{X: math.Max(b.Min.X, o.Min.X), Y: math.Max(b.Min.Y, o.Min.Y)}
	max := Vector2{X: math.Min(b.Max.X, o.Max.X), Y: math.Min(b.Max.Y, o.Max.Y)}
	if min.X > max.X || min.Y > max.Y {
		return Box{empty: true}
	}
	return Box{Min: min, Max: max}
}

func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// QuadraticSolution holds the (zero, one, or two) real roots of
// at² + bt + c = 0.
type QuadraticSolution struct {
	Roots   [2]float64
	Count   int
}

// SolveQuadratic solves at² + bt + c = 0 for real roots.
func SolveQuadratic(a, b, c float64) QuadraticSolution {
	if NearZero(a, epsilon) {
		if NearZero(b, epsilon) {
			return QuadraticSolution{}
		}
		return QuadraticSolution{Roots: [2]float64{-c / b}, Count: 1}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return QuadraticSolution{}
	}
	sq := math.Sqrt(disc)
	return QuadraticSolution{Roots: [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}, Count: 2}
}

// NearZero reports whether x is within eps of zero.
func NearZero(x, eps float64) bool { return math.Abs(x) <= eps }

// NearEquals reports whether a and b are within eps of each other.
func NearEquals(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// NormalizeAngleDegrees normalizes an angle in degrees to [0, 360).
func NormalizeAngleDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
