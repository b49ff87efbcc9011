package path

import (
	"math"

	"cssvg/geom"
)

const (
	lengthTolerance    = 1e-3
	maxRecursionDepth   = 10
	isInsideTolerance  = 0.1
)

// startPoint returns the point the command at index starts from — the
// endpoint of the previous command, or its own point for a MoveTo.
func (s *Spline) startPoint(index int) geom.Vector2 {
	cmd := s.Commands[index]
	if cmd.Type == MoveTo {
		return s.Points[cmd.PointIndex]
	}
	prev := s.Commands[index-1]
	if prev.Type == CurveTo {
		return s.Points[prev.PointIndex+2]
	}
	return s.Points[prev.PointIndex]
}

// Bounds returns the spline's axis-aligned bounding box.
func (s *Spline) Bounds() geom.Box {
	return s.TransformedBounds(geom.Identity)
}

// TransformedBounds returns the bounding box of the spline after applying
// transform to every point, computed analytically: each curve-to segment
// contributes its endpoints plus the real roots in [0,1] of its
// derivative, evaluated and transformed individually, so the box is exact
// rather than an approximation from the (untransformed) control points.
func (s *Spline) TransformedBounds(transform geom.Transform) geom.Box {
	if s.Empty() {
		panic("Bounds called on an empty spline")
	}

	box := geom.EmptyBoxAt(transform.TransformPosition(s.Points[0]))
	var current geom.Vector2

	for i, cmd := range s.Commands {
		switch cmd.Type {
		case MoveTo, LineTo, ClosePath:
			current = s.Points[cmd.PointIndex]
			box = box.AddPoint(transform.TransformPosition(current))

		case CurveTo:
			start := current
			c1 := s.Points[cmd.PointIndex]
			c2 := s.Points[cmd.PointIndex+1]
			end := s.Points[cmd.PointIndex+2]

			box = box.AddPoint(transform.TransformPosition(start))
			box = box.AddPoint(transform.TransformPosition(end))
			current = end

			// Coefficients of the derivative 3At^2+2Bt+C of the cubic
			// Bézier, reduced to at^2+bt+c form (see PointAt for the
			// curve itself), taken from the transformed control points so
			// the roots are the extrema of the transformed curve.
			tStart, tC1 := transform.TransformPosition(start), transform.TransformPosition(c1)
			tC2, tEnd := transform.TransformPosition(c2), transform.TransformPosition(end)
			a := tStart.Negate().Add(tC1.Scale(3)).Sub(tC2.Scale(3)).Add(tEnd).Scale(3)
			b := tStart.Add(tC2).Sub(tC1.Scale(2)).Scale(6)
			c := tStart.Negate().Add(tC1).Scale(3)

			box = addAxisExtrema(box, s, i, transform, a.X, b.X, c.X)
			box = addAxisExtrema(box, s, i, transform, a.Y, b.Y, c.Y)
		}
	}

	return box
}

// addAxisExtrema adds the bounds contribution of any root of a*t^2+b*t+c
// (the derivative of one axis of a cubic segment) that falls in [0,1].
func addAxisExtrema(box geom.Box, s *Spline, index int, transform geom.Transform, a, b, c float64) geom.Box {
	addRoot := func(t float64) {
		if t >= 0.0 && t <= 1.0 {
			box = box.AddPoint(transform.TransformPosition(s.PointAt(index, t)))
		}
	}

	if geom.NearZero(a, 1e-9) {
		if !geom.NearZero(b, 1e-9) {
			addRoot(-c / b)
		}
		return box
	}

	res := geom.SolveQuadratic(a, b, c)
	for i := 0; i < res.Count; i++ {
		addRoot(res.Roots[i])
	}
	return box
}

// computeMiter adds the extreme point of a miter joint between two
// segments meeting at currentPoint to box, unless the miter length
// exceeds miterLimit or the join is a straight line (where a miter
// doesn't apply in a consistent direction).
func computeMiter(box geom.Box, currentPoint, tangent0, tangent1 geom.Vector2, strokeWidth, miterLimit float64) geom.Box {
	intersectionAngle := tangent0.AngleWith(tangent1.Negate())

	miterLength := strokeWidth / math.Sin(intersectionAngle*0.5)
	if miterLength < miterLimit && !geom.NearEquals(intersectionAngle, math.Pi, 1e-9) {
		jointAngle := tangent0.Sub(tangent1).Angle()
		box = box.AddPoint(currentPoint.Add(geom.Vector2{X: math.Cos(jointAngle), Y: math.Sin(jointAngle)}.Scale(miterLength)))
	}
	return box
}

// StrokeMiterBounds returns the bounds of the extra extent a stroke with
// the given width and miter limit adds at each vertex, beyond the fill
// bounds. ClosePath contributes two joins: the close segment meeting the
// last drawn segment, and the close segment meeting the first segment of
// the subpath it reopens.
func (s *Spline) StrokeMiterBounds(strokeWidth, miterLimit float64) geom.Box {
	if s.Empty() {
		panic("StrokeMiterBounds called on an empty spline")
	}

	box := geom.EmptyBoxAt(s.Points[0])
	var current geom.Vector2
	lastIndex := noIndex
	lastMoveToIndex := noIndex

	for i, cmd := range s.Commands {
		switch cmd.Type {
		case MoveTo:
			current = s.Points[cmd.PointIndex]
			box = box.AddPoint(current)
			lastIndex = noIndex
			lastMoveToIndex = i

		case ClosePath:
			if lastIndex != noIndex {
				lastTangent := s.TangentAt(lastIndex, 1.0)
				tangent := s.TangentAt(i, 0.0)
				box = computeMiter(box, current, lastTangent, tangent, strokeWidth, miterLimit)
				current = s.Points[cmd.PointIndex]

				joinTangent := s.TangentAt(lastMoveToIndex, 0.0)
				box = computeMiter(box, current, tangent, joinTangent, strokeWidth, miterLimit)
			}
			lastIndex = noIndex

		case LineTo:
			if lastIndex != noIndex {
				box = computeMiter(box, current, s.TangentAt(lastIndex, 1.0), s.TangentAt(i, 0.0), strokeWidth, miterLimit)
			}
			current = s.Points[cmd.PointIndex]
			box = box.AddPoint(current)
			lastIndex = i

		case CurveTo:
			if lastIndex != noIndex {
				box = computeMiter(box, current, s.TangentAt(lastIndex, 1.0), s.TangentAt(i, 0.0), strokeWidth, miterLimit)
			}
			current = s.Points[cmd.PointIndex+2]
			box = box.AddPoint(current)
			lastIndex = i
		}
	}

	return box
}

// PointAt evaluates the command at index at parameter t in [0,1].
func (s *Spline) PointAt(index int, t float64) geom.Vector2 {
	cmd := s.Commands[index]
	switch cmd.Type {
	case MoveTo:
		return s.startPoint(index)
	case LineTo, ClosePath:
		start := s.startPoint(index)
		revT := 1.0 - t
		return start.Scale(revT).Add(s.Points[cmd.PointIndex].Scale(t))
	case CurveTo:
		start := s.startPoint(index)
		revT := 1.0 - t
		p1, p2, p3 := s.Points[cmd.PointIndex], s.Points[cmd.PointIndex+1], s.Points[cmd.PointIndex+2]
		return start.Scale(revT * revT * revT).
			Add(p1.Scale(3 * t * revT * revT)).
			Add(p2.Scale(3 * t * t * revT)).
			Add(p3.Scale(t * t * t))
	default:
		return geom.Vector2{}
	}
}

// TangentAt returns the (unnormalized) first derivative at parameter t.
// For a cubic with coincident control points the derivative can vanish
// exactly at t=0 or t=1; in that case it's evaluated at a nudged t
// instead of returning a zero vector.
func (s *Spline) TangentAt(index int, t float64) geom.Vector2 {
	cmd := s.Commands[index]
	switch cmd.Type {
	case MoveTo:
		if index+1 < len(s.Commands) {
			return s.TangentAt(index+1, 0.0)
		}
		return geom.Vector2{}

	case LineTo, ClosePath:
		return s.Points[cmd.PointIndex].Sub(s.startPoint(index))

	case CurveTo:
		revT := 1.0 - t
		start := s.startPoint(index)
		p10 := s.Points[cmd.PointIndex].Sub(start)
		p21 := s.Points[cmd.PointIndex+1].Sub(s.Points[cmd.PointIndex])
		p32 := s.Points[cmd.PointIndex+2].Sub(s.Points[cmd.PointIndex+1])

		derivative := p10.Scale(revT * revT).Add(p21.Scale(2 * t * revT)).Add(p32.Scale(t * t)).Scale(3)
		if geom.NearZero(derivative.LengthSquared(), 1e-9) {
			switch {
			case geom.NearEquals(t, 0.0, 1e-6):
				return s.TangentAt(index, 0.01)
			case geom.NearEquals(t, 1.0, 1e-6):
				return s.TangentAt(index, 0.99)
			default:
				return derivative
			}
		}
		return derivative

	default:
		return geom.Vector2{}
	}
}

// NormalAt returns the tangent at t rotated 90 degrees.
func (s *Spline) NormalAt(index int, t float64) geom.Vector2 {
	tangent := s.TangentAt(index, t)
	return geom.Vector2{X: -tangent.Y, Y: tangent.X}
}

// distanceFromPointToLine returns the distance from p to the segment ab.
func distanceFromPointToLine(p, a, b geom.Vector2) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	abLenSq := ab.LengthSquared()
	if geom.NearZero(abLenSq, 1e-9) {
		return ap.Length()
	}
	t := geom.Clamp(ap.Dot(ab)/abLenSq, 0.0, 1.0)
	projection := a.Add(ab.Scale(t))
	return p.Sub(projection).Length()
}

func maxControlDistance(p0, p1, p2, p3 geom.Vector2) float64 {
	return math.Max(distanceFromPointToLine(p1, p0, p3), distanceFromPointToLine(p2, p0, p3))
}

func isCurveFlatEnough(p0, p1, p2, p3 geom.Vector2, tolerance float64) bool {
	return maxControlDistance(p0, p1, p2, p3) <= tolerance
}

func subdivideCubic(p0, p1, p2, p3 geom.Vector2) (left, right [4]geom.Vector2) {
	p01 := p0.Add(p1).Scale(0.5)
	p12 := p1.Add(p2).Scale(0.5)
	p23 := p2.Add(p3).Scale(0.5)
	p012 := p01.Add(p12).Scale(0.5)
	p123 := p12.Add(p23).Scale(0.5)
	p0123 := p012.Add(p123).Scale(0.5)
	return [4]geom.Vector2{p0, p01, p012, p0123}, [4]geom.Vector2{p0123, p123, p23, p3}
}

// subdivideAndMeasureCubic approximates curve length with the standard
// "chord vs control-net length" flatness test: a segment is flat enough
// once its control polygon's length is within tolerance of the straight
// chord, at which point the average of the two is used as the length.
func subdivideAndMeasureCubic(p0, p1, p2, p3 geom.Vector2, tolerance float64, depth int) float64 {
	if depth > maxRecursionDepth {
		return p0.Distance(p3)
	}

	chordLength := p3.Sub(p0).Length()
	netLength := p1.Sub(p0).Length() + p2.Sub(p1).Length() + p3.Sub(p2).Length()
	if netLength-chordLength <= tolerance {
		return (netLength + chordLength) / 2.0
	}

	left, right := subdivideCubic(p0, p1, p2, p3)
	return subdivideAndMeasureCubic(left[0], left[1], left[2], left[3], tolerance, depth+1) +
		subdivideAndMeasureCubic(right[0], right[1], right[2], right[3], tolerance, depth+1)
}

// PathLength returns the total length of the spline: straight-line
// distance for lines and close segments, adaptively-subdivided length for
// curves.
func (s *Spline) PathLength() float64 {
	var total float64
	var start geom.Vector2

	for _, cmd := range s.Commands {
		switch cmd.Type {
		case MoveTo:
			start = s.Points[cmd.PointIndex]
		case LineTo, ClosePath:
			end := s.Points[cmd.PointIndex]
			total += start.Distance(end)
			start = end
		case CurveTo:
			p1, p2, p3 := s.Points[cmd.PointIndex], s.Points[cmd.PointIndex+1], s.Points[cmd.PointIndex+2]
			total += subdivideAndMeasureCubic(start, p1, p2, p3, lengthTolerance, 0)
			start = p3
		}
	}
	return total
}

func windingNumberContribution(p0, p1, point geom.Vector2) int {
	if p0.Y <= point.Y {
		if p1.Y > point.Y && p1.Sub(p0).Cross(point.Sub(p0)) > 0 {
			return 1
		}
	} else {
		if p1.Y <= point.Y && p1.Sub(p0).Cross(point.Sub(p0)) < 0 {
			return -1
		}
	}
	return 0
}

func windingNumberContributionCurve(p0, p1, p2, p3, point geom.Vector2, tolerance float64, depth int) int {
	if depth > maxRecursionDepth || isCurveFlatEnough(p0, p1, p2, p3, tolerance) {
		return windingNumberContribution(p0, p3, point)
	}
	left, right := subdivideCubic(p0, p1, p2, p3)
	return windingNumberContributionCurve(left[0], left[1], left[2], left[3], point, tolerance, depth+1) +
		windingNumberContributionCurve(right[0], right[1], right[2], right[3], point, tolerance, depth+1)
}

func isPointOnCubicBezier(point, p0, p1, p2, p3 geom.Vector2, tolerance float64, depth int) bool {
	if depth > maxRecursionDepth || isCurveFlatEnough(p0, p1, p2, p3, tolerance) {
		return distanceFromPointToLine(point, p0, p3) <= tolerance
	}
	left, right := subdivideCubic(p0, p1, p2, p3)
	return isPointOnCubicBezier(point, left[0], left[1], left[2], left[3], tolerance, depth+1) ||
		isPointOnCubicBezier(point, right[0], right[1], right[2], right[3], tolerance, depth+1)
}

// IsInside reports whether point lies inside the spline under fillRule,
// via winding-number accumulation (curves are flattened to line segments
// for the winding test). A point found to lie on the outline itself
// (within a small fixed tolerance) is always considered inside.
func (s *Spline) IsInside(point geom.Vector2, fillRule FillRule) bool {
	winding := 0
	var current geom.Vector2

	for _, cmd := range s.Commands {
		switch cmd.Type {
		case MoveTo:
			current = s.Points[cmd.PointIndex]
		case LineTo, ClosePath:
			end := s.Points[cmd.PointIndex]
			if distanceFromPointToLine(point, current, end) <= isInsideTolerance {
				return true
			}
			winding += windingNumberContribution(current, end, point)
			current = end
		case CurveTo:
			c1, c2, end := s.Points[cmd.PointIndex], s.Points[cmd.PointIndex+1], s.Points[cmd.PointIndex+2]
			if isPointOnCubicBezier(point, current, c1, c2, end, isInsideTolerance, 0) {
				return true
			}
			winding += windingNumberContributionCurve(current, c1, c2, end, point, lengthTolerance, 0)
			current = end
		}
	}

	if fillRule == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// IsOnPath reports whether point lies within strokeWidth of the spline's
// outline.
func (s *Spline) IsOnPath(point geom.Vector2, strokeWidth float64) bool {
	var current geom.Vector2

	for _, cmd := range s.Commands {
		switch cmd.Type {
		case MoveTo:
			current = s.Points[cmd.PointIndex]
		case LineTo, ClosePath:
			end := s.Points[cmd.PointIndex]
			if distanceFromPointToLine(point, current, end) <= strokeWidth {
				return true
			}
			current = end
		case CurveTo:
			c1, c2, end := s.Points[cmd.PointIndex], s.Points[cmd.PointIndex+1], s.Points[cmd.PointIndex+2]
			if isPointOnCubicBezier(point, current, c1, c2, end, strokeWidth, 0) {
				return true
			}
			current = end
		}
	}
	return false
}

// interpolateTangents returns the normalized halfway direction between
// two tangents, or a 90-degree rotation of prevTangent if they point in
// exactly opposite directions (where a sum would cancel to zero).
func interpolateTangents(prevTangent, nextTangent geom.Vector2) geom.Vector2 {
	sum := prevTangent.Add(nextTangent)
	if !geom.NearZero(sum.LengthSquared(), 1e-9) {
		return sum.Normalize()
	}
	return geom.Vector2{X: prevTangent.Y, Y: -prevTangent.X}
}

// Vertices produces a {point, orientation} record at the start and end of
// every subpath and at every interior corner, skipping the intermediate
// control points of an internally-decomposed arc so only real corners
// appear. Orientation is the normalized sum of the adjacent tangents, or
// a tangent rotated 90 degrees if they cancel (see interpolateTangents).
func (s *Spline) Vertices() []Vertex {
	var vertices []Vertex
	openPathCommand := noIndex
	closePathIndex := noIndex
	justMoved := false
	wasInternalPoint := false

	for i, cmd := range s.Commands {
		shouldSkip := wasInternalPoint
		wasInternalPoint = cmd.IsInternalPoint
		if shouldSkip {
			continue
		}

		switch cmd.Type {
		case MoveTo:
			if openPathCommand != noIndex {
				point := s.PointAt(i-1, 1.0)
				orientation := s.TangentAt(i-1, 1.0).Normalize()
				vertices = append(vertices, Vertex{Point: point, Orientation: orientation})
			}
			openPathCommand = i
			closePathIndex = cmd.ClosePathIndex
			justMoved = true

		case ClosePath:
			start := s.PointAt(i-1, 1.0)
			end := s.PointAt(openPathCommand, 0.0)

			if !geom.NearZero(start.Sub(end).LengthSquared(), 1e-9) {
				prevTangent := s.TangentAt(i-1, 1.0).Normalize()
				nextTangent := s.TangentAt(i, 0.0).Normalize()
				vertices = append(vertices, Vertex{Point: start, Orientation: interpolateTangents(prevTangent, nextTangent)})
			}

			// A drawing command since the MoveTo already emitted the start
			// vertex with the closing tangent folded in.
			if justMoved {
				prevTangent := s.TangentAt(i, 1.0).Normalize()
				nextTangent := s.TangentAt(openPathCommand, 0.0).Normalize()
				vertices = append(vertices, Vertex{Point: end, Orientation: interpolateTangents(prevTangent, nextTangent)})
			}

			openPathCommand = noIndex
			justMoved = false

		default: // LineTo or CurveTo
			start := s.PointAt(i, 0.0)
			startOrientation := s.TangentAt(i, 0.0).Normalize()

			if justMoved {
				if closePathIndex != noIndex {
					closeOrientation := s.TangentAt(closePathIndex, 1.0).Normalize()
					vertices = append(vertices, Vertex{Point: start, Orientation: interpolateTangents(closeOrientation, startOrientation)})
				} else {
					vertices = append(vertices, Vertex{Point: start, Orientation: startOrientation})
				}
			} else {
				prevOrientation := s.TangentAt(i-1, 1.0).Normalize()
				vertices = append(vertices, Vertex{Point: start, Orientation: interpolateTangents(prevOrientation, startOrientation)})
			}
			justMoved = false
		}
	}

	if openPathCommand != noIndex && len(s.Commands) > 1 {
		point := s.PointAt(len(s.Commands)-1, 1.0)
		orientation := s.TangentAt(len(s.Commands)-1, 1.0).Normalize()
		vertices = append(vertices, Vertex{Point: point, Orientation: orientation})
	}

	return vertices
}
