package path

import "cssvg/geom"

const maxSegmentationDepth = 12

// CurveSpan is one flattened piece of a subpath produced by
// SegmentForBoolean: a line span copied as-is, or one leaf of a
// recursively-subdivided cubic. StartT/EndT record where within the
// original command (in curve parameter space) this span falls, so a
// downstream boolean operation can map a cut point back to the original
// geometry; CommandIndex is the index of the source command in the
// Spline this was segmented from.
type CurveSpan struct {
	Type         CommandType
	CommandIndex int
	StartT, EndT float64
	Start, End   geom.Vector2
	Control1     geom.Vector2
	Control2     geom.Vector2
}

// SubpathView is one subpath's worth of flattened spans, as produced by
// SegmentForBoolean.
type SubpathView struct {
	MoveTo geom.Vector2
	Spans  []CurveSpan
	Closed bool
}

// SegmentedPath is a spline prepared for boolean operations: every curve
// has been recursively subdivided until its control polygon is within
// tolerance of its chord, so downstream code can treat every span as
// effectively straight while still tracing back to the original curve.
type SegmentedPath struct {
	Subpaths []SubpathView
}

func splitCubic(p0, p1, p2, p3 geom.Vector2, startT, endT, tolerance float64, commandIndex, depth int, spans *[]CurveSpan) {
	if depth >= maxSegmentationDepth || maxControlDistance(p0, p1, p2, p3) <= tolerance {
		*spans = append(*spans, CurveSpan{
			Type: CurveTo, CommandIndex: commandIndex, StartT: startT, EndT: endT,
			Start: p0, End: p3, Control1: p1, Control2: p2,
		})
		return
	}

	left, right := subdivideCubic(p0, p1, p2, p3)
	midT := (startT + endT) * 0.5
	splitCubic(left[0], left[1], left[2], left[3], startT, midT, tolerance, commandIndex, depth+1, spans)
	splitCubic(right[0], right[1], right[2], right[3], midT, endT, tolerance, commandIndex, depth+1, spans)
}

// SegmentForBoolean walks the spline, copying line segments as spans
// as-is and recursively subdividing curves to within tolerance of their
// chord, producing one SubpathView per subpath.
func SegmentForBoolean(s *Spline, tolerance float64) SegmentedPath {
	if tolerance <= 0.0 {
		panic("SegmentForBoolean requires tolerance > 0")
	}

	var segmented SegmentedPath
	if s.Empty() {
		return segmented
	}

	var current, currentMoveTo geom.Vector2
	hasMoveTo := false

	currentSubpath := func() *SubpathView {
		if len(segmented.Subpaths) == 0 {
			segmented.Subpaths = append(segmented.Subpaths, SubpathView{})
		}
		return &segmented.Subpaths[len(segmented.Subpaths)-1]
	}

	for i, cmd := range s.Commands {
		switch cmd.Type {
		case MoveTo:
			current = s.Points[cmd.PointIndex]
			currentMoveTo = current
			hasMoveTo = true
			if len(segmented.Subpaths) > 0 && len(currentSubpath().Spans) == 0 && !currentSubpath().Closed {
				currentSubpath().MoveTo = current
			} else {
				segmented.Subpaths = append(segmented.Subpaths, SubpathView{MoveTo: current})
			}

		case LineTo:
			if !hasMoveTo {
				panic("lineTo without moveTo in SegmentForBoolean")
			}
			end := s.Points[cmd.PointIndex]
			sp := currentSubpath()
			sp.Spans = append(sp.Spans, CurveSpan{Type: LineTo, CommandIndex: i, StartT: 0, EndT: 1, Start: current, End: end})
			current = end

		case CurveTo:
			if !hasMoveTo {
				panic("curveTo without moveTo in SegmentForBoolean")
			}
			c1, c2, end := s.Points[cmd.PointIndex], s.Points[cmd.PointIndex+1], s.Points[cmd.PointIndex+2]
			sp := currentSubpath()
			splitCubic(current, c1, c2, end, 0.0, 1.0, tolerance, i, 0, &sp.Spans)
			current = end

		case ClosePath:
			if !hasMoveTo {
				panic("closePath without moveTo in SegmentForBoolean")
			}
			sp := currentSubpath()
			sp.Spans = append(sp.Spans, CurveSpan{Type: ClosePath, CommandIndex: i, StartT: 0, EndT: 1, Start: current, End: currentMoveTo})
			sp.Closed = true
			current = currentMoveTo
			hasMoveTo = false
		}
	}

	return segmented
}
