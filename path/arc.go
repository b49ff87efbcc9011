package path

import (
	"math"

	"cssvg/geom"
)

// ArcTo appends an SVG elliptical arc from the current point to endPoint,
// per the endpoint-to-center conversion in SVG 1.1 Appendix F.6
// (https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes). The
// arc is decomposed into at most four cubic Bézier segments, every one
// but the last marked internal so Spline.Vertices treats the whole arc as
// one smooth corner.
func (b *Builder) ArcTo(radius geom.Vector2, rotationRadians float64, largeArcFlag, sweepFlag bool, endPoint geom.Vector2) *Builder {
	b.requireMoveTo("arcTo")

	arc := decomposeArcIntoCubic(b.currentPoint(), endPoint, radius, rotationRadians, largeArcFlag, sweepFlag)
	if arc != nil {
		b.appendJoin(arc, true)
	}
	return b
}

// correctArcRadius scales up an under-sized radius so the requested arc
// endpoints are reachable, per SVG implementation note B.2.5.
func correctArcRadius(radius, majorAxis geom.Vector2) geom.Vector2 {
	absRadius := geom.Vector2{X: math.Abs(radius.X), Y: math.Abs(radius.Y)}
	lambda := (majorAxis.X*majorAxis.X)/(absRadius.X*absRadius.X) +
		(majorAxis.Y*majorAxis.Y)/(absRadius.Y*absRadius.Y)
	if lambda > 1.0 {
		return absRadius.Scale(math.Sqrt(lambda))
	}
	return absRadius
}

// ellipseCenterForArc is eq. 5.2 of the endpoint-to-center conversion.
func ellipseCenterForArc(radius, axis geom.Vector2, largeArcFlag, sweepFlag bool) geom.Vector2 {
	k := radius.X*radius.X*axis.Y*axis.Y + radius.Y*radius.Y*axis.X*axis.X
	k = math.Sqrt(math.Abs((radius.X*radius.X*radius.Y*radius.Y)/k - 1.0))
	if sweepFlag == largeArcFlag {
		k = -k
	}
	return geom.Vector2{X: k * radius.X * axis.Y / radius.Y, Y: -k * radius.Y * axis.X / radius.X}
}

// decomposeArcIntoCubic builds a standalone spline (starting with a
// MoveTo to startPoint) containing the cubic approximation of the arc, or
// nil if the arc degenerates to nothing. A near-zero radius degenerates
// to a single line-to, per the SVG spec's explicit fallback.
func decomposeArcIntoCubic(startPoint, endPoint, radius geom.Vector2, rotationRadians float64, largeArcFlag, sweepFlag bool) *Builder {
	const distanceSqEpsilon = 1e-14

	if geom.NearZero(startPoint.DistanceSquared(endPoint), distanceSqEpsilon) {
		return nil
	}
	if geom.NearZero(radius.X, 1e-9) || geom.NearZero(radius.Y, 1e-9) {
		return NewBuilder().MoveTo(startPoint).LineTo(endPoint)
	}

	sinRotation, cosRotation := math.Sin(rotationRadians), math.Cos(rotationRadians)

	extent := startPoint.Sub(endPoint).Scale(0.5)
	majorAxis := extent.RotateCosSin(cosRotation, -sinRotation)

	ellipseRadius := correctArcRadius(radius, majorAxis)

	centerNoRotation := ellipseCenterForArc(ellipseRadius, majorAxis, largeArcFlag, sweepFlag)
	center := centerNoRotation.RotateCosSin(cosRotation, sinRotation).Add(startPoint.Add(endPoint).Scale(0.5))

	intersectionStart := geom.Vector2{
		X: (majorAxis.X - centerNoRotation.X) / ellipseRadius.X,
		Y: (majorAxis.Y - centerNoRotation.Y) / ellipseRadius.Y,
	}
	intersectionEnd := geom.Vector2{
		X: (-majorAxis.X - centerNoRotation.X) / ellipseRadius.X,
		Y: (-majorAxis.Y - centerNoRotation.Y) / ellipseRadius.Y,
	}

	k := intersectionStart.Length()
	if geom.NearZero(k, 1e-9) {
		return nil
	}
	k = geom.Clamp(intersectionStart.X/k, -1.0, 1.0)
	theta := math.Acos(k)
	if intersectionStart.Y < 0.0 {
		theta = -theta
	}

	k = math.Sqrt(intersectionStart.LengthSquared() * intersectionEnd.LengthSquared())
	if geom.NearZero(k, 1e-9) {
		return nil
	}
	k = geom.Clamp(intersectionStart.Dot(intersectionEnd)/k, -1.0, 1.0)

	deltaTheta := math.Acos(k)
	if intersectionStart.X*intersectionEnd.Y-intersectionEnd.X*intersectionStart.Y < 0.0 {
		deltaTheta = -deltaTheta
	}
	if sweepFlag && deltaTheta < 0.0 {
		deltaTheta += 2 * math.Pi
	} else if !sweepFlag && deltaTheta > 0.0 {
		deltaTheta -= 2 * math.Pi
	}

	numSegs := int(math.Ceil(math.Abs(deltaTheta / (math.Pi*0.5 + 0.001))))
	if numSegs < 1 {
		numSegs = 1
	}
	dir := geom.Vector2{X: cosRotation, Y: sinRotation}
	thetaIncrement := deltaTheta / float64(numSegs)

	result := NewBuilder().MoveTo(startPoint)

	for i := 0; i < numSegs; i++ {
		thetaStart := theta + float64(i)*thetaIncrement
		thetaEnd := theta + float64(i+1)*thetaIncrement
		thetaHalf := 0.5 * (thetaEnd - thetaStart)

		sinHalfThetaHalf := math.Sin(thetaHalf * 0.5)
		t := (8.0 / 3.0) * sinHalfThetaHalf * sinHalfThetaHalf / math.Sin(thetaHalf)

		cosThetaStart, sinThetaStart := math.Cos(thetaStart), math.Sin(thetaStart)
		p0 := geom.Vector2{X: cosThetaStart - t*sinThetaStart, Y: sinThetaStart + t*cosThetaStart}
		p0 = geom.Vector2{X: ellipseRadius.X * p0.X, Y: ellipseRadius.Y * p0.Y}

		cosThetaEnd, sinThetaEnd := math.Cos(thetaEnd), math.Sin(thetaEnd)
		p2 := geom.Vector2{X: ellipseRadius.X * cosThetaEnd, Y: ellipseRadius.Y * sinThetaEnd}

		p1 := p2.Add(geom.Vector2{X: ellipseRadius.X * t * sinThetaEnd, Y: -ellipseRadius.Y * t * cosThetaEnd})

		result.CurveTo(
			center.Add(p0.RotateCosSin(dir.X, dir.Y)),
			center.Add(p1.RotateCosSin(dir.X, dir.Y)),
			center.Add(p2.RotateCosSin(dir.X, dir.Y)),
		)
	}

	return result
}
