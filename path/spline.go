// Package path builds and inspects path splines: sequences of move/line/
// curve/close commands over an absolute point buffer, the geometric model
// shared by SVG path data, basic shapes, and anything else that needs to
// draw with cubic Béziers.
package path

import "cssvg/geom"

// CommandType identifies one instruction in a Spline.
type CommandType int

const (
	MoveTo CommandType = iota
	LineTo
	CurveTo
	ClosePath
)

func (t CommandType) String() string {
	switch t {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case CurveTo:
		return "CurveTo"
	case ClosePath:
		return "ClosePath"
	default:
		return "Unknown"
	}
}

// Command is one spline instruction. PointIndex indexes into Spline.Points:
// for MoveTo/LineTo/ClosePath it's the single endpoint; for CurveTo it's
// the first of three consecutive points (control1, control2, end).
//
// IsInternalPoint marks a command produced by decomposing a higher-level
// primitive (an arc-to's intermediate cubic segments) that vertex
// iteration should treat as a continuation rather than a corner.
//
// ClosePathIndex is only meaningful on a MoveTo command: when its subpath
// is later closed, it holds the index of the matching ClosePath command,
// or -1 if the subpath never closes.
type Command struct {
	Type            CommandType
	PointIndex      int
	IsInternalPoint bool
	ClosePathIndex  int
}

// Spline is an immutable sequence of path commands over a shared point
// buffer, built with a Builder.
type Spline struct {
	Points   []geom.Vector2
	Commands []Command
}

// Empty reports whether the spline has no commands.
func (s *Spline) Empty() bool { return len(s.Commands) == 0 }

const noIndex = -1

// Builder constructs a Spline one command at a time. Create one with
// NewBuilder: the zero value lacks the no-index sentinels NewBuilder
// sets, so it does not detect a drawing command issued before MoveTo.
type Builder struct {
	points   []geom.Vector2
	commands []Command

	moveToPointIndex             int
	currentSegmentStartCmdIndex  int
	mayAutoReopen                bool
}

// NewBuilder returns a ready-to-use Builder.
func NewBuilder() *Builder {
	return &Builder{moveToPointIndex: noIndex, currentSegmentStartCmdIndex: noIndex}
}

// MoveTo starts a new subpath at point. Calling it twice in a row without
// an intervening drawing command replaces the pending move rather than
// emitting an empty subpath.
func (b *Builder) MoveTo(point geom.Vector2) *Builder {
	if n := len(b.commands); n > 0 && b.commands[n-1].Type == MoveTo {
		b.points[b.commands[n-1].PointIndex] = point
	} else {
		pointIndex := len(b.points)
		cmdIndex := len(b.commands)
		b.points = append(b.points, point)
		b.commands = append(b.commands, Command{Type: MoveTo, PointIndex: pointIndex, ClosePathIndex: noIndex})

		b.moveToPointIndex = pointIndex
		b.currentSegmentStartCmdIndex = cmdIndex
	}
	b.mayAutoReopen = false
	return b
}

func (b *Builder) requireMoveTo(what string) {
	if b.moveToPointIndex == noIndex {
		panic(what + " without calling MoveTo first")
	}
}

// maybeAutoReopen re-opens a subpath that was just closed with ClosePath,
// so a drawing command immediately after Z continues from the subpath's
// start point instead of aborting.
func (b *Builder) maybeAutoReopen() {
	if b.mayAutoReopen {
		cmdIndex := len(b.commands)
		b.commands = append(b.commands, Command{Type: MoveTo, PointIndex: b.moveToPointIndex, ClosePathIndex: noIndex})
		b.mayAutoReopen = false
		b.currentSegmentStartCmdIndex = cmdIndex
	}
}

// LineTo draws a line from the current point to point.
func (b *Builder) LineTo(point geom.Vector2) *Builder {
	b.requireMoveTo("lineTo")
	b.maybeAutoReopen()

	index := len(b.points)
	b.points = append(b.points, point)
	b.commands = append(b.commands, Command{Type: LineTo, PointIndex: index, ClosePathIndex: noIndex})
	return b
}

// CurveTo draws a cubic Bézier from the current point to point3, using
// point1 and point2 as control points.
func (b *Builder) CurveTo(point1, point2, point3 geom.Vector2) *Builder {
	b.requireMoveTo("curveTo")
	b.maybeAutoReopen()

	index := len(b.points)
	b.points = append(b.points, point1, point2, point3)
	b.commands = append(b.commands, Command{Type: CurveTo, PointIndex: index, ClosePathIndex: noIndex})
	return b
}

// ClosePath draws a straight line back to the start of the current
// subpath and marks it closed. A command issued right after ClosePath
// re-opens the subpath at its start point (see maybeAutoReopen).
func (b *Builder) ClosePath() *Builder {
	if b.moveToPointIndex == noIndex && len(b.commands) == 0 {
		panic("closePath without an open path")
	}

	cmdIndex := len(b.commands)
	b.commands = append(b.commands, Command{Type: ClosePath, PointIndex: b.moveToPointIndex, ClosePathIndex: noIndex})
	if b.currentSegmentStartCmdIndex != noIndex {
		b.commands[b.currentSegmentStartCmdIndex].ClosePathIndex = cmdIndex
	}

	b.mayAutoReopen = true
	b.currentSegmentStartCmdIndex = noIndex
	return b
}

// currentPoint returns the endpoint of the last command issued.
func (b *Builder) currentPoint() geom.Vector2 {
	last := b.commands[len(b.commands)-1]
	switch last.Type {
	case CurveTo:
		return b.points[last.PointIndex+2]
	default:
		return b.points[last.PointIndex]
	}
}

// appendJoin appends another builder's commands as a continuation of this
// one, skipping its leading MoveTo (the two splines already share a
// current point). When asInternalPath is true, every appended command
// except the last is marked IsInternalPoint, so vertex iteration treats
// the whole join as one smooth segment — used for arc decomposition,
// where the individual cubic segments aren't real path corners.
func (b *Builder) appendJoin(other *Builder, asInternalPath bool) {
	if len(other.commands) == 0 {
		return
	}

	pointOffset := len(b.points)
	b.points = append(b.points, other.points[1:]...)

	for i := 1; i < len(other.commands); i++ {
		cmd := other.commands[i]
		cmd.PointIndex = cmd.PointIndex - 1 + pointOffset
		if asInternalPath && i != len(other.commands)-1 {
			cmd.IsInternalPoint = true
		}
		b.commands = append(b.commands, cmd)
		if cmd.Type == MoveTo {
			b.moveToPointIndex = cmd.PointIndex
		}
	}
}

// Ellipse approximates an ellipse centered at center with the given
// per-axis radius, using four cubic Bézier segments.
func (b *Builder) Ellipse(center, radius geom.Vector2) *Builder {
	// kappa = 4(√2 - 1)/3, the standard circle/ellipse cubic approximation constant.
	const kappa = 0.552284749831

	b.MoveTo(geom.Vector2{X: center.X + radius.X, Y: center.Y})
	b.CurveTo(
		geom.Vector2{X: center.X + radius.X, Y: center.Y + radius.Y*kappa},
		geom.Vector2{X: center.X + radius.X*kappa, Y: center.Y + radius.Y},
		geom.Vector2{X: center.X, Y: center.Y + radius.Y},
	)
	b.CurveTo(
		geom.Vector2{X: center.X - radius.X*kappa, Y: center.Y + radius.Y},
		geom.Vector2{X: center.X - radius.X, Y: center.Y + radius.Y*kappa},
		geom.Vector2{X: center.X - radius.X, Y: center.Y},
	)
	b.CurveTo(
		geom.Vector2{X: center.X - radius.X, Y: center.Y - radius.Y*kappa},
		geom.Vector2{X: center.X - radius.X*kappa, Y: center.Y - radius.Y},
		geom.Vector2{X: center.X, Y: center.Y - radius.Y},
	)
	b.CurveTo(
		geom.Vector2{X: center.X + radius.X*kappa, Y: center.Y - radius.Y},
		geom.Vector2{X: center.X + radius.X, Y: center.Y - radius.Y*kappa},
		geom.Vector2{X: center.X + radius.X, Y: center.Y},
	)
	b.ClosePath()
	return b
}

// Circle approximates a circle centered at center with the given radius.
func (b *Builder) Circle(center geom.Vector2, radius float64) *Builder {
	return b.Ellipse(center, geom.Vector2{X: radius, Y: radius})
}

// Build finalizes the spline. The Builder must not be reused afterward.
func (b *Builder) Build() *Spline {
	return &Spline{Points: b.points, Commands: b.commands}
}

// FillRule selects how a winding number decides point-in-path membership.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// Vertex is a point on the outline of a spline together with the
// direction the outline is heading at that point, as produced by
// Spline.Vertices.
type Vertex struct {
	Point       geom.Vector2
	Orientation geom.Vector2
}
