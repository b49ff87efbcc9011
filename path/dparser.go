package path

import (
	"strconv"

	"cssvg/geom"
	"cssvg/internal/perr"
)

// ParsePath parses the SVG path `d` attribute grammar into a Spline. When
// parsing fails partway through, the partial spline built so far is
// returned alongside the error, per this module's general "recoverable
// partial result" convention.
func ParsePath(d string) perr.Result[*Spline] {
	p := &dParser{source: d, remaining: d, builder: NewBuilder()}
	return p.parse()
}

type commandToken int

const (
	tokInvalid commandToken = iota
	tokMoveTo
	tokClosePath
	tokLineTo
	tokHorizontalLineTo
	tokVerticalLineTo
	tokCurveTo
	tokSmoothCurveTo
	tokQuadCurveTo
	tokSmoothQuadCurveTo
	tokEllipticalArc
)

type command struct {
	token    commandToken
	relative bool
}

type dParser struct {
	source    string
	remaining string
	builder   *Builder

	initialPoint    geom.Vector2
	currentPoint    geom.Vector2
	lastControl     geom.Vector2 // reflection point for smooth curve/quad commands
	lastWasCubic    bool         // true if the previous command was C/S (for S's reflection)
	lastWasQuad     bool         // true if the previous command was Q/T (for T's reflection)
}

func (p *dParser) offset() perr.Offset {
	return perr.AtOffset(p.source, len(p.source)-len(p.remaining))
}

func (p *dParser) parse() perr.Result[*Spline] {
	p.skipWhitespace()
	if p.remaining == "" {
		return perr.Result[*Spline]{Value: p.builder.Build()}
	}

	startOffset := p.offset()
	cmd, err := p.readCommand()
	if err != nil {
		return perr.Result[*Spline]{Value: p.builder.Build(), Err: err}
	}
	if cmd.token != tokMoveTo {
		return perr.Result[*Spline]{
			Value: p.builder.Build(),
			Err:   perr.New("unexpected command, first command must be 'm' or 'M'", startOffset),
		}
	}
	if err := p.processUntilNextCommand(cmd); err != nil {
		return perr.Result[*Spline]{Value: p.builder.Build(), Err: err}
	}
	p.skipWhitespace()

	for p.remaining != "" {
		cmd, err := p.readCommand()
		if err != nil {
			return perr.Result[*Spline]{Value: p.builder.Build(), Err: err}
		}
		if err := p.processUntilNextCommand(cmd); err != nil {
			return perr.Result[*Spline]{Value: p.builder.Build(), Err: err}
		}
	}

	return perr.Result[*Spline]{Value: p.builder.Build()}
}

func isPathWhitespace(ch byte) bool {
	return ch == '\t' || ch == ' ' || ch == '\n' || ch == '\f' || ch == '\r'
}

func (p *dParser) skipWhitespace() {
	i := 0
	for i < len(p.remaining) && isPathWhitespace(p.remaining[i]) {
		i++
	}
	p.remaining = p.remaining[i:]
}

// skipCommaWhitespace consumes at most one comma plus any surrounding
// whitespace, matching the SVG path grammar's comma-wsp production.
func (p *dParser) skipCommaWhitespace() {
	foundComma := false
	i := 0
	for i < len(p.remaining) {
		ch := p.remaining[i]
		if !foundComma && ch == ',' {
			foundComma = true
			i++
		} else if isPathWhitespace(ch) {
			i++
		} else {
			break
		}
	}
	p.remaining = p.remaining[i:]
}

func peekCommand(remaining string) (command, bool) {
	if remaining == "" {
		return command{}, false
	}
	ch := remaining[0]
	relative := true
	if ch >= 'A' && ch <= 'Z' {
		relative = false
		ch = ch - 'A' + 'a'
	}

	var tok commandToken
	switch ch {
	case 'm':
		tok = tokMoveTo
	case 'z':
		tok = tokClosePath
	case 'l':
		tok = tokLineTo
	case 'h':
		tok = tokHorizontalLineTo
	case 'v':
		tok = tokVerticalLineTo
	case 'c':
		tok = tokCurveTo
	case 's':
		tok = tokSmoothCurveTo
	case 'q':
		tok = tokQuadCurveTo
	case 't':
		tok = tokSmoothQuadCurveTo
	case 'a':
		tok = tokEllipticalArc
	default:
		return command{}, false
	}
	return command{token: tok, relative: relative}, true
}

func (p *dParser) readCommand() (command, *perr.Error) {
	cmd, ok := peekCommand(p.remaining)
	if !ok {
		return command{}, perr.Newf(p.offset(), "unexpected token %q in path data", p.remaining[0])
	}
	p.remaining = p.remaining[1:]
	return cmd, nil
}

// readNumber parses one SVG number (sign, digits, optional fraction,
// optional exponent), matching the CSS number-token grammar.
func (p *dParser) readNumber() (float64, *perr.Error) {
	p.skipWhitespace()

	start := p.remaining
	i := 0
	if i < len(start) && (start[i] == '+' || start[i] == '-') {
		i++
	}
	digitsBefore := 0
	for i < len(start) && start[i] >= '0' && start[i] <= '9' {
		i++
		digitsBefore++
	}
	digitsAfter := 0
	if i < len(start) && start[i] == '.' {
		i++
		for i < len(start) && start[i] >= '0' && start[i] <= '9' {
			i++
			digitsAfter++
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return 0, perr.New("expected a number", p.offset())
	}
	if i < len(start) && (start[i] == 'e' || start[i] == 'E') {
		save := i
		j := i + 1
		if j < len(start) && (start[j] == '+' || start[j] == '-') {
			j++
		}
		digitsExp := 0
		for j < len(start) && start[j] >= '0' && start[j] <= '9' {
			j++
			digitsExp++
		}
		if digitsExp > 0 {
			i = j
		} else {
			i = save
		}
	}

	text := start[:i]
	n, parseErr := strconv.ParseFloat(text, 64)
	if parseErr != nil {
		return 0, perr.New("malformed number", p.offset())
	}
	p.remaining = start[i:]
	return n, nil
}

func (p *dParser) readNumbers(count int) ([]float64, *perr.Error) {
	result := make([]float64, count)
	for i := 0; i < count; i++ {
		if i != 0 {
			p.skipCommaWhitespace()
		}
		n, err := p.readNumber()
		if err != nil {
			return nil, err
		}
		result[i] = n
	}
	return result, nil
}

func (p *dParser) readFlag() (bool, *perr.Error) {
	p.skipWhitespace()
	if p.remaining == "" {
		return false, perr.New("expected a flag (0 or 1)", p.offset())
	}
	ch := p.remaining[0]
	if ch != '0' && ch != '1' {
		return false, perr.Newf(p.offset(), "expected a flag (0 or 1), got %q", ch)
	}
	p.remaining = p.remaining[1:]
	return ch == '1', nil
}

func (p *dParser) makeAbsolute(relative bool, x, y float64) geom.Vector2 {
	point := geom.Vector2{X: x, Y: y}
	if relative {
		point = point.Add(p.currentPoint)
	}
	return point
}

// processUntilNextCommand processes cmd, then any further implicit
// repetitions of it (a moveTo's trailing coordinate pairs are implicit
// lineTos; any other command letter may simply repeat without being
// re-specified), stopping once the next explicit command letter or the
// end of input is reached.
func (p *dParser) processUntilNextCommand(cmd command) *perr.Error {
	for {
		if err := p.processCommand(cmd); err != nil {
			return err
		}

		switch cmd.token {
		case tokMoveTo:
			cmd.token = tokLineTo
		case tokClosePath:
			cmd.token = tokInvalid
		}

		p.skipWhitespace()
		if p.remaining != "" && p.remaining[0] == ',' {
			commaOffset := p.offset()
			p.remaining = p.remaining[1:]
			p.skipWhitespace()

			if p.remaining == "" {
				return perr.New("unexpected ',' at end of string", commaOffset)
			}
			if _, ok := peekCommand(p.remaining); ok {
				return perr.New("unexpected ',' before command", commaOffset)
			}
		}

		if p.remaining == "" {
			return nil
		}
		if _, ok := peekCommand(p.remaining); ok {
			return nil
		}
	}
}

func (p *dParser) processCommand(cmd command) *perr.Error {
	switch cmd.token {
	case tokInvalid:
		return perr.New("expected command", p.offset())

	case tokMoveTo:
		nums, err := p.readNumbers(2)
		if err != nil {
			return err
		}
		point := p.makeAbsolute(cmd.relative, nums[0], nums[1])
		p.builder.MoveTo(point)
		p.initialPoint = point
		p.currentPoint = point
		p.lastWasCubic, p.lastWasQuad = false, false

	case tokClosePath:
		p.builder.ClosePath()
		p.currentPoint = p.initialPoint
		p.lastWasCubic, p.lastWasQuad = false, false

	case tokLineTo:
		nums, err := p.readNumbers(2)
		if err != nil {
			return err
		}
		point := p.makeAbsolute(cmd.relative, nums[0], nums[1])
		p.builder.LineTo(point)
		p.currentPoint = point
		p.lastWasCubic, p.lastWasQuad = false, false

	case tokHorizontalLineTo:
		x, err := p.readNumber()
		if err != nil {
			return err
		}
		if cmd.relative {
			x += p.currentPoint.X
		}
		point := geom.Vector2{X: x, Y: p.currentPoint.Y}
		p.builder.LineTo(point)
		p.currentPoint = point
		p.lastWasCubic, p.lastWasQuad = false, false

	case tokVerticalLineTo:
		y, err := p.readNumber()
		if err != nil {
			return err
		}
		if cmd.relative {
			y += p.currentPoint.Y
		}
		point := geom.Vector2{X: p.currentPoint.X, Y: y}
		p.builder.LineTo(point)
		p.currentPoint = point
		p.lastWasCubic, p.lastWasQuad = false, false

	case tokCurveTo:
		nums, err := p.readNumbers(6)
		if err != nil {
			return err
		}
		c1 := p.makeAbsolute(cmd.relative, nums[0], nums[1])
		c2 := p.makeAbsolute(cmd.relative, nums[2], nums[3])
		end := p.makeAbsolute(cmd.relative, nums[4], nums[5])
		p.builder.CurveTo(c1, c2, end)
		p.lastControl = c2
		p.currentPoint = end
		p.lastWasCubic, p.lastWasQuad = true, false

	case tokSmoothCurveTo:
		nums, err := p.readNumbers(4)
		if err != nil {
			return err
		}
		c1 := p.reflectedControl(p.lastWasCubic)
		c2 := p.makeAbsolute(cmd.relative, nums[0], nums[1])
		end := p.makeAbsolute(cmd.relative, nums[2], nums[3])
		p.builder.CurveTo(c1, c2, end)
		p.lastControl = c2
		p.currentPoint = end
		p.lastWasCubic, p.lastWasQuad = true, false

	case tokQuadCurveTo:
		nums, err := p.readNumbers(4)
		if err != nil {
			return err
		}
		control := p.makeAbsolute(cmd.relative, nums[0], nums[1])
		end := p.makeAbsolute(cmd.relative, nums[2], nums[3])
		p.builder.CurveTo(quadToCubicControl1(p.currentPoint, control), quadToCubicControl2(control, end), end)
		p.lastControl = control
		p.currentPoint = end
		p.lastWasCubic, p.lastWasQuad = false, true

	case tokSmoothQuadCurveTo:
		nums, err := p.readNumbers(2)
		if err != nil {
			return err
		}
		control := p.reflectedControl(p.lastWasQuad)
		end := p.makeAbsolute(cmd.relative, nums[0], nums[1])
		p.builder.CurveTo(quadToCubicControl1(p.currentPoint, control), quadToCubicControl2(control, end), end)
		p.lastControl = control
		p.currentPoint = end
		p.lastWasCubic, p.lastWasQuad = false, true

	case tokEllipticalArc:
		rx, err := p.readNumber()
		if err != nil {
			return err
		}
		p.skipCommaWhitespace()
		ry, err := p.readNumber()
		if err != nil {
			return err
		}
		p.skipCommaWhitespace()
		rotation, err := p.readNumber()
		if err != nil {
			return err
		}
		p.skipCommaWhitespace()
		largeArc, err := p.readFlag()
		if err != nil {
			return err
		}
		p.skipCommaWhitespace()
		sweep, err := p.readFlag()
		if err != nil {
			return err
		}
		p.skipCommaWhitespace()
		nums, err := p.readNumbers(2)
		if err != nil {
			return err
		}
		end := p.makeAbsolute(cmd.relative, nums[0], nums[1])
		p.builder.ArcTo(geom.Vector2{X: rx, Y: ry}, rotation*degToRad, largeArc, sweep, end)
		p.currentPoint = end
		p.lastWasCubic, p.lastWasQuad = false, false

	default:
		return perr.New("not implemented", p.offset())
	}

	return nil
}

const degToRad = 3.14159265358979323846 / 180.0

// reflectedControl returns the reflection of the last control point
// through the current point, used by the smooth curve/quad commands. If
// the previous command wasn't of the same curve family, the reflection is
// just the current point itself (SVG's "equivalent to the current point"
// fallback).
func (p *dParser) reflectedControl(precedingWasSameFamily bool) geom.Vector2 {
	if !precedingWasSameFamily {
		return p.currentPoint
	}
	return p.currentPoint.Scale(2).Sub(p.lastControl)
}

// quadToCubicControl1/2 convert a quadratic Bézier (start, control, end)
// to the equivalent cubic's two control points.
func quadToCubicControl1(start, control geom.Vector2) geom.Vector2 {
	return start.Add(control.Sub(start).Scale(2.0 / 3.0))
}

func quadToCubicControl2(control, end geom.Vector2) geom.Vector2 {
	return end.Add(control.Sub(end).Scale(2.0 / 3.0))
}
