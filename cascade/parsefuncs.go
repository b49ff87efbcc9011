package cascade

import (
	"strings"

	"cssvg/csscolor"
	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
	"cssvg/path"
	"cssvg/selector"
	"cssvg/svgattr"
)

func trimWS(values []cssvalue.ComponentValue) []cssvalue.ComponentValue {
	start := 0
	for start < len(values) && values[start].IsToken() && values[start].Token.Kind == csstoken.Whitespace {
		start++
	}
	end := len(values)
	for end > start && values[end-1].IsToken() && values[end-1].Token.Kind == csstoken.Whitespace {
		end--
	}
	return values[start:end]
}

func offsetOrZero(values []cssvalue.ComponentValue) perr.Offset {
	if len(values) == 0 {
		return perr.Offset{}
	}
	return values[0].Token.Offset
}

// globalKeywordState checks values for one of the four CSS-wide keyword
// states ("inherit", "initial", "unset" — "revert" isn't modeled, since
// this module has no user-agent/author cascade origin distinction) so
// every property parse function gets that handling for free rather than
// repeating it.
func globalKeywordState(values []cssvalue.ComponentValue) (PropertyState, bool) {
	trimmed := trimWS(values)
	if len(trimmed) != 1 || !trimmed[0].IsToken() || trimmed[0].Token.Kind != csstoken.Ident {
		return StateNotSet, false
	}
	switch strings.ToLower(trimmed[0].Token.Text) {
	case "inherit":
		return StateInherit, true
	case "initial":
		return StateInitial, true
	case "unset":
		return StateUnset, true
	default:
		return StateNotSet, false
	}
}

// parseInto runs inner over values and stores the result into slot,
// first handling the CSS-wide keyword states uniformly for every
// property. This is this package's equivalent of the shared
// "Parse(params, inner, slot)" helper every property's dispatch entry
// goes through.
func parseInto[T any](slot *Property[T], values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, inner func([]cssvalue.ComponentValue) (T, *perr.Error)) *perr.Error {
	if state, ok := globalKeywordState(values); ok {
		slot.SetState(state, specificity, offset)
		return nil
	}
	v, err := inner(values)
	if err != nil {
		return err
	}
	slot.Set(v, specificity, offset)
	return nil
}

func expectIdent(values []cssvalue.ComponentValue) (string, *perr.Error) {
	trimmed := trimWS(values)
	if len(trimmed) != 1 || !trimmed[0].IsToken() || trimmed[0].Token.Kind != csstoken.Ident {
		return "", perr.New("expected a single keyword", offsetOrZero(trimmed))
	}
	return trimmed[0].Token.Text, nil
}

func parseColor(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	err := parseInto(&r.Color, values, specificity, offset, func(values []cssvalue.ComponentValue) (csscolor.Color, *perr.Error) {
		return csscolor.Parse(values, csscolor.ParseOptions{})
	})
	if err != nil {
		return err
	}
	// https://www.w3.org/TR/css-color-3/#currentcolor: "color: currentColor"
	// set on the color property itself is equivalent to "color: inherit".
	if r.Color.HasValue() && r.Color.GetRequired().Kind == csscolor.KindCurrentColor {
		r.Color.SetState(StateInherit, r.Color.Specificity, r.Color.Offset)
	}
	return nil
}

func parseFontFamily(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.FontFamily, values, specificity, offset, func(values []cssvalue.ComponentValue) ([]string, *perr.Error) {
		var families []string
		i := 0
		for i < len(values) {
			if values[i].IsToken() && (values[i].Token.Kind == csstoken.Comma || values[i].Token.Kind == csstoken.Whitespace) {
				i++
				continue
			}
			start := i
			for i < len(values) && !(values[i].IsToken() && values[i].Token.Kind == csstoken.Comma) {
				i++
			}
			item := trimWS(values[start:i])
			if len(item) == 1 && item[0].IsToken() && item[0].Token.Kind == csstoken.String {
				families = append(families, item[0].Token.Text)
				continue
			}
			var words []string
			for _, cv := range item {
				if !cv.IsToken() || cv.Token.Kind != csstoken.Ident {
					if cv.IsToken() && cv.Token.Kind == csstoken.Whitespace {
						continue
					}
					return nil, perr.New("invalid font-family", offsetOf(cv))
				}
				words = append(words, cv.Token.Text)
			}
			if len(words) == 0 {
				return nil, perr.New("empty font-family entry", offsetOrZero(item))
			}
			families = append(families, strings.Join(words, " "))
		}
		if len(families) == 0 {
			return nil, perr.New("empty font-family value", offsetOrZero(values))
		}
		return families, nil
	})
}

func offsetOf(cv cssvalue.ComponentValue) perr.Offset { return cv.Token.Offset }

func parseFontSize(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.FontSize, values, specificity, offset, func(values []cssvalue.ComponentValue) (svgattr.Length, *perr.Error) {
		return svgattr.ParseLengthPercentageList(values, allowUserUnits)
	})
}

func parseDisplay(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Display, values, specificity, offset, func(values []cssvalue.ComponentValue) (Display, *perr.Error) {
		ident, err := expectIdent(values)
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(ident, "none") {
			return DisplayNone, nil
		}
		if strings.EqualFold(ident, "inline") {
			return DisplayInline, nil
		}
		// Every other CSS/table display keyword collapses to Block: SVG
		// elements never participate in table/list layout, so the only
		// distinction that matters to this module is box-generation.
		return DisplayBlock, nil
	})
}

func parseAlphaValue(values []cssvalue.ComponentValue) (float64, *perr.Error) {
	trimmed := trimWS(values)
	if len(trimmed) != 1 || !trimmed[0].IsToken() {
		return 0, perr.New("expected a number or percentage", offsetOrZero(trimmed))
	}
	tok := trimmed[0].Token
	var v float64
	switch tok.Kind {
	case csstoken.Number:
		v = tok.NumValue
	case csstoken.Percentage:
		v = tok.NumValue / 100
	default:
		return 0, perr.New("expected a number or percentage", tok.Offset)
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v, nil
}

func parseOpacity(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Opacity, values, specificity, offset, parseAlphaValue)
}

func parseFillOpacity(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.FillOpacity, values, specificity, offset, parseAlphaValue)
}

func parseStrokeOpacity(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.StrokeOpacity, values, specificity, offset, parseAlphaValue)
}

func parseVisibility(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Visibility, values, specificity, offset, func(values []cssvalue.ComponentValue) (Visibility, *perr.Error) {
		ident, err := expectIdent(values)
		if err != nil {
			return 0, err
		}
		switch {
		case strings.EqualFold(ident, "visible"):
			return VisibilityVisible, nil
		case strings.EqualFold(ident, "hidden"):
			return VisibilityHidden, nil
		case strings.EqualFold(ident, "collapse"):
			return VisibilityCollapse, nil
		}
		return 0, perr.New("invalid visibility value", offsetOrZero(values))
	})
}

func parseOverflow(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Overflow, values, specificity, offset, func(values []cssvalue.ComponentValue) (Overflow, *perr.Error) {
		ident, err := expectIdent(values)
		if err != nil {
			return 0, err
		}
		switch {
		case strings.EqualFold(ident, "visible"):
			return OverflowVisible, nil
		case strings.EqualFold(ident, "hidden"):
			return OverflowHidden, nil
		case strings.EqualFold(ident, "scroll"):
			return OverflowScroll, nil
		case strings.EqualFold(ident, "auto"):
			return OverflowAuto, nil
		}
		return 0, perr.New("invalid overflow value", offsetOrZero(values))
	})
}

func keywordOrLength(cv cssvalue.ComponentValue, isY bool) (svgattr.Length, *perr.Error) {
	if cv.IsToken() && cv.Token.Kind == csstoken.Ident {
		name := strings.ToLower(cv.Token.Text)
		if !isY {
			switch name {
			case "left":
				return svgattr.Length{Value: 0, Unit: svgattr.UnitPercent}, nil
			case "right":
				return svgattr.Length{Value: 100, Unit: svgattr.UnitPercent}, nil
			case "center":
				return svgattr.Length{Value: 50, Unit: svgattr.UnitPercent}, nil
			}
		} else {
			switch name {
			case "top":
				return svgattr.Length{Value: 0, Unit: svgattr.UnitPercent}, nil
			case "bottom":
				return svgattr.Length{Value: 100, Unit: svgattr.UnitPercent}, nil
			case "center":
				return svgattr.Length{Value: 50, Unit: svgattr.UnitPercent}, nil
			}
		}
	}
	return svgattr.ParseLengthPercentage(cv, true)
}

func parseTransformOrigin(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.TransformOrigin, values, specificity, offset, func(values []cssvalue.ComponentValue) (TransformOrigin, *perr.Error) {
		result := TransformOrigin{
			X: svgattr.Length{Value: 50, Unit: svgattr.UnitPercent},
			Y: svgattr.Length{Value: 50, Unit: svgattr.UnitPercent},
		}
		values = trimWS(values)
		if len(values) == 0 {
			return result, nil
		}
		x, err := keywordOrLength(values[0], false)
		if err != nil {
			return TransformOrigin{}, err
		}
		result.X = x
		rest := trimWS(values[1:])
		if len(rest) == 0 {
			return result, nil
		}
		y, err := keywordOrLength(rest[0], true)
		if err != nil {
			return TransformOrigin{}, err
		}
		result.Y = y
		if len(trimWS(rest[1:])) != 0 {
			return TransformOrigin{}, perr.New("unexpected token in transform-origin", offsetOf(rest[1]))
		}
		return result, nil
	})
}

func parsePaintServer(values []cssvalue.ComponentValue) (PaintServer, *perr.Error) {
	trimmed := trimWS(values)
	if len(trimmed) == 0 {
		return PaintServer{}, perr.New("empty paint server value", perr.Offset{})
	}

	first := trimmed[0]
	if first.IsToken() {
		switch first.Token.Kind {
		case csstoken.Ident:
			switch strings.ToLower(first.Token.Text) {
			case "none":
				if len(trimWS(trimmed[1:])) != 0 {
					return PaintServer{}, perr.New("unexpected tokens after paint server value", offsetOf(trimmed[1]))
				}
				return PaintServer{Kind: PaintNone}, nil
			case "context-fill":
				if len(trimWS(trimmed[1:])) != 0 {
					return PaintServer{}, perr.New("unexpected tokens after paint server value", offsetOf(trimmed[1]))
				}
				return PaintServer{Kind: PaintContextFill}, nil
			case "context-stroke":
				if len(trimWS(trimmed[1:])) != 0 {
					return PaintServer{}, perr.New("unexpected tokens after paint server value", offsetOf(trimmed[1]))
				}
				return PaintServer{Kind: PaintContextStroke}, nil
			}
		case csstoken.URL:
			url := first.Token.Text
			rest := trimWS(trimmed[1:])
			if len(rest) == 0 {
				return PaintServer{Kind: PaintReference, URL: url}, nil
			}
			if rest[0].IsToken() && rest[0].Token.Kind == csstoken.Ident && strings.EqualFold(rest[0].Token.Text, "none") {
				return PaintServer{Kind: PaintReference, URL: url}, nil
			}
			fallback, err := csscolor.Parse(rest, csscolor.ParseOptions{})
			if err != nil {
				return PaintServer{}, perr.New("invalid paint server url, failed to parse fallback", offsetOrZero(rest))
			}
			return PaintServer{Kind: PaintReference, URL: url, Fallback: &fallback}, nil
		}
	}

	color, err := csscolor.Parse(trimmed, csscolor.ParseOptions{})
	if err != nil {
		return PaintServer{}, perr.New("invalid paint server", offsetOrZero(trimmed))
	}
	return PaintServer{Kind: PaintSolid, Color: color}, nil
}

func parseFill(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Fill, values, specificity, offset, parsePaintServer)
}

func parseStroke(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Stroke, values, specificity, offset, parsePaintServer)
}

func parseFillRuleValue(values []cssvalue.ComponentValue) (path.FillRule, *perr.Error) {
	ident, err := expectIdent(values)
	if err != nil {
		return 0, err
	}
	switch {
	case strings.EqualFold(ident, "nonzero"):
		return path.NonZero, nil
	case strings.EqualFold(ident, "evenodd"):
		return path.EvenOdd, nil
	}
	return 0, perr.New("invalid fill-rule value", offsetOrZero(values))
}

func parseFillRule(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.FillRule, values, specificity, offset, parseFillRuleValue)
}

func parseClipRule(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.ClipRule, values, specificity, offset, parseFillRuleValue)
}

func parseStrokeWidth(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.StrokeWidth, values, specificity, offset, func(values []cssvalue.ComponentValue) (svgattr.Length, *perr.Error) {
		return svgattr.ParseLengthPercentageList(values, allowUserUnits)
	})
}

func parseStrokeDashoffset(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.StrokeDashoffset, values, specificity, offset, func(values []cssvalue.ComponentValue) (svgattr.Length, *perr.Error) {
		return svgattr.ParseLengthPercentageList(values, allowUserUnits)
	})
}

func parseStrokeMiterlimit(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.StrokeMiterlimit, values, specificity, offset, func(values []cssvalue.ComponentValue) (float64, *perr.Error) {
		trimmed := trimWS(values)
		if len(trimmed) != 1 {
			return 0, perr.New("expected a single number", offsetOrZero(trimmed))
		}
		return svgattr.ParseNumber(trimmed[0])
	})
}

func parseStrokeLinecap(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.StrokeLinecap, values, specificity, offset, func(values []cssvalue.ComponentValue) (StrokeLinecap, *perr.Error) {
		ident, err := expectIdent(values)
		if err != nil {
			return 0, err
		}
		switch {
		case strings.EqualFold(ident, "butt"):
			return LinecapButt, nil
		case strings.EqualFold(ident, "round"):
			return LinecapRound, nil
		case strings.EqualFold(ident, "square"):
			return LinecapSquare, nil
		}
		return 0, perr.New("invalid stroke-linecap value", offsetOrZero(values))
	})
}

func parseStrokeLinejoin(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.StrokeLinejoin, values, specificity, offset, func(values []cssvalue.ComponentValue) (StrokeLinejoin, *perr.Error) {
		ident, err := expectIdent(values)
		if err != nil {
			return 0, err
		}
		switch {
		case strings.EqualFold(ident, "miter"):
			return LinejoinMiter, nil
		case strings.EqualFold(ident, "miter-clip"):
			return LinejoinMiterClip, nil
		case strings.EqualFold(ident, "round"):
			return LinejoinRound, nil
		case strings.EqualFold(ident, "bevel"):
			return LinejoinBevel, nil
		case strings.EqualFold(ident, "arcs"):
			return LinejoinArcs, nil
		}
		return 0, perr.New("invalid stroke-linejoin value", offsetOrZero(values))
	})
}

// https://www.w3.org/TR/css-values-4/#mult-comma: a comma-or-whitespace
// separated list, where the separator itself may be omitted once if the
// next item is unambiguous — but the dasharray grammar doesn't need
// that relaxation since each item is always a clear length/percentage
// token, so only the generic comma/whitespace splitting is implemented.
func parseStrokeDasharrayValue(values []cssvalue.ComponentValue, allowUserUnits bool) ([]svgattr.Length, *perr.Error) {
	var result []svgattr.Length
	i := 0
	for i < len(values) {
		if values[i].IsToken() && (values[i].Token.Kind == csstoken.Whitespace || values[i].Token.Kind == csstoken.Comma) {
			i++
			continue
		}
		length, err := svgattr.ParseLengthPercentage(values[i], allowUserUnits)
		if err != nil {
			return nil, err
		}
		result = append(result, length)
		i++
	}
	if len(result) == 0 {
		return nil, perr.New("empty stroke-dasharray value", offsetOrZero(values))
	}
	return result, nil
}

func parseStrokeDasharray(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.StrokeDasharray, values, specificity, offset, func(values []cssvalue.ComponentValue) ([]svgattr.Length, *perr.Error) {
		return parseStrokeDasharrayValue(values, allowUserUnits)
	})
}

func parseReferenceValue(values []cssvalue.ComponentValue) (Reference, *perr.Error) {
	trimmed := trimWS(values)
	if len(trimmed) == 0 {
		return Reference{}, perr.New("empty url reference value", perr.Offset{})
	}
	first := trimmed[0]
	if first.IsToken() && first.Token.Kind == csstoken.URL {
		return Reference{URL: first.Token.Text}, nil
	}
	return Reference{}, perr.New("invalid url reference", offsetOf(first))
}

func parseClipPath(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.ClipPath, values, specificity, offset, parseReferenceValue)
}

func parseMask(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Mask, values, specificity, offset, parseReferenceValue)
}

func parseMarkerStart(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.MarkerStart, values, specificity, offset, parseReferenceValue)
}

func parseMarkerMid(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.MarkerMid, values, specificity, offset, parseReferenceValue)
}

func parseMarkerEnd(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.MarkerEnd, values, specificity, offset, parseReferenceValue)
}

// parseMarkerShorthand expands "marker" into marker-start, marker-mid,
// and marker-end, each set to the same reference.
func parseMarkerShorthand(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	if state, ok := globalKeywordState(values); ok {
		r.MarkerStart.SetState(state, specificity, offset)
		r.MarkerMid.SetState(state, specificity, offset)
		r.MarkerEnd.SetState(state, specificity, offset)
		return nil
	}
	value, err := parseReferenceValue(values)
	if err != nil {
		return err
	}
	r.MarkerStart.Set(value, specificity, offset)
	r.MarkerMid.Set(value, specificity, offset)
	r.MarkerEnd.Set(value, specificity, offset)
	return nil
}

func parseFilter(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.Filter, values, specificity, offset, func(values []cssvalue.ComponentValue) (FilterEffect, *perr.Error) {
		trimmed := trimWS(values)
		if len(trimmed) == 0 {
			return FilterEffect{}, perr.New("empty filter value", perr.Offset{})
		}
		first := trimmed[0]
		if first.IsToken() {
			switch first.Token.Kind {
			case csstoken.Ident:
				if strings.EqualFold(first.Token.Text, "none") {
					return FilterEffect{Kind: FilterNone}, nil
				}
			case csstoken.URL:
				return FilterEffect{Kind: FilterReference, URL: first.Token.Text}, nil
			}
		}
		if first.IsFunction() && strings.EqualFold(first.FunctionName(), "blur") {
			args := trimWS(first.Children)
			if len(args) == 0 {
				zero := svgattr.Length{Value: 0, Unit: svgattr.UnitPx}
				return FilterEffect{Kind: FilterBlur, StdDeviationX: zero, StdDeviationY: zero}, nil
			}
			if len(args) == 1 && args[0].IsToken() && args[0].Token.Kind == csstoken.Dimension {
				length, err := svgattr.ParseLengthPercentage(args[0], false)
				if err != nil || length.Unit == svgattr.UnitPercent {
					return FilterEffect{}, perr.New("invalid unit on length", offsetOf(args[0]))
				}
				return FilterEffect{Kind: FilterBlur, StdDeviationX: length, StdDeviationY: length}, nil
			}
			return FilterEffect{}, perr.New("invalid blur value", offsetOrZero(args))
		}
		return FilterEffect{}, perr.New("invalid filter value", offsetOf(first))
	})
}

func parsePointerEvents(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error {
	return parseInto(&r.PointerEvents, values, specificity, offset, func(values []cssvalue.ComponentValue) (PointerEvents, *perr.Error) {
		ident, err := expectIdent(values)
		if err != nil {
			return 0, err
		}
		switch {
		case strings.EqualFold(ident, "none"):
			return PointerEventsNone, nil
		case strings.EqualFold(ident, "bounding-box"):
			return PointerEventsBoundingBox, nil
		case strings.EqualFold(ident, "visiblepainted"):
			return PointerEventsVisiblePainted, nil
		case strings.EqualFold(ident, "visiblefill"):
			return PointerEventsVisibleFill, nil
		case strings.EqualFold(ident, "visiblestroke"):
			return PointerEventsVisibleStroke, nil
		case strings.EqualFold(ident, "visible"):
			return PointerEventsVisible, nil
		case strings.EqualFold(ident, "painted"):
			return PointerEventsPainted, nil
		case strings.EqualFold(ident, "fill"):
			return PointerEventsFill, nil
		case strings.EqualFold(ident, "stroke"):
			return PointerEventsStroke, nil
		case strings.EqualFold(ident, "all"):
			return PointerEventsAll, nil
		}
		return 0, perr.New("invalid pointer-events value", offsetOrZero(values))
	})
}
