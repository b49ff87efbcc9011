package cascade

import (
	"cssvg/csscolor"
	"cssvg/svgattr"
)

// Display is the CSS "display" property's outer/inner keyword, reduced
// to the values SVG actually distinguishes (SVG elements never
// participate in CSS table/list layout, so only the box-generation
// question matters here).
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

// Visibility is the CSS "visibility" property.
type Visibility int

const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
	VisibilityCollapse
)

// Overflow is the CSS "overflow" property, as it applies to elements
// that establish an SVG viewport (svg, symbol, marker, pattern, image).
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// StrokeLinecap is the SVG "stroke-linecap" property.
type StrokeLinecap int

const (
	LinecapButt StrokeLinecap = iota
	LinecapRound
	LinecapSquare
)

// StrokeLinejoin is the SVG "stroke-linejoin" property.
type StrokeLinejoin int

const (
	LinejoinMiter StrokeLinejoin = iota
	LinejoinMiterClip
	LinejoinRound
	LinejoinBevel
	LinejoinArcs
)

// PointerEvents is the SVG "pointer-events" property.
type PointerEvents int

const (
	PointerEventsVisiblePainted PointerEvents = iota
	PointerEventsVisibleFill
	PointerEventsVisibleStroke
	PointerEventsVisible
	PointerEventsPainted
	PointerEventsFill
	PointerEventsStroke
	PointerEventsAll
	PointerEventsNone
	PointerEventsBoundingBox
)

// PaintServerKind tags PaintServer's tagged union.
type PaintServerKind int

const (
	PaintNone PaintServerKind = iota
	PaintContextFill
	PaintContextStroke
	PaintSolid
	PaintReference
)

// PaintServer is the value of "fill"/"stroke": none, a literal color, a
// url(#id) reference to a paint server element (with an optional
// fallback color for when the reference fails to resolve), or one of
// the context-fill/context-stroke marker-context keywords.
type PaintServer struct {
	Kind     PaintServerKind
	Color    csscolor.Color // PaintSolid
	URL      string
	Fallback *csscolor.Color // PaintReference: nil if no fallback was given
}

// Reference is a "url(#id)" value, used by clip-path, mask, filter (the
// reference form), and the marker-* properties.
type Reference struct {
	URL string
}

// FilterEffectKind tags FilterEffect's tagged union.
type FilterEffectKind int

const (
	FilterNone FilterEffectKind = iota
	FilterReference
	FilterBlur
)

// FilterEffect is the value of "filter": none, a url(#id) reference to
// an external <filter> element, or the blur() CSS filter function.
type FilterEffect struct {
	Kind          FilterEffectKind
	URL           string
	StdDeviationX svgattr.Length
	StdDeviationY svgattr.Length
}

// TransformOrigin is the value of "transform-origin": a 2D point in
// whatever length units the declaration used.
type TransformOrigin struct {
	X, Y svgattr.Length
}
