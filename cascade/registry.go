package cascade

import (
	"strings"

	"go.uber.org/zap"

	"cssvg/cssrule"
	"cssvg/csscolor"
	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
	"cssvg/path"
	"cssvg/phf"
	"cssvg/selector"
	"cssvg/svgattr"
)

// UnparsedProperty is a declaration this registry recognized as a valid
// presentation-attribute name but doesn't itself parse into a typed
// property slot (e.g. a text-layout property this module doesn't
// model). It is kept only for round-tripping/inspection; the cascade
// never inherits it (see Registry.InheritFrom).
type UnparsedProperty struct {
	Declaration cssrule.Declaration
	Specificity selector.Specificity
}

// Registry holds one Property slot per CSS/SVG property this module
// understands, plus a bag of recognized-but-unmodeled presentation
// attributes.
type Registry struct {
	Color           Property[csscolor.Color]
	FontFamily      Property[[]string]
	FontSize        Property[svgattr.Length]
	Display         Property[Display]
	Opacity         Property[float64]
	Visibility      Property[Visibility]
	Overflow        Property[Overflow]
	TransformOrigin Property[TransformOrigin]
	Fill            Property[PaintServer]
	FillRule        Property[path.FillRule]
	FillOpacity     Property[float64]
	Stroke          Property[PaintServer]
	StrokeOpacity   Property[float64]
	StrokeWidth     Property[svgattr.Length]
	StrokeLinecap   Property[StrokeLinecap]
	StrokeLinejoin  Property[StrokeLinejoin]
	StrokeMiterlimit Property[float64]
	StrokeDasharray Property[[]svgattr.Length]
	StrokeDashoffset Property[svgattr.Length]
	ClipPath        Property[Reference]
	ClipRule        Property[path.FillRule]
	Mask            Property[Reference]
	Filter          Property[FilterEffect]
	PointerEvents   Property[PointerEvents]
	MarkerStart     Property[Reference]
	MarkerMid       Property[Reference]
	MarkerEnd       Property[Reference]

	UnparsedProperties map[string]UnparsedProperty
}

// propertyParseFn parses decl's value into the matching field of r.
type propertyParseFn func(r *Registry, values []cssvalue.ComponentValue, specificity selector.Specificity, offset perr.Offset, allowUserUnits bool) *perr.Error

var propertyTable = phf.BuildFromMap(map[phf.Key]propertyParseFn{
	"color":             parseColor,
	"font-family":       parseFontFamily,
	"font-size":         parseFontSize,
	"display":           parseDisplay,
	"opacity":           parseOpacity,
	"visibility":        parseVisibility,
	"overflow":          parseOverflow,
	"transform-origin":  parseTransformOrigin,
	"fill":              parseFill,
	"fill-rule":         parseFillRule,
	"fill-opacity":      parseFillOpacity,
	"stroke":            parseStroke,
	"stroke-opacity":    parseStrokeOpacity,
	"stroke-width":      parseStrokeWidth,
	"stroke-linecap":    parseStrokeLinecap,
	"stroke-linejoin":   parseStrokeLinejoin,
	"stroke-miterlimit": parseStrokeMiterlimit,
	"stroke-dasharray":  parseStrokeDasharray,
	"stroke-dashoffset": parseStrokeDashoffset,
	"clip-path":         parseClipPath,
	"clip-rule":         parseClipRule,
	"mask":              parseMask,
	"filter":            parseFilter,
	"pointer-events":    parsePointerEvents,
	"marker-start":      parseMarkerStart,
	"marker-mid":        parseMarkerMid,
	"marker-end":        parseMarkerEnd,
	"marker":            parseMarkerShorthand,
})

// presentationAttributeWhitelist mirrors SVG2's table of valid
// presentation-attribute names (https://www.w3.org/TR/SVG2/styling.html
// #PresentationAttributes); names outside this set are rejected even if
// they'd otherwise parse as a declaration.
var presentationAttributeWhitelist = phf.BuildFromMap(map[phf.Key]bool{
	"cx": true, "cy": true, "height": true, "width": true, "x": true, "y": true,
	"r": true, "rx": true, "ry": true, "d": true, "fill": true, "transform": true,
	"alignment-baseline": true, "baseline-shift": true, "clip-path": true, "clip-rule": true,
	"color": true, "color-interpolation": true, "color-interpolation-filters": true,
	"color-rendering": true, "cursor": true, "direction": true, "display": true,
	"dominant-baseline": true, "fill-opacity": true, "fill-rule": true, "filter": true,
	"flood-color": true, "flood-opacity": true, "font-family": true, "font-size": true,
	"font-size-adjust": true, "font-stretch": true, "font-style": true, "font-variant": true,
	"font-weight": true, "glyph-orientation-horizontal": true, "glyph-orientation-vertical": true,
	"image-rendering": true, "letter-spacing": true, "lighting-color": true,
	"marker-end": true, "marker-mid": true, "marker-start": true, "mask": true,
	"opacity": true, "overflow": true, "paint-order": true, "pointer-events": true,
	"shape-rendering": true, "stop-color": true, "stop-opacity": true, "stroke": true,
	"stroke-dasharray": true, "stroke-dashoffset": true, "stroke-linecap": true,
	"stroke-linejoin": true, "stroke-miterlimit": true, "stroke-opacity": true,
	"stroke-width": true, "text-anchor": true, "text-decoration": true, "text-overflow": true,
	"text-rendering": true, "unicode-bidi": true, "vector-effect": true, "visibility": true,
	"white-space": true, "word-spacing": true, "writing-mode": true,
})

// ParseProperty parses one declaration into the matching field of r.
// allowUserUnits should be false for style-attribute/stylesheet
// declarations and true for presentation-attribute values, per SVG's
// rule that unitless lengths are only permitted in attribute form.
func (r *Registry) ParseProperty(decl cssrule.Declaration, specificity selector.Specificity, allowUserUnits bool) *perr.Error {
	name := strings.ToLower(decl.Name)
	if fn, ok := propertyTable.Find(name); ok {
		return fn(r, decl.Values, specificity, decl.Offset, allowUserUnits)
	}

	if _, ok := presentationAttributeWhitelist.Find(name); ok {
		if r.UnparsedProperties == nil {
			r.UnparsedProperties = map[string]UnparsedProperty{}
		}
		r.UnparsedProperties[decl.Name] = UnparsedProperty{Declaration: decl, Specificity: specificity}
		return nil
	}

	return perr.Newf(decl.Offset, "unknown property %q", decl.Name)
}

// ParseStyle parses a style attribute's text and applies each
// declaration at OverrideStyleAttribute specificity, matching CSS's
// rule that inline style always outranks any selector-matched rule.
// Per-declaration errors are collected rather than aborting the whole
// attribute, mirroring how a browser ignores one malformed declaration
// in a style attribute without dropping the rest.
func (r *Registry) ParseStyle(text string, log *zap.Logger) []perr.Warning {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cascade")

	decls, warnings := cssrule.ParseDeclarationList(text, log)
	specificity := selector.Specificity{Override: selector.OverrideStyleAttribute}
	for _, decl := range decls {
		if err := r.ParseProperty(decl, specificity, false); err != nil {
			log.Debug("property rejected", zap.String("name", decl.Name), zap.String("reason", err.Reason))
			warnings = append(warnings, perr.Warning{Reason: err.Reason, Location: err.Location})
		}
	}
	return warnings
}

// ParsePresentationAttribute parses a single XML attribute as an SVG
// presentation attribute. It reports ok=false (no error) for attribute
// names outside the presentation-attribute whitelist, so callers can
// tell "not a style-relevant attribute" apart from "recognized but
// malformed".
func (r *Registry) ParsePresentationAttribute(name, value string, specificity selector.Specificity) (ok bool, err *perr.Error) {
	lower := strings.ToLower(name)
	if _, whitelisted := presentationAttributeWhitelist.Find(lower); !whitelisted {
		return false, nil
	}

	var c perr.Collector
	tz := csstoken.New(value)
	values := cssvalue.ParseListOfComponentValues(tz, &c, true)
	offset := perr.AtOffset(value, 0)

	if fn, ok := propertyTable.Find(lower); ok {
		if err := fn(r, values, specificity, offset, true); err != nil {
			return true, err
		}
		return true, nil
	}

	// Recognized presentation attribute, but not one of the properties
	// this registry models as a typed field; stash it unparsed like any
	// other valid-but-unmodeled presentation attribute.
	if r.UnparsedProperties == nil {
		r.UnparsedProperties = map[string]UnparsedProperty{}
	}
	r.UnparsedProperties[name] = UnparsedProperty{
		Declaration: cssrule.Declaration{Name: name, Values: values, Offset: offset},
		Specificity: specificity,
	}
	return true, nil
}

// fieldDefault is each field's inheritance default: InheritAll for
// the properties SVG's presentation-property table marks as inherited
// by default (color, font-*, fill/stroke and their related paint
// properties, markers' rule/cap/join knobs, pointer-events), and
// InheritExplicitlySetOnly for the CSS box/paint-context properties
// that don't inherit by default (display, opacity, overflow,
// transform-origin, clip-path, mask, filter, the marker-* references).
//
// mode is an override applied on top of that default: passing
// InheritAll forces every field to inherit regardless of its default,
// matching this type's "one knob" inheritance model; passing
// InheritExplicitlySetOnly leaves each field's own default in effect
// (so naturally-inherited properties still inherit, and the rest only
// do when the declaration literally said "inherit").
func effectiveMode(mode, fieldDefault InheritMode) InheritMode {
	if mode == InheritAll || fieldDefault == InheritAll {
		return InheritAll
	}
	return InheritExplicitlySetOnly
}

func (r *Registry) InheritFrom(parent *Registry, mode InheritMode) *Registry {
	result := &Registry{}

	result.Color = r.Color.InheritFrom(parent.Color, effectiveMode(mode, InheritAll))
	result.FontFamily = r.FontFamily.InheritFrom(parent.FontFamily, effectiveMode(mode, InheritAll))
	result.FontSize = r.FontSize.InheritFrom(parent.FontSize, effectiveMode(mode, InheritAll))
	result.Display = r.Display.InheritFrom(parent.Display, effectiveMode(mode, InheritExplicitlySetOnly))
	result.Opacity = r.Opacity.InheritFrom(parent.Opacity, effectiveMode(mode, InheritExplicitlySetOnly))
	result.Visibility = r.Visibility.InheritFrom(parent.Visibility, effectiveMode(mode, InheritAll))
	result.Overflow = r.Overflow.InheritFrom(parent.Overflow, effectiveMode(mode, InheritExplicitlySetOnly))
	result.TransformOrigin = r.TransformOrigin.InheritFrom(parent.TransformOrigin, effectiveMode(mode, InheritExplicitlySetOnly))
	result.Fill = r.Fill.InheritFrom(parent.Fill, effectiveMode(mode, InheritAll))
	result.FillRule = r.FillRule.InheritFrom(parent.FillRule, effectiveMode(mode, InheritAll))
	result.FillOpacity = r.FillOpacity.InheritFrom(parent.FillOpacity, effectiveMode(mode, InheritAll))
	result.Stroke = r.Stroke.InheritFrom(parent.Stroke, effectiveMode(mode, InheritAll))
	result.StrokeOpacity = r.StrokeOpacity.InheritFrom(parent.StrokeOpacity, effectiveMode(mode, InheritAll))
	result.StrokeWidth = r.StrokeWidth.InheritFrom(parent.StrokeWidth, effectiveMode(mode, InheritAll))
	result.StrokeLinecap = r.StrokeLinecap.InheritFrom(parent.StrokeLinecap, effectiveMode(mode, InheritAll))
	result.StrokeLinejoin = r.StrokeLinejoin.InheritFrom(parent.StrokeLinejoin, effectiveMode(mode, InheritAll))
	result.StrokeMiterlimit = r.StrokeMiterlimit.InheritFrom(parent.StrokeMiterlimit, effectiveMode(mode, InheritAll))
	result.StrokeDasharray = r.StrokeDasharray.InheritFrom(parent.StrokeDasharray, effectiveMode(mode, InheritAll))
	result.StrokeDashoffset = r.StrokeDashoffset.InheritFrom(parent.StrokeDashoffset, effectiveMode(mode, InheritAll))
	result.ClipPath = r.ClipPath.InheritFrom(parent.ClipPath, effectiveMode(mode, InheritExplicitlySetOnly))
	result.ClipRule = r.ClipRule.InheritFrom(parent.ClipRule, effectiveMode(mode, InheritAll))
	result.Mask = r.Mask.InheritFrom(parent.Mask, effectiveMode(mode, InheritExplicitlySetOnly))
	result.Filter = r.Filter.InheritFrom(parent.Filter, effectiveMode(mode, InheritExplicitlySetOnly))
	result.PointerEvents = r.PointerEvents.InheritFrom(parent.PointerEvents, effectiveMode(mode, InheritAll))
	result.MarkerStart = r.MarkerStart.InheritFrom(parent.MarkerStart, effectiveMode(mode, InheritExplicitlySetOnly))
	result.MarkerMid = r.MarkerMid.InheritFrom(parent.MarkerMid, effectiveMode(mode, InheritExplicitlySetOnly))
	result.MarkerEnd = r.MarkerEnd.InheritFrom(parent.MarkerEnd, effectiveMode(mode, InheritExplicitlySetOnly))

	// Unparsed properties are never inherited.
	return result
}

// NumPropertiesSet counts how many of the typed property fields have a
// concrete value, for diagnostics/debug dumps.
func (r *Registry) NumPropertiesSet() int {
	n := 0
	for _, has := range []bool{
		r.Color.HasValue(), r.FontFamily.HasValue(), r.FontSize.HasValue(), r.Display.HasValue(),
		r.Opacity.HasValue(), r.Visibility.HasValue(), r.Overflow.HasValue(), r.TransformOrigin.HasValue(),
		r.Fill.HasValue(), r.FillRule.HasValue(), r.FillOpacity.HasValue(), r.Stroke.HasValue(),
		r.StrokeOpacity.HasValue(), r.StrokeWidth.HasValue(), r.StrokeLinecap.HasValue(),
		r.StrokeLinejoin.HasValue(), r.StrokeMiterlimit.HasValue(), r.StrokeDasharray.HasValue(),
		r.StrokeDashoffset.HasValue(), r.ClipPath.HasValue(), r.ClipRule.HasValue(), r.Mask.HasValue(),
		r.Filter.HasValue(), r.PointerEvents.HasValue(), r.MarkerStart.HasValue(),
		r.MarkerMid.HasValue(), r.MarkerEnd.HasValue(),
	} {
		if has {
			n++
		}
	}
	return n
}
