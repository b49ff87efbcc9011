package csscolor

import (
	"fmt"
	"math"
	"strings"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

func trimWhitespace(values []cssvalue.ComponentValue) []cssvalue.ComponentValue {
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

func hasTopLevelComma(values []cssvalue.ComponentValue) bool {
	for _, cv := range values {
		if cv.IsToken() && cv.Token.Kind == csstoken.Comma {
			return true
		}
	}
	return false
}

func splitOnComma(values []cssvalue.ComponentValue) [][]cssvalue.ComponentValue {
	var groups [][]cssvalue.ComponentValue
	start := 0
	for i, cv := range values {
		if cv.IsToken() && cv.Token.Kind == csstoken.Comma {
			groups = append(groups, trimWhitespace(values[start:i]))
			start = i + 1
		}
	}
	groups = append(groups, trimWhitespace(values[start:]))
	return groups
}

func nonWhitespace(values []cssvalue.ComponentValue) []cssvalue.ComponentValue {
	out := make([]cssvalue.ComponentValue, 0, len(values))
	for _, cv := range values {
		if cv.IsToken() && cv.Token.Kind == csstoken.Whitespace {
			continue
		}
		out = append(out, cv)
	}
	return out
}

// splitChannelsAndAlpha normalizes either legacy comma syntax or modern
// whitespace+slash syntax into a slice of single-component-value channel
// groups, plus an optional alpha group (nil meaning "not specified",
// defaulting to fully opaque).
func splitChannelsAndAlpha(args []cssvalue.ComponentValue, numChannels int) (channels [][]cssvalue.ComponentValue, alpha []cssvalue.ComponentValue, err *perr.Error) {
	if hasTopLevelComma(args) {
		groups := splitOnComma(args)
		if len(groups) == numChannels {
			return groups, nil, nil
		}
		if len(groups) == numChannels+1 {
			return groups[:numChannels], groups[numChannels], nil
		}
		return nil, nil, perr.New(fmt.Sprintf("expected %d or %d comma-separated values, got %d", numChannels, numChannels+1, len(groups)), offsetOrZero(args))
	}

	toks := nonWhitespace(args)
	slashIdx := -1
	for i, cv := range toks {
		if cv.IsToken() && cv.Token.Kind == csstoken.Delim && cv.Token.Delim == '/' {
			slashIdx = i
			break
		}
	}
	main := toks
	var alphaToks []cssvalue.ComponentValue
	if slashIdx != -1 {
		main = toks[:slashIdx]
		alphaToks = toks[slashIdx+1:]
	}
	if len(main) != numChannels {
		return nil, nil, perr.New(fmt.Sprintf("expected %d channel values, got %d", numChannels, len(main)), offsetOrZero(args))
	}
	channels = make([][]cssvalue.ComponentValue, numChannels)
	for i, cv := range main {
		channels[i] = []cssvalue.ComponentValue{cv}
	}
	if len(alphaToks) > 0 {
		alpha = alphaToks
	}
	return channels, alpha, nil
}

func offsetOrZero(values []cssvalue.ComponentValue) perr.Offset {
	if len(values) == 0 {
		return perr.Offset{}
	}
	return offsetOf(values[0])
}

// singleToken returns the lone token in a one-component-value channel
// group, erroring if the group isn't exactly one token.
func singleToken(group []cssvalue.ComponentValue) (csstoken.Token, *perr.Error) {
	if len(group) != 1 || !group[0].IsToken() {
		return csstoken.Token{}, perr.New("expected a single number or percentage", offsetOrZero(group))
	}
	return group[0].Token, nil
}

// numberOrPercentU8 maps a <number> or <percentage> token to a 0..255
// channel byte: number rounds and clamps; percentage multiplies by 2.55
// then clamps.
func numberOrPercentU8(tok csstoken.Token) (uint8, bool, *perr.Error) {
	switch tok.Kind {
	case csstoken.Number:
		return clampU8(math.Round(tok.NumValue)), false, nil
	case csstoken.Percentage:
		return clampU8(math.Round(tok.NumValue * 2.55)), true, nil
	default:
		return 0, false, perr.New("expected a number or percentage", tok.Offset)
	}
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseAlpha parses an alpha channel group (number in [0,1] or
// percentage), defaulting to 1 when group is nil.
func parseAlpha(group []cssvalue.ComponentValue) (float64, *perr.Error) {
	if group == nil {
		return 1, nil
	}
	tok, err := singleToken(trimWhitespace(group))
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case csstoken.Number:
		return clamp(tok.NumValue, 0, 1), nil
	case csstoken.Percentage:
		return clamp(tok.NumValue/100, 0, 1), nil
	default:
		return 0, perr.New("expected a number or percentage for alpha", tok.Offset)
	}
}

var hueUnitToDegrees = map[string]float64{
	"deg":  1,
	"grad": 0.9,
	"rad":  180 / math.Pi,
	"turn": 360,
}

// parseHueDegrees parses a <number> (bare degrees) or <dimension> in
// deg/grad/rad/turn, normalizing the result to [0, 360).
func parseHueDegrees(group []cssvalue.ComponentValue) (float64, *perr.Error) {
	tok, err := singleToken(trimWhitespace(group))
	if err != nil {
		return 0, err
	}
	var deg float64
	switch tok.Kind {
	case csstoken.Number:
		deg = tok.NumValue
	case csstoken.Dimension:
		factor, ok := hueUnitToDegrees[strings.ToLower(tok.Unit)]
		if !ok {
			return 0, perr.New(fmt.Sprintf("unknown hue unit %q", tok.Unit), tok.Offset)
		}
		deg = tok.NumValue * factor
	default:
		return 0, perr.New("expected a hue (number or angle)", tok.Offset)
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg, nil
}

// parsePercentOrNumberToRange parses a <number> or <percentage>,
// mapping a percentage to [0, atHundredPercent] and leaving a bare
// number as-is (both CSS's lab()/lch()/oklab()/oklch() percentage
// reference ranges).
func parsePercentOrNumberToRange(group []cssvalue.ComponentValue, atHundredPercent float64) (float64, *perr.Error) {
	tok, err := singleToken(trimWhitespace(group))
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case csstoken.Number:
		return tok.NumValue, nil
	case csstoken.Percentage:
		return tok.NumValue / 100 * atHundredPercent, nil
	default:
		return 0, perr.New("expected a number or percentage", tok.Offset)
	}
}

func parseRGBFunction(args []cssvalue.ComponentValue) (Color, *perr.Error) {
	channels, alphaGroup, err := splitChannelsAndAlpha(args, 3)
	if err != nil {
		return Color{}, err
	}
	toks := make([]csstoken.Token, 3)
	for i, g := range channels {
		tok, err := singleToken(trimWhitespace(g))
		if err != nil {
			return Color{}, err
		}
		toks[i] = tok
	}
	isPercent := toks[0].Kind == csstoken.Percentage
	for _, tok := range toks {
		if tok.Kind != csstoken.Number && tok.Kind != csstoken.Percentage {
			return Color{}, perr.New("rgb() channels must be numbers or percentages", tok.Offset)
		}
		if (tok.Kind == csstoken.Percentage) != isPercent {
			return Color{}, perr.New("rgb() channels must not mix numbers and percentages", tok.Offset)
		}
	}
	r, _, err := numberOrPercentU8(toks[0])
	if err != nil {
		return Color{}, err
	}
	g, _, err := numberOrPercentU8(toks[1])
	if err != nil {
		return Color{}, err
	}
	b, _, err := numberOrPercentU8(toks[2])
	if err != nil {
		return Color{}, err
	}
	alpha, err := parseAlpha(alphaGroup)
	if err != nil {
		return Color{}, err
	}
	return Color{Kind: KindRGBA, R: r, G: g, B: b, Alpha: alpha}, nil
}

func parseHSLFunction(args []cssvalue.ComponentValue) (Color, *perr.Error) {
	channels, alphaGroup, err := splitChannelsAndAlpha(args, 3)
	if err != nil {
		return Color{}, err
	}
	hue, err := parseHueDegrees(channels[0])
	if err != nil {
		return Color{}, err
	}
	sTok, err := singleToken(trimWhitespace(channels[1]))
	if err != nil {
		return Color{}, err
	}
	lTok, err := singleToken(trimWhitespace(channels[2]))
	if err != nil {
		return Color{}, err
	}
	if sTok.Kind != csstoken.Percentage || lTok.Kind != csstoken.Percentage {
		return Color{}, perr.New("hsl() saturation and lightness must be percentages", sTok.Offset)
	}
	s := clamp(sTok.NumValue, 0, 100) / 100
	l := clamp(lTok.NumValue, 0, 100) / 100
	alpha, err := parseAlpha(alphaGroup)
	if err != nil {
		return Color{}, err
	}
	r, g, b := hslToRGB(hue, s, l)
	return Color{Kind: KindRGBA, R: r, G: g, B: b, Alpha: alpha}, nil
}

func parseHWBFunction(args []cssvalue.ComponentValue) (Color, *perr.Error) {
	channels, alphaGroup, err := splitChannelsAndAlpha(args, 3)
	if err != nil {
		return Color{}, err
	}
	hue, err := parseHueDegrees(channels[0])
	if err != nil {
		return Color{}, err
	}
	wTok, err := singleToken(trimWhitespace(channels[1]))
	if err != nil {
		return Color{}, err
	}
	blkTok, err := singleToken(trimWhitespace(channels[2]))
	if err != nil {
		return Color{}, err
	}
	if wTok.Kind != csstoken.Percentage || blkTok.Kind != csstoken.Percentage {
		return Color{}, perr.New("hwb() whiteness and blackness must be percentages", wTok.Offset)
	}
	w := clamp(wTok.NumValue, 0, 100) / 100
	blk := clamp(blkTok.NumValue, 0, 100) / 100
	alpha, err := parseAlpha(alphaGroup)
	if err != nil {
		return Color{}, err
	}
	r, g, b := hwbToRGB(hue, w, blk)
	return Color{Kind: KindRGBA, R: r, G: g, B: b, Alpha: alpha}, nil
}

func parseLabLike(args []cssvalue.ComponentValue, kind Kind, lAt100 float64, abAt100 float64) (Color, *perr.Error) {
	channels, alphaGroup, err := splitChannelsAndAlpha(args, 3)
	if err != nil {
		return Color{}, err
	}
	l, err := parsePercentOrNumberToRange(channels[0], lAt100)
	if err != nil {
		return Color{}, err
	}
	a, err := parsePercentOrNumberToRange(channels[1], abAt100)
	if err != nil {
		return Color{}, err
	}
	bch, err := parsePercentOrNumberToRange(channels[2], abAt100)
	if err != nil {
		return Color{}, err
	}
	alpha, err := parseAlpha(alphaGroup)
	if err != nil {
		return Color{}, err
	}
	return Color{Kind: kind, C1: l, C2: a, C3: bch, Alpha: alpha}, nil
}

func parseLCHLike(args []cssvalue.ComponentValue, kind Kind, lAt100, cAt100 float64) (Color, *perr.Error) {
	channels, alphaGroup, err := splitChannelsAndAlpha(args, 3)
	if err != nil {
		return Color{}, err
	}
	l, err := parsePercentOrNumberToRange(channels[0], lAt100)
	if err != nil {
		return Color{}, err
	}
	c, err := parsePercentOrNumberToRange(channels[1], cAt100)
	if err != nil {
		return Color{}, err
	}
	if c < 0 {
		c = 0
	}
	h, err := parseHueDegrees(channels[2])
	if err != nil {
		return Color{}, err
	}
	alpha, err := parseAlpha(alphaGroup)
	if err != nil {
		return Color{}, err
	}
	return Color{Kind: kind, C1: l, C2: c, C3: h, Alpha: alpha}, nil
}

func parseColorFunction(args []cssvalue.ComponentValue, opts ParseOptions) (Color, *perr.Error) {
	toks := nonWhitespace(args)
	if len(toks) == 0 || !toks[0].IsToken() || toks[0].Token.Kind != csstoken.Ident {
		return Color{}, perr.New("color() requires a color-space identifier", offsetOrZero(args))
	}
	spaceName := toks[0].Token.Text
	if _, ok := opts.Registry.Lookup(spaceName); !ok {
		return Color{}, perr.New(fmt.Sprintf("unknown color space %q", spaceName), toks[0].Token.Offset)
	}

	rest := args
	// Skip past the space ident within the original (whitespace-bearing)
	// slice so splitChannelsAndAlpha sees only the channel portion.
	for i, cv := range rest {
		if cv.IsToken() && cv.Token.Kind == csstoken.Ident {
			rest = rest[i+1:]
			break
		}
	}
	channels, alphaGroup, err := splitChannelsAndAlpha(trimWhitespace(rest), 3)
	if err != nil {
		return Color{}, err
	}
	c1, err := parsePercentOrNumberToRange(channels[0], 1)
	if err != nil {
		return Color{}, err
	}
	c2, err := parsePercentOrNumberToRange(channels[1], 1)
	if err != nil {
		return Color{}, err
	}
	c3, err := parsePercentOrNumberToRange(channels[2], 1)
	if err != nil {
		return Color{}, err
	}
	alpha, err := parseAlpha(alphaGroup)
	if err != nil {
		return Color{}, err
	}
	return Color{Kind: KindSpace, SpaceName: strings.ToLower(spaceName), C1: c1, C2: c2, C3: c3, Alpha: alpha}, nil
}
