package csscolor

import "math"

// hslToRGB converts hue in degrees [0,360), saturation and lightness in
// [0,1] into sRGB 8-bit channels. Standard HSL-to-RGB per CSS Color 3 §4.2.
func hslToRGB(hue, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := clampU8(math.Round(l * 255))
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	h := hue / 360
	r = clampU8(math.Round(hueToChannel(p, q, h+1.0/3) * 255))
	g = clampU8(math.Round(hueToChannel(p, q, h) * 255))
	b = clampU8(math.Round(hueToChannel(p, q, h-1.0/3) * 255))
	return r, g, b
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// hwbToRGB converts hue in degrees, whiteness and blackness in [0,1] into
// sRGB 8-bit channels per CSS Color 4 §5.4.
func hwbToRGB(hue, w, blk float64) (r, g, b uint8) {
	if w+blk >= 1 {
		gray := clampU8(math.Round(w / (w + blk) * 255))
		return gray, gray, gray
	}
	r0, g0, b0 := hslToRGB(hue, 1, 0.5)
	apply := func(c uint8) uint8 {
		v := float64(c) / 255
		v = v*(1-w-blk) + w
		return clampU8(math.Round(v * 255))
	}
	return apply(r0), apply(g0), apply(b0)
}

// --- CIE Lab / LCH ---

const (
	labE = 216.0 / 24389.0
	labK = 24389.0 / 27.0
)

// d50WhiteX, d50WhiteZ are the D50 reference white values (Y is 1).
const (
	d50WhiteX = 0.96422
	d50WhiteZ = 0.82521
)

func labToXYZD50(l, a, b float64) (x, y, z float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	finv := func(f float64) float64 {
		f3 := f * f * f
		if f3 > labE {
			return f3
		}
		return (116*f - 16) / labK
	}
	x = d50WhiteX * finv(fx)
	if l > labK*labE {
		y = math.Pow((l+16)/116, 3)
	} else {
		y = l / labK
	}
	z = d50WhiteZ * finv(fz)
	return x, y, z
}

func lchToLab(l, c, h float64) (labL, a, b float64) {
	hr := h * math.Pi / 180
	return l, c * math.Cos(hr), c * math.Sin(hr)
}

// xyzD50ToSRGB chains D50->D65 Bradford adaptation, XYZ->linear-sRGB, and
// linear-sRGB->sRGB gamma encoding.
func xyzD50ToSRGB(x, y, z float64) (r, g, b uint8) {
	x65, y65, z65 := bradfordD50ToD65(x, y, z)
	return xyzD65ToSRGB(x65, y65, z65)
}

// Bradford-adapted D50->D65 matrix (CSS Color 4 sample code).
var bradfordD50toD65Matrix = [3][3]float64{
	{0.9554734527042182, -0.023098536874261423, 0.0632593086610217},
	{-0.028369706963208136, 1.0099954580058226, 0.021041398966943008},
	{0.012314001688319899, -0.020507696433477912, 1.3303659366080753},
}

func bradfordD50ToD65(x, y, z float64) (x65, y65, z65 float64) {
	m := bradfordD50toD65Matrix
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

// linear-sRGB <-> XYZ D65, and gamma encode/decode.
var xyzToLinearSRGBMatrix = [3][3]float64{
	{3.2409699419045226, -1.537383177570094, -0.4986107602930034},
	{-0.9692436362808796, 1.8759675015077202, 0.04155505740717559},
	{0.05563007969699366, -0.20397695888897652, 1.0569715142428786},
}

func xyzD65ToSRGB(x, y, z float64) (r, g, b uint8) {
	m := xyzToLinearSRGBMatrix
	lr := m[0][0]*x + m[0][1]*y + m[0][2]*z
	lg := m[1][0]*x + m[1][1]*y + m[1][2]*z
	lb := m[2][0]*x + m[2][1]*y + m[2][2]*z
	return gammaEncode(lr), gammaEncode(lg), gammaEncode(lb)
}

func gammaEncode(c float64) uint8 {
	c = clamp(c, 0, 1)
	var v float64
	if c <= 0.0031308 {
		v = c * 12.92
	} else {
		v = 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return clampU8(math.Round(v * 255))
}

func gammaDecode(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// labToRGB resolves a Lab color (L in 0..100, a/b roughly -125..125) to
// sRGB via D50 XYZ and Bradford adaptation to D65.
func labToRGB(l, a, b float64) (r, g, bl uint8) {
	x, y, z := labToXYZD50(l, a, b)
	return xyzD50ToSRGB(x, y, z)
}

func lchToRGB(l, c, h float64) (r, g, b uint8) {
	labL, a, bb := lchToLab(l, c, h)
	return labToRGB(labL, a, bb)
}

// --- OKLab / OKLCH ---
// Matrices from Björn Ottosson's OKLab reference (CSS Color 4 sample code).

var oklabToLMSMatrix = [3][3]float64{
	{1, 0.3963377773761749, 0.2158037573099136},
	{1, -0.1055613458156586, -0.0638541728258133},
	{1, -0.0894841775298119, -1.2914855480194092},
}

var lmsToXYZD65Matrix = [3][3]float64{
	{1.2268798758459243, -0.5578149944602171, 0.2813910456659647},
	{-0.0405757452148008, 1.1122868032803170, -0.0717110580655164},
	{-0.0763729366746601, -0.4214933324022432, 1.5869240198367816},
}

func oklabToRGB(l, a, b float64) (r, g, bl uint8) {
	m := oklabToLMSMatrix
	l1 := m[0][0]*l + m[0][1]*a + m[0][2]*b
	m1 := m[1][0]*l + m[1][1]*a + m[1][2]*b
	s1 := m[2][0]*l + m[2][1]*a + m[2][2]*b
	l3, m3, s3 := l1*l1*l1, m1*m1*m1, s1*s1*s1

	xm := lmsToXYZD65Matrix
	x := xm[0][0]*l3 + xm[0][1]*m3 + xm[0][2]*s3
	y := xm[1][0]*l3 + xm[1][1]*m3 + xm[1][2]*s3
	z := xm[2][0]*l3 + xm[2][1]*m3 + xm[2][2]*s3
	return xyzD65ToSRGB(x, y, z)
}

func oklchToRGB(l, c, h float64) (r, g, b uint8) {
	hr := h * math.Pi / 180
	a := c * math.Cos(hr)
	bb := c * math.Sin(hr)
	return oklabToRGB(l, a, bb)
}

// --- color() predefined RGB-ish spaces and XYZ spaces ---

// linearRGBSpace describes a predefined RGB color space by its
// linear-light-to-XYZ-D65 matrix and its transfer function.
type linearRGBSpace struct {
	toXYZD65 [3][3]float64
	decode   func(c float64) float64 // gamma-encoded channel -> linear
}

func (s linearRGBSpace) ToRGBA(c1, c2, c3, alpha float64) (r, g, b uint8) {
	lr, lg, lb := s.decode(c1), s.decode(c2), s.decode(c3)
	m := s.toXYZD65
	x := m[0][0]*lr + m[0][1]*lg + m[0][2]*lb
	y := m[1][0]*lr + m[1][1]*lg + m[1][2]*lb
	z := m[2][0]*lr + m[2][1]*lg + m[2][2]*lb
	return xyzD65ToSRGB(x, y, z)
}

var srgbLinearToXYZD65 = [3][3]float64{
	{0.41239079926595934, 0.357584339383878, 0.1804807884018343},
	{0.21263900587151027, 0.715168678767756, 0.07219231536073371},
	{0.01933081871559182, 0.11919477979462598, 0.9505321522496607},
}

var displayP3LinearToXYZD65 = [3][3]float64{
	{0.4865709486482162, 0.26566769316909306, 0.19821728523436247},
	{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
	{0.0, 0.04511338185890264, 1.043944368900976},
}

var a98RGBLinearToXYZD65 = [3][3]float64{
	{0.5766690429101305, 0.1855582379065463, 0.1882286462349947},
	{0.29734497525053605, 0.6273635662554661, 0.07529145849399788},
	{0.02703136138641234, 0.07068885253582723, 0.9913375368376388},
}

var proPhotoRGBLinearToXYZD50 = [3][3]float64{
	{0.7977604896723027, 0.13518583717574031, 0.0313493495815248},
	{0.2880711282292934, 0.7118432178101014, 0.00008565396060525902},
	{0.0, 0.0, 0.8251046025104601},
}

var rec2020LinearToXYZD65 = [3][3]float64{
	{0.6369580483012914, 0.14461690358620832, 0.16888097516417205},
	{0.2627002120112671, 0.6779980715188708, 0.05930171646986196},
	{0.0, 0.028072693049087428, 1.060985057710791},
}

func srgbGammaDecode(c float64) float64 { return gammaDecode(c) }
func linearIdentity(c float64) float64  { return c }

func proPhotoDecode(c float64) float64 {
	const et = 1.0 / 512
	sign := 1.0
	if c < 0 {
		sign, c = -1, -c
	}
	if c < et*16 {
		return sign * c / 16
	}
	return sign * math.Pow(c, 1.8)
}

func rec2020Decode(c float64) float64 {
	const a, bnd = 1.09929682680944, 0.018053968510807
	sign := 1.0
	if c < 0 {
		sign, c = -1, -c
	}
	if c < bnd*4.5 {
		return sign * c / 4.5
	}
	return sign * math.Pow((c+a-1)/a, 1/0.45)
}

func xyzD50ToRGBA(x, y, z float64) (r, g, b uint8) { return xyzD50ToSRGB(x, y, z) }

var builtinSpaces = []Space{
	{Name: "srgb", ToRGBA: func(c1, c2, c3, a float64) (uint8, uint8, uint8) {
		return clampU8(math.Round(clamp(c1, 0, 1) * 255)), clampU8(math.Round(clamp(c2, 0, 1) * 255)), clampU8(math.Round(clamp(c3, 0, 1) * 255))
	}},
	{Name: "srgb-linear", ToRGBA: linearRGBSpace{toXYZD65: srgbLinearToXYZD65, decode: linearIdentity}.ToRGBA},
	{Name: "display-p3", ToRGBA: linearRGBSpace{toXYZD65: displayP3LinearToXYZD65, decode: srgbGammaDecode}.ToRGBA},
	{Name: "a98-rgb", ToRGBA: linearRGBSpace{toXYZD65: a98RGBLinearToXYZD65, decode: func(c float64) float64 {
		sign := 1.0
		if c < 0 {
			sign, c = -1, -c
		}
		return sign * math.Pow(c, 563.0/256.0)
	}}.ToRGBA},
	{Name: "prophoto-rgb", ToRGBA: func(c1, c2, c3, alpha float64) (r, g, b uint8) {
		lr, lg, lb := proPhotoDecode(c1), proPhotoDecode(c2), proPhotoDecode(c3)
		m := proPhotoRGBLinearToXYZD50
		x := m[0][0]*lr + m[0][1]*lg + m[0][2]*lb
		y := m[1][0]*lr + m[1][1]*lg + m[1][2]*lb
		z := m[2][0]*lr + m[2][1]*lg + m[2][2]*lb
		return xyzD50ToSRGB(x, y, z)
	}},
	{Name: "rec2020", ToRGBA: linearRGBSpace{toXYZD65: rec2020LinearToXYZD65, decode: rec2020Decode}.ToRGBA},
	{Name: "xyz", ToRGBA: func(c1, c2, c3, alpha float64) (r, g, b uint8) { return xyzD65ToSRGB(c1, c2, c3) }},
	{Name: "xyz-d65", ToRGBA: func(c1, c2, c3, alpha float64) (r, g, b uint8) { return xyzD65ToSRGB(c1, c2, c3) }},
	{Name: "xyz-d50", ToRGBA: func(c1, c2, c3, alpha float64) (r, g, b uint8) { return xyzD50ToRGBA(c1, c2, c3) }},
}

// ResolveRGBA collapses any Color into concrete sRGB 8-bit channels. For
// KindRGBA it's a no-op; KindCurrentColor and KindNotImplemented have no
// meaningful RGBA and return ok=false.
func (c Color) ResolveRGBA(reg *Registry) (r, g, b uint8, alpha float64, ok bool) {
	switch c.Kind {
	case KindRGBA:
		return c.R, c.G, c.B, c.Alpha, true
	case KindLab:
		r, g, b = labToRGB(c.C1, c.C2, c.C3)
		return r, g, b, c.Alpha, true
	case KindLCH:
		r, g, b = lchToRGB(c.C1, c.C2, c.C3)
		return r, g, b, c.Alpha, true
	case KindOKLab:
		r, g, b = oklabToRGB(c.C1, c.C2, c.C3)
		return r, g, b, c.Alpha, true
	case KindOKLCH:
		r, g, b = oklchToRGB(c.C1, c.C2, c.C3)
		return r, g, b, c.Alpha, true
	case KindSpace:
		if reg == nil {
			reg = NewRegistry()
		}
		space, found := reg.Lookup(c.SpaceName)
		if !found {
			return 0, 0, 0, 0, false
		}
		r, g, b = space.ToRGBA(c.C1, c.C2, c.C3, c.Alpha)
		return r, g, b, c.Alpha, true
	default:
		return 0, 0, 0, 0, false
	}
}
