package csscolor_test

import (
	"testing"

	"cssvg/csscolor"
	"cssvg/csstoken"
	"cssvg/cssvalue"
)

func parseColor(t *testing.T, src string) csscolor.Color {
	t.Helper()
	tz := csstoken.New(src)
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	c, err := csscolor.Parse(values, csscolor.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return c
}

func wantRGBA(t *testing.T, c csscolor.Color, r, g, b uint8, alpha float64) {
	t.Helper()
	gr, gg, gb, ga, ok := c.ResolveRGBA(nil)
	if !ok {
		t.Fatalf("ResolveRGBA failed for %+v", c)
	}
	if gr != r || gg != g || gb != b {
		t.Errorf("rgb = (%d,%d,%d), want (%d,%d,%d)", gr, gg, gb, r, g, b)
	}
	if diff := ga - alpha; diff > 0.01 || diff < -0.01 {
		t.Errorf("alpha = %v, want %v", ga, alpha)
	}
}

func TestHexForms(t *testing.T) {
	wantRGBA(t, parseColor(t, "#f00"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "#f008"), 255, 0, 0, float64(0x88)/255)
	wantRGBA(t, parseColor(t, "#ff0000"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "#ff000080"), 255, 0, 0, float64(0x80)/255)
}

func TestNamedColors(t *testing.T) {
	wantRGBA(t, parseColor(t, "red"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "rebeccapurple"), 0x66, 0x33, 0x99, 1)
	wantRGBA(t, parseColor(t, "transparent"), 0, 0, 0, 0)
}

func TestCurrentColor(t *testing.T) {
	c := parseColor(t, "currentColor")
	if c.Kind != csscolor.KindCurrentColor {
		t.Fatalf("got Kind %v", c.Kind)
	}
}

func TestLegacyRGB(t *testing.T) {
	wantRGBA(t, parseColor(t, "rgb(255, 0, 0)"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "rgba(255, 0, 0, 0.5)"), 255, 0, 0, 0.5)
	wantRGBA(t, parseColor(t, "rgb(100%, 0%, 0%)"), 255, 0, 0, 1)
}

func TestModernRGB(t *testing.T) {
	wantRGBA(t, parseColor(t, "rgb(255 0 0)"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "rgb(255 0 0 / 50%)"), 255, 0, 0, 0.5)
	wantRGBA(t, parseColor(t, "rgb(255 0 0 / 0.5)"), 255, 0, 0, 0.5)
}

func TestRGBMixedChannelsIsError(t *testing.T) {
	tz := csstoken.New("rgb(255, 0%, 0)")
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	_, err := csscolor.Parse(values, csscolor.ParseOptions{})
	if err == nil {
		t.Fatal("expected an error mixing numbers and percentages")
	}
}

func TestHSL(t *testing.T) {
	wantRGBA(t, parseColor(t, "hsl(0, 100%, 50%)"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "hsl(120deg 100% 50%)"), 0, 255, 0, 1)
	wantRGBA(t, parseColor(t, "hsl(0 0% 100%)"), 255, 255, 255, 1)
}

func TestHWB(t *testing.T) {
	wantRGBA(t, parseColor(t, "hwb(0 0% 0%)"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "hwb(0 100% 0%)"), 255, 255, 255, 1)
	wantRGBA(t, parseColor(t, "hwb(0 0% 100%)"), 0, 0, 0, 1)
}

func TestLabWhiteAndBlack(t *testing.T) {
	wantRGBA(t, parseColor(t, "lab(100% 0 0)"), 255, 255, 255, 1)
	wantRGBA(t, parseColor(t, "lab(0% 0 0)"), 0, 0, 0, 1)
}

func TestOKLabWhiteAndBlack(t *testing.T) {
	wantRGBA(t, parseColor(t, "oklab(1 0 0)"), 255, 255, 255, 1)
	wantRGBA(t, parseColor(t, "oklab(0 0 0)"), 0, 0, 0, 1)
}

func TestLCHAndOKLCHParse(t *testing.T) {
	c := parseColor(t, "lch(50% 30 180)")
	if c.Kind != csscolor.KindLCH {
		t.Fatalf("got Kind %v", c.Kind)
	}
	if _, _, _, _, ok := c.ResolveRGBA(nil); !ok {
		t.Fatal("expected ResolveRGBA to succeed")
	}
	c2 := parseColor(t, "oklch(0.7 0.1 90)")
	if c2.Kind != csscolor.KindOKLCH {
		t.Fatalf("got Kind %v", c2.Kind)
	}
}

func TestColorFunctionSRGB(t *testing.T) {
	wantRGBA(t, parseColor(t, "color(srgb 1 0 0)"), 255, 0, 0, 1)
	wantRGBA(t, parseColor(t, "color(srgb 100% 0% 0%)"), 255, 0, 0, 1)
}

func TestColorFunctionUnknownSpace(t *testing.T) {
	tz := csstoken.New("color(bogus-space 1 0 0)")
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	_, err := csscolor.Parse(values, csscolor.ParseOptions{})
	if err == nil {
		t.Fatal("expected an error for an unknown color space")
	}
}

func TestDeviceCMYKNotImplemented(t *testing.T) {
	tz := csstoken.New("device-cmyk(0 0 0 1)")
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	c, err := csscolor.Parse(values, csscolor.ParseOptions{})
	if err == nil {
		t.Fatal("expected a not-implemented error")
	}
	if c.Kind != csscolor.KindNotImplemented {
		t.Fatalf("got Kind %v", c.Kind)
	}
}

func TestCustomRegistrySpace(t *testing.T) {
	reg := csscolor.NewRegistry()
	reg.Register(csscolor.Space{
		Name: "my-space",
		ToRGBA: func(c1, c2, c3, alpha float64) (r, g, b uint8) {
			return 1, 2, 3
		},
	})
	tz := csstoken.New("color(my-space 0 0 0)")
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	c, err := csscolor.Parse(values, csscolor.ParseOptions{Registry: reg})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	gr, gg, gb, _, ok := c.ResolveRGBA(reg)
	if !ok || gr != 1 || gg != 2 || gb != 3 {
		t.Fatalf("ResolveRGBA = (%d,%d,%d,%v), want (1,2,3,true)", gr, gg, gb, ok)
	}
}

func TestUnknownKeywordIsError(t *testing.T) {
	tz := csstoken.New("notacolor")
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	_, err := csscolor.Parse(values, csscolor.ParseOptions{})
	if err == nil {
		t.Fatal("expected an error for an unknown keyword")
	}
}
