package anb_test

import (
	"testing"

	"cssvg/anb"
	"cssvg/csstoken"
	"cssvg/cssvalue"
)

func parse(t *testing.T, src string) (anb.Value, []cssvalue.ComponentValue) {
	t.Helper()
	tz := csstoken.New(src)
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	v, rest, err := anb.Parse(values)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return v, rest
}

func TestEvenOdd(t *testing.T) {
	v, _ := parse(t, "even")
	if v != (anb.Value{A: 2, B: 0}) {
		t.Fatalf("got %+v", v)
	}
	v, _ = parse(t, "odd")
	if v != (anb.Value{A: 2, B: 1}) {
		t.Fatalf("got %+v", v)
	}
}

func TestBareInteger(t *testing.T) {
	v, _ := parse(t, "5")
	if v != (anb.Value{A: 0, B: 5}) {
		t.Fatalf("got %+v", v)
	}
	v, _ = parse(t, "-5")
	if v != (anb.Value{A: 0, B: -5}) {
		t.Fatalf("got %+v", v)
	}
}

func TestNForms(t *testing.T) {
	cases := []struct {
		src  string
		want anb.Value
	}{
		{"n", anb.Value{A: 1, B: 0}},
		{"-n", anb.Value{A: -1, B: 0}},
		{"2n", anb.Value{A: 2, B: 0}},
		{"2n+1", anb.Value{A: 2, B: 1}},
		{"2n + 1", anb.Value{A: 2, B: 1}},
		{"2n-1", anb.Value{A: 2, B: -1}},
		{"-2n+1", anb.Value{A: -2, B: 1}},
		{"3n-2", anb.Value{A: 3, B: -2}},
		{"n-2", anb.Value{A: 1, B: -2}},
		{"-n-2", anb.Value{A: -1, B: -2}},
	}
	for _, c := range cases {
		v, _ := parse(t, c.src)
		if v != c.want {
			t.Errorf("Parse(%q) = %+v, want %+v", c.src, v, c.want)
		}
	}
}

func TestPlusNForm(t *testing.T) {
	// "+n-1" tokenizes as a separate '+' delim followed by the ident
	// "n-1" (no digit directly follows '+', so it isn't folded into a
	// signed numeric token the way "+2n-1" would be).
	v, _ := parse(t, "+n-1")
	if v != (anb.Value{A: 1, B: -1}) {
		t.Fatalf("got %+v", v)
	}
}

func TestLeavesRemainderForOfTail(t *testing.T) {
	v, rest := parse(t, "2n+1 of li")
	if v != (anb.Value{A: 2, B: 1}) {
		t.Fatalf("got %+v", v)
	}
	if len(rest) == 0 {
		t.Fatal("expected remainder for 'of li'")
	}
	// rest should start with whitespace then the "of" ident.
	found := false
	for _, cv := range rest {
		if cv.IsToken() && cv.Token.Kind == csstoken.Ident && cv.Token.Text == "of" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'of' ident in remainder, got %+v", rest)
	}
}

func TestUnexpectedToken(t *testing.T) {
	tz := csstoken.New("foo")
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	_, _, err := anb.Parse(values)
	if err == nil {
		t.Fatal("expected an error for a non-An+B ident")
	}
}
