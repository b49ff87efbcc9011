package rcstring_test

import (
	"testing"

	"cssvg/rcstring"
)

func TestSubstrShares(t *testing.T) {
	s := rcstring.New("hello world")
	sub := s.Substr(6, 5)
	if sub.String() != "world" {
		t.Fatalf("got %q", sub)
	}
}

func TestSubstrOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range start")
		}
	}()
	rcstring.New("hi").Substr(10, 1)
}

func TestEqualsLowercase(t *testing.T) {
	s := rcstring.New("IMPORTANT")
	if !s.EqualsLowercase("important") {
		t.Fatal("expected case-insensitive match")
	}
	if s.EqualsLowercase("other") {
		t.Fatal("unexpected match")
	}
}

func TestEqualsIgnoreCase(t *testing.T) {
	a := rcstring.New("Red")
	b := rcstring.New("RED")
	if !a.EqualsIgnoreCase(b) {
		t.Fatal("expected case-insensitive equality")
	}
}

func TestDedupIndependentCopy(t *testing.T) {
	s := rcstring.New("hello world")
	sub := s.Substr(0, 5).Dedup()
	if sub.String() != "hello" {
		t.Fatalf("got %q", sub)
	}
}

func TestCompare(t *testing.T) {
	if rcstring.New("a").Compare(rcstring.New("b")) >= 0 {
		t.Fatal("expected a < b")
	}
}
