package csstoken_test

import (
	"testing"

	"cssvg/csstoken"
)

func collect(src string) []csstoken.Token {
	tz := csstoken.New(src)
	var toks []csstoken.Token
	for {
		tok := tz.Next()
		toks = append(toks, tok)
		if tok.Kind == csstoken.EOF {
			return toks
		}
	}
}

func kinds(toks []csstoken.Token) []csstoken.Kind {
	ks := make([]csstoken.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, src string, want ...csstoken.Kind) []csstoken.Token {
	t.Helper()
	toks := collect(src)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("tokenizing %q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokenizing %q: token %d got %v want %v (full: %v)", src, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestIdentAndFunction(t *testing.T) {
	assertKinds(t, "foo bar(baz)",
		csstoken.Ident, csstoken.Whitespace, csstoken.Function, csstoken.Ident, csstoken.RParen, csstoken.EOF)
}

func TestAtKeywordAndHash(t *testing.T) {
	toks := assertKinds(t, "@media #foo #1a",
		csstoken.AtKeyword, csstoken.Whitespace, csstoken.Hash, csstoken.Whitespace, csstoken.Hash, csstoken.EOF)
	if toks[0].Text != "media" {
		t.Fatalf("got %q", toks[0].Text)
	}
	if toks[2].HashKind != csstoken.HashID {
		t.Fatalf("expected #foo to be HashID")
	}
	if toks[4].HashKind != csstoken.HashUnrestricted {
		t.Fatalf("expected #1a to be HashUnrestricted (starts with digit)")
	}
}

func TestStrings(t *testing.T) {
	toks := assertKinds(t, `"hello\"world" 'it\'s'`,
		csstoken.String, csstoken.Whitespace, csstoken.String, csstoken.EOF)
	if toks[0].Text != `hello"world` {
		t.Fatalf("got %q", toks[0].Text)
	}
	if toks[2].Text != "it's" {
		t.Fatalf("got %q", toks[2].Text)
	}
}

func TestBadStringOnNewline(t *testing.T) {
	// The unescaped newline is reconsumed, not swallowed by the bad-string
	// token, so the next token is the whitespace run starting with it.
	assertKinds(t, "\"abc\ndef\"",
		csstoken.BadString, csstoken.Whitespace, csstoken.Ident, csstoken.ErrorEOFInString, csstoken.EOF)
}

func TestUnterminatedStringIsEOFError(t *testing.T) {
	assertKinds(t, `"abc`, csstoken.ErrorEOFInString, csstoken.EOF)
}

func TestUnterminatedCommentIsEOFError(t *testing.T) {
	assertKinds(t, "foo /* never closes", csstoken.Ident, csstoken.Whitespace, csstoken.ErrorEOFInComment, csstoken.EOF)
}

func TestCommentsAreSkippedBetweenTokens(t *testing.T) {
	assertKinds(t, "foo/**/bar", csstoken.Ident, csstoken.Ident, csstoken.EOF)
}

func TestNumbersAndDimensions(t *testing.T) {
	toks := assertKinds(t, "10px 3.14 -5 50% 1e3",
		csstoken.Dimension, csstoken.Whitespace,
		csstoken.Number, csstoken.Whitespace,
		csstoken.Number, csstoken.Whitespace,
		csstoken.Percentage, csstoken.Whitespace,
		csstoken.Number, csstoken.EOF)
	if toks[0].NumValue != 10 || toks[0].Unit != "px" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[2].NumValue != 3.14 {
		t.Fatalf("got %+v", toks[2])
	}
	if toks[4].NumValue != -5 || toks[4].NumKind != csstoken.KindInteger {
		t.Fatalf("got %+v", toks[4])
	}
	if toks[6].NumValue != 50 {
		t.Fatalf("got %+v", toks[6])
	}
	if toks[8].NumValue != 1000 {
		t.Fatalf("got %+v", toks[8])
	}
}

func TestCDOCDC(t *testing.T) {
	assertKinds(t, "<!-- -->", csstoken.CDO, csstoken.Whitespace, csstoken.CDC, csstoken.EOF)
}

func TestURLToken(t *testing.T) {
	toks := assertKinds(t, "url( foo/bar.png )", csstoken.URL, csstoken.EOF)
	if toks[0].Text != "foo/bar.png" {
		t.Fatalf("got %q", toks[0].Text)
	}
}

func TestURLWithStringBecomesFunction(t *testing.T) {
	assertKinds(t, `url("foo.png")`, csstoken.Function, csstoken.String, csstoken.RParen, csstoken.EOF)
}

func TestBadURLOnUnescapedQuote(t *testing.T) {
	assertKinds(t, `url(fo"o)`, csstoken.BadURL, csstoken.EOF)
}

func TestEscapesInIdent(t *testing.T) {
	toks := assertKinds(t, `\66 oo`, csstoken.Ident, csstoken.EOF)
	if toks[0].Text != "foo" {
		t.Fatalf("got %q", toks[0].Text)
	}
}

func TestDelimitersNotCombined(t *testing.T) {
	// Tokenizer must not merge "^=" into one token; that's the selector
	// parser's job, working on adjacent delim tokens.
	assertKinds(t, "^=", csstoken.Delim, csstoken.Delim, csstoken.EOF)
}

func TestEOFIsSticky(t *testing.T) {
	tz := csstoken.New("")
	first := tz.Next()
	second := tz.Next()
	if first.Kind != csstoken.EOF || second.Kind != csstoken.EOF {
		t.Fatalf("expected EOF forever, got %v then %v", first.Kind, second.Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	tz := csstoken.New("abc")
	p1 := tz.Peek()
	p2 := tz.Peek()
	if p1.Kind != csstoken.Ident || p2.Kind != csstoken.Ident || p1.Text != p2.Text {
		t.Fatalf("peek should be idempotent: %+v vs %+v", p1, p2)
	}
	n := tz.Next()
	if n.Kind != csstoken.Ident || n.Text != "abc" {
		t.Fatalf("got %+v", n)
	}
	if tz.Next().Kind != csstoken.EOF {
		t.Fatal("expected EOF after consuming the only token")
	}
}

// Every token's offset must be a valid byte index into the source.
func TestOffsetsAreValidByteIndices(t *testing.T) {
	src := "foo: bar(1px, \"s\") /* c */ #id @media"
	toks := collect(src)
	for _, tok := range toks {
		if tok.Offset.IsEnd() {
			if tok.Offset.Pos() != len(src) {
				t.Fatalf("end offset %d != len(src) %d", tok.Offset.Pos(), len(src))
			}
			continue
		}
		if tok.Offset.Pos() < 0 || tok.Offset.Pos() > len(src) {
			t.Fatalf("offset %d out of range for %q", tok.Offset.Pos(), src)
		}
	}
}
