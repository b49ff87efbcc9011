package cssvalue_test

import (
	"testing"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

func parse(src string, trim bool) []cssvalue.ComponentValue {
	tz := csstoken.New(src)
	return cssvalue.ParseListOfComponentValues(tz, nil, trim)
}

func TestFlatTokens(t *testing.T) {
	list := parse("foo bar", false)
	if len(list) != 3 {
		t.Fatalf("got %d component values", len(list))
	}
	if !list[0].IsToken() || list[0].Token.Kind != csstoken.Ident || list[0].Token.Text != "foo" {
		t.Fatalf("got %+v", list[0])
	}
	if !list[1].IsToken() || list[1].Token.Kind != csstoken.Whitespace {
		t.Fatalf("got %+v", list[1])
	}
}

func TestTrimWhitespace(t *testing.T) {
	list := parse("  foo  ", true)
	if len(list) != 1 {
		t.Fatalf("got %d component values: %+v", len(list), list)
	}
	if list[0].Token.Text != "foo" {
		t.Fatalf("got %+v", list[0])
	}
}

func TestSimpleBlock(t *testing.T) {
	list := parse("[a b]", false)
	if len(list) != 1 || !list[0].IsSimpleBlock() {
		t.Fatalf("got %+v", list)
	}
	block := list[0]
	if block.Token.Kind != csstoken.LBracket {
		t.Fatalf("got open kind %v", block.Token.Kind)
	}
	if len(block.Children) != 3 { // "a", " ", "b"
		t.Fatalf("got children %+v", block.Children)
	}
}

func TestFunction(t *testing.T) {
	list := parse("rgb(1, 2, 3)", false)
	if len(list) != 1 || !list[0].IsFunction() {
		t.Fatalf("got %+v", list)
	}
	fn := list[0]
	if fn.FunctionName() != "rgb" {
		t.Fatalf("got name %q", fn.FunctionName())
	}
	// "1", ",", " ", "2", ",", " ", "3"
	if len(fn.Children) != 7 {
		t.Fatalf("got %d children: %+v", len(fn.Children), fn.Children)
	}
}

func TestNestedBlocksAndFunctions(t *testing.T) {
	list := parse("calc((1px + 2px) * var(--x))", false)
	if len(list) != 1 || !list[0].IsFunction() {
		t.Fatalf("got %+v", list)
	}
	calc := list[0]
	if calc.FunctionName() != "calc" {
		t.Fatalf("got %q", calc.FunctionName())
	}
	var innerBlock *cssvalue.ComponentValue
	for i := range calc.Children {
		if calc.Children[i].IsSimpleBlock() {
			innerBlock = &calc.Children[i]
			break
		}
	}
	if innerBlock == nil {
		t.Fatal("expected a nested simple block inside calc()")
	}
	if innerBlock.Token.Kind != csstoken.LParen {
		t.Fatalf("got %+v", innerBlock.Token)
	}
}

func TestDepthLimitDropsDeepNesting(t *testing.T) {
	src := ""
	for i := 0; i < maxDepthForTest+5; i++ {
		src += "("
	}
	for i := 0; i < maxDepthForTest+5; i++ {
		src += ")"
	}
	var c perr.Collector
	tz := csstoken.New(src)
	list := cssvalue.ParseListOfComponentValues(tz, &c, false)
	if len(list) != 1 || !list[0].IsSimpleBlock() {
		t.Fatalf("got %+v", list)
	}
	if len(c.Warnings()) == 0 {
		t.Fatal("expected a depth-limit warning")
	}
}

// maxDepthForTest mirrors cssvalue's internal depth cap; kept in sync by
// intent rather than import, since the cap isn't exported.
const maxDepthForTest = 64

func TestUnterminatedBlockIsNonFatal(t *testing.T) {
	list := parse("[a b", false)
	if len(list) != 1 || !list[0].IsSimpleBlock() {
		t.Fatalf("got %+v", list)
	}
	if len(list[0].Children) != 3 {
		t.Fatalf("got children %+v", list[0].Children)
	}
}
