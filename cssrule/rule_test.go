package cssrule_test

import (
	"testing"

	"cssvg/cssrule"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

func TestParseStylesheetQualifiedRule(t *testing.T) {
	sheet := cssrule.ParseStylesheet(`div.foo { color: red; width: 10px }`, nil)
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules", len(sheet.Rules))
	}
	r := sheet.Rules[0]
	if r.Kind != cssrule.RuleQualified {
		t.Fatalf("got kind %v", r.Kind)
	}
	decls := cssrule.ParseDeclarations(r.Block, nil, nil)
	if len(decls) != 2 {
		t.Fatalf("got %d decls: %+v", len(decls), decls)
	}
	if decls[0].Name != "color" || decls[1].Name != "width" {
		t.Fatalf("got %+v", decls)
	}
}

func TestAtRuleWithBlock(t *testing.T) {
	sheet := cssrule.ParseStylesheet(`@media screen { a { color: blue } }`, nil)
	if len(sheet.Rules) != 1 || sheet.Rules[0].Kind != cssrule.RuleAt {
		t.Fatalf("got %+v", sheet.Rules)
	}
	if sheet.Rules[0].Name != "media" {
		t.Fatalf("got name %q", sheet.Rules[0].Name)
	}
}

func TestAtRuleWithoutBlock(t *testing.T) {
	sheet := cssrule.ParseStylesheet(`@import "foo.css"; a { color: red }`, nil)
	if len(sheet.Rules) != 2 {
		t.Fatalf("got %d rules", len(sheet.Rules))
	}
	if sheet.Rules[0].Kind != cssrule.RuleAt || sheet.Rules[0].Block != nil {
		t.Fatalf("got %+v", sheet.Rules[0])
	}
}

func TestCDOCDCSkippedAtTopLevel(t *testing.T) {
	sheet := cssrule.ParseStylesheet(`<!-- a { color: red } -->`, nil)
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules", len(sheet.Rules))
	}
}

func TestCharsetStripped(t *testing.T) {
	sheet := cssrule.ParseStylesheet(`@charset "UTF-8"; a { color: red }`, nil)
	if len(sheet.Rules) != 1 || sheet.Rules[0].Kind != cssrule.RuleQualified {
		t.Fatalf("got %+v", sheet.Rules)
	}
}

func TestImportantDetection(t *testing.T) {
	decls, warnings := cssrule.ParseDeclarationList(`color: red !important; width: 10px`, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(decls) != 2 {
		t.Fatalf("got %d decls", len(decls))
	}
	if !decls[0].Important {
		t.Fatal("expected color to be important")
	}
	if decls[1].Important {
		t.Fatal("expected width to not be important")
	}
	// "!important" must be stripped from the value list.
	for _, cv := range decls[0].Values {
		if cv.IsToken() && cv.Token.Delim == '!' {
			t.Fatal("'!' should have been stripped")
		}
	}
}

func TestImportantCaseInsensitive(t *testing.T) {
	decls, _ := cssrule.ParseDeclarationList(`color: red !IMPORTANT`, nil)
	if len(decls) != 1 || !decls[0].Important {
		t.Fatalf("got %+v", decls)
	}
}

func TestMissingColonSkipsDeclaration(t *testing.T) {
	decls, warnings := cssrule.ParseDeclarationList(`color red; width: 10px`, nil)
	if len(warnings) == 0 {
		t.Fatal("expected a warning for the malformed declaration")
	}
	if len(decls) != 1 || decls[0].Name != "width" {
		t.Fatalf("got %+v", decls)
	}
}

func TestUnterminatedBlockIsNonFatalAtRuleLevel(t *testing.T) {
	// The block's own missing "}" is recovered non-fatally by the
	// component-value parser (C5); reaching "{" at all still makes this
	// a valid qualified rule.
	sheet := cssrule.ParseStylesheet(`a { color: red`, nil)
	if len(sheet.Rules) != 1 || sheet.Rules[0].Kind != cssrule.RuleQualified {
		t.Fatalf("got %+v", sheet.Rules)
	}
}

func TestQualifiedRuleWithNoBlockAtAllIsInvalid(t *testing.T) {
	// EOF reached while still in the prelude, having never seen "{".
	sheet := cssrule.ParseStylesheet(`a.foo`, nil)
	if len(sheet.Rules) != 0 {
		t.Fatalf("got %+v", sheet.Rules)
	}
	if len(sheet.Warnings) == 0 {
		t.Fatal("expected a warning")
	}
}

func TestStylesheetErrCombinesWarnings(t *testing.T) {
	sheet := cssrule.ParseStylesheet(`a.foo`, nil)
	if err := sheet.Err(); err == nil {
		t.Fatal("expected a combined error for the unterminated rule's warning")
	}

	empty := cssrule.ParseStylesheet(`a { color: red }`, nil)
	if err := empty.Err(); err != nil {
		t.Fatalf("expected no error when there are no warnings, got %v", err)
	}
}

func TestParseDeclarationsOnArbitrarySlice(t *testing.T) {
	var c perr.Collector
	values := []cssvalue.ComponentValue{} // empty slice: no declarations
	decls := cssrule.ParseDeclarations(values, &c, nil)
	if len(decls) != 0 {
		t.Fatalf("got %+v", decls)
	}
}
