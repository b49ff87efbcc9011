// Package cssrule implements the CSS Syntax Level 3 rule and declaration
// grammar on top of cssvalue's component-value tree: a stylesheet is a
// list of rules, a rule is an at-rule or a qualified rule, and a
// declaration block (a qualified rule's simple-block body, or a style
// attribute) is a list of declarations. Invalid rules and declarations
// are recorded and skipped rather than aborting the whole parse, per
// CSS's error-recovery model.
package cssrule

import (
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/internal/perr"
)

// RuleKind tags Rule's tagged union.
type RuleKind int

const (
	RuleQualified RuleKind = iota
	RuleAt
	RuleInvalid
)

// InvalidReason classifies why a Rule is RuleInvalid.
type InvalidReason int

const (
	InvalidExtraInput InvalidReason = iota
	InvalidMalformed
)

// Rule is the tagged union over {qualified-rule, at-rule, invalid-rule}.
// Block, when present, is the rule's raw simple-block contents — a
// qualified rule's block is always declarations (parse it with
// ParseDeclarations); an at-rule's block may be declarations or nested
// rules depending on the at-rule, a decision this package leaves to the
// caller (cascade), which knows which at-rules it supports.
type Rule struct {
	Kind RuleKind

	Name    string // at-rule name only; empty for qualified rules
	Prelude []cssvalue.ComponentValue
	Block   []cssvalue.ComponentValue // simple-block contents; nil if no block

	InvalidReason InvalidReason
	Offset        perr.Offset
}

// Declaration is one "name: value(s)[ !important]" pair.
type Declaration struct {
	Name      string
	Values    []cssvalue.ComponentValue
	Offset    perr.Offset
	Important bool
}

// Stylesheet is a parsed top-level CSS document.
type Stylesheet struct {
	Rules    []Rule
	Warnings []perr.Warning
}

// Err combines every recorded warning into a single error, for callers
// whose API has no room for a warning slice (e.g. returning one error
// from a function that otherwise only reports fatal failures). Returns
// nil if there were no warnings.
func (s *Stylesheet) Err() error {
	errs := make([]error, len(s.Warnings))
	for i, w := range s.Warnings {
		errs[i] = &perr.Error{Reason: w.Reason, Location: w.Location}
	}
	return multierr.Combine(errs...)
}

// ParseStylesheet parses src as a top-level stylesheet: a leading
// @charset is stripped (its encoding is not otherwise interpreted, since
// this module only ever sees already-decoded text), then the rule list
// is consumed with the top-level flag, which skips CDO/CDC silently.
func ParseStylesheet(src string, log *zap.Logger) *Stylesheet {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cssrule")
	src = stripLeadingCharset(src)

	var warnings perr.Collector
	tz := csstoken.New(src)
	cv := cssvalue.NewParser(tz, &warnings)
	rules := consumeListOfRules(tz, cv, &warnings, true, log)
	return &Stylesheet{Rules: rules, Warnings: warnings.Warnings()}
}

// stripLeadingCharset removes a leading `@charset "…";`.
func stripLeadingCharset(src string) string {
	const prefix = "@charset \""
	if !strings.HasPrefix(src, prefix) {
		return src
	}
	end := strings.Index(src[len(prefix):], "\";")
	if end == -1 {
		return src
	}
	return src[len(prefix)+end+2:]
}

// consumeListOfRules implements "consume a list of rules". At the top
// level, CDO/CDC tokens are silently skipped; nested, they're
// reconsumed as qualified-rule starts.
func consumeListOfRules(tz *csstoken.Tokenizer, cv *cssvalue.Parser, warnings *perr.Collector, topLevel bool, log *zap.Logger) []Rule {
	var rules []Rule
	for {
		tok := tz.Peek()
		switch tok.Kind {
		case csstoken.EOF:
			return rules
		case csstoken.Whitespace:
			tz.Next()
		case csstoken.CDO, csstoken.CDC:
			if topLevel {
				tz.Next()
				continue
			}
			if r := consumeQualifiedRule(tz, cv, warnings, log); r.Kind != RuleInvalid {
				rules = append(rules, r)
			}
		case csstoken.AtKeyword:
			rules = append(rules, consumeAtRule(tz, cv, warnings, log))
		default:
			if r := consumeQualifiedRule(tz, cv, warnings, log); r.Kind != RuleInvalid {
				rules = append(rules, r)
			}
		}
	}
}

// consumeAtRule implements "consume an at-rule".
func consumeAtRule(tz *csstoken.Tokenizer, cv *cssvalue.Parser, warnings *perr.Collector, log *zap.Logger) Rule {
	nameTok := tz.Next() // AtKeyword
	name := nameTok.Text
	if strings.EqualFold(name, "charset") {
		log.Debug("misplaced @charset", zap.String("at", nameTok.Offset.String()))
		warnings.Pushf(nameTok.Offset, "@charset is only valid as the first rule of a stylesheet")
	}
	var prelude []cssvalue.ComponentValue
	for {
		tok := tz.Peek()
		switch tok.Kind {
		case csstoken.Semicolon:
			tz.Next()
			return Rule{Kind: RuleAt, Name: name, Prelude: prelude}
		case csstoken.EOF:
			return Rule{Kind: RuleAt, Name: name, Prelude: prelude}
		case csstoken.LBrace:
			block := cv.ConsumeComponentValue()
			return Rule{Kind: RuleAt, Name: name, Prelude: prelude, Block: block.Children}
		default:
			prelude = append(prelude, cv.ConsumeComponentValue())
		}
	}
}

// consumeQualifiedRule implements "consume a qualified rule". EOF before
// a block is a parse error; the RuleInvalid result for that case is
// dropped by consumeListOfRules, so nothing reaches the rule list.
func consumeQualifiedRule(tz *csstoken.Tokenizer, cv *cssvalue.Parser, warnings *perr.Collector, log *zap.Logger) Rule {
	start := tz.Peek().Offset
	var prelude []cssvalue.ComponentValue
	for {
		tok := tz.Peek()
		switch tok.Kind {
		case csstoken.LBrace:
			block := cv.ConsumeComponentValue()
			return Rule{Kind: RuleQualified, Prelude: prelude, Block: block.Children}
		case csstoken.EOF:
			log.Debug("unclosed qualified rule", zap.String("at", start.String()))
			warnings.Pushf(start, "qualified rule ended before its block")
			return Rule{Kind: RuleInvalid, InvalidReason: InvalidMalformed, Offset: start}
		default:
			prelude = append(prelude, cv.ConsumeComponentValue())
		}
	}
}

// ParseDeclarationList parses src (a style-attribute string, or any
// other bare declaration-list text) directly into declarations,
// skipping nested at-rules (CSS nesting is out of this module's scope;
// an at-rule found here is dropped with a warning, not expanded).
func ParseDeclarationList(src string, log *zap.Logger) (decls []Declaration, warnings []perr.Warning) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cssrule")
	var c perr.Collector
	tz := csstoken.New(src)
	values := cssvalue.ParseListOfComponentValues(tz, &c, true)
	decls = ParseDeclarations(values, &c, log)
	return decls, c.Warnings()
}

// ParseDeclarations walks a pre-parsed component-value slice (typically
// a qualified rule's Block) as a declaration list, per "consume a list
// of declarations": identifier-then-colon starts a declaration; stray
// whitespace and semicolons are skipped; an unknown start token is
// skipped up to (and including) the next top-level semicolon.
func ParseDeclarations(values []cssvalue.ComponentValue, warnings *perr.Collector, log *zap.Logger) []Declaration {
	if log == nil {
		log = zap.NewNop()
	}
	var decls []Declaration
	i := 0
	for i < len(values) {
		cv := values[i]
		switch {
		case cv.IsToken() && (cv.Token.Kind == csstoken.Whitespace || cv.Token.Kind == csstoken.Semicolon):
			i++
		case cv.IsToken() && cv.Token.Kind == csstoken.AtKeyword:
			// Nested at-rules aren't part of this spec's declaration-list
			// grammar; skip the rest of the list's interpretation of it by
			// dropping just this token (its prelude/block, if any, were
			// already flattened into sibling component values by C5, so
			// there's nothing further to skip here).
			log.Debug("skipping nested at-rule in declaration list", zap.String("name", cv.Token.Text))
			warnings.Pushf(cv.Token.Offset, "nested at-rule @%s skipped in declaration list", cv.Token.Text)
			i++
		case cv.IsToken() && cv.Token.Kind == csstoken.Ident:
			d, consumed, ok := consumeDeclaration(values[i:], warnings, log)
			i += consumed
			if ok {
				decls = append(decls, d)
			}
		default:
			log.Debug("unexpected token at start of declaration", zap.String("at", offsetOf(cv).String()))
			warnings.Pushf(offsetOf(cv), "unexpected token at start of declaration")
			skip := skipToSemicolon(values[i:])
			i += skip
		}
	}
	return decls
}

func offsetOf(cv cssvalue.ComponentValue) perr.Offset {
	return cv.Token.Offset
}

// consumeDeclaration parses one declaration starting at values[0] (an
// Ident), returning the declaration, how many component values it
// consumed (including a trailing ';' if present), and whether it was
// well-formed.
func consumeDeclaration(values []cssvalue.ComponentValue, warnings *perr.Collector, log *zap.Logger) (Declaration, int, bool) {
	nameTok := values[0].Token
	name := nameTok.Text
	i := 1
	for i < len(values) && values[i].IsToken() && values[i].Token.Kind == csstoken.Whitespace {
		i++
	}
	if i >= len(values) || !values[i].IsToken() || values[i].Token.Kind != csstoken.Colon {
		log.Debug("declaration missing colon", zap.String("name", name))
		warnings.Pushf(nameTok.Offset, "declaration %q missing ':'", name)
		return Declaration{}, i + skipToSemicolon(values[i:]), false
	}
	i++ // consume ':'

	valStart := i
	for i < len(values) {
		if values[i].IsToken() && values[i].Token.Kind == csstoken.Semicolon {
			break
		}
		i++
	}
	declValues := values[valStart:i]
	if i < len(values) {
		i++ // consume ';'
	}

	declValues, important := detectImportant(declValues)
	return Declaration{Name: name, Values: declValues, Offset: nameTok.Offset, Important: important}, i, true
}

// skipToSemicolon returns the count of component values to skip,
// including a trailing top-level ';' if one is found, respecting that
// nested blocks/functions in values are already flattened subtrees (so
// no depth tracking is needed here — a ';' inside a nested block is a
// child of that block's own Children, not a sibling in this slice).
func skipToSemicolon(values []cssvalue.ComponentValue) int {
	for i, cv := range values {
		if cv.IsToken() && cv.Token.Kind == csstoken.Semicolon {
			return i + 1
		}
	}
	return len(values)
}

// detectImportant trims trailing whitespace, then checks whether the
// last two remaining component values are a "!" delim and an ident
// "important" (case-insensitive); if so, they're stripped and important
// is reported true.
func detectImportant(values []cssvalue.ComponentValue) ([]cssvalue.ComponentValue, bool) {
	values = trimTrailingWhitespace(values)
	if len(values) < 2 {
		return values, false
	}
	last := values[len(values)-1]
	prev := values[len(values)-2]
	if !last.IsToken() || last.Token.Kind != csstoken.Ident || !strings.EqualFold(last.Token.Text, "important") {
		return values, false
	}
	if !prev.IsToken() || prev.Token.Kind != csstoken.Delim || prev.Token.Delim != '!' {
		return values, false
	}
	return trimTrailingWhitespace(values[:len(values)-2]), true
}

func trimTrailingWhitespace(values []cssvalue.ComponentValue) []cssvalue.ComponentValue {
	end := len(values)
	for end > 0 && values[end-1].IsToken() && values[end-1].Token.Kind == csstoken.Whitespace {
		end--
	}
	return values[:end]
}
