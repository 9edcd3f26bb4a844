package css

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"flexcss/sac"
)

// RuleType tags concrete rule kinds.
type RuleType int

const (
	RuleUnknown RuleType = iota
	RuleStyle
	RuleCharset
	RuleImport
	RuleMedia
	RuleFontFace
	RulePage
)

func (t RuleType) String() string {
	switch t {
	case RuleStyle:
		return "style"
	case RuleCharset:
		return "charset"
	case RuleImport:
		return "import"
	case RuleMedia:
		return "media"
	case RuleFontFace:
		return "font-face"
	case RulePage:
		return "page"
	}
	return "unknown"
}

// Rule is a single statement of a style sheet. Concrete types are
// *StyleRule, *MediaRule, *FontFaceRule, *PageRule, *ImportRule,
// *CharsetRule and *UnknownRule.
type Rule interface {
	Type() RuleType
	// Parent returns enclosing rule, nil for top level rules.
	Parent() Rule
	// ID is unique among rules produced by the same Parser.
	ID() int
	Line() int

	base() *ruleBase
}

type ruleBase struct {
	parent Rule
	id     int
	line   int
}

func (r *ruleBase) Parent() Rule { return r.parent }
func (r *ruleBase) ID() int { return r.id }
func (r *ruleBase) Line() int { return r.line }
func (r *ruleBase) base() *ruleBase { return r }

// StyleRule is a ruleset: selector list with its declaration.
type StyleRule struct {
	ruleBase
	Selectors   sac.SelectorList
	Declaration *StyleDeclaration
}

func (*StyleRule) Type() RuleType { return RuleStyle }

// MediaRule holds rulesets gated by media list.
type MediaRule struct {
	ruleBase
	Media *MediaList
	Rules []Rule
}

func (*MediaRule) Type() RuleType { return RuleMedia }

// PageRule is @page with optional name and pseudo page.
type PageRule struct {
	ruleBase
	Name        string
	Pseudo      string
	Declaration *StyleDeclaration
}

func (*PageRule) Type() RuleType { return RulePage }

// ImportRule is @import statement, imports are not followed.
type ImportRule struct {
	ruleBase
	URI   string
	Media *MediaList
}

func (*ImportRule) Type() RuleType { return RuleImport }

// CharsetRule records charset declared by the style sheet.
type CharsetRule struct {
	ruleBase
	Encoding string
}

func (*CharsetRule) Type() RuleType { return RuleCharset }

// UnknownRule keeps text of an at-rule parser does not understand.
type UnknownRule struct {
	ruleBase
	Text string
}

func (*UnknownRule) Type() RuleType { return RuleUnknown }

// declarationOf returns declaration properties of r go to, if any.
func declarationOf(r Rule) *StyleDeclaration {
	switch r := r.(type) {
	case *StyleRule:
		return r.Declaration
	case *FontFaceRule:
		return r.Declaration
	case *PageRule:
		return r.Declaration
	}
	return nil
}

// StyleSheet is the result of a successful parse. Its shape does not change
// except through DeleteRule, so it may be read concurrently.
type StyleSheet struct {
	// ID correlates style sheet with log records and generated output.
	ID   uuid.UUID
	Path string

	rules    []Rule
	warnings []Diagnostic
}

// Rules returns top level rules in source order.
func (s *StyleSheet) Rules() []Rule {
	return slices.Clone(s.rules)
}

// StyleRules returns all rulesets including ones nested in media rules, in
// source order.
func (s *StyleSheet) StyleRules() []*StyleRule {
	var out []*StyleRule
	for _, r := range s.rules {
		switch r := r.(type) {
		case *StyleRule:
			out = append(out, r)
		case *MediaRule:
			for _, c := range r.Rules {
				if sr, ok := c.(*StyleRule); ok {
					out = append(out, sr)
				}
			}
		}
	}
	return out
}

// FontFaceRules returns @font-face rules in source order.
func (s *StyleSheet) FontFaceRules() []*FontFaceRule {
	var out []*FontFaceRule
	for _, r := range s.rules {
		if ff, ok := r.(*FontFaceRule); ok {
			out = append(out, ff)
		}
	}
	return out
}

// Warnings returns warnings reported while parsing.
func (s *StyleSheet) Warnings() []Diagnostic {
	return slices.Clone(s.warnings)
}

// DeleteRule removes top level rule at index.
func (s *StyleSheet) DeleteRule(index int) error {
	if index < 0 || index >= len(s.rules) {
		return fmt.Errorf("rule index %d out of range [0, %d)", index, len(s.rules))
	}
	s.rules = slices.Delete(s.rules, index, index+1)
	return nil
}
