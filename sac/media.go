package sac

import (
	"strings"

	"flexcss/lexical"
)

// MediaExpression is a parenthesized media feature test, Value is nil when
// feature is tested without value.
type MediaExpression struct {
	Feature string
	Value   lexical.Chain
}

func (e MediaExpression) String() string {
	if len(e.Value) == 0 {
		return "(" + e.Feature + ")"
	}
	return "(" + e.Feature + ": " + e.Value.CSS() + ")"
}

// MediaQuery is a single query of a media list: [not|only] type and (expr)...
type MediaQuery struct {
	Not         bool
	Only        bool
	Type        string
	Expressions []MediaExpression
}

func (q MediaQuery) String() string {
	var parts []string
	if q.Type != "" {
		t := q.Type
		switch {
		case q.Not:
			t = "not " + t
		case q.Only:
			t = "only " + t
		}
		parts = append(parts, t)
	}
	for _, e := range q.Expressions {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " and ")
}

// MediaList is a comma separated list of media queries.
type MediaList []MediaQuery

// Strings returns canonical text of every query.
func (l MediaList) Strings() []string {
	out := make([]string, 0, len(l))
	for _, q := range l {
		out = append(out, q.String())
	}
	return out
}

func (l MediaList) String() string {
	return strings.Join(l.Strings(), ", ")
}
