package sac

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

func (p *Parser) parseSelectorList() (SelectorList, *ParseError) {
	var sl SelectorList
	for {
		s, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		sl = append(sl, s)
		if !p.cur.is(css.CommaToken) {
			return sl, nil
		}
		p.nextIgnoreSpaces()
	}
}

func (p *Parser) parseSelector() (*Selector, *ParseError) {
	result, err := p.parseSimpleSelector()
	if err != nil {
		return nil, err
	}
	for {
		var comb byte
		switch {
		case p.cur.is(css.IdentToken), p.cur.delim("*"), p.cur.is(css.HashToken), p.cur.delim("."),
			p.cur.is(css.LeftBracketToken), p.cur.is(css.ColonToken):
			comb = ' '
		case p.cur.delim("+"), p.cur.delim(">"):
			comb = p.cur.text[0]
			p.nextIgnoreSpaces()
		default:
			return result, nil
		}
		s, err := p.parseSimpleSelector()
		if err != nil {
			return nil, err
		}
		s.Ancestor, s.Combinator = result, comb
		result = s
	}
}

func (p *Parser) parseSimpleSelector() (*Selector, *ParseError) {
	sel := &Selector{Line: p.cur.line, NamespaceURI: p.defaultNS}
	consumed := false

	switch {
	case p.cur.is(css.IdentToken):
		name := unescape(p.cur.text)
		p.next()
		if p.cur.delim("|") {
			sel.Namespace = name
			if uri, ok := p.namespaces[name]; ok {
				sel.NamespaceURI = uri
			} else {
				p.errs.Error(p.errorf("unresolved.namespace"))
			}
			if !p.next().is(css.IdentToken) {
				return nil, p.errorf("identifier")
			}
			name = unescape(p.cur.text)
			p.next()
		}
		sel.Element, consumed = name, true
	case p.cur.delim("*"):
		p.next()
		consumed = true
		if p.cur.delim("|") {
			sel.Namespace, sel.NamespaceURI = "*", ""
			if !p.next().is(css.IdentToken) {
				return nil, p.errorf("identifier")
			}
			sel.Element = unescape(p.cur.text)
			p.next()
		}
	}

loop:
	for {
		switch {
		case p.cur.is(css.HashToken):
			sel.Conditions = append(sel.Conditions, Condition{Kind: ConditionID, Value: unescape(p.cur.text[1:])})
			p.next()
		case p.cur.delim("."):
			if !p.next().is(css.IdentToken) {
				return nil, p.errorf("identifier")
			}
			sel.Conditions = append(sel.Conditions, Condition{Kind: ConditionClass, Value: unescape(p.cur.text)})
			p.next()
		case p.cur.is(css.LeftBracketToken):
			c, err := p.parseAttributeCondition()
			if err != nil {
				return nil, err
			}
			sel.Conditions = append(sel.Conditions, c)
		case p.cur.is(css.ColonToken):
			switch p.nextIgnoreSpaces().tt {
			case css.IdentToken:
				sel.Conditions = append(sel.Conditions, Condition{Kind: ConditionPseudo, Value: unescape(p.cur.text)})
				p.next()
			case css.FunctionToken:
				fn := strings.TrimSuffix(p.cur.text, "(")
				if !p.nextIgnoreSpaces().is(css.IdentToken) {
					return nil, p.errorf("identifier")
				}
				arg := unescape(p.cur.text)
				if !p.nextIgnoreSpaces().is(css.RightParenthesisToken) {
					return nil, p.errorf("right.brace")
				}
				if !strings.EqualFold(fn, "lang") {
					return nil, p.errorf("pseudo.function")
				}
				sel.Conditions = append(sel.Conditions, Condition{Kind: ConditionPseudo, Value: fn + "(" + arg + ")"})
				p.next()
			default:
				return nil, p.errorf("identifier")
			}
		default:
			break loop
		}
		consumed = true
	}
	if !consumed {
		return nil, p.unexpected()
	}
	p.skipSpaces()
	return sel, nil
}

func (p *Parser) parseAttributeCondition() (Condition, *ParseError) {
	if !p.nextIgnoreSpaces().is(css.IdentToken) {
		return Condition{}, p.errorf("identifier")
	}
	name := unescape(p.cur.text)
	var op string
	switch p.nextIgnoreSpaces(); {
	case p.cur.is(css.RightBracketToken):
		p.next()
		return Condition{Kind: ConditionAttribute, Value: name}, nil
	case p.cur.delim("="), p.cur.is(css.IncludeMatchToken), p.cur.is(css.DashMatchToken):
		op = p.cur.text
	default:
		return Condition{}, p.errorf("right.bracket")
	}
	var val string
	switch p.nextIgnoreSpaces().tt {
	case css.StringToken:
		val = unquote(p.cur.text)
	case css.IdentToken:
		val = unescape(p.cur.text)
	default:
		return Condition{}, p.errorf("identifier.or.string")
	}
	if !p.nextIgnoreSpaces().is(css.RightBracketToken) {
		return Condition{}, p.errorf("right.bracket")
	}
	p.next()
	return Condition{Kind: ConditionAttribute, Value: name + op + `"` + val + `"`}, nil
}
