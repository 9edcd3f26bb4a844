package sac

import (
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"flexcss/lexical"
)

// parseTerm parses single value term with optional sign.
func (p *Parser) parseTerm() (lexical.Token, *ParseError) {
	plus, sgn := true, false
	switch {
	case p.cur.delim("-"):
		plus = false
		fallthrough
	case p.cur.delim("+"):
		p.next()
		sgn = true
	}

	line := p.cur.line
	switch p.cur.tt {
	case css.NumberToken:
		text := p.cur.text
		if isIntegerText(text) {
			if v, err := strconv.ParseInt(text, 10, 64); err == nil {
				if !plus {
					v = -v
				}
				if v >= math.MinInt32 && v <= math.MaxInt32 {
					p.nextIgnoreSpaces()
					return lexical.NewInteger(int(v), line), nil
				}
			}
		}
		f, err := p.number(text, plus)
		if err != nil {
			return lexical.Token{}, err
		}
		return lexical.NewReal(f, line), nil
	case css.PercentageToken:
		f, err := p.number(strings.TrimSuffix(p.cur.text, "%"), plus)
		if err != nil {
			return lexical.Token{}, err
		}
		return lexical.NewPercentage(f, line), nil
	case css.DimensionToken:
		num, unit := splitNumber(p.cur.text)
		f, err := p.number(num, plus)
		if err != nil {
			return lexical.Token{}, err
		}
		return lexical.NewDimension(f, unit, line), nil
	case css.FunctionToken:
		return p.parseFunction()
	}
	if sgn {
		return lexical.Token{}, p.unexpected()
	}

	switch p.cur.tt {
	case css.StringToken:
		val := unquote(p.cur.text)
		p.nextIgnoreSpaces()
		return lexical.NewString(val, line), nil
	case css.IdentToken:
		val := unescape(p.cur.text)
		p.nextIgnoreSpaces()
		if strings.EqualFold(val, "inherit") {
			return lexical.NewInherit(line), nil
		}
		return lexical.NewIdent(val, line), nil
	case css.URLToken:
		val := urlValue(p.cur.text)
		p.nextIgnoreSpaces()
		return lexical.NewURI(val, line), nil
	case css.HashToken:
		return p.hexColor()
	case css.UnicodeRangeToken:
		val := p.cur.text
		p.nextIgnoreSpaces()
		return lexical.NewUnicodeRange(val, line), nil
	}
	return lexical.Token{}, p.unexpected()
}

// number converts numeric text and moves past the token.
func (p *Parser) number(text string, plus bool) (float64, *ParseError) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, p.errorf("number.format")
	}
	p.nextIgnoreSpaces()
	if !plus {
		f = -f
	}
	return f, nil
}

func (p *Parser) parseFunction() (lexical.Token, *ParseError) {
	name := unescape(strings.TrimSuffix(p.cur.text, "("))
	p.nextIgnoreSpaces()

	if strings.EqualFold(name, "url") && p.cur.is(css.StringToken) {
		val := unquote(p.cur.text)
		if !p.nextIgnoreSpaces().is(css.RightParenthesisToken) {
			return lexical.Token{}, p.unexpected()
		}
		line := p.cur.line
		p.nextIgnoreSpaces()
		return lexical.NewURI(val, line), nil
	}

	params, err := p.parseExpression(true)
	if err != nil {
		return lexical.Token{}, err
	}
	if !p.cur.is(css.RightParenthesisToken) {
		return lexical.Token{}, p.unexpected()
	}
	line := p.cur.line
	p.nextIgnoreSpaces()

	if strings.EqualFold(name, "rgb") && isRGBParams(params) {
		return lexical.NewRGBColor(params, line), nil
	}
	return lexical.NewFunction(name, params, line), nil
}

// isRGBParams checks for exactly three integer or percentage terms separated
// by commas.
func isRGBParams(c lexical.Chain) bool {
	if len(c) != 5 {
		return false
	}
	for i, t := range c {
		if i%2 == 1 {
			if t.Kind != lexical.OperatorComma {
				return false
			}
			continue
		}
		if t.Kind != lexical.Integer && t.Kind != lexical.Percentage {
			return false
		}
	}
	return true
}

// hexColor converts #rgb or #rrggbb into RGB color token with comma separated
// integer components.
func (p *Parser) hexColor() (lexical.Token, *ParseError) {
	val := strings.TrimPrefix(p.cur.text, "#")
	line := p.cur.line

	var comps [3]int
	switch len(val) {
	case 3:
		for i := range 3 {
			if !isHex(val[i]) {
				return lexical.Token{}, p.errorf("rgb.color")
			}
			d := hexDigit(val[i])
			comps[i] = d<<4 | d
		}
	case 6:
		for i := range 3 {
			if !isHex(val[2*i]) || !isHex(val[2*i+1]) {
				return lexical.Token{}, p.errorf("rgb.color")
			}
			comps[i] = hexDigit(val[2*i])<<4 | hexDigit(val[2*i+1])
		}
	default:
		return lexical.Token{}, p.errorf("rgb.color")
	}
	p.nextIgnoreSpaces()

	params := lexical.Chain{
		lexical.NewInteger(comps[0], line),
		lexical.NewComma(line),
		lexical.NewInteger(comps[1], line),
		lexical.NewComma(line),
		lexical.NewInteger(comps[2], line),
	}
	return lexical.NewRGBColor(params, line), nil
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
