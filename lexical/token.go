// Package lexical defines typed tokens making up a CSS property value.
package lexical

import (
	"errors"
	"strconv"
	"strings"
)

// ErrIllegalState is returned when string form is requested from a token
// which does not have one.
var ErrIllegalState = errors.New("illegal state: token has no string value")

// Kind is the lexical class of a token.
type Kind int

const (
	Ident Kind = iota
	Integer
	Real
	Percentage
	Dimension
	RGBColor
	String
	URI
	Function
	OperatorComma
	OperatorSlash
	Inherit
	UnicodeRange
)

var kindNames = [...]string{
	Ident:         "ident",
	Integer:       "integer",
	Real:          "real",
	Percentage:    "percentage",
	Dimension:     "dimension",
	RGBColor:      "rgb-color",
	String:        "string",
	URI:           "uri",
	Function:      "function",
	OperatorComma: "comma",
	OperatorSlash: "slash",
	Inherit:       "inherit",
	UnicodeRange:  "unicode-range",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Unit is the unit of a dimension token.
type Unit int

const (
	UnitNone Unit = iota
	UnitEm
	UnitEx
	UnitPx
	UnitCm
	UnitMm
	UnitIn
	UnitPt
	UnitPc
	UnitDeg
	UnitRad
	UnitGrad
	UnitMs
	UnitS
	UnitHz
	UnitKHz
	// UnitOther keeps dimension text in Token.Text.
	UnitOther
)

var unitNames = map[string]Unit{
	"em":   UnitEm,
	"ex":   UnitEx,
	"px":   UnitPx,
	"cm":   UnitCm,
	"mm":   UnitMm,
	"in":   UnitIn,
	"pt":   UnitPt,
	"pc":   UnitPc,
	"deg":  UnitDeg,
	"rad":  UnitRad,
	"grad": UnitGrad,
	"ms":   UnitMs,
	"s":    UnitS,
	"hz":   UnitHz,
	"khz":  UnitKHz,
}

// ParseUnit maps unit text (case insensitive) to Unit, UnitOther when unknown.
func ParseUnit(s string) Unit {
	if u, ok := unitNames[strings.ToLower(s)]; ok {
		return u
	}
	return UnitOther
}

func (u Unit) String() string {
	for name, v := range unitNames {
		if v == u {
			return name
		}
	}
	if u == UnitNone {
		return ""
	}
	return "other"
}

// Token is a single lexical unit of a property value. Line is 0 when source
// position is unknown.
type Token struct {
	Kind  Kind
	Line  int
	Int   int
	Float float64
	Unit  Unit
	// Text holds identifier, string, uri and unicode range values, function
	// names and dimension text for UnitOther.
	Text string
	// Params is set for RGBColor and Function tokens.
	Params Chain
}

func NewIdent(s string, line int) Token { return Token{Kind: Ident, Text: s, Line: line} }

func NewInteger(v, line int) Token {
	return Token{Kind: Integer, Int: v, Float: float64(v), Line: line}
}

func NewReal(v float64, line int) Token { return Token{Kind: Real, Float: v, Line: line} }

func NewPercentage(v float64, line int) Token {
	return Token{Kind: Percentage, Float: v, Line: line}
}

// NewDimension creates dimension token, unit text is kept for units not known
// to ParseUnit.
func NewDimension(v float64, unit string, line int) Token {
	t := Token{Kind: Dimension, Float: v, Unit: ParseUnit(unit), Line: line}
	if t.Unit == UnitOther {
		t.Text = unit
	}
	return t
}

func NewRGBColor(params Chain, line int) Token {
	return Token{Kind: RGBColor, Params: params, Line: line}
}

func NewString(s string, line int) Token { return Token{Kind: String, Text: s, Line: line} }

func NewURI(s string, line int) Token { return Token{Kind: URI, Text: s, Line: line} }

func NewFunction(name string, params Chain, line int) Token {
	return Token{Kind: Function, Text: name, Params: params, Line: line}
}

func NewComma(line int) Token { return Token{Kind: OperatorComma, Line: line} }

func NewSlash(line int) Token { return Token{Kind: OperatorSlash, Line: line} }

func NewInherit(line int) Token { return Token{Kind: Inherit, Line: line} }

func NewUnicodeRange(s string, line int) Token {
	return Token{Kind: UnicodeRange, Text: s, Line: line}
}

// IsOperator reports whether token is comma or slash.
func (t Token) IsOperator() bool {
	return t.Kind == OperatorComma || t.Kind == OperatorSlash
}

// StringValue returns string payload of identifier, string, uri and unicode
// range tokens. All other kinds have no string form.
func (t Token) StringValue() (string, error) {
	switch t.Kind {
	case Ident, String, URI, UnicodeRange:
		return t.Text, nil
	default:
		return "", ErrIllegalState
	}
}

// FunctionName returns name of the function token.
func (t Token) FunctionName() string {
	if t.Kind != Function {
		return ""
	}
	return t.Text
}

// UnitText returns source text of dimension unit.
func (t Token) UnitText() string {
	if t.Kind != Dimension {
		return ""
	}
	if t.Unit == UnitOther {
		return t.Text
	}
	return t.Unit.String()
}

// CSS renders token back into CSS source form.
func (t Token) CSS() string {
	switch t.Kind {
	case Ident, UnicodeRange:
		return t.Text
	case Integer:
		return strconv.Itoa(t.Int)
	case Real:
		return FormatReal(t.Float)
	case Percentage:
		return strconv.FormatFloat(t.Float, 'f', -1, 64) + "%"
	case Dimension:
		return strconv.FormatFloat(t.Float, 'f', -1, 64) + t.UnitText()
	case RGBColor:
		return "rgb(" + t.Params.CSS() + ")"
	case String:
		return strconv.Quote(t.Text)
	case URI:
		return "url(" + strconv.Quote(t.Text) + ")"
	case Function:
		return t.Text + "(" + t.Params.CSS() + ")"
	case OperatorComma:
		return ","
	case OperatorSlash:
		return "/"
	case Inherit:
		return "inherit"
	}
	return ""
}

func (t Token) String() string {
	return t.Kind.String() + "(" + t.CSS() + ")"
}

// FormatReal renders floating point value the way CSS compilers historically
// print reals: shortest decimal form, always with a fractional part.
func FormatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 32)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
