package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"flexcss/lexical"
)

// Descriptor is a single property of a rule: name bound to its raw value
// chain and the place where it was declared. Values are interpreted lazily by
// one of the *String methods, the chain itself is never modified.
type Descriptor struct {
	Name  string
	Value lexical.Chain
	Path  string
	Line  int
}

// NewDescriptor creates descriptor taking line from the value tokens when
// they carry one and using line otherwise.
func NewDescriptor(name string, value lexical.Chain, path string, line int) *Descriptor {
	if l := value.Line(); l > 0 {
		line = l
	}
	return &Descriptor{Name: name, Value: value, Path: path, Line: line}
}

func (d *Descriptor) String() string {
	return d.Name + ": " + d.Value.CSS()
}

func (d *Descriptor) head() (lexical.Token, error) {
	t, ok := d.Value.First()
	if !ok {
		return t, &ValueNotSupportedError{Property: d.Name}
	}
	return t, nil
}

// IdentString concatenates value tokens: identifiers and integers verbatim,
// commas as ",". Tokens without string form are skipped and reported as
// *UnparsableCSSError warnings combined in returned error, the string is
// always usable.
func (d *Descriptor) IdentString() (string, error) {
	var (
		sb   strings.Builder
		errs error
	)
	for _, t := range d.Value {
		switch t.Kind {
		case lexical.OperatorComma:
			sb.WriteByte(',')
		case lexical.Integer:
			sb.WriteString(strconv.Itoa(t.Int))
		default:
			s, err := t.StringValue()
			if err != nil {
				errs = multierr.Append(errs, &UnparsableCSSError{Path: d.Path, Line: d.Line})
				continue
			}
			sb.WriteString(s)
		}
	}
	return sb.String(), errs
}

// ColorString interprets the first value token as color.
func (d *Descriptor) ColorString() (string, error) {
	t, err := d.head()
	if err != nil {
		return "", err
	}
	return ColorString(d.Name, t)
}

// LengthString interprets the first value token as length in points.
func (d *Descriptor) LengthString() (string, error) {
	t, err := d.head()
	if err != nil {
		return "", err
	}
	return LengthString(d.Name, t)
}

// TimeString interprets the first value token as time.
func (d *Descriptor) TimeString() (string, error) {
	t, err := d.head()
	if err != nil {
		return "", err
	}
	return TimeString(d.Name, t)
}

// ValueString is used when format of the value is not known upfront. Comma
// separated values become bracketed array literal, otherwise the first token
// is converted.
func (d *Descriptor) ValueString() (string, error) {
	t, err := d.head()
	if err != nil {
		return "", err
	}
	if len(d.Value) > 1 && d.Value[1].Kind == lexical.OperatorComma {
		list, err := ListString(d.Name, d.Value, true)
		if err != nil {
			return "", err
		}
		return "[" + list + "]", nil
	}
	return TokenString(d.Name, t, true)
}

// ColorString converts named color or rgb color token to 0xRRGGBB form. Name
// is the property name used in errors.
func ColorString(name string, t lexical.Token) (string, error) {
	switch t.Kind {
	case lexical.Ident:
		if c, ok := ColorName(t.Text); ok {
			return c, nil
		}
		return "", &ColorNotSupportedError{Color: t.Text}
	case lexical.RGBColor:
		var sb strings.Builder
		sb.WriteString("0x")
		for _, p := range t.Params {
			var digit int
			switch p.Kind {
			case lexical.Integer:
				digit = p.Int
			case lexical.Percentage:
				digit = int(math.Floor(p.Float*255/100 + 0.5))
			default:
				continue
			}
			fmt.Fprintf(&sb, "%02X", digit&0xFF)
		}
		return sb.String(), nil
	}
	return "", &ValueNotSupportedError{Property: name}
}

// Absolute size keywords, medium is 12 and each step is a factor of 1.2.
var absoluteSizes = map[string]float64{
	"xx-small": 7,
	"x-small":  8,
	"small":    10,
	"medium":   12,
	"large":    14,
	"x-large":  17,
	"xx-large": 21,
}

// LengthString converts absolute length or size keyword to integer number of
// points, fractions are truncated.
func LengthString(name string, t lexical.Token) (string, error) {
	var length float64
	switch t.Kind {
	case lexical.Dimension:
		switch t.Unit {
		case lexical.UnitCm:
			length = t.Float * 72 / 2.54
		case lexical.UnitMm:
			length = t.Float * 72 / 10 / 2.54
		case lexical.UnitIn:
			length = t.Float * 72
		case lexical.UnitPc:
			length = t.Float * 12
		case lexical.UnitPx, lexical.UnitPt:
			length = t.Float
		default:
			return "", &ValueNotSupportedError{Property: name}
		}
	case lexical.Ident:
		v, ok := absoluteSizes[strings.ToLower(t.Text)]
		if !ok {
			return "", &ValueNotSupportedError{Property: name}
		}
		length = v
	default:
		return "", &ValueNotSupportedError{Property: name}
	}
	return strconv.Itoa(int(length)), nil
}

// TimeString converts time dimension to integer string. Seconds are scaled by
// 60.
func TimeString(name string, t lexical.Token) (string, error) {
	if t.Kind != lexical.Dimension {
		return "", &ValueNotSupportedError{Property: name}
	}
	var time float64
	switch t.Unit {
	case lexical.UnitMs:
		time = t.Float
	case lexical.UnitS:
		time = t.Float * 60
	default:
		return "", &ValueNotSupportedError{Property: name}
	}
	return strconv.Itoa(int(time)), nil
}

// ListString converts every element of the chain with TokenString joining
// comma separated elements with ", " and slash separated ones with " = ".
func ListString(name string, chain lexical.Chain, quoteIdents bool) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(chain); i += 2 {
		s, err := TokenString(name, chain[i], quoteIdents)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
		if i+1 >= len(chain) {
			break
		}
		switch chain[i+1].Kind {
		case lexical.OperatorComma:
			sb.WriteString(", ")
		case lexical.OperatorSlash:
			sb.WriteString(" = ")
		default:
			return "", &InvalidFormatError{Property: name}
		}
	}
	return sb.String(), nil
}

// TokenString converts a single token to its output form. Identifiers are
// tried as color, then as size keyword, then booleans are passed through and
// everything else becomes a string literal (quoted when quoteIdents is set).
func TokenString(name string, t lexical.Token, quoteIdents bool) (string, error) {
	switch t.Kind {
	case lexical.Dimension:
		switch t.Unit {
		case lexical.UnitMs, lexical.UnitS:
			return TimeString(name, t)
		case lexical.UnitCm, lexical.UnitMm, lexical.UnitIn, lexical.UnitPc, lexical.UnitPt, lexical.UnitPx:
			return LengthString(name, t)
		}
	case lexical.RGBColor:
		return ColorString(name, t)
	case lexical.Integer:
		return strconv.Itoa(t.Int), nil
	case lexical.Real:
		return lexical.FormatReal(t.Float), nil
	case lexical.String, lexical.URI:
		return quote(t.Text), nil
	case lexical.Ident:
		return identString(name, t, quoteIdents), nil
	case lexical.Function:
		switch t.Text {
		case "Embed", "ClassReference", "PropertyReference":
			params, err := ListString("", t.Params, false)
			if err != nil {
				return "", err
			}
			return t.Text + "(" + params + ")", nil
		}
		return "", &FunctionNotSupportedError{Function: t.Text}
	}
	return "", &ValueNotSupportedError{Property: name}
}

var identConversions = []func(string, lexical.Token) (string, error){
	ColorString,
	LengthString,
}

func identString(name string, t lexical.Token, quoteIdents bool) string {
	for _, convert := range identConversions {
		if s, err := convert(name, t); err == nil {
			return s
		}
	}
	if strings.EqualFold(t.Text, "true") || strings.EqualFold(t.Text, "false") {
		return t.Text
	}
	if quoteIdents {
		return quote(t.Text)
	}
	return t.Text
}

// quote makes string literal, embedded double quotes become single ones.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `'`) + `"`
}
