package css_test

import (
	"errors"
	"strings"
	"testing"

	"flexcss/css"
	"flexcss/lexical"
)

func rgb(params ...lexical.Token) lexical.Token {
	var chain lexical.Chain
	for i, p := range params {
		if i > 0 {
			chain = append(chain, lexical.NewComma(0))
		}
		chain = append(chain, p)
	}
	return lexical.NewRGBColor(chain, 0)
}

func TestColorString_NamedColors(t *testing.T) {
	colors := map[string]string{
		"black":      "0x000000",
		"blue":       "0x0000FF",
		"green":      "0x008000",
		"gray":       "0x808080",
		"silver":     "0xC0C0C0",
		"lime":       "0x00FF00",
		"olive":      "0x808000",
		"white":      "0xFFFFFF",
		"yellow":     "0xFFFF00",
		"maroon":     "0x800000",
		"magenta":    "0xFF00FF",
		"navy":       "0x000080",
		"red":        "0xFF0000",
		"purple":     "0x800080",
		"teal":       "0x008080",
		"fuchsia":    "0xFF00FF",
		"aqua":       "0x00FFFF",
		"cyan":       "0x00FFFF",
		"haloGreen":  "0x80FF4D",
		"haloBlue":   "0x009DFF",
		"haloOrange": "0xFFB600",
		"haloSilver": "0xAECAD9",
	}
	for name, expected := range colors {
		for _, variant := range []string{name, strings.ToLower(name), strings.ToUpper(name)} {
			got, err := css.ColorString("color", lexical.NewIdent(variant, 1))
			if err != nil {
				t.Errorf("%s: unexpected error: %v", variant, err)
				continue
			}
			if got != expected {
				t.Errorf("%s: expected %s, got %s", variant, expected, got)
			}
		}
	}
}

func TestColorString_Unknown(t *testing.T) {
	_, err := css.ColorString("color", lexical.NewIdent("chartreuse", 1))
	var cns *css.ColorNotSupportedError
	if !errors.As(err, &cns) {
		t.Fatalf("expected ColorNotSupportedError, got %v", err)
	}
	if cns.Color != "chartreuse" {
		t.Errorf("expected color 'chartreuse', got '%s'", cns.Color)
	}

	_, err = css.ColorString("color", lexical.NewInteger(3, 1))
	var vns *css.ValueNotSupportedError
	if !errors.As(err, &vns) {
		t.Fatalf("expected ValueNotSupportedError, got %v", err)
	}
	if vns.Property != "color" {
		t.Errorf("expected property 'color', got '%s'", vns.Property)
	}
}

func TestColorString_RGB(t *testing.T) {
	tests := []struct {
		name     string
		token    lexical.Token
		expected string
	}{
		{"integers", rgb(lexical.NewInteger(18, 1), lexical.NewInteger(52, 1), lexical.NewInteger(86, 1)), "0x123456"},
		{"percentages", rgb(lexical.NewPercentage(0, 1), lexical.NewPercentage(50, 1), lexical.NewPercentage(100, 1)), "0x0080FF"},
		{"mixed", rgb(lexical.NewInteger(255, 1), lexical.NewPercentage(0, 1), lexical.NewInteger(1, 1)), "0xFF0001"},
		{"skips other", rgb(lexical.NewInteger(1, 1), lexical.NewIdent("x", 1), lexical.NewInteger(2, 1)), "0x0102"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := css.ColorString("color", tt.token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestLengthString(t *testing.T) {
	tests := []struct {
		token    lexical.Token
		expected string
	}{
		{lexical.NewDimension(1, "in", 1), "72"},
		{lexical.NewDimension(1, "cm", 1), "28"},
		{lexical.NewDimension(10, "mm", 1), "28"},
		{lexical.NewDimension(1, "pc", 1), "12"},
		{lexical.NewDimension(12, "px", 1), "12"},
		{lexical.NewDimension(12.7, "pt", 1), "12"},
		{lexical.NewIdent("xx-small", 1), "7"},
		{lexical.NewIdent("x-small", 1), "8"},
		{lexical.NewIdent("small", 1), "10"},
		{lexical.NewIdent("medium", 1), "12"},
		{lexical.NewIdent("Large", 1), "14"},
		{lexical.NewIdent("x-large", 1), "17"},
		{lexical.NewIdent("XX-LARGE", 1), "21"},
	}
	for _, tt := range tests {
		got, err := css.LengthString("fontSize", tt.token)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.token, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.token, tt.expected, got)
		}
	}

	for _, tok := range []lexical.Token{
		lexical.NewIdent("huge", 1),
		lexical.NewDimension(1, "em", 1),
		lexical.NewPercentage(50, 1),
	} {
		_, err := css.LengthString("fontSize", tok)
		var vns *css.ValueNotSupportedError
		if !errors.As(err, &vns) {
			t.Errorf("%s: expected ValueNotSupportedError, got %v", tok, err)
		}
	}
}

func TestTimeString(t *testing.T) {
	tests := []struct {
		token    lexical.Token
		expected string
	}{
		{lexical.NewDimension(250, "ms", 1), "250"},
		{lexical.NewDimension(2, "s", 1), "120"},
		{lexical.NewDimension(1.5, "s", 1), "90"},
	}
	for _, tt := range tests {
		got, err := css.TimeString("duration", tt.token)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.token, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.token, tt.expected, got)
		}
	}

	if _, err := css.TimeString("duration", lexical.NewInteger(3, 1)); err == nil {
		t.Error("expected error for integer time")
	}
}

func TestTokenString(t *testing.T) {
	embed := lexical.NewFunction("Embed", lexical.Chain{
		lexical.NewIdent("source", 1),
		lexical.NewSlash(1),
		lexical.NewString("a.png", 1),
		lexical.NewComma(1),
		lexical.NewIdent("symbol", 1),
		lexical.NewSlash(1),
		lexical.NewString("Icon", 1),
	}, 1)

	tests := []struct {
		name     string
		token    lexical.Token
		quote    bool
		expected string
	}{
		{"color ident", lexical.NewIdent("red", 1), true, "0xFF0000"},
		{"size ident", lexical.NewIdent("medium", 1), true, "12"},
		{"plain ident quoted", lexical.NewIdent("foo", 1), true, `"foo"`},
		{"plain ident raw", lexical.NewIdent("foo", 1), false, "foo"},
		{"boolean", lexical.NewIdent("TRUE", 1), true, "TRUE"},
		{"string", lexical.NewString(`say "hi"`, 1), true, `"say 'hi'"`},
		{"uri", lexical.NewURI("a.png", 1), true, `"a.png"`},
		{"integer", lexical.NewInteger(-5, 1), true, "-5"},
		{"real", lexical.NewReal(1.5, 1), true, "1.5"},
		{"integral real", lexical.NewReal(2, 1), true, "2.0"},
		{"length", lexical.NewDimension(1, "in", 1), true, "72"},
		{"time", lexical.NewDimension(1, "s", 1), true, "60"},
		{"embed", embed, true, `Embed(source = "a.png", symbol = "Icon")`},
		{"class reference", lexical.NewFunction("ClassReference", lexical.Chain{lexical.NewIdent("null", 1)}, 1), true, "ClassReference(null)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := css.TokenString("p", tt.token, tt.quote)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTokenString_Errors(t *testing.T) {
	_, err := css.TokenString("p", lexical.NewFunction("attr", nil, 1), true)
	var fns *css.FunctionNotSupportedError
	if !errors.As(err, &fns) {
		t.Fatalf("expected FunctionNotSupportedError, got %v", err)
	}
	if fns.Function != "attr" {
		t.Errorf("expected function 'attr', got '%s'", fns.Function)
	}

	for _, tok := range []lexical.Token{
		lexical.NewPercentage(10, 1),
		lexical.NewDimension(1, "em", 1),
		lexical.NewInherit(1),
		lexical.NewComma(1),
	} {
		_, err := css.TokenString("p", tok, true)
		var vns *css.ValueNotSupportedError
		if !errors.As(err, &vns) {
			t.Errorf("%s: expected ValueNotSupportedError, got %v", tok, err)
		}
	}
}

func TestListString(t *testing.T) {
	chain := lexical.Chain{
		lexical.NewIdent("a", 1),
		lexical.NewSlash(1),
		lexical.NewIdent("b", 1),
		lexical.NewComma(1),
		lexical.NewInteger(3, 1),
	}
	got, err := css.ListString("p", chain, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := "a = b, 3"; got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}

	_, err = css.ListString("p", lexical.Chain{lexical.NewIdent("a", 1), lexical.NewIdent("b", 1)}, true)
	var ife *css.InvalidFormatError
	if !errors.As(err, &ife) {
		t.Fatalf("expected InvalidFormatError, got %v", err)
	}
}

func TestDescriptor_ValueString(t *testing.T) {
	list := css.NewDescriptor("colors", lexical.Chain{
		lexical.NewIdent("red", 1),
		lexical.NewComma(1),
		lexical.NewIdent("blue", 1),
	}, "a.css", 0)
	got, err := list.ValueString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := "[0xFF0000, 0x0000FF]"; got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}

	// space separated values: only the first one counts
	spaced := css.NewDescriptor("border", lexical.Chain{
		lexical.NewIdent("solid", 1),
		lexical.NewIdent("red", 1),
	}, "a.css", 0)
	got, err = spaced.ValueString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := `"solid"`; got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}

	empty := css.NewDescriptor("empty", nil, "a.css", 3)
	_, err = empty.ValueString()
	var vns *css.ValueNotSupportedError
	if !errors.As(err, &vns) {
		t.Fatalf("expected ValueNotSupportedError, got %v", err)
	}
}

func TestDescriptor_IdentString(t *testing.T) {
	d := css.NewDescriptor("fontFamily", lexical.Chain{
		lexical.NewIdent("Arial", 1),
		lexical.NewComma(1),
		lexical.NewString("Times New Roman", 1),
		lexical.NewComma(1),
		lexical.NewInteger(12, 1),
	}, "a.css", 0)
	got, err := d.IdentString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expected := "Arial,Times New Roman,12"; got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}

	bad := css.NewDescriptor("fontFamily", lexical.Chain{
		lexical.NewIdent("Arial", 4),
		lexical.NewReal(1.5, 4),
		lexical.NewIdent("Bold", 4),
	}, "a.css", 0)
	got, err = bad.IdentString()
	if expected := "ArialBold"; got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
	var uc *css.UnparsableCSSError
	if !errors.As(err, &uc) {
		t.Fatalf("expected UnparsableCSSError, got %v", err)
	}
	if uc.Path != "a.css" || uc.Line != 4 {
		t.Errorf("expected a.css:4, got %s:%d", uc.Path, uc.Line)
	}
}

func TestDescriptor_Line(t *testing.T) {
	d := css.NewDescriptor("color", lexical.Chain{lexical.NewIdent("red", 5)}, "a.css", 9)
	if d.Line != 5 {
		t.Errorf("expected line 5, got %d", d.Line)
	}
	d = css.NewDescriptor("color", lexical.Chain{lexical.NewIdent("red", 0)}, "a.css", 9)
	if d.Line != 9 {
		t.Errorf("expected line 9, got %d", d.Line)
	}
}
