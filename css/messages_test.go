package css_test

import (
	"fmt"
	"testing"

	"golang.org/x/text/language"

	"flexcss/css"
	"flexcss/sac"
)

func TestLocalizer_Translate(t *testing.T) {
	l := css.NewLocalizer(language.English)
	unexpected := func(c sac.Code) string { return fmt.Sprintf(sac.UnexpectedTokenFormat, c) }

	tests := []struct {
		in       string
		expected string
	}{
		{unexpected(sac.CodeLeftCurlyBrace), "Invalid CSS syntax, unexpected token '{'."},
		{unexpected(sac.CodeCDO), "Invalid CSS syntax, unexpected token '<!--'."},
		{unexpected(sac.CodeImportant), "Invalid CSS syntax, unexpected token '!important'."},
		{unexpected(sac.CodeLeftBracket), "Invalid CSS syntax, unexpected token '['. Use comma separated values for arrays."},
		{unexpected(sac.CodeFunction), "Invalid CSS syntax, unexpected identifier."},
		{unexpected(sac.CodeReal), "Invalid CSS syntax, unexpected real number."},
		{unexpected(sac.CodePercentage), "Invalid CSS syntax, unexpected percentage units."},
		{unexpected(sac.CodeNamespaceSymbol), unexpected(sac.CodeNamespaceSymbol)},
		{sac.MsgInvalidIdentStartChr, "Invalid identifier start character '_'."},
		{sac.MsgCharacter, "Unable to parse CSS, unexpected character."},
		{sac.MsgIdentifierCharacter, "Unable to parse CSS, unexpected character."},
		{"Identifier expected.", "Identifier expected."},
	}
	for _, tt := range tests {
		if got := l.Translate(tt.in); got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestLocalizer_Describe(t *testing.T) {
	l := css.NewLocalizer(language.English)
	tests := []struct {
		err      error
		expected string
	}{
		{&css.ColorNotSupportedError{Color: "mauve"}, "Color 'mauve' is not supported."},
		{&css.ValueNotSupportedError{Property: "fontSize"}, "Value of 'fontSize' is not supported."},
		{&css.FunctionNotSupportedError{Function: "attr"}, "Function 'attr' is not supported."},
		{&css.IgnoredDescriptorWarning{Descriptor: "bbox"}, "The 'bbox' font face descriptor is not supported and will be ignored."},
		{fmt.Errorf("wrapped: %w", &css.InvalidFormatError{}), "Invalid list format, values must be separated by comma or slash."},
		{fmt.Errorf("plain"), "plain"},
	}
	for _, tt := range tests {
		if got := l.Describe(tt.err); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}
