package css_test

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"flexcss/css"
)

func TestReadCharset(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		charset  string
		declared bool
	}{
		{"empty", "", "UTF-8", false},
		{"no hints", "A { b: c }", "UTF-8", false},
		{"utf-8 bom", "\xEF\xBB\xBFA { b: c }", "UTF-8", false},
		{"bom and rule", "\xEF\xBB\xBF@charset \"UTF-8\";\nA { b: c }", "UTF-8", true},
		{"rule", "@charset \"ISO-8859-1\";\nA { b: c }", "ISO-8859-1", true},
		{"rule without semicolon", "@charset \"ISO-8859-1\" ;\nA { b: c }", "UTF-8", false},
		{"utf-16be bom", "\xFE\xFF\x00A", "UTF-16BE", false},
		{"utf-16le bom", "\xFF\xFEA\x00", "UTF-16LE", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := bufio.NewReader(strings.NewReader(tt.data))
			name, declared, err := css.ReadCharset(br)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.charset || declared != tt.declared {
				t.Errorf("expected %s (declared %t), got %s (declared %t)", tt.charset, tt.declared, name, declared)
			}
			// sniffing must not consume input
			rest, _ := io.ReadAll(br)
			if string(rest) != tt.data {
				t.Errorf("expected input to be preserved")
			}
		})
	}
}

func TestReadCharset_Invalid(t *testing.T) {
	for _, data := range []string{
		"@charset \"no-such-charset\";",
		// ASCII text cannot be read back as UTF-16
		"@charset \"UTF-16BE\";",
	} {
		_, _, err := css.ReadCharset(bufio.NewReader(strings.NewReader(data)))
		var ice *css.InvalidCharsetError
		if !errors.As(err, &ice) {
			t.Errorf("%s: expected InvalidCharsetError, got %v", data, err)
		}
	}
}
