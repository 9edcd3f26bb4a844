package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	yaml "gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	c := cfg.Compiler
	if c.Output != OutputFormatAs3 {
		t.Errorf("expected as3 output, got %s", c.Output)
	}
	if c.Locale != "en" {
		t.Errorf("expected locale 'en', got '%s'", c.Locale)
	}
	if c.ClassNameTemplate != "{{ .Base | title }}Styles" {
		t.Errorf("expected class name template to stay unexpanded, got '%s'", c.ClassNameTemplate)
	}
	if !c.VerifyFontSources || c.CheckDeprecation || c.QualifiedTypes.Enable {
		t.Errorf("unexpected compiler flags %+v", c)
	}
	if pkg := c.QualifiedTypes.Namespaces["library://ns.adobe.com/flex/spark"]; pkg != "spark.components" {
		t.Errorf("expected spark namespace mapping, got '%s'", pkg)
	}
	if cfg.Logging.FileLogger.Level != "none" || cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("unexpected logging levels %+v", cfg.Logging)
	}
	if !strings.HasSuffix(cfg.Reporting.Destination, "flexcss-report.zip") {
		t.Errorf("unexpected report destination '%s'", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
compiler:
  check_deprecation: true
  output: yaml
  package: com.example.styles
  effect_styles: [creationCompleteEffect, rollOverSound]
  qualified_types:
    enable: true
    namespaces:
      "library://ns.adobe.com/flex/spark": spark.components
logging:
  file:
    level: debug
    destination: `+filepath.Join(dir, "logs", "run.log")+`
    mode: rotate
    max_size: 1
reporting:
  destination: `+filepath.Join(dir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := cfg.Compiler
	if !c.CheckDeprecation {
		t.Error("expected deprecation check to be enabled")
	}
	if c.Output != OutputFormatYaml {
		t.Errorf("expected yaml output, got %s", c.Output)
	}
	if c.Package != "com.example.styles" {
		t.Errorf("expected package 'com.example.styles', got '%s'", c.Package)
	}
	if diff := cmp.Diff([]string{"creationCompleteEffect", "rollOverSound"}, c.EffectStyles); diff != "" {
		t.Errorf("effect styles mismatch (-want +got):\n%s", diff)
	}
	// values absent from the file keep their defaults
	if c.Locale != "en" || !c.VerifyFontSources {
		t.Errorf("expected defaults to survive, got %+v", c)
	}
	if cfg.Logging.FileLogger.Mode != "rotate" || cfg.Logging.FileLogger.MaxSize != 1 {
		t.Errorf("unexpected file logger %+v", cfg.Logging.FileLogger)
	}
	if cfg.Logging.FileLogger.MaxBackups != 3 {
		t.Errorf("expected default max_backups 3, got %d", cfg.Logging.FileLogger.MaxBackups)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "version: 1\nunknown_field: 1\n"},
		{"bad version", "version: 2\n"},
		{"bad output", "version: 1\ncompiler:\n  output: swf\n"},
		{"bad locale", "version: 1\ncompiler:\n  locale: \"not a language\"\n"},
		{"bad log mode", "version: 1\nlogging:\n  file:\n    mode: sometimes\n"},
		{"empty effect style", "version: 1\ncompiler:\n  effect_styles: [\"\"]\n"},
		{"invalid yaml", "version: [1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("prepared configuration is not valid: %v", err)
	}
	if cfg.Compiler.Output != OutputFormatAs3 {
		t.Errorf("expected as3 output, got %s", cfg.Compiler.Output)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Compiler: CompilerConfig{
			Locale:            "de",
			Output:            OutputFormatIon,
			ClassNameTemplate: "Styles",
		},
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(data)
	for _, want := range []string{"output: ion", "locale: de", "class_name_template: Styles"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected dump to contain %q, got:\n%s", want, text)
		}
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unable to read dump back: %v", err)
	}
	if back.Compiler.Output != OutputFormatIon {
		t.Errorf("expected ion output after round trip, got %s", back.Compiler.Output)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		ext      string
	}{
		{"as3", OutputFormatAs3, ".as"},
		{"YAML", OutputFormatYaml, ".yaml"},
		{"Ion", OutputFormatIon, ".ion"},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("expected %s for %q, got %s", tt.expected, tt.input, got)
		}
		if got.Ext() != tt.ext {
			t.Errorf("expected extension %s, got %s", tt.ext, got.Ext())
		}
	}

	if _, err := ParseOutputFormat("swf"); !errors.Is(err, ErrInvalidOutputFormat) {
		t.Errorf("expected ErrInvalidOutputFormat, got %v", err)
	}
	if s := OutputFormat(7).String(); s != "OutputFormat(7)" {
		t.Errorf("expected 'OutputFormat(7)', got '%s'", s)
	}
	if _, err := OutputFormat(-1).MarshalText(); err == nil {
		t.Error("expected error marshaling invalid format")
	}
	if diff := cmp.Diff([]string{"as3", "yaml", "ion"}, OutputFormatNames()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanFileName(t *testing.T) {
	if got := CleanFileName("..a/b"); got != "ab" {
		t.Errorf("expected 'ab', got '%s'", got)
	}
	if got := CleanFileName("/"); got != "_bad_file_name_" {
		t.Errorf("expected '_bad_file_name_', got '%s'", got)
	}
}
