package compile_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"

	"flexcss/compile"
	"flexcss/config"
	"flexcss/css"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func options(format config.OutputFormat) compile.Options {
	return compile.Options{
		Format:            format,
		ClassNameTemplate: "{{ .Base | title }}Styles",
		Locale:            language.English,
	}
}

func TestOptions_ClassName(t *testing.T) {
	tests := []struct {
		tmpl     string
		path     string
		expected string
	}{
		{"{{ .Base | title }}Styles", "dir/main-app.css", "Main_AppStyles"},
		{"", "dir/main.css", "main"},
		{"", "9lives.mxml", "_9lives"},
		{"{{ .Base | upper }}_{{ .Format }}", "a.css", "A_yaml"},
		{"   ", "a.css", "Styles"},
	}
	for _, tt := range tests {
		o := compile.Options{ClassNameTemplate: tt.tmpl, Format: config.OutputFormatYaml}
		got, err := o.ClassName(tt.path)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.tmpl, err)
		}
		if got != tt.expected {
			t.Errorf("expected %s for %q, got %s", tt.expected, tt.tmpl, got)
		}
	}

	o := compile.Options{ClassNameTemplate: "{{ .Nope"}
	if _, err := o.ClassName("a.css"); err == nil {
		t.Error("expected template error")
	}
}

func TestNewOptions(t *testing.T) {
	cfg := config.CompilerConfig{
		Locale:       "de",
		Output:       config.OutputFormatIon,
		EffectStyles: []string{"rollOverSound"},
		QualifiedTypes: config.QualifiedTypes{
			Enable: true,
		},
	}
	o, err := compile.NewOptions(&cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Locale != language.German || o.Format != config.OutputFormatIon {
		t.Errorf("unexpected options %+v", o)
	}
	if o.Namespaces == nil {
		t.Error("expected qualified type selectors to be requested")
	}

	cfg.Locale = "not a language"
	if _, err := compile.NewOptions(&cfg); err == nil {
		t.Error("expected locale error")
	}
}

func TestCompiler_CSS(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "main.css"), "Button { color: red; fontSize: 12 }\n.header { showEffect: Fade }\n")
	dst := filepath.Join(dir, "out")

	c := compile.New(options(config.OutputFormatYaml), nil, zap.NewNop())
	m, err := c.Compile(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "MainStyles" {
		t.Errorf("expected class MainStyles, got %s", m.Name)
	}
	out, err := c.Write(m, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != filepath.Join(dst, "MainStyles.yaml") {
		t.Errorf("unexpected output path %s", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"class: MainStyles", "subject: Button", "name: fontSize", "value: \"12\"", "- showEffect"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, data)
		}
	}

	if _, err := c.Write(m, dst); !errors.Is(err, compile.ErrDestinationExists) {
		t.Errorf("expected ErrDestinationExists, got %v", err)
	}
	opts := options(config.OutputFormatYaml)
	opts.Overwrite = true
	if _, err := compile.New(opts, nil, zap.NewNop()).Write(m, dst); err != nil {
		t.Errorf("expected overwrite to succeed, got %v", err)
	}
}

func TestCompiler_MXML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "styles", "extra.css"), "Label { fontSize: 12 }\n")
	src := writeFile(t, filepath.Join(dir, "app.mxml"), `<?xml version="1.0" encoding="utf-8"?>
<s:Application xmlns:fx="http://ns.adobe.com/mxml/2009" xmlns:s="library://ns.adobe.com/flex/spark">
    <fx:Style>
        Button { color: red; label: PropertyReference("title") }
    </fx:Style>
    <fx:Style source="styles/extra.css"/>
</s:Application>
`)

	c := compile.New(options(config.OutputFormatAs3), nil, zap.NewNop())
	m, err := c.Compile(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var subjects []string
	for _, d := range m.StyleDefs() {
		subjects = append(subjects, d.Subject)
	}
	if diff := cmp.Diff([]string{"Button", "Label"}, subjects); diff != "" {
		t.Errorf("subjects mismatch (-want +got):\n%s", diff)
	}

	out, err := c.Write(m, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(out) != "AppStyles.as" {
		t.Errorf("expected AppStyles.as, got %s", filepath.Base(out))
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"public class AppStyles",
		`style.setStyle("color", 0xFF0000);`,
		`style.setStyle("label", title);`,
		`style.setStyle("fontSize", 12);`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, data)
		}
	}
}

func TestCompiler_Errors(t *testing.T) {
	dir := t.TempDir()
	c := compile.New(options(config.OutputFormatAs3), nil, zap.NewNop())
	ctx := context.Background()

	broken := writeFile(t, filepath.Join(dir, "broken.css"), "A { color: ; }")
	var d css.Diagnostic
	if _, err := c.Compile(ctx, broken); !errors.As(err, &d) {
		t.Errorf("expected parse diagnostic, got %v", err)
	}

	// PropertyReference needs host document
	ref := writeFile(t, filepath.Join(dir, "ref.css"), `A { label: PropertyReference("x") }`)
	if _, err := c.Compile(ctx, ref); err == nil {
		t.Error("expected error for property reference in style sheet")
	}

	other := writeFile(t, filepath.Join(dir, "notes.txt"), "A { b: c }")
	if _, err := c.Compile(ctx, other); err == nil {
		t.Error("expected error for unsupported input")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := c.Compile(cancelled, ref); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "main.css"), "Button { color: red }")
	m, err := compile.New(options(config.OutputFormatAs3), nil, zap.NewNop()).Compile(context.Background(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := compile.Encode(m, config.OutputFormatIon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"MainStyles"`) || !strings.Contains(string(data), `"0xFF0000"`) {
		t.Errorf("unexpected ion output:\n%s", data)
	}

	data, err = compile.Encode(m, config.OutputFormatAs3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "public class MainStyles") {
		t.Errorf("unexpected as3 output:\n%s", data)
	}

	if _, err := compile.Encode(m, config.OutputFormat(42)); err == nil {
		t.Error("expected error for unknown format")
	}
}

var ttfHeader = string([]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x0c, 0x00, 0x80})

func TestVerifyFontSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fonts", "good.ttf"), ttfHeader)
	writeFile(t, filepath.Join(dir, "fonts", "bad.ttf"), "definitely not a font")
	sheetPath := writeFile(t, filepath.Join(dir, "fonts.css"), `@font-face { src: url("fonts/good.ttf"); fontFamily: Good; }
@font-face { src: url("fonts/bad.ttf"); fontFamily: Bad; }
@font-face { src: url("fonts/missing.ttf"); fontFamily: Missing; }
@font-face { src: local("Arial"); fontFamily: System; }
`)
	f, err := os.Open(sheetPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet, err := css.NewParser(zap.NewNop()).Parse(sheetPath, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errs := compile.VerifyFontSources(sheet.FontFaceRules())
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	var fse *compile.FontSourceError
	if !errors.As(errs[0], &fse) || fse.Family != "Bad" || fse.Line != 2 {
		t.Errorf("unexpected first error %v", errs[0])
	}
	if !errors.Is(errs[1], fs.ErrNotExist) {
		t.Errorf("expected missing file error, got %v", errs[1])
	}
}

func TestCompiler_LogsFontWarnings(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "main.css"), `@font-face { src: url("missing.ttf"); fontFamily: Missing; }`)

	core, logs := observer.New(zap.WarnLevel)
	opts := options(config.OutputFormatAs3)
	opts.VerifyFontSources = true
	if _, err := compile.New(opts, nil, zap.New(core)).Compile(context.Background(), src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.FilterMessageSnippet("missing.ttf").Len() != 1 {
		t.Errorf("expected font warning to be logged, got %v", logs.All())
	}
}

func TestInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b10.css"), "")
	writeFile(t, filepath.Join(dir, "b2.css"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "sub", "a.MXML"), "")
	single := writeFile(t, filepath.Join(t.TempDir(), "single.css"), "")

	inputs, err := compile.Inputs([]string{dir, single})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{
		filepath.Join(dir, "b2.css"),
		filepath.Join(dir, "b10.css"),
		filepath.Join(dir, "sub", "a.MXML"),
		single,
	}
	if diff := cmp.Diff(expected, inputs); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}

	if _, err := compile.Inputs([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("expected error for missing source")
	}
}
