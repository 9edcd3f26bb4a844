package codegen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"flexcss/codegen"
	"flexcss/css"
)

func parse(t *testing.T, path, text string) *css.StyleSheet {
	t.Helper()
	sheet, err := css.NewParser(zap.NewNop()).ParseString(path, text)
	if err != nil {
		t.Fatalf("unable to parse %s: %v", path, err)
	}
	return sheet
}

func properties(b codegen.BlockView) []string {
	out := make([]string, 0, len(b.Properties))
	for _, p := range b.Properties {
		out = append(out, p.Name+"="+p.Value)
	}
	return out
}

func TestDehyphenize(t *testing.T) {
	tests := map[string]string{
		"color":                  "color",
		"font-size":              "fontSize",
		"advanced-anti-aliasing": "advancedAntiAliasing",
		"-webkit-box":            "WebkitBox",
	}
	for in, expected := range tests {
		if got := codegen.Dehyphenize(in); got != expected {
			t.Errorf("%s: expected %s, got %s", in, expected, got)
		}
	}
}

func TestModule_MergesBlocks(t *testing.T) {
	sheet := parse(t, "a.css", `Button { color: red; font-size: 12px }
Button { color: blue }
@media screen {
  Button { color: green; padding-left: 2 }
}
Button { color: #FFFFFF }
`)
	m := codegen.NewModule("StyleInit", zap.NewNop())
	m.ExtractStyles(sheet)

	defs := m.StyleDefs()
	if len(defs) != 1 {
		t.Fatalf("expected 1 style def, got %d", len(defs))
	}
	doc := m.Document()
	sel := doc.Styles[0].Selectors
	if len(sel) != 1 || sel[0].Text != "Button" {
		t.Fatalf("expected single Button selector, got %+v", sel)
	}
	blocks := sel[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if diff := cmp.Diff([]string{"color=0xFFFFFF", "fontSize=12"}, properties(blocks[0])); diff != "" {
		t.Errorf("unconditional block mismatch (-want +got):\n%s", diff)
	}
	if blocks[1].Media != "screen" {
		t.Errorf("expected media 'screen', got '%s'", blocks[1].Media)
	}
	// later unconditional declaration replaces color in media block too
	if diff := cmp.Diff([]string{"color=0xFFFFFF", "paddingLeft=2"}, properties(blocks[1])); diff != "" {
		t.Errorf("media block mismatch (-want +got):\n%s", diff)
	}
}

func TestModule_Subjects(t *testing.T) {
	sheet := parse(t, "a.css", `.header, Label { show-effect: Fade; font-family: Arial, Verdana; roll-over-sound: beep }
* { theme-color: red }
VBox Label:disabled { color: red }
`)
	m := codegen.NewModule("StyleInit", zap.NewNop(), codegen.WithEffectStyles("rollOverSound"))
	m.ExtractStyles(sheet)

	global, ok := m.StyleDef("global")
	if !ok {
		t.Fatal("expected global style def")
	}
	if global.TypeName() != "global" || global.IsTypeSelector() {
		t.Errorf("unexpected global def %s", global.TypeName())
	}
	var texts []string
	for _, s := range global.Selectors() {
		texts = append(texts, s.String())
	}
	if diff := cmp.Diff([]string{".header", "*"}, texts); diff != "" {
		t.Errorf("global selectors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"showEffect", "rollOverSound"}, global.EffectStyles()); diff != "" {
		t.Errorf("effect styles mismatch (-want +got):\n%s", diff)
	}

	label, ok := m.StyleDef("Label")
	if !ok {
		t.Fatal("expected Label style def")
	}
	doc := m.Document()
	var labelView codegen.StyleDefView
	for _, s := range doc.Styles {
		if s.Subject == "Label" {
			labelView = s
		}
	}
	if len(labelView.Selectors) != 2 {
		t.Fatalf("expected 2 Label selectors, got %d", len(labelView.Selectors))
	}
	if diff := cmp.Diff([]string{`showEffect="Fade"`, `fontFamily="Arial,Verdana"`, `rollOverSound="beep"`}, properties(labelView.Selectors[0].Blocks[0])); diff != "" {
		t.Errorf("Label properties mismatch (-want +got):\n%s", diff)
	}
	desc := label.Selectors()[1]
	if desc.String() != "VBox Label:disabled" {
		t.Errorf("expected descendant selector, got %s", desc)
	}
	chain := labelView.Selectors[1].Chain
	if len(chain) != 2 || chain[0].Subject != "VBox" || chain[1].Conditions[0].Kind != codegen.ConditionPseudo {
		t.Errorf("unexpected selector chain %+v", chain)
	}
	if len(m.Diagnostics()) != 0 {
		t.Errorf("expected no diagnostics, got %v", m.Diagnostics())
	}
}

func TestModule_UnsupportedSelectors(t *testing.T) {
	sheet := parse(t, "a.css", "A > B { c: d }\nA[x] { c: d }\nC { c: d }")
	m := codegen.NewModule("StyleInit", zap.NewNop())
	m.ExtractStyles(sheet)

	if n := len(m.StyleDefs()); n != 1 {
		t.Errorf("expected 1 style def, got %d", n)
	}
	diags := m.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Line != 1 || !strings.Contains(diags[0].Message, "A > B") {
		t.Errorf("unexpected diagnostic %v", diags[0])
	}
	if diags[1].Line != 2 || !strings.Contains(diags[1].Message, "[x]") {
		t.Errorf("unexpected diagnostic %v", diags[1])
	}
	if m.Err() != nil {
		t.Errorf("expected warnings only, got %v", m.Err())
	}
}

func TestModule_QualifiedTypeSelectors(t *testing.T) {
	sheet := parse(t, "a.css", `@namespace s "library://ns.adobe.com/flex/spark";
@namespace mx "library://ns.adobe.com/flex/mx";
s|Button { color: red }
mx|Label { color: red }
Panel { color: red }
`)
	m := codegen.NewModule("StyleInit", zap.NewNop(), codegen.WithQualifiedTypeSelectors(map[string]string{
		"library://ns.adobe.com/flex/spark": "spark.components",
	}))
	m.ExtractStyles(sheet)

	var names []string
	for _, d := range m.StyleDefs() {
		names = append(names, d.TypeName())
	}
	if diff := cmp.Diff([]string{"spark_components_Button", "Label", "Panel"}, names); diff != "" {
		t.Errorf("type names mismatch (-want +got):\n%s", diff)
	}
	if n := len(m.Diagnostics()); n != 2 {
		t.Errorf("expected 2 diagnostics, got %d", n)
	}
}

func TestModule_Values(t *testing.T) {
	sheet := parse(t, "a.css", `Button.icon {
  icon: Embed(source="a.png", symbol="Icon");
  skin: ClassReference("mx.skins.Foo");
  empty: ClassReference(null);
  bad: ClassReference(foo);
  prop: PropertyReference("x");
  size: 1em;
}`)
	m := codegen.NewModule("StyleInit", zap.NewNop())
	m.ExtractStyles(sheet)

	d, ok := m.StyleDef("Button")
	if !ok {
		t.Fatal("expected Button style def")
	}
	values := map[string]codegen.Value{}
	for _, b := range d.Blocks(d.Selectors()[0]) {
		for name, desc := range b.Declaration.All() {
			v, _ := d.Value(desc)
			values[name] = v
		}
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	icon := values["icon"]
	if icon.Kind != codegen.ValueEmbed || icon.Embed == nil || icon.Text != icon.Embed.Name {
		t.Fatalf("unexpected icon value %+v", icon)
	}
	if !strings.HasPrefix(icon.Text, "_embed_css_") {
		t.Errorf("unexpected embed name %s", icon.Text)
	}
	if s, _ := icon.Embed.Param("symbol"); s != "Icon" {
		t.Errorf("expected symbol Icon, got %s", s)
	}
	if l, _ := icon.Embed.Param("_line"); l != "2" {
		t.Errorf("expected _line 2, got %s", l)
	}
	if skin := values["skin"]; skin.Kind != codegen.ValueClassReference || skin.Text != "mx.skins.Foo" {
		t.Errorf("unexpected skin value %+v", skin)
	}
	if empty := values["empty"]; empty.Kind != codegen.ValueClassReference || empty.Text != "null" {
		t.Errorf("unexpected empty value %+v", empty)
	}
	if diff := cmp.Diff([]string{"mx.skins.Foo"}, m.Imports()); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}

	diags := m.Diagnostics()
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %v", len(diags), diags)
	}
	var errs int
	for _, diag := range diags {
		if diag.Severity == css.SeverityError {
			errs++
		}
	}
	// bad reference and property reference outside of document
	if errs != 2 {
		t.Errorf("expected 2 errors, got %d", errs)
	}
	if m.Err() == nil {
		t.Error("expected module error")
	}
}

func TestModule_PropertyReferenceInDocument(t *testing.T) {
	sheet := parse(t, "app.mxml", `Button { prop: PropertyReference("labelText") }`)
	m := codegen.NewModule("StyleInit", zap.NewNop(), codegen.WithDocument(true))
	m.ExtractStyles(sheet)
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	doc := m.Document()
	p := doc.Styles[0].Selectors[0].Blocks[0].Properties[0]
	if p.Value != "labelText" || p.Kind != "property" {
		t.Errorf("unexpected property %+v", p)
	}
}

func TestModule_EmbedSharing(t *testing.T) {
	sheet := parse(t, "a.css", `A { icon: Embed("a.png") }
B { icon: Embed("a.png") }
C { icon: Embed(source="a.png", mimeType="image/png") }
D { icon: Embed("b.png") }
`)
	m := codegen.NewModule("StyleInit", zap.NewNop())
	m.ExtractStyles(sheet)

	name := func(subject string) string {
		d, ok := m.StyleDef(subject)
		if !ok {
			t.Fatalf("expected %s style def", subject)
		}
		desc, _ := d.Blocks(d.Selectors()[0])[0].Declaration.Property("icon")
		v, _ := d.Value(desc)
		return v.Text
	}
	a, b, c, dd := name("A"), name("B"), name("C"), name("D")
	if a != b {
		t.Errorf("expected shared embed, got %s and %s", a, b)
	}
	if c != a+"_2" {
		t.Errorf("expected %s_2, got %s", a, c)
	}
	if dd == a || dd == c {
		t.Errorf("expected distinct embed for b.png, got %s", dd)
	}
	if n := len(m.Embeds()); n != 3 {
		t.Errorf("expected 3 embeds, got %d", n)
	}
}

func TestModule_FontFaces(t *testing.T) {
	sheet := parse(t, "fonts.css", `@font-face { src: url("a.ttf"); fontFamily: Arial; }
@font-face { src: url("b.ttf"); fontFamily: Arial; }
@font-face { src: url("c.ttf"); fontFamily: Arial; font-weight: bold; }
`)
	m := codegen.NewModule("StyleInit", zap.NewNop())
	m.ExtractStyles(sheet)

	if n := len(m.FontFaceRules()); n != 2 {
		t.Fatalf("expected 2 font faces, got %d", n)
	}
	embeds := m.Embeds()
	if len(embeds) != 2 {
		t.Fatalf("expected 2 embeds, got %d", len(embeds))
	}
	var names []string
	for _, e := range embeds {
		if !e.Font {
			t.Errorf("expected font embed %s", e.Name)
		}
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"_embed__font_arial_bold_normal", "_embed__font_arial_medium_normal"}, names); diff != "" {
		t.Errorf("embed names mismatch (-want +got):\n%s", diff)
	}
	medium := embeds[1]
	for key, expected := range map[string]string{
		"source":   "a.ttf",
		"fontName": "Arial",
		"mimeType": css.MimeTypeFont,
		"_file":    "fonts.css",
		"_line":    "1",
	} {
		if v, _ := medium.Param(key); v != expected {
			t.Errorf("%s: expected %s, got %s", key, expected, v)
		}
	}
}

func TestModule_Render(t *testing.T) {
	sheet := parse(t, "a.css", `Button { color: red; skin: ClassReference("mx.skins.Foo") }
@media screen {
  .header { font-size: 14 }
}
Label { icon: Embed("a.png") }
`)
	m := codegen.NewModule("StyleInit", zap.NewNop(), codegen.WithPackage("flex.styles"))
	m.ExtractStyles(sheet)

	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, expected := range []string{
		"package flex.styles\n",
		"import mx.skins.Foo;\n",
		"public class StyleInit\n",
		`selector = new CSSSelector("Button", conditions, selector);`,
		`style.setStyle("color", 0xFF0000);`,
		`style.setStyle("skin", mx.skins.Foo);`,
		`condition = new CSSCondition("class", "header");`,
		`selector = new CSSSelector("", conditions, selector);`,
		`if (styleManager.acceptMediaList("screen"))`,
		`            style.setStyle("fontSize", 14);`,
		`[Embed(source="a.png", _file="a.css", _line="5")]`,
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected output to contain %q\n%s", expected, out)
		}
	}
}
