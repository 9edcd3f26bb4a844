package codegen

// Document is serializable view of Module, the same data drives ActionScript
// template and structured outputs.
type Document struct {
	Package string         `yaml:"package,omitempty" ion:"package,omitempty"`
	Class   string         `yaml:"class" ion:"class"`
	Imports []string       `yaml:"imports,omitempty" ion:"imports,omitempty"`
	Embeds  []EmbedView    `yaml:"embeds,omitempty" ion:"embeds,omitempty"`
	Fonts   []FontFaceView `yaml:"fonts,omitempty" ion:"fonts,omitempty"`
	Styles  []StyleDefView `yaml:"styles" ion:"styles"`
}

type EmbedView struct {
	Name   string  `yaml:"name" ion:"name"`
	Font   bool    `yaml:"font,omitempty" ion:"font,omitempty"`
	Params []Param `yaml:"params" ion:"params"`
}

type FontFaceView struct {
	Family string `yaml:"family" ion:"family"`
	Bold   bool   `yaml:"bold" ion:"bold"`
	Italic bool   `yaml:"italic" ion:"italic"`
	Embed  string `yaml:"embed" ion:"embed"`
	Style  string `yaml:"style,omitempty" ion:"style,omitempty"`
	Weight string `yaml:"weight,omitempty" ion:"weight,omitempty"`
}

type StyleDefView struct {
	Subject   string         `yaml:"subject" ion:"subject"`
	TypeName  string         `yaml:"type_name" ion:"type_name"`
	Effects   []string       `yaml:"effects,omitempty" ion:"effects,omitempty"`
	Selectors []SelectorView `yaml:"selectors" ion:"selectors"`
}

type SelectorView struct {
	Text   string       `yaml:"text" ion:"text"`
	Chain  []SimpleView `yaml:"chain" ion:"chain"`
	Blocks []BlockView  `yaml:"blocks" ion:"blocks"`
}

// SimpleView is one element of selector chain, outermost ancestor first.
type SimpleView struct {
	Subject    string      `yaml:"subject" ion:"subject"`
	Conditions []Condition `yaml:"conditions,omitempty" ion:"conditions,omitempty"`
}

type BlockView struct {
	Media      string         `yaml:"media,omitempty" ion:"media,omitempty"`
	Effects    []string       `yaml:"effects,omitempty" ion:"effects,omitempty"`
	Properties []PropertyView `yaml:"properties" ion:"properties"`
}

type PropertyView struct {
	Name  string `yaml:"name" ion:"name"`
	Value string `yaml:"value" ion:"value"`
	Kind  string `yaml:"kind" ion:"kind"`
	Line  int    `yaml:"line" ion:"line"`
}

// Document builds view of the module. Blocks without properties are
// skipped.
func (m *Module) Document() *Document {
	doc := &Document{
		Package: m.pkg,
		Class:   m.Name,
		Imports: m.Imports(),
	}
	for _, e := range m.Embeds() {
		doc.Embeds = append(doc.Embeds, EmbedView{Name: e.Name, Font: e.Font, Params: e.Params})
	}
	for _, ff := range m.fontFaces {
		family, bold, italic := ff.Family(), ff.IsBold(), ff.IsItalic()
		doc.Fonts = append(doc.Fonts, FontFaceView{
			Family: family,
			Bold:   bold,
			Italic: italic,
			Embed:  fontEmbedName(family, bold, italic),
			Style:  ff.FormatFontStyle(),
			Weight: ff.FormatFontWeight(),
		})
	}
	for _, d := range m.StyleDefs() {
		sv := StyleDefView{Subject: d.Subject, TypeName: d.TypeName(), Effects: d.EffectStyles()}
		for _, sel := range d.Selectors() {
			selv := SelectorView{Text: sel.String()}
			for _, s := range sel.Chain() {
				selv.Chain = append(selv.Chain, SimpleView{Subject: s.Subject, Conditions: s.Conditions})
			}
			for _, b := range d.Blocks(sel) {
				if b.Declaration.Len() == 0 {
					continue
				}
				bv := BlockView{Media: b.Media.String(), Effects: b.EffectStyles()}
				for name, desc := range b.Declaration.All() {
					v, ok := d.Value(desc)
					if !ok {
						continue
					}
					bv.Properties = append(bv.Properties, PropertyView{Name: name, Value: v.Text, Kind: v.Kind.String(), Line: desc.Line})
				}
				selv.Blocks = append(selv.Blocks, bv)
			}
			sv.Selectors = append(sv.Selectors, selv)
		}
		doc.Styles = append(doc.Styles, sv)
	}
	return doc
}
