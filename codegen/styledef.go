package codegen

import (
	"slices"
	"strings"

	"flexcss/css"
)

// StyleDef collects declarations of every selector sharing the same subject.
// Declarations are kept per selector, each selector owns a css.BlockSet with
// one block for unconditional properties and one per @media occurrence.
type StyleDef struct {
	Subject string
	Path    string
	Line    int

	selectors []*Selector
	sets      map[string]*css.BlockSet
	values    map[*css.Descriptor]Value

	vp      *valueProcessor
	effects []string // configured effect style names
	report  func(d *css.Descriptor, err error)
}

// TypeName returns name used for generated type: "global" for universal
// subject, dots replaced with underscores otherwise.
func (d *StyleDef) TypeName() string {
	if d.Subject == Universal {
		return Global
	}
	return strings.ReplaceAll(d.Subject, ".", "_")
}

// IsTypeSelector reports whether styles are attached to a type.
func (d *StyleDef) IsTypeSelector() bool {
	return d.Subject != Global && d.Subject != Universal
}

// Selectors returns distinct selectors in order of appearance.
func (d *StyleDef) Selectors() []*Selector {
	return slices.Clone(d.selectors)
}

// Blocks returns declaration blocks of selector.
func (d *StyleDef) Blocks(sel *Selector) []*css.DeclarationBlock {
	set, ok := d.sets[sel.String()]
	if !ok {
		return nil
	}
	return set.Blocks()
}

// Value returns coerced value of descriptor stored in one of the blocks.
func (d *StyleDef) Value(desc *css.Descriptor) (Value, bool) {
	v, ok := d.values[desc]
	return v, ok
}

// EffectStyles returns effect style names of all blocks.
func (d *StyleDef) EffectStyles() []string {
	var out []string
	for _, sel := range d.selectors {
		for _, b := range d.sets[sel.String()].Blocks() {
			for _, name := range b.EffectStyles() {
				if !slices.Contains(out, name) {
					out = append(out, name)
				}
			}
		}
	}
	return out
}

// Imports returns classes referenced with ClassReference.
func (d *StyleDef) Imports() []string {
	var out []string
	for _, v := range d.values {
		if v.Kind == ValueClassReference && v.Text != "null" && !slices.Contains(out, v.Text) {
			out = append(out, v.Text)
		}
	}
	slices.SortFunc(out, naturalCompare)
	return out
}

// addDeclaration merges declaration into the block of selector and media.
// Properties declared without media also replace same named properties of
// the selector's media blocks declared so far.
func (d *StyleDef) addDeclaration(sel *Selector, decl *css.StyleDeclaration, media *css.MediaList) {
	key := sel.String()
	set, ok := d.sets[key]
	if !ok {
		set = css.NewBlockSet(decl.Path())
		d.sets[key] = set
		d.selectors = append(d.selectors, sel)
	}
	block := set.GetOrCreateBlock(sel, media)
	d.extract(decl, block)
	if media != nil {
		return
	}
	for _, other := range set.Blocks() {
		if other == block {
			continue
		}
		for name, desc := range block.Declaration.All() {
			if _, ok := other.Declaration.Property(name); ok {
				other.Declaration.Put(name, desc)
			}
		}
	}
}

func (d *StyleDef) extract(decl *css.StyleDeclaration, block *css.DeclarationBlock) {
	for _, desc := range decl.All() {
		name := Dehyphenize(desc.Name)
		if name == "fontFamily" {
			v, err := d.vp.fontFamily(desc)
			if err != nil {
				d.report(desc, err)
			}
			d.store(block, name, desc, v)
			continue
		}
		if strings.HasSuffix(name, "Effect") || slices.Contains(d.effects, name) {
			block.MarkEffectStyle(name)
		}
		v, err := d.vp.process(desc)
		if err != nil {
			d.report(desc, err)
			continue
		}
		d.store(block, name, desc, v)
	}
}

func (d *StyleDef) store(block *css.DeclarationBlock, name string, desc *css.Descriptor, v Value) {
	block.Declaration.Put(name, desc)
	d.values[desc] = v
}

// Dehyphenize turns hyphenated CSS name into camel case: font-size becomes
// fontSize.
func Dehyphenize(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			sb.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
