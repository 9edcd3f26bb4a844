package css

import (
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"flexcss/lexical"
)

const (
	MimeTypeFont  = "application/x-font"
	MimeTypeFlash = "application/x-shockwave-flash"
)

// FontSource is one location from @font-face src descriptor, either
// LocalSource or URLSource.
type FontSource interface {
	Value() string
	fontSource()
}

// LocalSource names system font: local("name").
type LocalSource struct {
	Name string
}

func (s LocalSource) Value() string { return s.Name }
func (LocalSource) fontSource() {}

// URLSource points to font file: url("path").
type URLSource struct {
	URI string
}

func (s URLSource) Value() string { return s.URI }
func (URLSource) fontSource() {}

// EmbedParams are font embedding parameters resolved from @font-face rule.
// Empty fields are not set.
type EmbedParams struct {
	MimeType             string
	FontName             string
	SystemFont           string
	Source               string
	SourceList           []FontSource
	UnicodeRange         string
	AdvancedAntiAliasing string
	EmbedAsCFF           string
	FontWeight           string
	FontStyle            string
}

// Map returns parameters keyed by embed attribute names. Source list entries
// are maps with single "local" or "url" key.
func (p *EmbedParams) Map() map[string]any {
	m := map[string]any{"mimeType": p.MimeType}
	set := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}
	set("fontName", p.FontName)
	set("systemFont", p.SystemFont)
	set("source", p.Source)
	set("unicodeRange", p.UnicodeRange)
	set("advancedAntiAliasing", p.AdvancedAntiAliasing)
	set("embedAsCFF", p.EmbedAsCFF)
	set("fontWeight", p.FontWeight)
	set("fontStyle", p.FontStyle)
	if len(p.SourceList) > 0 {
		list := make([]map[string]string, 0, len(p.SourceList))
		for _, s := range p.SourceList {
			switch s := s.(type) {
			case LocalSource:
				list = append(list, map[string]string{"local": s.Name})
			case URLSource:
				list = append(list, map[string]string{"url": s.URI})
			}
		}
		m["sourceList"] = list
	}
	return m
}

// Descriptors which are accepted syntactically but ignored, in reporting
// priority order.
var ignoredDescriptors = []string{
	"font-size", "fontSize",
	"panose-1",
	"stemv", "stemh", "slope",
	"cap-height", "capHeight",
	"x-height", "xHeight",
	"ascent", "descent",
	"widths", "bbox",
	"definition-src", "definitionSrc",
	"baseline", "centerline", "mathline", "topline",
}

// FontFaceRule is @font-face rule. Its parameters are resolved once all
// descriptors are known, see Initialize.
type FontFaceRule struct {
	ruleBase
	Declaration *StyleDeclaration

	params *EmbedParams
}

func (*FontFaceRule) Type() RuleType { return RuleFontFace }

// descriptor looks property up under each of the names in turn, hyphenated and
// camel case spellings are interchangeable.
func (r *FontFaceRule) descriptor(names ...string) (*Descriptor, bool) {
	for _, name := range names {
		if d, ok := r.Declaration.Property(name); ok {
			return d, true
		}
	}
	return nil, false
}

// ident is IdentString of the first descriptor found, unparsable tokens are
// collected in errs.
func (r *FontFaceRule) ident(errs *error, names ...string) (string, bool) {
	d, ok := r.descriptor(names...)
	if !ok {
		return "", false
	}
	s, err := d.IdentString()
	*errs = multierr.Append(*errs, err)
	return s, true
}

// Family returns font family alias, empty when not declared.
func (r *FontFaceRule) Family() string {
	var errs error
	s, _ := r.ident(&errs, "font-family", "fontFamily")
	return s
}

// Locations returns sources from src descriptor in declaration order, nil
// when there is no src.
func (r *FontFaceRule) Locations() []FontSource {
	d, ok := r.Declaration.Property("src")
	if !ok {
		return nil
	}
	out := make([]FontSource, 0, 2)
	for _, t := range d.Value {
		switch t.Kind {
		case lexical.Function:
			if p, ok := t.Params.First(); ok {
				if name, err := p.StringValue(); err == nil {
					out = append(out, LocalSource{Name: strings.TrimSpace(name)})
				}
			}
		case lexical.URI:
			out = append(out, URLSource{URI: t.Text})
		}
	}
	return out
}

// UnicodeRange returns declared unicode range truncated at the first
// semicolon.
func (r *FontFaceRule) UnicodeRange() (string, bool) {
	var errs error
	s, ok := r.ident(&errs, "unicode-range", "unicodeRange")
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return s, true
}

// IsBold reports whether first listed font weight is bold or at least 700.
func (r *FontFaceRule) IsBold() bool {
	var errs error
	s, ok := r.ident(&errs, "font-weight", "fontWeight")
	return ok && IsBold(firstListed(s))
}

// IsItalic reports whether first listed font style is italic or oblique.
func (r *FontFaceRule) IsItalic() bool {
	var errs error
	s, ok := r.ident(&errs, "font-style", "fontStyle")
	return ok && IsItalic(firstListed(s))
}

// FormatFontStyle renders font style descriptor as embed attribute.
func (r *FontFaceRule) FormatFontStyle() string {
	d, ok := r.descriptor("font-style", "fontStyle")
	if !ok {
		return ""
	}
	return "fontStyle='" + d.Value.CSS() + "'"
}

// FormatFontWeight renders font weight descriptor as embed attribute.
func (r *FontFaceRule) FormatFontWeight() string {
	d, ok := r.descriptor("font-weight", "fontWeight")
	if !ok {
		return ""
	}
	return "fontWeight='" + d.Value.CSS() + "'"
}

// EmbedParams returns parameters resolved by Initialize, nil before that.
func (r *FontFaceRule) EmbedParams() *EmbedParams {
	return r.params
}

// Initialize resolves embedding parameters from descriptors. Returned
// warnings (*IgnoredDescriptorWarning, *UnparsableCSSError) do not prevent
// resolution.
func (r *FontFaceRule) Initialize() []error {
	var errs error

	alias, hasAlias := r.ident(&errs, "font-family", "fontFamily")
	locations := r.Locations()
	_, hasSrc := r.Declaration.Property("src")

	p := &EmbedParams{MimeType: MimeTypeFont}
	switch {
	case !hasSrc && hasAlias:
		p.FontName = alias
		p.SystemFont = alias
	case hasAlias:
		p.FontName = alias
		if len(locations) == 1 {
			switch src := locations[0].(type) {
			case URLSource:
				p.Source = src.URI
				if strings.HasSuffix(strings.ToLower(src.URI), ".swf") {
					p.MimeType = MimeTypeFlash
				}
			case LocalSource:
				p.SystemFont = src.Name
			}
		} else {
			p.SourceList = locations
		}
	}

	if ur, ok := r.UnicodeRange(); ok {
		p.UnicodeRange = ur
	}
	if s, ok := r.ident(&errs, "advanced-anti-aliasing", "advancedAntiAliasing", "flash-type", "flashType"); ok {
		p.AdvancedAntiAliasing = s
	}
	if s, ok := r.ident(&errs, "embedAsCFF", "embed-as-cff"); ok {
		p.EmbedAsCFF = s
	}

	for _, name := range ignoredDescriptors {
		if _, ok := r.Declaration.Property(name); ok {
			errs = multierr.Append(errs, &IgnoredDescriptorWarning{Descriptor: name})
			break
		}
	}

	if r.IsBold() {
		p.FontWeight = "bold"
	}
	if r.IsItalic() {
		p.FontStyle = "italic"
	}
	r.params = p
	return multierr.Errors(errs)
}

// FindFontFace returns the first rule with matching family and style.
func FindFontFace(rules []*FontFaceRule, family string, bold, italic bool) (*FontFaceRule, bool) {
	for _, r := range rules {
		if r.Family() == family && r.IsBold() == bold && r.IsItalic() == italic {
			return r, true
		}
	}
	return nil, false
}

// IsBold reports whether font weight value means bold: starts with "bold" or
// is a number not less than 700. Surrounding double quotes are ignored.
func IsBold(value string) bool {
	v := unquoteStyle(value)
	if strings.HasPrefix(v, "bold") {
		return true
	}
	w, err := strconv.Atoi(v)
	return err == nil && w >= 700
}

// IsItalic reports whether font style value is italic or oblique.
// Surrounding double quotes are ignored.
func IsItalic(value string) bool {
	v := unquoteStyle(value)
	return v == "italic" || v == "oblique"
}

func unquoteStyle(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if rest, ok := strings.CutPrefix(v, `"`); ok {
		v = strings.TrimSuffix(rest, `"`)
	}
	return v
}

// firstListed returns the first comma separated element of s.
func firstListed(s string) string {
	first, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(first)
}
