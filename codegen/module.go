package codegen

import (
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"flexcss/css"
)

// Option configures Module.
type Option func(*Module)

// WithPackage sets package of the generated class.
func WithPackage(pkg string) Option {
	return func(m *Module) { m.pkg = pkg }
}

// WithQualifiedTypeSelectors requires type selectors to be namespace
// qualified, namespaces maps namespace URI to ActionScript package.
func WithQualifiedTypeSelectors(namespaces map[string]string) Option {
	return func(m *Module) {
		m.conv.qualified = true
		m.conv.namespaces = namespaces
	}
}

// WithEffectStyles flags additional property names as effect styles.
// Names ending with "Effect" are always flagged.
func WithEffectStyles(names ...string) Option {
	return func(m *Module) { m.effects = append(m.effects, names...) }
}

// WithDocument allows PropertyReference, style sheets come from a host
// document.
func WithDocument(on bool) Option {
	return func(m *Module) { m.vp.document = on }
}

// WithLocalizer sets localizer used for diagnostic text.
func WithLocalizer(l *css.Localizer) Option {
	return func(m *Module) {
		if l != nil {
			m.loc = l
		}
	}
}

// Module is the code generation model of one or more style sheets: style
// definitions keyed by subject, font faces and hoisted embeds.
type Module struct {
	Name string

	log     *zap.Logger
	loc     *css.Localizer
	pkg     string
	effects []string

	conv   converter
	vp     valueProcessor
	embeds *embedRegistry

	order     []string
	defs      map[string]*StyleDef
	fontFaces []*css.FontFaceRule

	diagnostics []css.Diagnostic
}

// NewModule creates empty module for class name.
func NewModule(name string, log *zap.Logger, opts ...Option) *Module {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Module{
		Name:   name,
		log:    log.Named("codegen"),
		loc:    css.NewLocalizer(language.English),
		embeds: newEmbedRegistry(),
		defs:   make(map[string]*StyleDef),
	}
	m.vp.embeds = m.embeds
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Package returns package of the generated class.
func (m *Module) Package() string {
	return m.pkg
}

// ExtractStyles adds rules of style sheet to the module. Style rules nested
// in @media are gated by its media list, other rule kinds are ignored.
func (m *Module) ExtractStyles(sheet *css.StyleSheet) {
	if sheet == nil {
		return
	}
	m.log.Debug("Extracting styles", zap.String("path", sheet.Path), zap.Stringer("sheet", sheet.ID))
	for _, r := range sheet.Rules() {
		switch r := r.(type) {
		case *css.StyleRule:
			m.addStyleRule(r, nil)
		case *css.FontFaceRule:
			m.addFontFaceRule(r)
		case *css.MediaRule:
			for _, nested := range r.Rules {
				if sr, ok := nested.(*css.StyleRule); ok {
					m.addStyleRule(sr, r.Media)
				}
			}
		}
	}
}

// addStyleRule registers every selector of the rule separately, all of them
// share the rule's properties.
func (m *Module) addStyleRule(r *css.StyleRule, media *css.MediaList) {
	path := r.Declaration.Path()
	m.conv.report = func(line int, err error) {
		if line <= 0 {
			line = r.Line()
		}
		m.warn(path, line, err)
	}
	for i, sel := range r.Selectors {
		decl := r.Declaration
		if i > 0 {
			decl = decl.ShallowCopy()
		}
		converted := m.conv.convert(sel)
		if converted == nil {
			continue
		}
		line := sel.Line
		if line <= 0 {
			line = r.Line()
		}
		m.styleDef(converted, path, line).addDeclaration(converted, decl, media)
	}
}

// styleDef returns definition for subject of selector. Conditions of the
// universal selector make its subject empty, runtime matches any type then.
func (m *Module) styleDef(sel *Selector, path string, line int) *StyleDef {
	subject := sel.Subject
	key := subject
	if subject == Universal {
		key = Global
		if len(sel.Conditions) > 0 {
			sel.Subject = ""
		}
	}
	if d, ok := m.defs[key]; ok {
		return d
	}
	d := &StyleDef{
		Subject: subject,
		Path:    path,
		Line:    line,
		sets:    make(map[string]*css.BlockSet),
		values:  make(map[*css.Descriptor]Value),
		vp:      &m.vp,
		effects: m.effects,
		report: func(desc *css.Descriptor, err error) {
			m.warn(desc.Path, desc.Line, err)
		},
	}
	m.defs[key] = d
	m.order = append(m.order, key)
	return d
}

// addFontFaceRule keeps the first rule for every family and style combination
// and hoists it into font embed.
func (m *Module) addFontFaceRule(r *css.FontFaceRule) {
	family, bold, italic := r.Family(), r.IsBold(), r.IsItalic()
	if _, ok := css.FindFontFace(m.fontFaces, family, bold, italic); ok {
		m.log.Debug("Font face already exists",
			zap.String("family", family), zap.Bool("bold", bold), zap.Bool("italic", italic))
		return
	}
	params := r.EmbedParams()
	if params == nil {
		return
	}
	m.fontFaces = append(m.fontFaces, r)

	path := r.Declaration.Path()
	e := &Embed{
		Params: withPosition(fontEmbedParams(params), path, r.Line()),
		Font:   true,
		Path:   path,
		Line:   r.Line(),
	}
	m.embeds.add(fontEmbedName(family, bold, italic), e)
}

func (m *Module) warn(path string, line int, err error) {
	msg := m.loc.Describe(err)
	severity := css.SeverityWarning
	switch err.(type) {
	case *InvalidReferenceError, *PropertyReferenceRequiresDocumentError, *InvalidEmbedError:
		severity = css.SeverityError
	}
	if severity == css.SeverityError {
		m.log.Error(msg, zap.String("path", path), zap.Int("line", line))
	} else {
		m.log.Warn(msg, zap.String("path", path), zap.Int("line", line))
	}
	m.diagnostics = append(m.diagnostics, css.Diagnostic{Severity: severity, Path: path, Line: line, Message: msg})
}

// StyleDefs returns definitions in order subjects were first seen.
func (m *Module) StyleDefs() []*StyleDef {
	out := make([]*StyleDef, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.defs[key])
	}
	return out
}

// StyleDef returns definition by subject, universal selector styles are under
// "global".
func (m *Module) StyleDef(subject string) (*StyleDef, bool) {
	d, ok := m.defs[subject]
	return d, ok
}

// FontFaceRules returns distinct font faces in order of appearance.
func (m *Module) FontFaceRules() []*css.FontFaceRule {
	return slices.Clone(m.fontFaces)
}

// Embeds returns all hoisted embeds in natural name order.
func (m *Module) Embeds() []*Embed {
	return m.embeds.sorted()
}

// Imports returns classes referenced by all definitions in natural order.
func (m *Module) Imports() []string {
	var out []string
	for _, d := range m.StyleDefs() {
		for _, imp := range d.Imports() {
			if !slices.Contains(out, imp) {
				out = append(out, imp)
			}
		}
	}
	slices.SortFunc(out, naturalCompare)
	return out
}

// Diagnostics returns problems reported while extracting styles.
func (m *Module) Diagnostics() []css.Diagnostic {
	return slices.Clone(m.diagnostics)
}

// Err combines error diagnostics, nil when there are only warnings.
func (m *Module) Err() error {
	var err error
	for _, d := range m.diagnostics {
		if d.Severity == css.SeverityError {
			err = multierr.Append(err, d)
		}
	}
	return err
}
