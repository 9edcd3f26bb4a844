package css

import (
	"go.uber.org/zap"

	"flexcss/lexical"
	"flexcss/sac"
)

// Version deprecated property names were replaced in.
const deprecatedSince = "3.0"

var deprecatedProperties = map[string]string{
	"flashType":  "advancedAntiAliasing",
	"flash-type": "advanced-anti-aliasing",
}

// assembler builds rule tree from parser events. It is used for a single
// document only.
type assembler struct {
	sac.NopHandler

	log     *zap.Logger
	loc     *Localizer
	locator sac.Locator

	path             string
	offset           int // host document line offset for embedded style sheets
	checkDeprecation bool
	nextID           func() int

	rules        []Rule
	current      Rule
	currentMedia *MediaRule

	warnings    []Diagnostic
	errors      []Diagnostic
	errorsExist bool
}

// line prefers line captured when the node was created, parser position may
// already be past it.
func (a *assembler) line(captured int) int {
	if captured <= 0 {
		captured = a.locator.Line()
	}
	return captured + a.offset
}

func (a *assembler) newDeclaration() *StyleDeclaration {
	d := NewStyleDeclaration(a.path)
	d.offset = a.offset
	return d
}

// push makes r current rule registering it with enclosing media rule or at
// the top level.
func (a *assembler) push(r Rule, line int) {
	b := r.base()
	b.id, b.line = a.nextID(), line
	b.parent = a.current
	a.current = r
	if a.currentMedia != nil {
		a.currentMedia.Rules = append(a.currentMedia.Rules, r)
		return
	}
	a.rules = append(a.rules, r)
}

func (a *assembler) pop() Rule {
	r := a.current
	if r != nil {
		a.current = r.Parent()
	}
	return r
}

// add registers rule which never becomes current.
func (a *assembler) add(r Rule, line int) {
	b := r.base()
	b.id, b.line = a.nextID(), line
	a.rules = append(a.rules, r)
}

func (a *assembler) StartSelector(selectors sac.SelectorList) {
	captured := 0
	if len(selectors) > 0 {
		captured = selectors[0].Line
	}
	a.push(&StyleRule{Selectors: selectors, Declaration: a.newDeclaration()}, a.line(captured))
}

func (a *assembler) EndSelector(sac.SelectorList) {
	a.pop()
}

func (a *assembler) StartMedia(media sac.MediaList) {
	r := &MediaRule{Media: mediaListFrom(media)}
	a.push(r, a.line(0))
	a.currentMedia = r
}

func (a *assembler) EndMedia(sac.MediaList) {
	a.currentMedia = nil
	a.pop()
}

func (a *assembler) StartFontFace() {
	a.push(&FontFaceRule{Declaration: a.newDeclaration()}, a.line(0))
}

func (a *assembler) EndFontFace() {
	ff, ok := a.pop().(*FontFaceRule)
	if !ok {
		return
	}
	for _, w := range ff.Initialize() {
		a.warn(ff.Line(), a.loc.Describe(w))
	}
	if p := ff.EmbedParams(); p != nil {
		a.log.Debug("Font face rule parsed", zap.String("family", p.FontName), zap.Int("line", ff.Line()))
	}
}

func (a *assembler) StartPage(name, pseudo string) {
	a.push(&PageRule{Name: name, Pseudo: pseudo, Declaration: a.newDeclaration()}, a.line(0))
}

func (a *assembler) EndPage(string, string) {
	a.pop()
}

func (a *assembler) ImportStyle(uri string, media sac.MediaList, _ string) {
	r := &ImportRule{URI: uri}
	if len(media) > 0 {
		r.Media = mediaListFrom(media)
	}
	a.add(r, a.line(0))
}

func (a *assembler) IgnorableAtRule(text string) {
	a.add(&UnknownRule{Text: text}, a.line(0))
}

func (a *assembler) Property(name string, value lexical.Chain, _ bool) {
	if a.checkDeprecation {
		if replacement, ok := deprecatedProperties[name]; ok {
			a.warn(a.line(value.Line()), a.loc.Describe(&DeprecatedWarning{
				Name:        name,
				Replacement: replacement,
				Since:       deprecatedSince,
			}))
		}
	}
	decl := declarationOf(a.current)
	if decl == nil {
		a.log.Debug("Property outside of rule ignored", zap.String("property", name), zap.Int("line", a.line(value.Line())))
		return
	}
	decl.SetProperty(name, value, a.locator.Line())
}

// sac.ErrorHandler

func (a *assembler) Warning(e *sac.ParseError) {
	a.warn(a.line(e.Line), a.loc.Translate(e.Message))
}

func (a *assembler) Error(e *sac.ParseError) {
	a.fail(a.line(e.Line), a.loc.Translate(e.Message))
}

func (a *assembler) FatalError(e *sac.ParseError) {
	a.fail(a.line(e.Line), a.loc.Translate(e.Message))
}

func (a *assembler) warn(line int, msg string) {
	a.log.Warn(msg, zap.String("path", a.path), zap.Int("line", line))
	a.warnings = append(a.warnings, Diagnostic{Severity: SeverityWarning, Path: a.path, Line: line, Message: msg})
}

func (a *assembler) fail(line int, msg string) {
	a.log.Error(msg, zap.String("path", a.path), zap.Int("line", line))
	a.errors = append(a.errors, Diagnostic{Severity: SeverityError, Path: a.path, Line: line, Message: msg})
	a.errorsExist = true
}
