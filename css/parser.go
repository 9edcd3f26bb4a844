package css

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"flexcss/sac"
)

// Option configures Parser.
type Option func(*Parser)

// WithDeprecationCheck enables warnings for deprecated property names.
func WithDeprecationCheck(on bool) Option {
	return func(p *Parser) { p.checkDeprecation = on }
}

// WithLocalizer sets localizer used for diagnostic text.
func WithLocalizer(l *Localizer) Option {
	return func(p *Parser) {
		if l != nil {
			p.loc = l
		}
	}
}

// WithRuleIDs sets source of rule ids, by default every Parser numbers its
// rules starting with 1.
func WithRuleIDs(next func() int) Option {
	return func(p *Parser) {
		if next != nil {
			p.nextID = next
		}
	}
}

// Parser turns style sheets into rule trees. It may be used for any number of
// documents, but not concurrently.
type Parser struct {
	log              *zap.Logger
	loc              *Localizer
	checkDeprecation bool
	nextID           func() int
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger, opts ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	var counter atomic.Int64
	p := &Parser{
		log:    log.Named("css-parser"),
		loc:    NewLocalizer(language.English),
		nextID: func() int { return int(counter.Add(1)) },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads stand alone style sheet from r. Character set is detected from
// byte order mark or @charset rule. When any error was reported returned
// style sheet is nil and error combines all error diagnostics.
func (p *Parser) Parse(path string, r io.Reader) (*StyleSheet, error) {
	br := bufio.NewReader(r)
	name, declared, err := ReadCharset(br)
	if err != nil {
		var ice *InvalidCharsetError
		if !errors.As(err, &ice) {
			p.log.Error("Unable to read style sheet", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		// reported as warning, but style sheet cannot be read
		ice.Path = path
		p.log.Warn(p.loc.Describe(ice), zap.String("path", path))
		return nil, ice
	}
	text, err := NewDecodingReader(br, name)
	if err != nil {
		return nil, err
	}
	return p.parse(path, 0, text, name, declared)
}

// ParseString parses style sheet text.
func (p *Parser) ParseString(path, text string) (*StyleSheet, error) {
	return p.parse(path, 0, strings.NewReader(text), DefaultCharset, false)
}

// ParseEmbedded parses style sheet embedded in host document at hostLine.
// Lines are reported relative to the host document and against its path.
func (p *Parser) ParseEmbedded(hostPath string, hostLine int, text string) (*StyleSheet, error) {
	return p.parse(hostPath, hostLine-1, strings.NewReader(text), DefaultCharset, false)
}

func (p *Parser) parse(path string, offset int, r io.Reader, charset string, declared bool) (*StyleSheet, error) {
	id := uuid.New()
	log := p.log.With(zap.String("sheet", id.String()))

	sp := sac.NewParser(log)
	a := &assembler{
		log:              log,
		loc:              p.loc,
		locator:          sp,
		path:             path,
		offset:           offset,
		checkDeprecation: p.checkDeprecation,
		nextID:           p.nextID,
	}
	if declared {
		a.add(&CharsetRule{Encoding: charset}, 1+offset)
	}
	sp.SetDocumentHandler(a)
	sp.SetErrorHandler(a)

	log.Debug("Parsing CSS", zap.String("path", path), zap.String("charset", charset))
	if err := sp.ParseStyleSheet(r); err != nil && !a.errorsExist {
		return nil, err
	}

	if a.errorsExist {
		errs := make([]error, 0, len(a.errors))
		for _, d := range a.errors {
			errs = append(errs, d)
		}
		return nil, multierr.Combine(errs...)
	}
	log.Debug("Parsed CSS", zap.String("path", path), zap.Int("rules", len(a.rules)), zap.Int("warnings", len(a.warnings)))
	return &StyleSheet{ID: id, Path: path, rules: a.rules, warnings: a.warnings}, nil
}
