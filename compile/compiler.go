// Package compile turns style sheets and MXML documents into style
// initialization code or structured dumps of compiled style definitions.
package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amazon-ion/ion-go/ion"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"flexcss/codegen"
	"flexcss/config"
	"flexcss/css"
	"flexcss/mxml"
)

// Input kinds recognized by file extension.
const (
	ExtCSS  = ".css"
	ExtMXML = ".mxml"
)

// ErrDestinationExists is returned when output file is present and
// overwriting was not requested.
var ErrDestinationExists = errors.New("destination already exists")

// Compiler compiles inputs one at a time. Not safe for concurrent use.
type Compiler struct {
	opts   Options
	log    *zap.Logger
	loc    *css.Localizer
	parser *css.Parser
	rpt    *config.Report
}

// New creates compiler. Report may be nil.
func New(opts Options, rpt *config.Report, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	loc := css.NewLocalizer(opts.Locale)
	return &Compiler{
		opts: opts,
		log:  log,
		loc:  loc,
		parser: css.NewParser(log,
			css.WithDeprecationCheck(opts.CheckDeprecation),
			css.WithLocalizer(loc)),
		rpt: rpt,
	}
}

func (c *Compiler) moduleOptions(document bool) []codegen.Option {
	opts := []codegen.Option{
		codegen.WithPackage(c.opts.Package),
		codegen.WithEffectStyles(c.opts.EffectStyles...),
		codegen.WithDocument(document),
		codegen.WithLocalizer(c.loc),
	}
	if c.opts.Namespaces != nil {
		opts = append(opts, codegen.WithQualifiedTypeSelectors(c.opts.Namespaces))
	}
	return opts
}

// Compile reads style sheet (.css) or host document (.mxml) at path and
// returns its code generation model. Parse errors and error diagnostics of
// the model fail compilation, warnings are only logged.
func (c *Compiler) Compile(ctx context.Context, path string) (*codegen.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := c.opts.ClassName(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	var sheets []*css.StyleSheet
	switch ext {
	case ExtCSS:
		sheet, err := c.parseFile(path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	case ExtMXML:
		if sheets, err = c.parseDocument(ctx, path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported input type '%s' (%s)", ext, path)
	}
	if err := c.rpt.StoreCopy("sources/"+filepath.Base(path), path); err != nil {
		c.log.Warn("Unable to store source in debug report", zap.String("path", path), zap.Error(err))
	}

	m := codegen.NewModule(name, c.log, c.moduleOptions(ext == ExtMXML)...)
	for _, sheet := range sheets {
		m.ExtractStyles(sheet)
	}
	if c.opts.VerifyFontSources {
		for _, err := range VerifyFontSources(m.FontFaceRules()) {
			c.log.Warn(c.loc.Describe(err))
		}
	}
	if err := m.Err(); err != nil {
		return nil, err
	}
	c.log.Debug("Compiled", zap.String("path", path), zap.String("class", name),
		zap.Int("styles", len(m.StyleDefs())), zap.Int("embeds", len(m.Embeds())))
	return m, nil
}

func (c *Compiler) parseFile(path string) (*css.StyleSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open style sheet: %w", err)
	}
	defer f.Close()
	return c.parser.Parse(path, f)
}

// parseDocument parses every style block of MXML document, errors of all
// blocks are reported together.
func (c *Compiler) parseDocument(ctx context.Context, path string) ([]*css.StyleSheet, error) {
	blocks, err := mxml.ExtractFile(path, c.log)
	if err != nil {
		return nil, err
	}
	var (
		sheets []*css.StyleSheet
		errs   error
	)
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var sheet *css.StyleSheet
		if b.Inline() {
			sheet, err = c.parser.ParseEmbedded(b.Path, b.Line, b.Text)
		} else {
			sheet, err = c.parseFile(b.Source)
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sheets = append(sheets, sheet)
	}
	if errs != nil {
		return nil, errs
	}
	return sheets, nil
}

// Encode renders module in requested format.
func Encode(m *codegen.Module, format config.OutputFormat) ([]byte, error) {
	switch format {
	case config.OutputFormatAs3:
		buf := new(bytes.Buffer)
		if err := m.Render(buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case config.OutputFormatYaml:
		return yaml.Marshal(m.Document())
	case config.OutputFormatIon:
		return ion.MarshalText(m.Document())
	default:
		return nil, fmt.Errorf("unsupported output format %s", format)
	}
}

// Write encodes module and stores it in directory dst under class name,
// returns path of produced file.
func (c *Compiler) Write(m *codegen.Module, dst string) (string, error) {
	data, err := Encode(m, c.opts.Format)
	if err != nil {
		return "", fmt.Errorf("unable to encode %s: %w", m.Name, err)
	}
	out := filepath.Join(dst, config.CleanFileName(m.Name)+c.opts.Format.Ext())
	if _, err := os.Stat(out); err == nil && !c.opts.Overwrite {
		return "", fmt.Errorf("%w: %s", ErrDestinationExists, out)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return "", fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", fmt.Errorf("unable to write output: %w", err)
	}
	if err := c.rpt.StoreCopy("output/"+filepath.Base(out), out); err != nil {
		c.log.Warn("Unable to store output in debug report", zap.String("path", out), zap.Error(err))
	}
	return out, nil
}
