package compile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	sprig "github.com/go-task/slim-sprig/v3"
	"golang.org/x/text/language"

	"flexcss/config"
)

// Options controls compilation of a single input.
type Options struct {
	Format            config.OutputFormat
	Package           string
	ClassNameTemplate string
	EffectStyles      []string
	// Namespaces maps namespace URI to package, nil leaves type selectors
	// unqualified.
	Namespaces        map[string]string
	CheckDeprecation  bool
	Locale            language.Tag
	VerifyFontSources bool
	Overwrite         bool
}

// NewOptions prepares options from compiler configuration.
func NewOptions(cfg *config.CompilerConfig) (Options, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return Options{}, fmt.Errorf("unable to parse locale '%s': %w", cfg.Locale, err)
	}
	opts := Options{
		Format:            cfg.Output,
		Package:           cfg.Package,
		ClassNameTemplate: cfg.ClassNameTemplate,
		EffectStyles:      cfg.EffectStyles,
		CheckDeprecation:  cfg.CheckDeprecation,
		Locale:            tag,
		VerifyFontSources: cfg.VerifyFontSources,
	}
	if cfg.QualifiedTypes.Enable {
		opts.Namespaces = cfg.QualifiedTypes.Namespaces
		if opts.Namespaces == nil {
			opts.Namespaces = map[string]string{}
		}
	}
	return opts, nil
}

// NameValues are available to class name template.
type NameValues struct {
	// Base is input file name without extension.
	Base string
	// Format is requested output format.
	Format string
}

const defaultClassName = "Styles"

// ClassName expands class name template for input at path and makes result
// a valid ActionScript identifier.
func (o *Options) ClassName(path string) (string, error) {
	values := NameValues{
		Base:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Format: o.Format.String(),
	}
	if len(o.ClassNameTemplate) == 0 {
		return identifier(values.Base), nil
	}

	tmpl, err := template.New(string(config.ClassNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(o.ClassNameTemplate)
	if err != nil {
		return "", fmt.Errorf("unable to parse class name template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand class name template: %w", err)
	}
	return identifier(buf.String()), nil
}

func identifier(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return defaultClassName
	}
	return b.String()
}
