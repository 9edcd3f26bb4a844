package codegen

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

//go:embed templates/styles.as.tmpl
var stylesTemplate string

// Render writes ActionScript class initializing styles of the module.
func (m *Module) Render(w io.Writer) error {
	funcMap := sprig.FuncMap()
	funcMap["attrs"] = attributes

	tmpl, err := template.New("styles").Funcs(funcMap).Parse(stylesTemplate)
	if err != nil {
		return fmt.Errorf("unable to parse styles template: %w", err)
	}
	if err := tmpl.Execute(w, m.Document()); err != nil {
		return fmt.Errorf("unable to render styles of %s: %w", m.Name, err)
	}
	return nil
}
