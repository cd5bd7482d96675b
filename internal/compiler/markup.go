package compiler

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// markupTemplates renders the control fragments. Every piece of descriptor
// text passes through escape before it reaches markup.
var markupTemplates = template.Must(template.New("markup").
	Funcs(template.FuncMap{"escape": template.HTMLEscapeString}).
	ParseFS(templateFS, "templates/*.tmpl"))

type sliderData struct {
	Name    string
	Label   string
	Min     int
	Max     int
	Default int
}

type dropdownData struct {
	Name    string
	Label   string
	Options []Option
}

// renderMarkup produces the control fragment for a validated descriptor.
func renderMarkup(d Descriptor) (string, error) {
	var buf strings.Builder
	switch d.Kind {
	case KindEnumerated:
		err := markupTemplates.ExecuteTemplate(&buf, "dropdown.tmpl", dropdownData{
			Name:    d.Name,
			Label:   d.Label,
			Options: d.Options,
		})
		if err != nil {
			return "", fmt.Errorf("render dropdown markup: %w", err)
		}
	default:
		dv, _ := d.defaultInt()
		err := markupTemplates.ExecuteTemplate(&buf, "slider.tmpl", sliderData{
			Name:    d.Name,
			Label:   d.Label,
			Min:     d.Range.Min,
			Max:     d.Range.Max,
			Default: dv,
		})
		if err != nil {
			return "", fmt.Errorf("render slider markup: %w", err)
		}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
