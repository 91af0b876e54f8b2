// Package digest renders dataset tables into one HTML email body.
package digest

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/civicupdates/civic-digest-service/internal/domain"
)

// Styles carries the CSS injected into the digest head. It is passed
// explicitly so callers can restyle the report without touching the
// assembler.
type Styles struct {
	CSS template.CSS
}

// DefaultStyles returns the stock report styling.
func DefaultStyles() Styles {
	return Styles{CSS: defaultCSS}
}

// Section pairs a heading with its dataset table.
type Section struct {
	Title string
	Table domain.Table
}

var bodyTemplate = template.Must(template.New("digest").Parse(`<html><head><style>{{.CSS}}</style></head><body>
{{- range .Sections}}
<h1 class="table-title">{{.Title}}</h1>
{{- if .Table.Empty}}
<p>None.</p>
{{- else}}
<table class="table-striped table-hover table">
<thead><tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Table.Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- end}}
{{- end}}
</body></html>
`))

// Assemble renders the sections, in order, into a single HTML document.
// A section with no rows renders the "None." placeholder instead of a table.
// Cell text is escaped by html/template's default contextual escaping.
func Assemble(styles Styles, sections []Section) (string, error) {
	data := struct {
		CSS      template.CSS
		Sections []Section
	}{
		CSS:      styles.CSS,
		Sections: sections,
	}

	var buf strings.Builder
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}

const defaultCSS template.CSS = `
table {
    font-family: Roboto, Arial, sans-serif;
    font-size: 0.9rem;
    font-weight: 400;
    border: none;
    margin-bottom: 3rem;
    border-spacing: 0;
}

thead {
    text-transform: uppercase;
    letter-spacing: 0.075rem;
    font-size: 0.75rem;
    background: #CCCCCC;
    border: none;
    text-align: left;
}

td {
    border-top: none;
    border-bottom: 1pt solid #CCCCCC;
    border-left: none;
    border-right: none;
    padding: 1rem 0.75rem;
}

th {
    border: none;
    padding: 0.75rem;
}

h1.table-title {
    font-family: Roboto, Arial, sans-serif;
    font-size: 1.5rem;
    font-weight: 700;
    margin-bottom: 1rem;
}

tr:nth-child(even) {
    background-color: #f2f2f2;
}
`
