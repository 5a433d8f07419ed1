package render

import (
	"embed"
	"errors"
	"html/template"
	"io"

	"github.com/matst80/slask-table/pkg/table"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.New("table.html").Funcs(template.FuncMap{
	"dict": dict,
}).ParseFS(templates, "templates/table.html"))

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("dict needs key value pairs")
	}
	ret := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		ret[key] = values[i+1]
	}
	return ret, nil
}

func WriteHTML(w io.Writer, view *View) error {
	return pageTemplate.Execute(w, view)
}

// HTML renders the complete table page for a result.
func HTML(w io.Writer, tbl *table.Table, result *table.Result) error {
	return WriteHTML(w, NewView(tbl, result))
}
