// Package templates holds the embedded HTML page templates.
package templates

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed *.html
var files embed.FS

func funcMap() template.FuncMap {
	return template.FuncMap{
		// usd formats a decimal amount as US dollars.
		"usd": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"when": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
	}
}

// New parses the embedded page templates.
func New() (*template.Template, error) {
	return template.New("").Funcs(funcMap()).ParseFS(files, "*.html")
}

// Must is like New but panics on parse failure. Parse failures are
// programmer errors: the templates are embedded at build time.
func Must() *template.Template {
	tmpl, err := New()
	if err != nil {
		panic(err)
	}
	return tmpl
}
