package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates
var templateFS embed.FS

// Rendered holds both bodies of a message.
type Rendered struct {
	Text string
	HTML string
}

// Render executes the text and html templates registered under name.
func Render(name string, data map[string]any) (Rendered, error) {
	base := "templates/" + name

	tt, err := texttemplate.ParseFS(templateFS, base+".txt")
	if err != nil {
		return Rendered{}, fmt.Errorf("notify: parse %s.txt: %w", name, err)
	}
	ht, err := htmltemplate.ParseFS(templateFS, base+".html")
	if err != nil {
		return Rendered{}, fmt.Errorf("notify: parse %s.html: %w", name, err)
	}

	var text, html bytes.Buffer
	if err := tt.Execute(&text, data); err != nil {
		return Rendered{}, fmt.Errorf("notify: render %s.txt: %w", name, err)
	}
	if err := ht.Execute(&html, data); err != nil {
		return Rendered{}, fmt.Errorf("notify: render %s.html: %w", name, err)
	}

	return Rendered{Text: text.String(), HTML: html.String()}, nil
}
