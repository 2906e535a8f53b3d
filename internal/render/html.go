package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/quote.html
var templateFS embed.FS

var quoteTemplate = template.Must(template.ParseFS(templateFS, "templates/quote.html"))

// HTML renders the printable document. The page carries its own print rules,
// so the browser print dialog produces the paper copy.
func HTML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
