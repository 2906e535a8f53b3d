package quote

import (
	"regexp"
	"strings"

	"go-quote-desk/internal/models"
)

// DocumentPrefix precedes the quote number on printed documents and file names.
const DocumentPrefix = "QYT26-"

const maxFileNameRunes = 100

var underscoreRun = regexp.MustCompile(`_+`)

// Export formats and their file extensions.
const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatHTML  = "html"
)

var extensions = map[string]string{
	FormatPDF:   "pdf",
	FormatExcel: "xlsx",
	FormatHTML:  "html",
}

// Extension maps an export format to its file extension.
func Extension(format string) (string, bool) {
	ext, ok := extensions[format]
	return ext, ok
}

// SanitizeFileName keeps Latin and Arabic letters, digits, '-', '_' and
// spaces, turns whitespace into single underscores and caps the length.
func SanitizeFileName(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if allowedRune(r) {
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), "_")
	out = underscoreRun.ReplaceAllString(out, "_")

	if runes := []rune(out); len(runes) > maxFileNameRunes {
		out = string(runes[:maxFileNameRunes])
	}
	if out == "" {
		return "customer"
	}
	return out
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0x0600 && r <= 0x06FF:
		return true
	case r == '-', r == '_', r == ' ':
		return true
	}
	return false
}

// BaseName is the file name without extension: {customer}_QYT26-{number}.
func BaseName(q *models.Quote) string {
	number := q.QuoteNumber
	if number == "" {
		number = "draft"
	}
	return SanitizeFileName(q.Customer.Name) + "_" + DocumentPrefix + number
}

// ExportFileName is the download name for a quote in the given format.
func ExportFileName(q *models.Quote, format string) string {
	ext, ok := Extension(format)
	if !ok {
		ext = format
	}
	return BaseName(q) + "." + ext
}
