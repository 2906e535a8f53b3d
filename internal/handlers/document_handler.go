package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"go-quote-desk/internal/database"
	"go-quote-desk/internal/models"
	"go-quote-desk/internal/quote"
	"go-quote-desk/internal/render"

	"github.com/gin-gonic/gin"
)

func loadDocument(c *gin.Context) (*models.Quote, *render.Document, bool) {
	q, err := database.GetQuote(c.Param("id"))
	if err != nil {
		failWith(c, err, "quote_load_failed")
		return nil, nil, false
	}
	company, err := database.GetCompany()
	if err != nil {
		failWith(c, err, "company_load_failed")
		return nil, nil, false
	}
	doc := render.NewDocument(q, *company)
	if company.LogoPath != "" {
		doc.LogoURL = "/api/uploads/" + url.PathEscape(company.LogoPath)
	}
	return q, doc, true
}

// --- GET: /api/quotes/:id/document ---
// The printable page; the browser's print dialog does the rest.
func QuoteDocument(c *gin.Context) {
	_, doc, ok := loadDocument(c)
	if !ok {
		return
	}
	page, err := render.HTML(doc)
	if err != nil {
		failWith(c, err, "export_failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// --- GET: /api/quotes/:id/export/:format ---
func ExportQuote(c *gin.Context) {
	format := c.Param("format")
	if format != quote.FormatPDF && format != quote.FormatExcel {
		fail(c, http.StatusBadRequest, "unsupported_format")
		return
	}

	q, doc, ok := loadDocument(c)
	if !ok {
		return
	}

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case quote.FormatPDF:
		data, err = render.PDF(doc, deps.PDF)
		contentType = "application/pdf"
	case quote.FormatExcel:
		data, err = render.Excel(doc)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		failWith(c, err, "export_failed")
		return
	}

	c.Header("Content-Disposition", contentDisposition(quote.ExportFileName(q, format)))
	c.Data(http.StatusOK, contentType, data)
}

// contentDisposition carries an ASCII fallback plus the UTF-8 name (RFC 6266).
func contentDisposition(name string) string {
	ascii := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 0x80 {
			ascii = append(ascii, r)
		} else {
			ascii = append(ascii, '_')
		}
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, string(ascii), url.PathEscape(name))
}
