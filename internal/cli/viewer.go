package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go-quote-desk/internal/client"
	"go-quote-desk/internal/config"
	"go-quote-desk/internal/models"
	"go-quote-desk/internal/quote"
	"go-quote-desk/internal/render"
)

// Exporter produces the viewer's outputs for a quote.
type Exporter interface {
	Document(ctx context.Context, q *models.Quote) ([]byte, error)
	Export(ctx context.Context, q *models.Quote, format string) (string, []byte, error)
}

// NewExporter returns the strategy named in the client config.
func NewExporter(a *App) Exporter {
	if a.Config.ExportStrategy == config.ExportLocal {
		return &localExporter{store: a.Quotes, baseURL: a.Config.BaseURL, font: a.Config.PDFFontPath}
	}
	return &serverExporter{api: a.API}
}

// serverExporter downloads what the server renders.
type serverExporter struct {
	api *client.Client
}

func (e *serverExporter) Document(ctx context.Context, q *models.Quote) ([]byte, error) {
	return e.api.Document(ctx, q.ID)
}

func (e *serverExporter) Export(ctx context.Context, q *models.Quote, format string) (string, []byte, error) {
	name, data, err := e.api.ExportQuote(ctx, q.ID, format)
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		name = quote.ExportFileName(q, format)
	}
	return name, data, nil
}

// localExporter renders in-process from the fetched quote and company.
type localExporter struct {
	store   *client.Store
	baseURL string
	font    string
}

func (e *localExporter) document(ctx context.Context, q *models.Quote) (*render.Document, error) {
	company, err := e.store.Company(ctx)
	if err != nil {
		return nil, err
	}
	doc := render.NewDocument(q, *company)
	if company.LogoPath != "" {
		doc.LogoURL = strings.TrimRight(e.baseURL, "/") + "/api/uploads/" + url.PathEscape(company.LogoPath)
	}
	return doc, nil
}

func (e *localExporter) Document(ctx context.Context, q *models.Quote) ([]byte, error) {
	doc, err := e.document(ctx, q)
	if err != nil {
		return nil, err
	}
	return render.HTML(doc)
}

func (e *localExporter) Export(ctx context.Context, q *models.Quote, format string) (string, []byte, error) {
	doc, err := e.document(ctx, q)
	if err != nil {
		return "", nil, err
	}

	var data []byte
	switch format {
	case quote.FormatPDF:
		data, err = render.PDF(doc, render.PDFOptions{FontPath: e.font})
	case quote.FormatExcel:
		data, err = render.Excel(doc)
	default:
		return "", nil, usagef("unsupported format %q (use pdf or excel)", format)
	}
	if err != nil {
		return "", nil, fmt.Errorf("render %s: %w", format, err)
	}
	return quote.ExportFileName(q, format), data, nil
}
