package render

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

const pdfFontFamily = "quote-unicode"

// PDFOptions tunes the PDF rendition. FontPath points at a TTF with Arabic
// glyphs; without it the built-in fonts are used and non-Latin text is dropped.
type PDFOptions struct {
	FontPath string
}

// pdfWriter carries the per-document text filter.
type pdfWriter struct {
	m       core.Maroto
	unicode bool
}

var (
	headerBg   = &props.Color{Red: 31, Green: 78, Blue: 121}
	mutedColor = &props.Color{Red: 90, Green: 90, Blue: 90}
	white      = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// PDF renders the document with maroto.
func PDF(doc *Document, opts PDFOptions) ([]byte, error) {
	b := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.Bottom,
			Size:    7,
			Color:   mutedColor,
		})

	w := &pdfWriter{}
	if opts.FontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(pdfFontFamily, fontstyle.Normal, opts.FontPath).
			AddUTF8Font(pdfFontFamily, fontstyle.Bold, opts.FontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("load pdf font: %w", err)
		}
		b = b.WithCustomFonts(fonts).WithDefaultFont(&props.Font{Family: pdfFontFamily})
		w.unicode = true
	}

	w.m = maroto.New(b.Build())
	w.header(doc)
	w.parties(doc)
	w.project(doc)
	w.itemsHeader()
	for _, r := range doc.Rows {
		w.item(r)
	}
	w.totals(doc)
	w.notes(doc)
	w.footer(doc)

	out, err := w.m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

// label picks the Arabic wording when the font can show it.
func (w *pdfWriter) label(ar, en string) string {
	if w.unicode {
		return ar + " / " + en
	}
	return en
}

// txt filters s down to what the active font can draw.
func (w *pdfWriter) txt(s string) string {
	if w.unicode {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if out == "" && strings.TrimSpace(s) != "" {
		return "-"
	}
	return out
}

func (w *pdfWriter) textAlign(s string) align.Type {
	if w.unicode && IsArabic(s) {
		return align.Right
	}
	return align.Left
}

func (w *pdfWriter) header(doc *Document) {
	c := doc.Company
	w.m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New(w.txt(c.NameEn), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left})),
			col.New(6).Add(text.New(w.txt(c.NameAr), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(6).Add(text.New(w.txt(c.DescriptionEn), props.Text{Size: 7, Align: align.Left, Color: mutedColor})),
			col.New(6).Add(text.New(w.txt(c.DescriptionAr), props.Text{Size: 7, Align: align.Right, Color: mutedColor})),
		),
		row.New(12).Add(
			col.New(12).Add(text.New(w.label("عرض سعر", "Quotation"), props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Center,
				Top:   3,
			})),
		),
	)

	date := doc.GregDate + " | " + doc.HijriDateEn
	if w.unicode {
		date = doc.HijriDate + " | " + doc.GregDate
	}
	w.m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(w.label("رقم العرض", "No.")+": "+doc.Number, props.Text{Size: 9, Align: align.Left})),
			col.New(6).Add(text.New(date, props.Text{Size: 9, Align: align.Right})),
		),
	)
	w.m.AddRows(row.New(3))
}

func (w *pdfWriter) parties(doc *Document) {
	w.m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(w.label("البائع", "Seller"), props.Text{Size: 9, Style: fontstyle.Bold, Color: white, Left: 2, Top: 1})).
				WithStyle(&props.Cell{BackgroundColor: headerBg}),
			col.New(6).Add(text.New(w.label("العميل", "Customer"), props.Text{Size: 9, Style: fontstyle.Bold, Color: white, Left: 2, Top: 1})).
				WithStyle(&props.Cell{BackgroundColor: headerBg}),
		),
		row.New(6).Add(
			col.New(6).Add(text.New(w.txt(doc.Company.NameAr+" "+doc.Company.NameEn), props.Text{Size: 8, Left: 2})),
			col.New(6).Add(text.New(w.txt(doc.CustomerName), props.Text{Size: 8, Left: 2})),
		),
	)

	n := len(doc.Seller)
	if len(doc.Customer) > n {
		n = len(doc.Customer)
	}
	for i := 0; i < n; i++ {
		w.m.AddRows(row.New(5).Add(
			col.New(6).Add(w.field(doc.Seller, i)),
			col.New(6).Add(w.field(doc.Customer, i)),
		))
	}
	w.m.AddRows(row.New(3))
}

func (w *pdfWriter) field(fields []Field, i int) core.Component {
	if i >= len(fields) {
		return text.New("", props.Text{Size: 7})
	}
	f := fields[i]
	return text.New(w.label(f.LabelAr, f.LabelEn)+": "+w.txt(f.Value), props.Text{Size: 7, Left: 2})
}

func (w *pdfWriter) project(doc *Document) {
	if len(doc.Project) > 0 {
		w.m.AddRows(row.New(7).Add(
			col.New(12).Add(text.New(w.label("وصف المشروع", "Project Description"), props.Text{Size: 9, Style: fontstyle.Bold})),
		))
		w.paragraphs(doc.Project)
	}
	if doc.Location != "" {
		tag := "Location:"
		if w.unicode {
			tag = doc.LocationTag
		}
		loc := tag + " " + w.txt(doc.Location)
		w.m.AddRows(row.New(6).Add(
			col.New(12).Add(text.New(loc, props.Text{Size: 8, Align: w.textAlign(doc.Location)})),
		))
	}
}

func (w *pdfWriter) paragraphs(ps []Paragraph) {
	for _, p := range ps {
		w.m.AddAutoRow(
			col.New(12).Add(text.New(w.txt(p.Text), props.Text{Size: 8, Align: w.textAlign(p.Text)})),
		)
	}
}

func (w *pdfWriter) itemsHeader() {
	head := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: white, Top: 1}
	cell := &props.Cell{BackgroundColor: headerBg}
	w.m.AddRows(row.New(8).Add(
		col.New(1).Add(text.New("#", head)).WithStyle(cell),
		col.New(5).Add(text.New(w.label("الوصف", "Description"), head)).WithStyle(cell),
		col.New(1).Add(text.New(w.label("الكمية", "Qty"), head)).WithStyle(cell),
		col.New(1).Add(text.New(w.label("الوحدة", "Unit"), head)).WithStyle(cell),
		col.New(2).Add(text.New(w.label("السعر", "Unit Price"), head)).WithStyle(cell),
		col.New(2).Add(text.New(w.label("الإجمالي", "Total"), head)).WithStyle(cell),
	))
}

func (w *pdfWriter) item(r Row) {
	base := props.Text{Size: 8, Align: align.Center, Top: 1}
	desc := base
	desc.Align = w.textAlign(r.Description)
	desc.Left = 1
	desc.Right = 1
	w.m.AddAutoRow(
		col.New(1).Add(text.New(fmt.Sprint(r.Index), base)),
		col.New(5).Add(text.New(w.txt(r.Description), desc)),
		col.New(1).Add(text.New(r.Quantity, base)),
		col.New(1).Add(text.New(w.txt(r.Unit), base)),
		col.New(2).Add(text.New(r.UnitPrice, base)),
		col.New(2).Add(text.New(r.Total, base)),
	)
}

func (w *pdfWriter) totals(doc *Document) {
	w.m.AddRows(row.New(4))
	currency := "SAR"
	if w.unicode {
		currency = doc.Currency
	}
	tax := "VAT (15%)"
	if w.unicode {
		tax = doc.TaxLabel
	}
	cell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Right: 2, Top: 1}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Right: 2, Top: 1}

	for _, line := range [][2]string{
		{w.label("المجموع الفرعي", "Subtotal"), doc.Subtotal},
		{tax, doc.Tax},
		{w.label("الإجمالي", "Total"), doc.Total},
	} {
		w.m.AddRows(row.New(7).Add(
			col.New(8).Add(text.New(line[0], label)).WithStyle(cell),
			col.New(4).Add(text.New(line[1]+" "+currency, value)).WithStyle(cell),
		))
	}
}

func (w *pdfWriter) notes(doc *Document) {
	if len(doc.Notes) == 0 {
		return
	}
	w.m.AddRows(row.New(4))
	w.m.AddRows(row.New(7).Add(
		col.New(12).Add(text.New(w.label("ملاحظات", "Notes"), props.Text{Size: 9, Style: fontstyle.Bold})),
	))
	w.paragraphs(doc.Notes)
}

func (w *pdfWriter) footer(doc *Document) {
	w.m.AddRows(row.New(14))
	w.m.AddRows(row.New(6).Add(
		col.New(5).Add(text.New(w.label("توقيع البائع", "Seller Signature"), props.Text{Size: 8, Align: align.Center, Top: 1})).
			WithStyle(&props.Cell{BorderType: border.Top, BorderColor: mutedColor}),
		col.New(2),
		col.New(5).Add(text.New(w.label("توقيع العميل", "Customer Signature"), props.Text{Size: 8, Align: align.Center, Top: 1})).
			WithStyle(&props.Cell{BorderType: border.Top, BorderColor: mutedColor}),
	))

	contact := doc.Company.Email
	if phones := doc.Phones(); phones != "" {
		contact += " | " + phones
	}
	w.m.AddRows(row.New(4))
	w.m.AddRows(row.New(5).Add(
		col.New(12).Add(text.New(contact, props.Text{Size: 7, Align: align.Center, Color: mutedColor})),
	))
}
