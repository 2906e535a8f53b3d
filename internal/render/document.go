// Package render turns a quote and the company profile into the printable
// document and its PDF and Excel renditions.
package render

import (
	"strings"
	"time"

	"go-quote-desk/internal/hijri"
	"go-quote-desk/internal/models"
	"go-quote-desk/internal/quote"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	Currency = "ريال"
	TaxLabel = "الضريبة (15%)"

	DirRTL = "rtl"
	DirLTR = "ltr"
)

var money = message.NewPrinter(language.English)

// DocumentZone is the calendar the printed dates are read in. Saudi Arabia
// keeps UTC+3 all year.
var DocumentZone = time.FixedZone("AST", 3*60*60)

// Paragraph is one block of free text with its own writing direction.
type Paragraph struct {
	Text string
	Dir  string
}

// Field is a labelled value in the seller or customer block.
type Field struct {
	LabelAr string
	LabelEn string
	Value   string
}

// Row is one numbered line of the items table.
type Row struct {
	Index       int
	Description string
	Dir         string
	Quantity    string
	Unit        string
	UnitPrice   string
	Total       string
}

// Document is everything the HTML, PDF and Excel renditions show.
type Document struct {
	Title        string
	Number       string
	FileBase     string
	HijriDate    string
	HijriDateEn  string
	GregDate     string
	Company      models.Company
	LogoURL      string
	Seller       []Field
	CustomerName string
	Customer     []Field
	Project      []Paragraph
	Location     string
	LocationTag  string
	LocationDir  string
	Rows         []Row
	Subtotal     string
	Tax          string
	Total        string
	Notes        []Paragraph
	Currency     string
	TaxLabel     string

	items  []models.LineItem
	totals quote.Totals
}

// NewDocument builds the view model. Totals are taken from the items, so a
// quote with stale aggregates still prints consistent numbers.
func NewDocument(q *models.Quote, company models.Company) *Document {
	items := make([]models.LineItem, len(q.Items))
	copy(items, q.Items)
	rows := make([]Row, 0, len(items))
	for i := range items {
		items[i].TotalPrice = quote.LineTotal(items[i].Quantity, items[i].UnitPrice)
		rows = append(rows, Row{
			Index:       i + 1,
			Description: items[i].Description,
			Dir:         Direction(items[i].Description),
			Quantity:    FormatQuantity(items[i].Quantity),
			Unit:        items[i].Unit,
			UnitPrice:   FormatMoney(items[i].UnitPrice),
			Total:       FormatMoney(items[i].TotalPrice),
		})
	}
	totals := quote.ComputeTotals(items)

	created := q.CreatedDate
	if created.IsZero() {
		created = time.Now()
	}
	created = created.In(DocumentZone)
	h := hijri.FromTime(created)

	number := q.QuoteNumber
	if number == "" {
		number = "draft"
	}

	doc := &Document{
		Title:        "عرض سعر / Quotation",
		Number:       quote.DocumentPrefix + number,
		FileBase:     quote.BaseName(q),
		HijriDate:    h.Arabic(),
		HijriDateEn:  h.English(),
		GregDate:     hijri.Gregorian(created),
		Company:      company,
		Seller:       sellerFields(company),
		CustomerName: q.Customer.Name,
		Customer:     customerFields(q.Customer),
		Project:      Paragraphs(q.ProjectDescription),
		Location:     q.Location,
		Rows:         rows,
		Subtotal:     FormatMoney(totals.Subtotal),
		Tax:          FormatMoney(totals.TaxAmount),
		Total:        FormatMoney(totals.TotalAmount),
		Notes:        Paragraphs(q.Notes),
		Currency:     Currency,
		TaxLabel:     TaxLabel,
		items:        items,
		totals:       totals,
	}
	doc.LocationDir = Direction(q.Location)
	if doc.LocationDir == DirRTL {
		doc.LocationTag = "الموقع:"
	} else {
		doc.LocationTag = "Location:"
	}
	return doc
}

// IsArabic reports whether s contains any character of the Arabic block.
func IsArabic(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

// Direction is rtl for text containing Arabic, ltr otherwise.
func Direction(s string) string {
	if IsArabic(s) {
		return DirRTL
	}
	return DirLTR
}

// Paragraphs splits text on line breaks, dropping blank lines.
func Paragraphs(text string) []Paragraph {
	var out []Paragraph
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Paragraph{Text: line, Dir: Direction(line)})
	}
	return out
}

// FormatMoney renders v with thousands separators and two decimals.
func FormatMoney(v float64) string {
	return money.Sprintf("%.2f", v)
}

// FormatQuantity drops trailing zeros: 3 → "3", 2.5 → "2.5".
func FormatQuantity(v float64) string {
	s := money.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func sellerFields(c models.Company) []Field {
	return nonEmpty([]Field{
		{"الرقم الضريبي", "VAT No.", c.TaxNumber},
		{"السجل التجاري", "C.R.", c.CommercialRegistration},
		{"الشارع", "Street", c.Street},
		{"الحي", "District", c.Neighborhood},
		{"المدينة", "City", c.City},
		{"الدولة", "Country", c.Country},
		{"رقم المبنى", "Building No.", c.Building},
		{"الرمز البريدي", "Postal Code", c.PostalCode},
		{"الرقم الإضافي", "Additional No.", c.AdditionalNumber},
	})
}

func customerFields(c models.Customer) []Field {
	return nonEmpty([]Field{
		{"الرقم الضريبي", "VAT No.", c.TaxNumber},
		{"السجل التجاري", "C.R.", c.CommercialRegistration},
		{"الشارع", "Street", c.Street},
		{"الحي", "District", c.Neighborhood},
		{"المدينة", "City", c.City},
		{"الدولة", "Country", c.Country},
		{"رقم المبنى", "Building No.", c.Building},
		{"الرمز البريدي", "Postal Code", c.PostalCode},
		{"الرقم الإضافي", "Additional No.", c.AdditionalNumber},
		{"الهاتف", "Phone", c.Phone},
	})
}

func nonEmpty(fields []Field) []Field {
	out := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Phones joins the non-empty company phone numbers.
func (d *Document) Phones() string {
	var phones []string
	for _, p := range []string{d.Company.Phone1, d.Company.Phone2, d.Company.Phone3} {
		if p != "" {
			phones = append(phones, p)
		}
	}
	return strings.Join(phones, " | ")
}
