package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go-quote-desk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleQuote() *models.Quote {
	return &models.Quote{
		ID:          "q-1",
		QuoteNumber: "17",
		Customer: models.Customer{
			Name:    "شركة الأمل",
			Country: "السعودية",
			Phone:   "0500000000",
		},
		ProjectDescription: "توريد وتركيب مظلات\nSupply and install shades\n\n",
		Location:           "Jeddah",
		Items: []models.LineItem{
			{Description: "مظلة", Quantity: 2, Unit: "قطعة", UnitPrice: 1500},
			{Description: "Steel frame", Quantity: 1.5, Unit: "m", UnitPrice: 10.01},
		},
		Notes:       "=SUM(A1)",
		CreatedDate: time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(sampleQuote(), models.DefaultCompany())

	assert.Equal(t, "QYT26-17", doc.Number)
	assert.Equal(t, "شركة_الأمل_QYT26-17", doc.FileBase)
	assert.Equal(t, "٢٤ رمضان ١٤٢٠ هـ", doc.HijriDate)
	assert.Equal(t, "January 1, 2000", doc.GregDate)

	require.Len(t, doc.Project, 2)
	assert.Equal(t, DirRTL, doc.Project[0].Dir)
	assert.Equal(t, DirLTR, doc.Project[1].Dir)
	assert.Equal(t, "Location:", doc.LocationTag)

	require.Len(t, doc.Rows, 2)
	assert.Equal(t, 1, doc.Rows[0].Index)
	assert.Equal(t, 2, doc.Rows[1].Index)
	assert.Equal(t, "3,000.00", doc.Rows[0].Total)
	assert.Equal(t, "1.5", doc.Rows[1].Quantity)
	assert.Equal(t, "15.02", doc.Rows[1].Total)

	// 3000 + 15.02 (15.015 rounds up)
	assert.Equal(t, "3,015.02", doc.Subtotal)
	assert.Equal(t, "452.25", doc.Tax)
	assert.Equal(t, "3,467.27", doc.Total)
}

func TestNewDocument_DatesUseSaudiCalendarDay(t *testing.T) {
	q := sampleQuote()
	q.CreatedDate = time.Date(2000, 1, 1, 22, 30, 0, 0, time.UTC)

	doc := NewDocument(q, models.DefaultCompany())
	assert.Equal(t, "January 2, 2000", doc.GregDate)
	assert.Equal(t, "٢٥ رمضان ١٤٢٠ هـ", doc.HijriDate)
}

func TestNewDocument_OmitsEmptyCustomerFields(t *testing.T) {
	doc := NewDocument(sampleQuote(), models.Company{})

	assert.Empty(t, doc.Seller)
	require.Len(t, doc.Customer, 2)
	assert.Equal(t, "Country", doc.Customer[0].LabelEn)
	assert.Equal(t, "Phone", doc.Customer[1].LabelEn)
}

func TestNewDocument_Draft(t *testing.T) {
	q := sampleQuote()
	q.QuoteNumber = ""
	q.CreatedDate = time.Time{}

	doc := NewDocument(q, models.Company{})
	assert.Equal(t, "QYT26-draft", doc.Number)
	assert.NotEmpty(t, doc.GregDate)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, DirRTL, Direction("Project مشروع"))
	assert.Equal(t, DirLTR, Direction("Project 2024"))
	assert.Equal(t, DirLTR, Direction(""))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567.50", FormatMoney(1234567.5))
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "3", FormatQuantity(3))
	assert.Equal(t, "10", FormatQuantity(10))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
	assert.Equal(t, "1,000", FormatQuantity(1000))
}

func TestHTML(t *testing.T) {
	doc := NewDocument(sampleQuote(), models.DefaultCompany())
	doc.LogoURL = "/api/uploads/logo.png"

	out, err := HTML(doc)
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "<title>شركة_الأمل_QYT26-17</title>")
	assert.Contains(t, page, `<p dir="rtl">توريد وتركيب مظلات</p>`)
	assert.Contains(t, page, `<p dir="ltr">Supply and install shades</p>`)
	assert.Contains(t, page, "display: table-header-group")
	assert.Contains(t, page, "@page { size: A4; margin: 12mm; }")
	assert.Contains(t, page, "3,467.27 ريال")
	assert.Contains(t, page, `src="/api/uploads/logo.png"`)
	// html/template escapes "+" in text
	assert.Contains(t, page, "info@tsscoksa.com | &#43;966 50 061 2006")
}

func TestHTML_EscapesUserText(t *testing.T) {
	q := sampleQuote()
	q.Customer.Name = "<script>alert(1)</script>"

	out, err := HTML(NewDocument(q, models.Company{}))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "<script>alert"))
}

func TestPDF(t *testing.T) {
	out, err := PDF(NewDocument(sampleQuote(), models.DefaultCompany()), PDFOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing PDF header")
}

func TestPDF_MissingFont(t *testing.T) {
	_, err := PDF(NewDocument(sampleQuote(), models.Company{}), PDFOptions{FontPath: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}

func TestPDFText_FallbackWithoutFont(t *testing.T) {
	w := &pdfWriter{}
	assert.Equal(t, "-", w.txt("شركة"))
	assert.Equal(t, "Steel frame", w.txt("Steel  frame مظلة"))
	assert.Equal(t, "Seller", w.label("البائع", "Seller"))

	w.unicode = true
	assert.Equal(t, "شركة", w.txt("شركة"))
	assert.Equal(t, "البائع / Seller", w.label("البائع", "Seller"))
}

func TestExcel(t *testing.T) {
	out, err := Excel(NewDocument(sampleQuote(), models.DefaultCompany()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{sheetName}, sheets)

	name, _ := f.GetCellValue(sheetName, "A1")
	assert.Equal(t, models.DefaultCompany().NameAr, name)
	number, _ := f.GetCellValue(sheetName, "B4")
	assert.Equal(t, "QYT26-17", number)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	var sawItem, sawNote bool
	for _, r := range rows {
		if len(r) > 1 && r[1] == "Steel frame" {
			sawItem = true
		}
		if len(r) > 0 && r[0] == "'=SUM(A1)" {
			sawNote = true
		}
	}
	assert.True(t, sawItem, "item row missing")
	assert.True(t, sawNote, "formula-looking note should be neutralised")
}

func TestSanitizeExcelCell(t *testing.T) {
	assert.Equal(t, "'=1+1", sanitizeExcelCell("=1+1"))
	assert.Equal(t, "'-5", sanitizeExcelCell("-5"))
	assert.Equal(t, "plain", sanitizeExcelCell("plain"))
	assert.Equal(t, "", sanitizeExcelCell(""))
}
