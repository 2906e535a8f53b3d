package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "عرض سعر"

// Excel renders the document as a single right-to-left worksheet.
func Excel(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	rtl := true
	if err := f.SetSheetView(sheetName, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, fmt.Errorf("sheet view: %w", err)
	}

	widths := map[string]float64{"A": 6, "B": 50, "C": 10, "D": 10, "E": 16, "F": 18}
	for c, w := range widths {
		f.SetColWidth(sheetName, c, c, w)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "#1F4E79"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	numStyle, _ := f.NewStyle(&excelize.Style{
		NumFmt:    4, // #,##0.00
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	totalLabelStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    thinBorders(),
	})
	totalValueStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		NumFmt:    4,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	set := func(cell string, v interface{}, style int) {
		f.SetCellValue(sheetName, cell, v)
		if style != 0 {
			f.SetCellStyle(sheetName, cell, cell, style)
		}
	}

	// ── Header ──────────────────────────────────────────────────────────

	f.MergeCell(sheetName, "A1", "F1")
	set("A1", sanitizeExcelCell(doc.Company.NameAr), titleStyle)
	f.MergeCell(sheetName, "A2", "F2")
	set("A2", sanitizeExcelCell(doc.Company.NameEn), boldStyle)
	f.MergeCell(sheetName, "A3", "F3")
	set("A3", doc.Title, titleStyle)
	f.SetRowHeight(sheetName, 3, 24)

	set("A4", "رقم العرض", boldStyle)
	set("B4", doc.Number, 0)
	set("A5", "التاريخ", boldStyle)
	set("B5", doc.HijriDate+" / "+doc.GregDate, 0)

	// ── Customer ────────────────────────────────────────────────────────

	r := 7
	set(cellName("A", r), "العميل", boldStyle)
	set(cellName("B", r), sanitizeExcelCell(doc.CustomerName), 0)
	for _, fld := range doc.Customer {
		r++
		set(cellName("A", r), fld.LabelAr, 0)
		set(cellName("B", r), sanitizeExcelCell(fld.Value), 0)
	}

	if len(doc.Project) > 0 {
		r += 2
		set(cellName("A", r), "وصف المشروع", boldStyle)
		for _, p := range doc.Project {
			r++
			f.MergeCell(sheetName, cellName("A", r), cellName("F", r))
			set(cellName("A", r), sanitizeExcelCell(p.Text), wrapStyle)
		}
	}
	if doc.Location != "" {
		r++
		set(cellName("A", r), doc.LocationTag, boldStyle)
		set(cellName("B", r), sanitizeExcelCell(doc.Location), 0)
	}

	// ── Items ───────────────────────────────────────────────────────────

	r += 2
	for i, h := range []string{"#", "الوصف", "الكمية", "الوحدة", "سعر الوحدة", "الإجمالي"} {
		set(cellName(string(rune('A'+i)), r), h, headerStyle)
	}
	for i, row := range doc.Rows {
		r++
		item := doc.items[i]
		set(cellName("A", r), row.Index, cellStyle)
		set(cellName("B", r), sanitizeExcelCell(row.Description), cellStyle)
		set(cellName("C", r), item.Quantity, numStyle)
		set(cellName("D", r), sanitizeExcelCell(row.Unit), cellStyle)
		set(cellName("E", r), item.UnitPrice, numStyle)
		set(cellName("F", r), item.TotalPrice, numStyle)
	}

	// ── Totals ──────────────────────────────────────────────────────────

	for _, line := range []struct {
		label string
		value float64
	}{
		{"المجموع الفرعي (" + doc.Currency + ")", doc.totals.Subtotal},
		{doc.TaxLabel, doc.totals.TaxAmount},
		{"الإجمالي (" + doc.Currency + ")", doc.totals.TotalAmount},
	} {
		r++
		f.MergeCell(sheetName, cellName("A", r), cellName("E", r))
		set(cellName("A", r), line.label, totalLabelStyle)
		f.SetCellStyle(sheetName, cellName("A", r), cellName("E", r), totalLabelStyle)
		set(cellName("F", r), line.value, totalValueStyle)
	}

	if len(doc.Notes) > 0 {
		r += 2
		set(cellName("A", r), "ملاحظات", boldStyle)
		for _, p := range doc.Notes {
			r++
			f.MergeCell(sheetName, cellName("A", r), cellName("F", r))
			set(cellName("A", r), sanitizeExcelCell(p.Text), wrapStyle)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func cellName(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

// sanitizeExcelCell stops user text from being read as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
