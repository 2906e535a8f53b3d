// Package hijri converts Gregorian dates to the tabular Islamic calendar and
// formats them the way printed Saudi documents show them.
package hijri

import (
	"fmt"
	"strings"
	"time"
)

// Date is a day in the Islamic calendar. Month is 1-based.
type Date struct {
	Year  int
	Month int
	Day   int
}

var monthNames = [12]string{
	"محرم", "صفر", "ربيع الأول", "ربيع الآخر", "جمادى الأولى", "جمادى الآخرة",
	"رجب", "شعبان", "رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}

var monthNamesEn = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani", "Jumada al-Ula", "Jumada al-Akhirah",
	"Rajab", "Shaban", "Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// FromTime converts the calendar day of t (in its own location).
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return fromJulianDay(julianDay(y, int(m), d))
}

// julianDay is the Julian Day Number of a Gregorian date.
func julianDay(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// fromJulianDay applies the arithmetic (civil) Islamic calendar with the
// 30-year leap cycle; day 1948440 is 1 Muharram 1.
func fromJulianDay(jd int) Date {
	l := jd - 1948440 + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30
	return Date{Year: year, Month: month, Day: day}
}

// MonthName is the Arabic month name.
func (d Date) MonthName() string { return monthNames[d.Month-1] }

// Arabic formats as "٢٤ رمضان ١٤٢٠ هـ".
func (d Date) Arabic() string {
	return fmt.Sprintf("%s %s %s هـ", ArabicDigits(d.Day), d.MonthName(), ArabicDigits(d.Year))
}

// English formats as "24 Ramadan 1420 AH".
func (d Date) English() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, monthNamesEn[d.Month-1], d.Year)
}

// ArabicDigits renders n with Arabic-Indic digits.
func ArabicDigits(n int) string {
	s := fmt.Sprint(n)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune('٠' + (r - '0'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Gregorian formats t as "January 2, 2006".
func Gregorian(t time.Time) string {
	return t.Format("January 2, 2006")
}
