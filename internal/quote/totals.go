// Package quote holds the quote lifecycle shared by the server and the client:
// the totals rule, the form operations, validation and export file naming.
package quote

import (
	"errors"
	"math"
	"regexp"
	"strconv"

	"go-quote-desk/internal/models"

	"github.com/shopspring/decimal"
)

// TaxRate is the fixed VAT rate applied to every quote subtotal.
var TaxRate = decimal.RequireFromString("0.15")

// ErrInvalidNumber is returned for quantity or price input that is not
// digits with at most one decimal point.
var ErrInvalidNumber = errors.New("invalid number")

// MaxAmount bounds a quantity or unit price so every total stays a finite
// float64 with cents intact.
const MaxAmount = 1e12

// ErrAmountTooLarge is returned for input above MaxAmount.
var ErrAmountTooLarge = errors.New("amount too large")

var amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// Totals are the derived amounts of a quote.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
}

// LineTotal returns round(quantity * unitPrice, 2).
func LineTotal(quantity, unitPrice float64) float64 {
	d := fromFloat(quantity).Mul(fromFloat(unitPrice)).Round(2)
	return toFloat(d)
}

// ComputeTotals sums the line totals and applies the VAT rate.
// It trusts each item's TotalPrice; call Recalculate to refresh those first.
func ComputeTotals(items []models.LineItem) Totals {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(fromFloat(item.TotalPrice))
	}
	subtotal := sum.Round(2)
	tax := subtotal.Mul(TaxRate).Round(2)
	total := subtotal.Add(tax).Round(2)

	return Totals{
		Subtotal:    toFloat(subtotal),
		TaxAmount:   toFloat(tax),
		TotalAmount: toFloat(total),
	}
}

// Recalculate refreshes every item's total price and the quote aggregates.
func Recalculate(q *models.Quote) {
	for i := range q.Items {
		q.Items[i].TotalPrice = LineTotal(q.Items[i].Quantity, q.Items[i].UnitPrice)
	}
	applyTotals(q)
}

func applyTotals(q *models.Quote) {
	t := ComputeTotals(q.Items)
	q.Subtotal = t.Subtotal
	q.TaxAmount = t.TaxAmount
	q.TotalAmount = t.TotalAmount
}

// ParseAmount converts raw quantity or price input. Empty input is zero.
func ParseAmount(s string) (float64, error) {
	if !amountPattern.MatchString(s) {
		return 0, ErrInvalidNumber
	}
	if s == "" || s == "." {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrAmountTooLarge
	}
	if err != nil {
		return 0, ErrInvalidNumber
	}
	if v > MaxAmount {
		return 0, ErrAmountTooLarge
	}
	return v, nil
}

// fromFloat treats NaN and infinities as zero; Validate rejects the inputs
// that produce them.
func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
