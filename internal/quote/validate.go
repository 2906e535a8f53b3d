package quote

import (
	"fmt"
	"math"
	"strings"

	"go-quote-desk/internal/models"
)

// Validation codes. They double as i18n message keys.
const (
	CodeCustomerNameRequired       = "customer_name_required"
	CodeProjectDescriptionRequired = "project_description_required"
	CodeItemsRequired              = "items_required"
	CodeItemDescriptionRequired    = "item_description_required"
	CodeNegativeAmount             = "negative_amount"
	CodeAmountTooLarge             = "amount_too_large"
)

// ValidationError describes the first rule a quote breaks.
type ValidationError struct {
	Code  string
	Field string
	Index int // item index for item-level rules, -1 otherwise
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: items[%d].%s", e.Code, e.Index, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Field)
}

// Validate checks a quote before it is sent or stored.
func Validate(q *models.Quote) error {
	if strings.TrimSpace(q.Customer.Name) == "" {
		return &ValidationError{Code: CodeCustomerNameRequired, Field: "customer.name", Index: -1}
	}
	if strings.TrimSpace(q.ProjectDescription) == "" {
		return &ValidationError{Code: CodeProjectDescriptionRequired, Field: "project_description", Index: -1}
	}
	if len(q.Items) == 0 {
		return &ValidationError{Code: CodeItemsRequired, Field: "items", Index: -1}
	}
	for i, item := range q.Items {
		if strings.TrimSpace(item.Description) == "" {
			return &ValidationError{Code: CodeItemDescriptionRequired, Field: "description", Index: i}
		}
	}
	for i, item := range q.Items {
		if item.Quantity < 0 {
			return &ValidationError{Code: CodeNegativeAmount, Field: "quantity", Index: i}
		}
		if item.UnitPrice < 0 {
			return &ValidationError{Code: CodeNegativeAmount, Field: "unit_price", Index: i}
		}
		if !inRange(item.Quantity) {
			return &ValidationError{Code: CodeAmountTooLarge, Field: "quantity", Index: i}
		}
		if !inRange(item.UnitPrice) {
			return &ValidationError{Code: CodeAmountTooLarge, Field: "unit_price", Index: i}
		}
	}
	return nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && v <= MaxAmount
}
