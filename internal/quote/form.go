package quote

import (
	"context"
	"errors"
	"fmt"

	"go-quote-desk/internal/models"
)

const (
	DefaultUnit    = "قطعة"
	DefaultCountry = "السعودية"
)

// ErrUnknownField is returned when a form edit names a field that does not exist.
var ErrUnknownField = errors.New("unknown field")

// Saver is the backend the form submits to.
type Saver interface {
	CreateQuote(ctx context.Context, q *models.Quote) (*models.Quote, error)
	UpdateQuote(ctx context.Context, id string, q *models.Quote) (*models.Quote, error)
}

// Form is the editing state of one quote. It is owned by a single caller and
// keeps totals consistent after every mutation.
type Form struct {
	quote models.Quote
	id    string
}

// DefaultItem is the row appended by AddItem.
func DefaultItem() models.LineItem {
	return models.LineItem{Quantity: 1, Unit: DefaultUnit}
}

// NewForm starts a new quote with one empty item.
func NewForm() *Form {
	f := &Form{quote: models.Quote{
		Customer: models.Customer{Country: DefaultCountry},
		Items:    []models.LineItem{DefaultItem()},
	}}
	Recalculate(&f.quote)
	return f
}

// EditForm wraps a fetched quote for editing. The quote is copied.
func EditForm(q *models.Quote) *Form {
	f := &Form{quote: cloneQuote(q), id: q.ID}
	if len(f.quote.Items) == 0 {
		f.quote.Items = []models.LineItem{DefaultItem()}
	}
	Recalculate(&f.quote)
	return f
}

// IsEdit reports whether submitting updates an existing quote.
func (f *Form) IsEdit() bool { return f.id != "" }

// Quote returns a copy of the current state.
func (f *Form) Quote() models.Quote { return cloneQuote(&f.quote) }

// Len is the number of line items.
func (f *Form) Len() int { return len(f.quote.Items) }

// AddItem appends a default row.
func (f *Form) AddItem() {
	f.quote.Items = append(f.quote.Items, DefaultItem())
	applyTotals(&f.quote)
}

// RemoveItem deletes item i. The last remaining item is never removed.
func (f *Form) RemoveItem(i int) bool {
	if len(f.quote.Items) <= 1 || i < 0 || i >= len(f.quote.Items) {
		return false
	}
	items := make([]models.LineItem, 0, len(f.quote.Items)-1)
	items = append(items, f.quote.Items[:i]...)
	items = append(items, f.quote.Items[i+1:]...)
	f.quote.Items = items
	applyTotals(&f.quote)
	return true
}

// EditItem sets one field of item i from raw input. Rejected numeric input
// leaves the form untouched.
func (f *Form) EditItem(i int, field, value string) error {
	if i < 0 || i >= len(f.quote.Items) {
		return fmt.Errorf("item %d: out of range", i)
	}
	item := f.quote.Items[i]
	switch field {
	case "description":
		item.Description = value
	case "unit":
		item.Unit = value
	case "quantity", "unit_price":
		v, err := ParseAmount(value)
		if err != nil {
			return fmt.Errorf("%s %q: %w", field, value, err)
		}
		if field == "quantity" {
			item.Quantity = v
		} else {
			item.UnitPrice = v
		}
		item.TotalPrice = LineTotal(item.Quantity, item.UnitPrice)
	default:
		return fmt.Errorf("%s: %w", field, ErrUnknownField)
	}
	f.quote.Items[i] = item
	applyTotals(&f.quote)
	return nil
}

// SetCustomer sets a customer field by its JSON name.
func (f *Form) SetCustomer(field, value string) error {
	c := &f.quote.Customer
	switch field {
	case "name":
		c.Name = value
	case "tax_number":
		c.TaxNumber = value
	case "street":
		c.Street = value
	case "neighborhood":
		c.Neighborhood = value
	case "country":
		c.Country = value
	case "city":
		c.City = value
	case "commercial_registration":
		c.CommercialRegistration = value
	case "building":
		c.Building = value
	case "postal_code":
		c.PostalCode = value
	case "additional_number":
		c.AdditionalNumber = value
	case "phone":
		c.Phone = value
	default:
		return fmt.Errorf("customer.%s: %w", field, ErrUnknownField)
	}
	return nil
}

// SetProjectDescription replaces the project text.
func (f *Form) SetProjectDescription(v string) { f.quote.ProjectDescription = v }

// SetLocation replaces the site location.
func (f *Form) SetLocation(v string) { f.quote.Location = v }

// SetNotes replaces the free-text notes.
func (f *Form) SetNotes(v string) { f.quote.Notes = v }

// Validate reports the first rule the current state breaks.
func (f *Form) Validate() error { return Validate(&f.quote) }

// Submit validates and sends the quote. Validation failures never reach the
// saver. On success onSuccess runs (typically a list refresh); on failure the
// form keeps everything that was entered.
func (f *Form) Submit(ctx context.Context, s Saver, onSuccess func(context.Context)) (*models.Quote, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	payload := cloneQuote(&f.quote)

	var saved *models.Quote
	var err error
	if f.IsEdit() {
		saved, err = s.UpdateQuote(ctx, f.id, &payload)
	} else {
		saved, err = s.CreateQuote(ctx, &payload)
	}
	if err != nil {
		return nil, err
	}
	if onSuccess != nil {
		onSuccess(ctx)
	}
	return saved, nil
}

func cloneQuote(q *models.Quote) models.Quote {
	c := *q
	c.Items = append([]models.LineItem(nil), q.Items...)
	return c
}
