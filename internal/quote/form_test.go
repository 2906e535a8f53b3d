package quote

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-quote-desk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	created []*models.Quote
	updated map[string]*models.Quote
	err     error
}

func (s *fakeSaver) CreateQuote(_ context.Context, q *models.Quote) (*models.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, q)
	out := *q
	out.ID = "new-id"
	out.QuoteNumber = "1"
	return &out, nil
}

func (s *fakeSaver) UpdateQuote(_ context.Context, id string, q *models.Quote) (*models.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.updated == nil {
		s.updated = map[string]*models.Quote{}
	}
	s.updated[id] = q
	return q, nil
}

func (s *fakeSaver) calls() int { return len(s.created) + len(s.updated) }

func validForm() *Form {
	f := NewForm()
	_ = f.SetCustomer("name", "Ahmad")
	f.SetProjectDescription("Car park shades")
	_ = f.EditItem(0, "description", "Tension shade")
	return f
}

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm()
	q := f.Quote()

	require.Len(t, q.Items, 1)
	assert.Equal(t, DefaultItem(), q.Items[0])
	assert.Equal(t, 1.0, q.Items[0].Quantity)
	assert.Equal(t, 0.0, q.Items[0].TotalPrice)
	assert.Equal(t, DefaultCountry, q.Customer.Country)
	assert.False(t, f.IsEdit())
}

func TestAddItem_AppendsDefault(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.EditItem(0, "unit_price", "10"))

	f.AddItem()

	q := f.Quote()
	require.Len(t, q.Items, 2)
	assert.Equal(t, DefaultItem(), q.Items[1])
	assert.Equal(t, 10.0, q.Subtotal)
}

func TestRemoveItem_KeepsLastItem(t *testing.T) {
	f := NewForm()
	before := f.Quote()

	assert.False(t, f.RemoveItem(0))
	assert.Equal(t, before, f.Quote())
	assert.Equal(t, 1, f.Len())
}

func TestRemoveItem_RecomputesTotals(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.EditItem(0, "quantity", "2"))
	require.NoError(t, f.EditItem(0, "unit_price", "100"))
	f.AddItem()
	require.NoError(t, f.EditItem(1, "unit_price", "50"))
	assert.Equal(t, 287.5, f.Quote().TotalAmount)

	assert.True(t, f.RemoveItem(0))
	q := f.Quote()
	require.Len(t, q.Items, 1)
	assert.Equal(t, 50.0, q.Subtotal)
	assert.Equal(t, 7.5, q.TaxAmount)
	assert.Equal(t, 57.5, q.TotalAmount)

	assert.False(t, f.RemoveItem(5))
}

func TestEditItem_RejectsInvalidNumber(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.EditItem(0, "quantity", "2"))
	before := f.Quote()

	err := f.EditItem(0, "quantity", "2.5.6")

	assert.ErrorIs(t, err, ErrInvalidNumber)
	assert.Equal(t, before, f.Quote())
	assert.Equal(t, 2.0, f.Quote().Items[0].Quantity)
}

func TestEditItem_RejectsHugeAmounts(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.EditItem(0, "quantity", "3"))
	before := f.Quote()

	big := "1" + strings.Repeat("0", 200)
	assert.ErrorIs(t, f.EditItem(0, "quantity", big), ErrAmountTooLarge)
	assert.ErrorIs(t, f.EditItem(0, "unit_price", big), ErrAmountTooLarge)
	assert.Equal(t, before, f.Quote())
}

func TestEditItem_EmptyCommitsZero(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.EditItem(0, "unit_price", "40"))
	require.NoError(t, f.EditItem(0, "quantity", ""))

	q := f.Quote()
	assert.Equal(t, 0.0, q.Items[0].Quantity)
	assert.Equal(t, 0.0, q.Items[0].TotalPrice)
	assert.Equal(t, 0.0, q.TotalAmount)
}

func TestEditItem_UnknownFieldAndIndex(t *testing.T) {
	f := NewForm()
	assert.ErrorIs(t, f.EditItem(0, "colour", "red"), ErrUnknownField)
	assert.Error(t, f.EditItem(3, "description", "x"))
	assert.ErrorIs(t, f.SetCustomer("age", "3"), ErrUnknownField)
}

func TestEditForm_CopiesQuote(t *testing.T) {
	src := &models.Quote{
		ID:       "q1",
		Customer: models.Customer{Name: "A"},
		Items:    []models.LineItem{{Description: "x", Quantity: 2, UnitPrice: 3}},
	}
	f := EditForm(src)
	require.NoError(t, f.EditItem(0, "description", "changed"))

	assert.True(t, f.IsEdit())
	assert.Equal(t, "x", src.Items[0].Description)
	assert.Equal(t, 6.0, f.Quote().Items[0].TotalPrice)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Form)
		code   string
	}{
		{"blank customer", func(f *Form) { _ = f.SetCustomer("name", "   ") }, CodeCustomerNameRequired},
		{"blank project", func(f *Form) { f.SetProjectDescription("\t") }, CodeProjectDescriptionRequired},
		{"blank item", func(f *Form) { f.AddItem() }, CodeItemDescriptionRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(f)

			var verr *ValidationError
			require.ErrorAs(t, f.Validate(), &verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}

	assert.NoError(t, validForm().Validate())
}

func TestValidate_NegativeAmounts(t *testing.T) {
	q := &models.Quote{
		Customer:           models.Customer{Name: "A"},
		ProjectDescription: "P",
		Items:              []models.LineItem{{Description: "x", Quantity: -1}},
	}
	var verr *ValidationError
	require.ErrorAs(t, Validate(q), &verr)
	assert.Equal(t, CodeNegativeAmount, verr.Code)
	assert.Equal(t, 0, verr.Index)

	q.Items = nil
	require.ErrorAs(t, Validate(q), &verr)
	assert.Equal(t, CodeItemsRequired, verr.Code)
}

func TestValidate_AmountTooLarge(t *testing.T) {
	q := &models.Quote{
		Customer:           models.Customer{Name: "A"},
		ProjectDescription: "P",
		Items: []models.LineItem{
			{Description: "x", Quantity: 1},
			{Description: "y", Quantity: 1, UnitPrice: 1e200},
		},
	}
	Recalculate(q)

	var verr *ValidationError
	require.ErrorAs(t, Validate(q), &verr)
	assert.Equal(t, CodeAmountTooLarge, verr.Code)
	assert.Equal(t, "unit_price", verr.Field)
	assert.Equal(t, 1, verr.Index)

	q.Items[1].UnitPrice = MaxAmount
	assert.NoError(t, Validate(q))
}

func TestSubmit_ValidationBlocksNetwork(t *testing.T) {
	s := &fakeSaver{}
	f := NewForm()
	refreshed := false

	_, err := f.Submit(context.Background(), s, func(context.Context) { refreshed = true })

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, s.calls())
	assert.False(t, refreshed)
}

func TestSubmit_CreateThenRefresh(t *testing.T) {
	s := &fakeSaver{}
	f := validForm()
	refreshed := false

	saved, err := f.Submit(context.Background(), s, func(context.Context) { refreshed = true })

	require.NoError(t, err)
	assert.Equal(t, "new-id", saved.ID)
	assert.True(t, refreshed)
	require.Len(t, s.created, 1)
	assert.Equal(t, "Tension shade", s.created[0].Items[0].Description)
}

func TestSubmit_UpdateUsesID(t *testing.T) {
	s := &fakeSaver{}
	f := EditForm(&models.Quote{
		ID:                 "q-42",
		Customer:           models.Customer{Name: "A"},
		ProjectDescription: "P",
		Items:              []models.LineItem{{Description: "x", Quantity: 1, UnitPrice: 10}},
	})

	_, err := f.Submit(context.Background(), s, nil)

	require.NoError(t, err)
	require.Contains(t, s.updated, "q-42")
	assert.Equal(t, 11.5, s.updated["q-42"].TotalAmount)
}

func TestSubmit_FailureKeepsState(t *testing.T) {
	s := &fakeSaver{err: errors.New("backend down")}
	f := validForm()
	before := f.Quote()

	_, err := f.Submit(context.Background(), s, func(context.Context) { t.Fatal("refresh must not run") })

	assert.EqualError(t, err, "backend down")
	assert.Equal(t, before, f.Quote())
}
