package quote

import "go-quote-desk/internal/models"

// ApplyUpdate copies the non-nil fields of u onto q and recomputes totals.
func ApplyUpdate(q *models.Quote, u *models.QuoteUpdate) {
	if u.Customer != nil {
		q.Customer = *u.Customer
	}
	if u.ProjectDescription != nil {
		q.ProjectDescription = *u.ProjectDescription
	}
	if u.Location != nil {
		q.Location = *u.Location
	}
	if u.Notes != nil {
		q.Notes = *u.Notes
	}
	if u.Items != nil {
		q.Items = append([]models.LineItem(nil), (*u.Items)...)
	}
	Recalculate(q)
}
