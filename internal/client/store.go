package client

import (
	"context"
	"errors"
	"log"

	"go-quote-desk/internal/models"
)

// ListLimit is how many quotes the list view asks for.
const ListLimit = 100

// Store caches what the list view shows: the quotes and the company profile.
type Store struct {
	api     *Client
	quotes  *Loader[[]models.Quote]
	company *Loader[*models.Company]
}

func NewStore(api *Client) *Store {
	return &Store{
		api: api,
		quotes: NewLoader(func(ctx context.Context) ([]models.Quote, error) {
			return api.ListQuotes(ctx, 0, ListLimit)
		}),
		company: NewLoader(api.GetCompany),
	}
}

// Quotes reloads the quote list.
func (s *Store) Quotes(ctx context.Context) ([]models.Quote, error) {
	return s.quotes.Load(ctx)
}

// Company returns the cached profile, fetching it on first use.
func (s *Store) Company(ctx context.Context) (*models.Company, error) {
	if c, ok := s.company.Value(); ok {
		return c, nil
	}
	return s.company.Load(ctx)
}

// CachedQuotes is the last list that was loaded successfully.
func (s *Store) CachedQuotes() []models.Quote {
	quotes, _ := s.quotes.Value()
	return quotes
}

// Refresh reloads the list after a successful save. A failed refresh keeps
// the previous list.
func (s *Store) Refresh(ctx context.Context) {
	if _, err := s.quotes.Load(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		log.Printf("⚠️ Could not refresh quote list: %v", err)
	}
}

// Close cancels in-flight loads.
func (s *Store) Close() {
	s.quotes.Close()
	s.company.Close()
}
