package database

import (
	"errors"
	"log"
	"strconv"
	"time"

	"go-quote-desk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ListQuotes returns quotes newest first, with their items.
func ListQuotes(skip, limit int) ([]models.Quote, error) {
	var quotes []models.Quote
	err := DB.Preload("Items", orderedItems).
		Order("created_date DESC").
		Offset(skip).
		Limit(limit).
		Find(&quotes).Error
	return quotes, err
}

// GetQuote loads one quote or returns ErrNotFound.
func GetQuote(id string) (*models.Quote, error) {
	var q models.Quote
	err := DB.Preload("Items", orderedItems).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetQuoteByNumber finds a quote by its printed number.
func GetQuoteByNumber(number string) (*models.Quote, error) {
	var q models.Quote
	err := DB.Preload("Items", orderedItems).First(&q, "quote_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// numberAttempts bounds how often CreateQuote retries after another writer
// took the number it picked.
const numberAttempts = 5

// CreateQuote stores q with a fresh id, the next quote number and both dates.
// The caller is responsible for validation and totals.
func CreateQuote(q *models.Quote) error {
	var err error
	for attempt := 1; attempt <= numberAttempts; attempt++ {
		err = createQuote(q)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		log.Printf("⚠️ Quote number %s already taken, retrying (%d/%d)", q.QuoteNumber, attempt, numberAttempts)
	}
	return err
}

func createQuote(q *models.Quote) error {
	items := q.Items
	defer func() { q.Items = items }()

	return DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextQuoteNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		q.ID = uuid.NewString()
		q.QuoteNumber = number
		q.CreatedDate = now
		q.UpdatedDate = now

		q.Items = nil
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		q.Items = items
		return saveItems(tx, q)
	})
}

// UpdateQuote overwrites the stored quote with q and replaces its items.
// Number and creation date are preserved.
func UpdateQuote(id string, q *models.Quote) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Quote
		err := tx.First(&existing, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		q.ID = existing.ID
		q.QuoteNumber = existing.QuoteNumber
		q.CreatedDate = existing.CreatedDate
		q.UpdatedDate = time.Now().UTC()

		if err := tx.Omit("Items").Save(q).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", id).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return saveItems(tx, q)
	})
}

// DeleteQuote removes a quote and its items.
func DeleteQuote(id string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Quote{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func saveItems(tx *gorm.DB, q *models.Quote) error {
	for i := range q.Items {
		q.Items[i].ID = 0
		q.Items[i].QuoteID = q.ID
		q.Items[i].Position = i
	}
	if len(q.Items) == 0 {
		return nil
	}
	return tx.Create(&q.Items).Error
}

// nextQuoteNumber is the latest quote's number plus one. When that number is
// not numeric it falls back to count + 1; the first quote is "1". Numbers
// already in use are skipped. quote_number is unique, so a concurrent writer
// that picks the same number fails and CreateQuote retries.
func nextQuoteNumber(tx *gorm.DB) (string, error) {
	var last models.Quote
	err := tx.Order("created_date DESC, LENGTH(quote_number) DESC, quote_number DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "1", nil
	}
	if err != nil {
		return "", err
	}

	next, err := strconv.Atoi(last.QuoteNumber)
	if err == nil {
		next++
	} else {
		var count int64
		if err := tx.Model(&models.Quote{}).Count(&count).Error; err != nil {
			return "", err
		}
		next = int(count) + 1
	}

	for {
		var taken int64
		if err := tx.Model(&models.Quote{}).Where("quote_number = ?", strconv.Itoa(next)).Count(&taken).Error; err != nil {
			return "", err
		}
		if taken == 0 {
			return strconv.Itoa(next), nil
		}
		next++
	}
}
