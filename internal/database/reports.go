package database

import (
	"go-quote-desk/internal/models"
	"time"
)

// GetQuoteReport counts and sums the quotes created within a date range.
func GetQuoteReport(start, end time.Time) (*models.QuoteReport, error) {
	var result models.QuoteReport

	// COALESCE ensures we get 0 instead of NULL if no quotes exist
	err := DB.Model(&models.Quote{}).
		Where("created_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(subtotal), 0) AS subtotal, COALESCE(SUM(tax_amount), 0) AS tax_amount, COALESCE(SUM(total_amount), 0) AS total_amount").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Quote{}).
		Where("created_date BETWEEN ? AND ?", start, end).
		Count(&result.Count).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
