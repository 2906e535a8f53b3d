package database

import (
	"errors"

	"go-quote-desk/internal/models"

	"gorm.io/gorm"
)

// GetCompany returns the seller profile, seeding the defaults on first read.
func GetCompany() (*models.Company, error) {
	var c models.Company
	err := DB.Order("id").First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = models.DefaultCompany()
	if err := DB.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveCompany replaces the profile. The stored logo is kept when the update
// does not name one.
func SaveCompany(update models.Company) (*models.Company, error) {
	current, err := GetCompany()
	if err != nil {
		return nil, err
	}
	update.ID = current.ID
	if update.LogoPath == "" {
		update.LogoPath = current.LogoPath
	}
	if err := DB.Save(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// SetCompanyLogo records where the logo was stored.
func SetCompanyLogo(path string) (*models.Company, error) {
	c, err := GetCompany()
	if err != nil {
		return nil, err
	}
	if err := DB.Model(c).Update("logo_path", path).Error; err != nil {
		return nil, err
	}
	c.LogoPath = path
	return c, nil
}
