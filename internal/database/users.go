package database

import (
	"errors"
	"log"

	"go-quote-desk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// FindUserByUsername returns ErrNotFound for unknown users.
func FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser hashes the password and stores the user.
func CreateUser(username, password, role string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SeedAdmin creates the first admin account when the users table is empty.
func SeedAdmin(username, password string) error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if username == "" || password == "" {
		log.Println("⚠️ WARNING: No users exist. Set ADMIN_USERNAME and ADMIN_PASSWORD to create the first admin.")
		return nil
	}
	if _, err := CreateUser(username, password, models.RoleAdmin); err != nil {
		return err
	}
	log.Printf("👤 Seeded admin user %q", username)
	return nil
}
