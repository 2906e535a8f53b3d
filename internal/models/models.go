package models

import (
	"time"
)

// User - someone allowed to sign in to the quote desk
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'staff'
	CreatedAt    time.Time `json:"created_at"`
}

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Customer - who the quote is addressed to. Stored inline on the quote row.
type Customer struct {
	Name                   string `gorm:"size:255" json:"name"`
	TaxNumber              string `gorm:"size:64" json:"tax_number"`
	Street                 string `json:"street"`
	Neighborhood           string `json:"neighborhood"`
	Country                string `json:"country"`
	City                   string `json:"city"`
	CommercialRegistration string `gorm:"size:64" json:"commercial_registration"`
	Building               string `gorm:"size:32" json:"building"`
	PostalCode             string `gorm:"size:32" json:"postal_code"`
	AdditionalNumber       string `gorm:"size:32" json:"additional_number"`
	Phone                  string `gorm:"size:64" json:"phone"`
}

// Quote - The priced proposal header
type Quote struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	QuoteNumber        string     `gorm:"size:32;uniqueIndex" json:"quote_number"`
	Customer           Customer   `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	ProjectDescription string     `gorm:"type:text" json:"project_description"`
	Location           string     `json:"location"`
	Items              []LineItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal           float64    `json:"subtotal"`
	TaxAmount          float64    `json:"tax_amount"`
	TotalAmount        float64    `json:"total_amount"`
	Notes              string     `gorm:"type:text" json:"notes"`
	CreatedDate        time.Time  `gorm:"index" json:"created_date"`
	UpdatedDate        time.Time  `json:"updated_date"`
}

// LineItem - one priced row of a quote. Position keeps the user's ordering.
type LineItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	QuoteID     string  `gorm:"size:36;index" json:"-"`
	Position    int     `json:"-"`
	Description string  `gorm:"type:text" json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `gorm:"size:64" json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"` // Always round(Quantity * UnitPrice, 2)
}

// QuoteUpdate - partial update payload; nil fields are left alone
type QuoteUpdate struct {
	Customer           *Customer   `json:"customer"`
	ProjectDescription *string     `json:"project_description"`
	Location           *string     `json:"location"`
	Items              *[]LineItem `json:"items"`
	Notes              *string     `json:"notes"`
}

// Company - the seller profile printed on every document
type Company struct {
	ID                     uint      `gorm:"primaryKey" json:"-"`
	NameAr                 string    `json:"name_ar"`
	NameEn                 string    `json:"name_en"`
	DescriptionAr          string    `gorm:"type:text" json:"description_ar"`
	DescriptionEn          string    `gorm:"type:text" json:"description_en"`
	TaxNumber              string    `gorm:"size:64" json:"tax_number"`
	Street                 string    `json:"street"`
	Neighborhood           string    `json:"neighborhood"`
	Country                string    `json:"country"`
	City                   string    `json:"city"`
	CommercialRegistration string    `gorm:"size:64" json:"commercial_registration"`
	Building               string    `gorm:"size:32" json:"building"`
	PostalCode             string    `gorm:"size:32" json:"postal_code"`
	AdditionalNumber       string    `gorm:"size:32" json:"additional_number"`
	Email                  string    `json:"email"`
	Phone1                 string    `gorm:"size:64" json:"phone1"`
	Phone2                 string    `gorm:"size:64" json:"phone2"`
	Phone3                 string    `gorm:"size:64" json:"phone3"`
	LogoPath               string    `json:"logo_path"`
	UpdatedAt              time.Time `json:"-"`
}

// DefaultCompany is the profile created the first time the company is read.
func DefaultCompany() Company {
	return Company{
		NameAr:                 "شركة مثلث الأنظمة المميزة للمقاولات",
		NameEn:                 "MUTHALLATH AL-ANZIMAH AL-MUMAYYIZAH CONTRACTING CO.",
		DescriptionAr:          "تصميم وتصنيع وتوريد وتركيب مظلات الشد الإنشائي والخيام والسواتر",
		DescriptionEn:          "Design, Manufacture, Supply & Installation of Structure Tension Awnings, Tents & Canopies",
		TaxNumber:              "311104439400003",
		Street:                 "شارع حائل",
		Neighborhood:           "حي البغدادية الغربية",
		Country:                "السعودية",
		City:                   "جدة",
		CommercialRegistration: "4030255240",
		Building:               "8376",
		PostalCode:             "22231",
		AdditionalNumber:       "3842",
		Email:                  "info@tsscoksa.com",
		Phone1:                 "+966 50 061 2006",
		Phone2:                 "055 538 9792",
		Phone3:                 "+966 50 336 5527",
	}
}

// QuoteReport - aggregate over quotes created in a date range
type QuoteReport struct {
	Count       int64   `json:"count"`
	Subtotal    float64 `json:"subtotal"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
}
