package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription tiers.
const (
	SubscriptionEssential = "essential"
	SubscriptionPro       = "pro"
)

// User owns properties. Identity and authentication live in the external
// identity provider; this record only keeps what the service itself needs
// (ownership checks, contact details for messaging).
type User struct {
	ID                 string `gorm:"primaryKey;type:char(24)" json:"id"`
	FirstName          string `gorm:"size:255;not null" json:"firstName"`
	LastName           string `gorm:"size:255;not null" json:"lastName"`
	Email              string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role               string `gorm:"size:32;not null;default:user" json:"role"`
	SubscriptionStatus string `gorm:"size:32;not null;default:essential" json:"subscriptionStatus"`
	HasOnboarded       bool   `json:"hasOnboarded"`
	Phone              string `gorm:"size:32" json:"phone,omitempty"`
	// CountryCode mirrors Property.ManagerCountryCode: dial-code string or
	// country descriptor object.
	CountryCode JSON      `gorm:"type:json" json:"countryCode,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an identity when the caller did not supply one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
