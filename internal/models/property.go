package models

import (
	"time"

	"gorm.io/gorm"
)

// Property size units.
const (
	SizeUnitMeters = "MT²"
	SizeUnitFeet   = "FT²"
)

// Property is a managed home. Reminders reference it by identity; the
// manager contact fields are what the notification layer messages.
type Property struct {
	ID             string `gorm:"primaryKey;type:char(24)" json:"id"`
	Type           string `gorm:"size:64;not null" json:"type"`
	Rooms          int    `gorm:"not null" json:"rooms"`
	Bathrooms      int    `gorm:"not null" json:"bathrooms"`
	HasLivingRoom  bool   `json:"hasLivingRoom"`
	HasDiningRoom  bool   `json:"hasDiningRoom"`
	HasFamilyRoom  bool   `json:"hasFamilyRoom"`
	HasHallRoom    bool   `json:"hasHallRoom"`
	HasKitchen     bool   `json:"hasKitchen"`
	HasServiceRoom bool   `json:"hasServiceRoom"`
	HasLaundryRoom bool   `json:"hasLaundryRoom"`
	HasBalcony     bool   `json:"hasBalcony"`
	HasGarden      bool   `json:"hasGarden"`
	Title          string `gorm:"size:255;not null" json:"title"`
	Description    string `gorm:"size:2048" json:"description,omitempty"`
	Price          float64 `json:"price,omitempty"`
	Location       string  `gorm:"size:512" json:"location,omitempty"`
	Size           float64 `json:"size,omitempty"`
	SizeUnit       string  `gorm:"size:8" json:"sizeUnit,omitempty"`
	OwnerID        string  `gorm:"type:char(24);not null;index" json:"owner"`
	ManagerName    string  `gorm:"size:255" json:"managerName,omitempty"`
	ManagerPhone   string  `gorm:"size:32" json:"managerPhone,omitempty"`
	// ManagerCountryCode is either a dial-code string or a full country
	// descriptor object, depending on client version. Stored as JSON.
	ManagerCountryCode JSON      `gorm:"type:json" json:"managerCountryCode,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns an identity when the caller did not supply one.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
