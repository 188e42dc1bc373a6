package models

import (
	"time"

	"gorm.io/gorm"
)

// Material is a reusable consumable. It is free-standing: any item may
// reference it, and deleting an item never deletes the materials it
// references.
type Material struct {
	ID   string    `gorm:"primaryKey;type:char(24)" json:"id"`
	Name Bilingual `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	// SuggestedFrequency is the default replacement interval in calendar
	// days offered when creating a reminder for this material.
	SuggestedFrequency *int      `json:"suggestedFrequency,omitempty"`
	Description        string    `gorm:"size:1024" json:"description,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Material
func (Material) TableName() string {
	return "materials"
}

// BeforeCreate assigns an identity when the caller did not supply one.
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}
