package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder schedules recurring maintenance of one item/material pair at one
// property. The three references are required and checked for existence at
// creation; they are immutable afterwards (re-pointing means delete and
// recreate). No cascade removes reminders when a referenced entity
// disappears later; reads degrade gracefully instead.
type Reminder struct {
	ID         string `gorm:"primaryKey;type:char(24)" json:"id"`
	PropertyID string `gorm:"type:char(24);not null;index" json:"property"`
	ItemID     string `gorm:"type:char(24);not null;index" json:"item"`
	MaterialID string `gorm:"type:char(24);not null" json:"material"`
	Category   string `gorm:"size:32;not null" json:"category"`
	// ItemQuantity is how many units of the item the property has.
	ItemQuantity int `gorm:"not null" json:"itemQuantity"`
	// SelectedFrequency is the service interval in calendar days.
	SelectedFrequency int `gorm:"not null" json:"selectedFrequency"`
	// LastMaintenance is nil until the first service; the due date is then
	// anchored on StartDate.
	LastMaintenance *time.Time `json:"lastMaintenance"`
	StartDate       time.Time  `gorm:"not null" json:"startDate"`
	Description     string     `gorm:"size:1024" json:"description,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TableName overrides the table name for Reminder
func (Reminder) TableName() string {
	return "reminders"
}

// BeforeCreate assigns an identity when the caller did not supply one.
func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}

// Anchor is the date the next due date is computed from: the last service
// when one happened, otherwise the start date.
func (r *Reminder) Anchor() time.Time {
	if r.LastMaintenance != nil {
		return *r.LastMaintenance
	}
	return r.StartDate
}
