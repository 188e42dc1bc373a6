package models

import (
	"time"

	"gorm.io/gorm"
)

// Item categories. The set is fixed; sub-categories within each category
// come from the loaded category-definition table.
const (
	CategoryCleaning    = "CLEANING"
	CategoryMaintenance = "MAINTENANCE"
)

// ValidCategory reports whether category is one of the fixed enum values.
func ValidCategory(category string) bool {
	return category == CategoryCleaning || category == CategoryMaintenance
}

// Bilingual is a display name pair. All catalog labels are served in
// English and Spanish.
type Bilingual struct {
	EN string `gorm:"size:255" json:"en"`
	ES string `gorm:"size:255" json:"es"`
}

// Item is a maintenance task in the catalog. Material references live in
// the item_materials join table and are resolved at read time; a dangling
// reference means "material unavailable", never a read error.
type Item struct {
	ID          string    `gorm:"primaryKey;type:char(24)" json:"id"`
	Name        Bilingual `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	Category    string    `gorm:"size:32;not null;index" json:"category"`
	SubCategory string    `gorm:"size:64" json:"subCategory,omitempty"`
	Image       string    `gorm:"size:512" json:"image"`
	// Order drives display ordering within a catalog group. Ties keep
	// insertion order.
	Order     int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Item
func (Item) TableName() string {
	return "items"
}

// BeforeCreate assigns an identity when the caller did not supply one.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = NewID()
	}
	return nil
}

// ItemMaterial is a row of the item→material reference list. Position
// preserves the caller-supplied ordering. There is deliberately no foreign
// key constraint: materials may be deleted while items still reference
// them.
type ItemMaterial struct {
	ItemID     string `gorm:"type:char(24);primaryKey"`
	MaterialID string `gorm:"type:char(24);primaryKey"`
	Position   int    `gorm:"not null;default:0"`
}

// TableName overrides the table name for ItemMaterial
func (ItemMaterial) TableName() string {
	return "item_materials"
}
