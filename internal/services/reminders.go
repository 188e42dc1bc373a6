package services

import (
	"time"

	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/types"
	"gorm.io/gorm"
)

// ReminderService validates and persists reminders and derives their due
// state on read. Concurrent updates to the same reminder are
// last-writer-wins: the service adds no version field on purpose.
type ReminderService struct {
	DB *gorm.DB
}

// NewReminderService builds a reminder service over db.
func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{DB: db}
}

// ReminderInput is the create payload for a reminder.
type ReminderInput struct {
	Property          string         `json:"property"`
	Item              string         `json:"item"`
	Material          string         `json:"material"`
	Category          string         `json:"category"`
	ItemQuantity      types.FlexInt  `json:"itemQuantity"`
	SelectedFrequency types.FlexInt  `json:"selectedFrequency"`
	LastMaintenance   types.FlexDate `json:"lastMaintenance"`
	StartDate         types.FlexDate `json:"startDate"`
	Description       string         `json:"description"`
}

// ReminderPatch is the partial update payload. The three reference fields
// are immutable after creation: re-pointing a reminder means deleting and
// recreating it. The date fields are FlexDate by value so that an explicit
// JSON null (clear lastMaintenance, re-anchoring on startDate) is seen as
// present; a *FlexDate would stay nil on null and look like an omission.
type ReminderPatch struct {
	Property          *string        `json:"property"`
	Item              *string        `json:"item"`
	Material          *string        `json:"material"`
	Category          *string        `json:"category"`
	ItemQuantity      *types.FlexInt `json:"itemQuantity"`
	SelectedFrequency *types.FlexInt `json:"selectedFrequency"`
	LastMaintenance   types.FlexDate `json:"lastMaintenance"`
	StartDate         types.FlexDate `json:"startDate"`
	Description       *string        `json:"description"`
}

// ReminderDetail is a reminder with its references resolved and due state
// computed. A reference whose entity has since been deleted leaves the
// detail pointer nil; the read still succeeds.
type ReminderDetail struct {
	models.Reminder
	PropertyDetail *models.Property `json:"propertyDetail,omitempty"`
	ItemDetail     *models.Item     `json:"itemDetail,omitempty"`
	MaterialDetail *models.Material `json:"materialDetail,omitempty"`
	Due            DueState         `json:"dueState"`
}

// Create validates the full payload, reporting every violation at once,
// then checks that all three referenced entities exist before writing.
// Nothing is persisted on any failure.
func (s *ReminderService) Create(input ReminderInput) (*models.Reminder, error) {
	var violations []types.FieldViolation
	if !models.ValidID(input.Property) {
		violations = append(violations, types.FieldViolation{Field: "property", Message: "must be a 24-hex-character id"})
	}
	if !models.ValidID(input.Item) {
		violations = append(violations, types.FieldViolation{Field: "item", Message: "must be a 24-hex-character id"})
	}
	if !models.ValidID(input.Material) {
		violations = append(violations, types.FieldViolation{Field: "material", Message: "must be a 24-hex-character id"})
	}
	if !models.ValidCategory(input.Category) {
		violations = append(violations, types.FieldViolation{Field: "category", Message: "must be CLEANING or MAINTENANCE"})
	}
	if input.ItemQuantity.Int() < 1 {
		violations = append(violations, types.FieldViolation{Field: "itemQuantity", Message: "must be at least 1"})
	}
	if input.SelectedFrequency.Int() < 1 {
		violations = append(violations, types.FieldViolation{Field: "selectedFrequency", Message: "must be at least 1 day"})
	}
	if !input.StartDate.Valid {
		violations = append(violations, types.FieldViolation{Field: "startDate", Message: "is required"})
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	if err := s.referencesExist(input.Property, input.Item, input.Material); err != nil {
		return nil, err
	}

	reminder := models.Reminder{
		PropertyID:        input.Property,
		ItemID:            input.Item,
		MaterialID:        input.Material,
		Category:          input.Category,
		ItemQuantity:      input.ItemQuantity.Int(),
		SelectedFrequency: input.SelectedFrequency.Int(),
		StartDate:         input.StartDate.Time,
		Description:       input.Description,
	}
	if input.LastMaintenance.Valid {
		t := input.LastMaintenance.Time
		reminder.LastMaintenance = &t
	}

	if err := s.DB.Create(&reminder).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return &reminder, nil
}

// List returns all reminders with references resolved and due state
// computed at asOf.
func (s *ReminderService) List(asOf time.Time) ([]ReminderDetail, error) {
	var reminders []models.Reminder
	if err := s.DB.Order("created_at ASC").Find(&reminders).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return s.details(reminders, asOf)
}

// Get returns one reminder with references resolved and due state computed
// at asOf.
func (s *ReminderService) Get(id string, asOf time.Time) (*ReminderDetail, error) {
	var reminder models.Reminder
	if err := s.DB.First(&reminder, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "reminder")
	}

	details, err := s.details([]models.Reminder{reminder}, asOf)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Update applies a partial patch. Present fields are re-validated;
// attempts to change a reference field are rejected as violations.
func (s *ReminderService) Update(id string, patch ReminderPatch) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.DB.First(&reminder, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "reminder")
	}

	var violations []types.FieldViolation
	if patch.Property != nil && *patch.Property != reminder.PropertyID {
		violations = append(violations, types.FieldViolation{Field: "property", Message: "is immutable after creation"})
	}
	if patch.Item != nil && *patch.Item != reminder.ItemID {
		violations = append(violations, types.FieldViolation{Field: "item", Message: "is immutable after creation"})
	}
	if patch.Material != nil && *patch.Material != reminder.MaterialID {
		violations = append(violations, types.FieldViolation{Field: "material", Message: "is immutable after creation"})
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		violations = append(violations, types.FieldViolation{Field: "category", Message: "must be CLEANING or MAINTENANCE"})
	}
	if patch.ItemQuantity != nil && patch.ItemQuantity.Int() < 1 {
		violations = append(violations, types.FieldViolation{Field: "itemQuantity", Message: "must be at least 1"})
	}
	if patch.SelectedFrequency != nil && patch.SelectedFrequency.Int() < 1 {
		violations = append(violations, types.FieldViolation{Field: "selectedFrequency", Message: "must be at least 1 day"})
	}
	if patch.StartDate.Set && !patch.StartDate.Valid {
		violations = append(violations, types.FieldViolation{Field: "startDate", Message: "must be a valid date"})
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	if patch.Category != nil {
		reminder.Category = *patch.Category
	}
	if patch.ItemQuantity != nil {
		reminder.ItemQuantity = patch.ItemQuantity.Int()
	}
	if patch.SelectedFrequency != nil {
		reminder.SelectedFrequency = patch.SelectedFrequency.Int()
	}
	if patch.LastMaintenance.Set {
		if patch.LastMaintenance.Valid {
			t := patch.LastMaintenance.Time
			reminder.LastMaintenance = &t
		} else {
			reminder.LastMaintenance = nil
		}
	}
	if patch.StartDate.Set {
		reminder.StartDate = patch.StartDate.Time
	}
	if patch.Description != nil {
		reminder.Description = *patch.Description
	}

	if err := s.DB.Save(&reminder).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return &reminder, nil
}

// Delete removes one reminder. A missing target reports NotFound,
// distinguishable from a successful delete.
func (s *ReminderService) Delete(id string) error {
	result := s.DB.Delete(&models.Reminder{}, "id = ?", id)
	if result.Error != nil {
		return types.NewStoreUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFound("reminder")
	}
	return nil
}

// referencesExist verifies the three reference targets, reporting the
// first missing one by field name.
func (s *ReminderService) referencesExist(propertyID, itemID, materialID string) error {
	checks := []struct {
		field string
		model interface{}
		id    string
	}{
		{"property", &models.Property{}, propertyID},
		{"item", &models.Item{}, itemID},
		{"material", &models.Material{}, materialID},
	}
	for _, check := range checks {
		var count int64
		if err := s.DB.Model(check.model).Where("id = ?", check.id).Count(&count).Error; err != nil {
			return types.NewStoreUnavailable(err)
		}
		if count == 0 {
			return types.NewReferenceNotFound(check.field)
		}
	}
	return nil
}

// details resolves references in bulk and computes due state.
func (s *ReminderService) details(reminders []models.Reminder, asOf time.Time) ([]ReminderDetail, error) {
	propertyIDs := make([]string, 0, len(reminders))
	itemIDs := make([]string, 0, len(reminders))
	materialIDs := make([]string, 0, len(reminders))
	for _, r := range reminders {
		propertyIDs = append(propertyIDs, r.PropertyID)
		itemIDs = append(itemIDs, r.ItemID)
		materialIDs = append(materialIDs, r.MaterialID)
	}

	properties := make(map[string]*models.Property)
	items := make(map[string]*models.Item)
	materials := make(map[string]*models.Material)
	if len(reminders) > 0 {
		var props []models.Property
		if err := s.DB.Where("id IN ?", propertyIDs).Find(&props).Error; err != nil {
			return nil, types.NewStoreUnavailable(err)
		}
		for i := range props {
			properties[props[i].ID] = &props[i]
		}

		var its []models.Item
		if err := s.DB.Where("id IN ?", itemIDs).Find(&its).Error; err != nil {
			return nil, types.NewStoreUnavailable(err)
		}
		for i := range its {
			items[its[i].ID] = &its[i]
		}

		var mats []models.Material
		if err := s.DB.Where("id IN ?", materialIDs).Find(&mats).Error; err != nil {
			return nil, types.NewStoreUnavailable(err)
		}
		for i := range mats {
			materials[mats[i].ID] = &mats[i]
		}
	}

	details := make([]ReminderDetail, 0, len(reminders))
	for _, r := range reminders {
		details = append(details, ReminderDetail{
			Reminder:       r,
			PropertyDetail: properties[r.PropertyID],
			ItemDetail:     items[r.ItemID],
			MaterialDetail: materials[r.MaterialID],
			Due:            ComputeDueState(&r, asOf),
		})
	}
	return details, nil
}
