package services

import (
	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/types"
	"gorm.io/gorm"
)

// PropertyService manages properties and their owners' existence checks.
type PropertyService struct {
	DB *gorm.DB
}

// NewPropertyService builds a property service over db.
func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

// PropertyInput is the create payload for a property.
type PropertyInput struct {
	Type               string        `json:"type"`
	Rooms              types.FlexInt `json:"rooms"`
	Bathrooms          types.FlexInt `json:"bathrooms"`
	HasLivingRoom      bool          `json:"hasLivingRoom"`
	HasDiningRoom      bool          `json:"hasDiningRoom"`
	HasFamilyRoom      bool          `json:"hasFamilyRoom"`
	HasHallRoom        bool          `json:"hasHallRoom"`
	HasKitchen         bool          `json:"hasKitchen"`
	HasServiceRoom     bool          `json:"hasServiceRoom"`
	HasLaundryRoom     bool          `json:"hasLaundryRoom"`
	HasBalcony         bool          `json:"hasBalcony"`
	HasGarden          bool          `json:"hasGarden"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Price              float64       `json:"price"`
	Location           string        `json:"location"`
	Size               float64       `json:"size"`
	SizeUnit           string        `json:"sizeUnit"`
	Owner              string        `json:"owner"`
	ManagerName        string        `json:"managerName"`
	ManagerPhone       string        `json:"managerPhone"`
	ManagerCountryCode models.JSON   `json:"managerCountryCode"`
}

// PropertyWithCount is a property plus the number of reminders that
// reference it, for the manager dashboard listing.
type PropertyWithCount struct {
	models.Property
	ReminderCount int64 `json:"reminderCount"`
}

// Create validates and persists a property after checking the owner exists.
func (s *PropertyService) Create(input PropertyInput) (*models.Property, error) {
	var violations []types.FieldViolation
	if input.Type == "" {
		violations = append(violations, types.FieldViolation{Field: "type", Message: "is required"})
	}
	if input.Title == "" {
		violations = append(violations, types.FieldViolation{Field: "title", Message: "is required"})
	}
	if input.Rooms.Int() < 0 {
		violations = append(violations, types.FieldViolation{Field: "rooms", Message: "cannot be negative"})
	}
	if input.Bathrooms.Int() < 0 {
		violations = append(violations, types.FieldViolation{Field: "bathrooms", Message: "cannot be negative"})
	}
	if input.SizeUnit != "" && input.SizeUnit != models.SizeUnitMeters && input.SizeUnit != models.SizeUnitFeet {
		violations = append(violations, types.FieldViolation{Field: "sizeUnit", Message: "must be MT² or FT²"})
	}
	if !models.ValidID(input.Owner) {
		violations = append(violations, types.FieldViolation{Field: "owner", Message: "must be a 24-hex-character id"})
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("id = ?", input.Owner).Count(&count).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	if count == 0 {
		return nil, types.NewReferenceNotFound("owner")
	}

	property := models.Property{
		Type:               input.Type,
		Rooms:              input.Rooms.Int(),
		Bathrooms:          input.Bathrooms.Int(),
		HasLivingRoom:      input.HasLivingRoom,
		HasDiningRoom:      input.HasDiningRoom,
		HasFamilyRoom:      input.HasFamilyRoom,
		HasHallRoom:        input.HasHallRoom,
		HasKitchen:         input.HasKitchen,
		HasServiceRoom:     input.HasServiceRoom,
		HasLaundryRoom:     input.HasLaundryRoom,
		HasBalcony:         input.HasBalcony,
		HasGarden:          input.HasGarden,
		Title:              input.Title,
		Description:        input.Description,
		Price:              input.Price,
		Location:           input.Location,
		Size:               input.Size,
		SizeUnit:           input.SizeUnit,
		OwnerID:            input.Owner,
		ManagerName:        input.ManagerName,
		ManagerPhone:       input.ManagerPhone,
		ManagerCountryCode: input.ManagerCountryCode,
	}
	if err := s.DB.Create(&property).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return &property, nil
}

// List returns all properties, each with the count of reminders pointing
// at it.
func (s *PropertyService) List() ([]PropertyWithCount, error) {
	var properties []models.Property
	if err := s.DB.Order("created_at ASC").Find(&properties).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}

	type countRow struct {
		PropertyID string
		N          int64
	}
	var counts []countRow
	err := s.DB.Model(&models.Reminder{}).
		Select("property_id, COUNT(*) AS n").
		Group("property_id").
		Find(&counts).Error
	if err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	byProperty := make(map[string]int64, len(counts))
	for _, row := range counts {
		byProperty[row.PropertyID] = row.N
	}

	out := make([]PropertyWithCount, 0, len(properties))
	for _, p := range properties {
		out = append(out, PropertyWithCount{Property: p, ReminderCount: byProperty[p.ID]})
	}
	return out, nil
}

// Get returns one property by id.
func (s *PropertyService) Get(id string) (*models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "property")
	}
	return &property, nil
}

// Update replaces every field of an existing property (the property form
// always submits the complete record). The owner is immutable after
// creation; the input's owner field is ignored.
func (s *PropertyService) Update(id string, input PropertyInput) (*models.Property, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var violations []types.FieldViolation
	if input.Type == "" {
		violations = append(violations, types.FieldViolation{Field: "type", Message: "is required"})
	}
	if input.Title == "" {
		violations = append(violations, types.FieldViolation{Field: "title", Message: "is required"})
	}
	if input.Rooms.Int() < 0 {
		violations = append(violations, types.FieldViolation{Field: "rooms", Message: "cannot be negative"})
	}
	if input.Bathrooms.Int() < 0 {
		violations = append(violations, types.FieldViolation{Field: "bathrooms", Message: "cannot be negative"})
	}
	if input.SizeUnit != "" && input.SizeUnit != models.SizeUnitMeters && input.SizeUnit != models.SizeUnitFeet {
		violations = append(violations, types.FieldViolation{Field: "sizeUnit", Message: "must be MT² or FT²"})
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	existing.Type = input.Type
	existing.Rooms = input.Rooms.Int()
	existing.Bathrooms = input.Bathrooms.Int()
	existing.HasLivingRoom = input.HasLivingRoom
	existing.HasDiningRoom = input.HasDiningRoom
	existing.HasFamilyRoom = input.HasFamilyRoom
	existing.HasHallRoom = input.HasHallRoom
	existing.HasKitchen = input.HasKitchen
	existing.HasServiceRoom = input.HasServiceRoom
	existing.HasLaundryRoom = input.HasLaundryRoom
	existing.HasBalcony = input.HasBalcony
	existing.HasGarden = input.HasGarden
	existing.Title = input.Title
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Location = input.Location
	existing.Size = input.Size
	existing.SizeUnit = input.SizeUnit
	existing.ManagerName = input.ManagerName
	existing.ManagerPhone = input.ManagerPhone
	existing.ManagerCountryCode = input.ManagerCountryCode

	if err := s.DB.Save(existing).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return existing, nil
}

// Delete removes a property. Reminders referencing it are deliberately
// left alone; their reads degrade gracefully.
func (s *PropertyService) Delete(id string) error {
	result := s.DB.Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return types.NewStoreUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFound("property")
	}
	return nil
}
