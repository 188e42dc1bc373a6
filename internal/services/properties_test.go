package services_test

import (
	"testing"
	"time"

	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/services"
	"github.com/liviin/homecare-api/internal/types"
	"gorm.io/gorm"
)

func seedOwner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		FirstName: "Ana",
		LastName:  "Diaz",
		Email:     "ana@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed owner: %v", err)
	}
	return &user
}

func propertyInput(ownerID string) services.PropertyInput {
	return services.PropertyInput{
		Type:     "apartment",
		Title:    "Calle Mayor 12",
		Rooms:    types.FlexInt(3),
		SizeUnit: models.SizeUnitMeters,
		Owner:    ownerID,
	}
}

// TestCreatePropertyValidation verifies the payload rules are reported
// together.
func TestCreatePropertyValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPropertyService(db)

	_, err := svc.Create(services.PropertyInput{SizeUnit: "ACRES"})
	if !types.IsKind(err, types.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	derr := err.(*types.Error)
	fields := make(map[string]bool)
	for _, v := range derr.Violations {
		fields[v.Field] = true
	}
	for _, want := range []string{"type", "title", "sizeUnit", "owner"} {
		if !fields[want] {
			t.Errorf("Expected violation on %s, got %+v", want, derr.Violations)
		}
	}
}

// TestCreatePropertyUnknownOwner verifies the owner must exist.
func TestCreatePropertyUnknownOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPropertyService(db)

	_, err := svc.Create(propertyInput(models.NewID()))
	if !types.IsKind(err, types.KindReferenceNotFound) {
		t.Errorf("Expected reference not found, got %v", err)
	}
}

// TestListPropertiesWithReminderCounts verifies the reminder counts merge
// into the listing.
func TestListPropertiesWithReminderCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPropertyService(db)

	owner := seedOwner(t, db)
	first, err := svc.Create(propertyInput(owner.ID))
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}
	second, err := svc.Create(propertyInput(owner.ID))
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}

	for i := 0; i < 2; i++ {
		reminder := models.Reminder{
			PropertyID:        first.ID,
			ItemID:            models.NewID(),
			MaterialID:        models.NewID(),
			Category:          models.CategoryCleaning,
			ItemQuantity:      1,
			SelectedFrequency: 7,
			StartDate:         time.Now(),
		}
		if err := db.Create(&reminder).Error; err != nil {
			t.Fatalf("Failed to seed reminder: %v", err)
		}
	}

	listed, err := svc.List()
	if err != nil {
		t.Fatalf("Failed to list properties: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected 2 properties, got %d", len(listed))
	}
	counts := make(map[string]int64, len(listed))
	for _, p := range listed {
		counts[p.ID] = p.ReminderCount
	}
	if counts[first.ID] != 2 {
		t.Errorf("Expected 2 reminders on first property, got %d", counts[first.ID])
	}
	if counts[second.ID] != 0 {
		t.Errorf("Expected 0 reminders on second property, got %d", counts[second.ID])
	}
}

// TestDeletePropertyKeepsReminders verifies no cascade: reminders survive
// the property and degrade on read.
func TestDeletePropertyKeepsReminders(t *testing.T) {
	db := setupTestDB(t)
	properties := services.NewPropertyService(db)
	reminders := services.NewReminderService(db)

	input := reminderFixture(t, db)
	created, err := reminders.Create(input)
	if err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}

	if err := properties.Delete(input.Property); err != nil {
		t.Fatalf("Failed to delete property: %v", err)
	}

	detail, err := reminders.Get(created.ID, time.Now())
	if err != nil {
		t.Fatalf("Expected reminder read to survive property delete, got %v", err)
	}
	if detail.PropertyDetail != nil {
		t.Errorf("Expected nil property detail, got %+v", detail.PropertyDetail)
	}
}

// TestUpdateProperty verifies the full-payload update semantics.
func TestUpdateProperty(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPropertyService(db)

	owner := seedOwner(t, db)
	created, err := svc.Create(propertyInput(owner.ID))
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}

	input := propertyInput(owner.ID)
	input.Title = "Calle Menor 9"
	updated, err := svc.Update(created.ID, input)
	if err != nil {
		t.Fatalf("Failed to update property: %v", err)
	}
	if updated.Title != "Calle Menor 9" {
		t.Errorf("Expected updated title, got %s", updated.Title)
	}
	if updated.ID != created.ID {
		t.Errorf("Expected identity stable across update, got %s", updated.ID)
	}
}

// TestUpdatePropertyOwnerImmutable verifies update never re-points the
// owner even when the payload carries a different one.
func TestUpdatePropertyOwnerImmutable(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPropertyService(db)

	owner := seedOwner(t, db)
	created, err := svc.Create(propertyInput(owner.ID))
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}

	input := propertyInput(models.NewID())
	updated, err := svc.Update(created.ID, input)
	if err != nil {
		t.Fatalf("Failed to update property: %v", err)
	}
	if updated.OwnerID != owner.ID {
		t.Errorf("Expected owner unchanged, got %s", updated.OwnerID)
	}
}

// TestUpdatePropertyRejectsNegativeRooms verifies the room counts are
// re-validated on update the same way create validates them.
func TestUpdatePropertyRejectsNegativeRooms(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPropertyService(db)

	owner := seedOwner(t, db)
	created, err := svc.Create(propertyInput(owner.ID))
	if err != nil {
		t.Fatalf("Failed to create property: %v", err)
	}

	input := propertyInput(owner.ID)
	input.Rooms = types.FlexInt(-1)
	input.Bathrooms = types.FlexInt(-2)
	_, err = svc.Update(created.ID, input)
	if !types.IsKind(err, types.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	derr := err.(*types.Error)
	fields := make(map[string]bool)
	for _, v := range derr.Violations {
		fields[v.Field] = true
	}
	if !fields["rooms"] || !fields["bathrooms"] {
		t.Errorf("Expected rooms and bathrooms violations, got %+v", derr.Violations)
	}

	current, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Failed to reload property: %v", err)
	}
	if current.Rooms != 3 {
		t.Errorf("Expected rejected update to leave rooms at 3, got %d", current.Rooms)
	}
}
