package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/catalog"
	"github.com/liviin/homecare-api/internal/handlers"
	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/notify"
	"github.com/liviin/homecare-api/internal/services"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Material{},
		&models.Item{},
		&models.ItemMaterial{},
		&models.Reminder{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupApp mounts the catalog and reminder routes without the auth
// middleware.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := setupTestDB(t)
	defs, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Failed to load category definitions: %v", err)
	}

	catalogSvc := services.NewCatalogService(db, defs)
	itemHandler := &handlers.ItemHandler{Catalog: catalogSvc}
	materialHandler := &handlers.MaterialHandler{Catalog: catalogSvc}
	reminderHandler := &handlers.ReminderHandler{Reminders: services.NewReminderService(db)}

	app := fiber.New()
	app.Post("/api/items", itemHandler.Create)
	app.Get("/api/items/paginated", itemHandler.GetPaginated)
	app.Get("/api/items/groupByCategory", itemHandler.GetCategoriesWithItems)
	app.Get("/api/items/category/:category", itemHandler.GetByCategory)
	app.Get("/api/items/:id", itemHandler.GetByID)
	app.Post("/api/materials", materialHandler.Create)
	app.Post("/api/reminders", reminderHandler.Create)
	app.Get("/api/reminders/:id", reminderHandler.GetByID)

	return app, db
}

// TestGetCategoriesWithItems verifies the tree endpoint returns every
// configured group.
func TestGetCategoriesWithItems(t *testing.T) {
	app, db := setupApp(t)

	item := models.Item{
		Name:        models.Bilingual{EN: "clean oven", ES: "limpiar horno"},
		Category:    models.CategoryCleaning,
		SubCategory: "KITCHEN",
		Image:       "oven.png",
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to seed item: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/items/groupByCategory", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var groups []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(groups) != 10 {
		t.Fatalf("Expected 10 groups, got %d", len(groups))
	}

	found := false
	for _, g := range groups {
		if g["id"] == "kitchen" {
			items := g["items"].([]interface{})
			if len(items) != 1 {
				t.Errorf("Expected 1 kitchen item, got %d", len(items))
			}
			entry := items[0].(map[string]interface{})
			// Bare filename resolves against the request origin.
			if entry["image"] != "http://example.com/assets/oven.png" {
				t.Errorf("Expected resolved image URL, got %v", entry["image"])
			}
			found = true
		}
	}
	if !found {
		t.Error("Expected a kitchen group in the response")
	}
}

// TestGetItemsByCategoryInvalid verifies unknown categories produce 400.
func TestGetItemsByCategoryInvalid(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/api/items/category/GARDENING", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["ok"] != false {
		t.Errorf("Expected ok=false, got %v", body["ok"])
	}
}

// TestGetPaginatedItemsDefaults verifies missing query values fall back to
// page 1, limit 10.
func TestGetPaginatedItemsDefaults(t *testing.T) {
	app, db := setupApp(t)

	for i := 0; i < 12; i++ {
		item := models.Item{
			Name:     models.Bilingual{EN: "task", ES: "tarea"},
			Category: models.CategoryCleaning,
			Image:    "task.png",
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("Failed to seed item: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/api/items/paginated?page=abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var page map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if page["page"].(float64) != 1 {
		t.Errorf("Expected page 1, got %v", page["page"])
	}
	if len(page["items"].([]interface{})) != 10 {
		t.Errorf("Expected 10 items, got %d", len(page["items"].([]interface{})))
	}
	if page["totalPages"].(float64) != 2 {
		t.Errorf("Expected 2 total pages, got %v", page["totalPages"])
	}
}

// TestCreateItemBadPayload verifies a 400 with the violations listed.
func TestCreateItemBadPayload(t *testing.T) {
	app, _ := setupApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"category": "GARDENING",
	})
	req := httptest.NewRequest("POST", "/api/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	var envelope map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	violations, ok := envelope["violations"].([]interface{})
	if !ok || len(violations) == 0 {
		t.Errorf("Expected violations in response, got %v", envelope)
	}
}

// TestCreateItemSingleMaterialObject verifies the materials field accepts a
// single value where clients send one instead of an array.
func TestCreateItemSingleMaterial(t *testing.T) {
	app, db := setupApp(t)

	material := models.Material{Name: models.Bilingual{EN: "rag", ES: "trapo"}}
	if err := db.Create(&material).Error; err != nil {
		t.Fatalf("Failed to seed material: %v", err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"name":      map[string]string{"en": "dust", "es": "quitar polvo"},
		"category":  models.CategoryCleaning,
		"image":     "dust.png",
		"materials": material.ID,
	})
	req := httptest.NewRequest("POST", "/api/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var created map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(created["materials"].([]interface{})) != 1 {
		t.Errorf("Expected 1 material ref, got %v", created["materials"])
	}
}

// TestCreateReminderMissingReference verifies a 422 when a referenced
// entity does not exist.
func TestCreateReminderMissingReference(t *testing.T) {
	app, _ := setupApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"property":          models.NewID(),
		"item":              models.NewID(),
		"material":          models.NewID(),
		"category":          models.CategoryCleaning,
		"itemQuantity":      1,
		"selectedFrequency": 30,
		"startDate":         "2024-01-01",
	})
	req := httptest.NewRequest("POST", "/api/reminders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Errorf("Expected status 422, got %d", resp.StatusCode)
	}
}

// TestGetReminderNotFound verifies a 404 for an unknown id.
func TestGetReminderNotFound(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/api/reminders/"+models.NewID(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

// fakeSender records the last send and returns a scripted result.
type fakeSender struct {
	lastChannel notify.Channel
	lastTo      string
	lastBody    string
	sid         string
	err         error
}

func (f *fakeSender) Send(ctx context.Context, channel notify.Channel, to, body string) (string, error) {
	f.lastChannel = channel
	f.lastTo = to
	f.lastBody = body
	if f.err != nil {
		return "", f.err
	}
	return f.sid, nil
}

func messageApp(sender notify.Sender) *fiber.App {
	handler := &handlers.MessageHandler{Sender: sender}
	app := fiber.New()
	app.Post("/api/messages/sms", handler.SendSMS)
	app.Post("/api/messages/whatsapp", handler.SendWhatsApp)
	return app
}

// TestSendSMS verifies the happy path reports the provider message id.
func TestSendSMS(t *testing.T) {
	sender := &fakeSender{sid: "SM123"}
	app := messageApp(sender)

	body, _ := json.Marshal(map[string]string{"to": "+15551234567", "message": "filter due"})
	req := httptest.NewRequest("POST", "/api/messages/sms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["success"] != true || result["messageId"] != "SM123" {
		t.Errorf("Expected success with message id, got %v", result)
	}
	if sender.lastChannel != notify.ChannelSMS {
		t.Errorf("Expected SMS channel, got %s", sender.lastChannel)
	}
}

// TestSendWhatsAppMissingRecipient verifies input validation happens before
// the provider is called.
func TestSendWhatsAppMissingRecipient(t *testing.T) {
	sender := &fakeSender{sid: "SM123"}
	app := messageApp(sender)

	body, _ := json.Marshal(map[string]string{"message": "filter due"})
	req := httptest.NewRequest("POST", "/api/messages/whatsapp", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
	if sender.lastTo != "" {
		t.Error("Expected the provider not to be called")
	}
}

// TestSendSMSTransportError verifies a retryable provider failure maps to
// 502 while a configuration failure maps to 500.
func TestSendSMSTransportError(t *testing.T) {
	transport := &notify.DeliveryError{Kind: notify.DeliveryTransport, Message: "provider returned 503"}
	app := messageApp(&fakeSender{err: transport})

	body, _ := json.Marshal(map[string]string{"to": "+15551234567", "message": "x"})
	req := httptest.NewRequest("POST", "/api/messages/sms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 502 {
		t.Errorf("Expected status 502, got %d", resp.StatusCode)
	}

	config := &notify.DeliveryError{Kind: notify.DeliveryConfig, Message: "missing credentials"}
	app = messageApp(&fakeSender{err: config})
	req = httptest.NewRequest("POST", "/api/messages/sms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
}
