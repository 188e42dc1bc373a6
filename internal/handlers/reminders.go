package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/services"
	"github.com/liviin/homecare-api/internal/utils"
)

// ReminderHandler handles maintenance reminder routes
type ReminderHandler struct {
	Reminders *services.ReminderService
}

// Create handles POST /api/reminders
// @Summary Create a reminder
// @Description Create a maintenance reminder for a property, item, and material
// @Tags Reminders
// @Accept json
// @Produce json
// @Param reminder body services.ReminderInput true "Reminder payload"
// @Success 201 {object} models.Reminder
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reminders [post]
func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	var input services.ReminderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "createReminder")
	}

	reminder, err := h.Reminders.Create(input)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "createReminder")
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

// GetAll handles GET /api/reminders
// @Summary List all reminders
// @Description List reminders with referenced entities and due state resolved
// @Tags Reminders
// @Produce json
// @Success 200 {array} services.ReminderDetail
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reminders [get]
func (h *ReminderHandler) GetAll(c *fiber.Ctx) error {
	reminders, err := h.Reminders.List(time.Now().UTC())
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getAllReminders")
	}
	return c.Status(fiber.StatusOK).JSON(reminders)
}

// GetByID handles GET /api/reminders/:id
// @Summary Get one reminder
// @Tags Reminders
// @Produce json
// @Param id path string true "Reminder ID"
// @Success 200 {object} services.ReminderDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reminders/{id} [get]
func (h *ReminderHandler) GetByID(c *fiber.Ctx) error {
	reminder, err := h.Reminders.Get(c.Params("id"), time.Now().UTC())
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getReminderById")
	}
	return c.Status(fiber.StatusOK).JSON(reminder)
}

// Update handles PUT /api/reminders/:id
// @Summary Update a reminder
// @Description Partial update of schedule fields; references are immutable
// @Tags Reminders
// @Accept json
// @Produce json
// @Param id path string true "Reminder ID"
// @Param reminder body services.ReminderPatch true "Fields to update"
// @Success 200 {object} models.Reminder
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reminders/{id} [put]
func (h *ReminderHandler) Update(c *fiber.Ctx) error {
	var patch services.ReminderPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "updateReminder")
	}

	reminder, err := h.Reminders.Update(c.Params("id"), patch)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "updateReminder")
	}
	return c.Status(fiber.StatusOK).JSON(reminder)
}

// Delete handles DELETE /api/reminders/:id
// @Summary Delete a reminder
// @Tags Reminders
// @Produce json
// @Param id path string true "Reminder ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *fiber.Ctx) error {
	if err := h.Reminders.Delete(c.Params("id")); err != nil {
		return utils.DomainErrorResponse(c, err, "deleteReminder")
	}
	return utils.DeletedResponse(c, "Reminder")
}
