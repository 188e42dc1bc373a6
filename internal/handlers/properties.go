package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/services"
	"github.com/liviin/homecare-api/internal/utils"
)

// PropertyHandler handles property routes
type PropertyHandler struct {
	Properties *services.PropertyService
}

// Create handles POST /api/properties
// @Summary Create a property
// @Tags Properties
// @Accept json
// @Produce json
// @Param property body services.PropertyInput true "Property payload"
// @Success 201 {object} models.Property
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties [post]
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var input services.PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "createProperty")
	}

	property, err := h.Properties.Create(input)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "createProperty")
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// GetAll handles GET /api/properties
// @Summary List all properties
// @Description List properties with their reminder counts
// @Tags Properties
// @Produce json
// @Success 200 {array} services.PropertyWithCount
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties [get]
func (h *PropertyHandler) GetAll(c *fiber.Ctx) error {
	properties, err := h.Properties.List()
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getAllProperties")
	}
	return c.Status(fiber.StatusOK).JSON(properties)
}

// GetByID handles GET /api/properties/:id
// @Summary Get one property
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	property, err := h.Properties.Get(c.Params("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getPropertyById")
	}
	return c.Status(fiber.StatusOK).JSON(property)
}

// Update handles PUT /api/properties/:id
// @Summary Update a property
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param property body services.PropertyInput true "Property payload"
// @Success 200 {object} models.Property
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id} [put]
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	var input services.PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "updateProperty")
	}

	property, err := h.Properties.Update(c.Params("id"), input)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "updateProperty")
	}
	return c.Status(fiber.StatusOK).JSON(property)
}

// Delete handles DELETE /api/properties/:id
// @Summary Delete a property
// @Description Remove the property; its reminders stay and degrade gracefully
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	if err := h.Properties.Delete(c.Params("id")); err != nil {
		return utils.DomainErrorResponse(c, err, "deleteProperty")
	}
	return utils.DeletedResponse(c, "Property")
}
