package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/services"
	"github.com/liviin/homecare-api/internal/utils"
)

// MaterialHandler handles material routes
type MaterialHandler struct {
	Catalog *services.CatalogService
}

// Create handles POST /api/materials
// @Summary Create a material
// @Tags Materials
// @Accept json
// @Produce json
// @Param material body services.MaterialInput true "Material payload"
// @Success 201 {object} models.Material
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var input services.MaterialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "createMaterial")
	}

	material, err := h.Catalog.CreateMaterial(input)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "createMaterial")
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// GetAll handles GET /api/materials
// @Summary List all materials
// @Tags Materials
// @Produce json
// @Success 200 {array} models.Material
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /materials [get]
func (h *MaterialHandler) GetAll(c *fiber.Ctx) error {
	materials, err := h.Catalog.GetAllMaterials()
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getAllMaterials")
	}
	return c.Status(fiber.StatusOK).JSON(materials)
}

// GetByID handles GET /api/materials/:id
// @Summary Get one material
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} models.Material
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.Catalog.GetMaterial(c.Params("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getMaterialById")
	}
	return c.Status(fiber.StatusOK).JSON(material)
}

// Update handles PUT /api/materials/:id
// @Summary Update a material
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param material body services.MaterialPatch true "Fields to update"
// @Success 200 {object} models.Material
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var patch services.MaterialPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "updateMaterial")
	}

	material, err := h.Catalog.UpdateMaterial(c.Params("id"), patch)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "updateMaterial")
	}
	return c.Status(fiber.StatusOK).JSON(material)
}

// Delete handles DELETE /api/materials/:id
// @Summary Delete a material
// @Description Remove the material; item references to it become unavailable
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.Catalog.DeleteMaterial(c.Params("id")); err != nil {
		return utils.DomainErrorResponse(c, err, "deleteMaterial")
	}
	return utils.DeletedResponse(c, "Material")
}
