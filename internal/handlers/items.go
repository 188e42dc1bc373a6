package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/services"
	"github.com/liviin/homecare-api/internal/utils"
)

// ItemHandler handles catalog item routes
type ItemHandler struct {
	Catalog *services.CatalogService
}

// Create handles POST /api/items
// @Summary Create a catalog item
// @Description Create a new catalog item with optional material references
// @Tags Items
// @Accept json
// @Produce json
// @Param item body services.ItemInput true "Item payload"
// @Success 201 {object} services.ItemDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var input services.ItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "createItem")
	}

	item, err := h.Catalog.CreateItem(input)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "createItem")
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetAll handles GET /api/items
// @Summary List all catalog items
// @Tags Items
// @Produce json
// @Success 200 {array} services.ItemDetail
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items [get]
func (h *ItemHandler) GetAll(c *fiber.Ctx) error {
	items, err := h.Catalog.GetAllItems()
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getAllItems")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// GetPaginated handles GET /api/items/paginated?page=&limit=
// @Summary List catalog items paginated
// @Tags Items
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param limit query int false "Page size, defaults to 10"
// @Success 200 {object} services.PaginatedItems
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items/paginated [get]
func (h *ItemHandler) GetPaginated(c *fiber.Ctx) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	result, err := h.Catalog.GetPaginatedItems(page, limit)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getPaginatedItems")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetByCategory handles GET /api/items/category/:category
// @Summary List items of one category
// @Tags Items
// @Produce json
// @Param category path string true "Category, CLEANING or MAINTENANCE"
// @Success 200 {array} services.ItemDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items/category/{category} [get]
func (h *ItemHandler) GetByCategory(c *fiber.Ctx) error {
	items, err := h.Catalog.ItemsByCategory(c.Params("category"))
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getItemsByCategory")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// GetCategoriesWithItems handles GET /api/items/groupByCategory
// @Summary Get the catalog tree
// @Description Group all items under the configured category definitions
// @Tags Items
// @Produce json
// @Success 200 {array} services.CatalogGroup
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items/groupByCategory [get]
func (h *ItemHandler) GetCategoriesWithItems(c *fiber.Ctx) error {
	groups, err := h.Catalog.BuildCatalogTree(baseURL(c))
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getCategoriesWithItems")
	}
	return c.Status(fiber.StatusOK).JSON(groups)
}

// GetByID handles GET /api/items/:id
// @Summary Get one catalog item
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} services.ItemDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.Catalog.GetItem(c.Params("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err, "getItemById")
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

// Update handles PUT /api/items/:id
// @Summary Update a catalog item
// @Description Partial update; only fields present in the payload change
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body services.ItemPatch true "Fields to update"
// @Success 200 {object} services.ItemDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var patch services.ItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "updateItem")
	}

	item, err := h.Catalog.UpdateItem(c.Params("id"), patch)
	if err != nil {
		return utils.DomainErrorResponse(c, err, "updateItem")
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

// Delete handles DELETE /api/items/:id
// @Summary Delete a catalog item
// @Description Remove the item and its material references; materials survive
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.Catalog.DeleteItem(c.Params("id")); err != nil {
		return utils.DomainErrorResponse(c, err, "deleteItem")
	}
	return utils.DeletedResponse(c, "Item")
}
