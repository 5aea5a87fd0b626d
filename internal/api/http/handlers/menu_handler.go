package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/service"
)

// MenuHandler serves the public menu.
type MenuHandler struct {
	catalog *service.CatalogService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(catalog *service.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// List handles GET /menu.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	items, err := h.catalog.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(items)
}
