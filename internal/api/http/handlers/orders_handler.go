package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/api/dto"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/service"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

// OrdersHandler serves the referenced strategy, where each order is its own document.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Register mounts the order routes.
func (h *OrdersHandler) Register(router fiber.Router, authenticate fiber.Handler) {
	router.Post("/orders", authenticate, h.Place)
	router.Get("/orders", authenticate, h.List)
}

// Place handles POST /orders.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Items data is invalid or missing", nil)
	}

	inputs := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, service.OrderItemInput{MenuItemID: item.ID, Item: item.OrderItem()})
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), identity.UserID, inputs)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully!",
		"order":   order,
	})
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}
	orders, err := h.orders.ListOrders(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}
