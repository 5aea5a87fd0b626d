package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/api/dto"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/service"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

const invalidCartItem = "Invalid item data or quantity"

// CartHandler serves the embedded strategy, where orders are cart lines on the
// user document.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Register mounts the cart routes.
func (h *CartHandler) Register(router fiber.Router, authenticate fiber.Handler) {
	router.Post("/orders", authenticate, h.Add)
	router.Get("/orders", authenticate, h.ListAll)
	router.Get("/cart", authenticate, h.List)
	router.Delete("/cart/:itemId", authenticate, h.Remove)
}

// Add handles POST /orders.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	addition, err := decodeCartAddition(c)
	if err != nil {
		return apperrors.NewValidationError(invalidCartItem, nil)
	}

	_, line, err := h.carts.AddToCart(c.UserContext(), identity.UserID, service.CartItemInput{
		MenuItemID: addition.MenuItemID,
		Item:       addition.Item,
		Quantity:   addition.Quantity,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart successfully!",
		"line":    line,
	})
}

// List handles GET /cart.
func (h *CartHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}
	lines, err := h.carts.ListCart(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(lines)
}

// Remove handles DELETE /cart/:itemId.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}
	if _, err := h.carts.RemoveFromCart(c.UserContext(), identity.UserID, c.Params("itemId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart successfully"})
}

// ListAll handles GET /orders, the admin report of every user's cart.
func (h *CartHandler) ListAll(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}
	report, err := h.carts.ListAllOrders(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

func decodeCartAddition(c *fiber.Ctx) (dto.CartAddition, error) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) || strings.HasPrefix(contentType, fiber.MIMEApplicationForm) {
		fields := dto.CartFormFields{
			OrderData: c.FormValue("orderData"),
			ID:        c.FormValue("id"),
			Title:     c.FormValue("title"),
			Price:     c.FormValue("price"),
			Image:     c.FormValue("image"),
			Type:      c.FormValue("type"),
			Quantity:  c.FormValue("quantity"),
		}
		if file, err := c.FormFile("image"); err == nil && file != nil {
			fields.ImageFile = file.Filename
		}
		return fields.Decode()
	}

	var req dto.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.CartAddition{}, errors.Join(dto.ErrInvalidOrderData, err)
	}
	return req.Decode()
}
