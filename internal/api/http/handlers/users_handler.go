package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/api/dto"
	"github.com/spec-kit/food-order-service/internal/service"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

// UsersHandler exposes registration and login.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	})
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderAuthorization, "Bearer "+token.Token)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "User registered successfully!",
		"user":        dto.NewUserResponse(user),
		"accessToken": token.Token,
	})
}

// Login handles POST /login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":     "Login successful!",
		"accessToken": token.Token,
		"user":        dto.NewLoginUser(h.auth.IdentityFor(user)),
	})
}
