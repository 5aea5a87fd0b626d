package dto

import (
	"time"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Password     string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a stored user.
type UserResponse struct {
	ID           string    `json:"_id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginUser echoes the token claims back to the client.
type LoginUser struct {
	Email   string `json:"email"`
	UserID  string `json:"userId"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID.Hex(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

// NewLoginUser maps token claims to the login response shape.
func NewLoginUser(identity domain.Identity) LoginUser {
	return LoginUser{Email: identity.Email, UserID: identity.UserID, IsAdmin: identity.IsAdmin}
}
