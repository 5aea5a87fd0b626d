package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/domain"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware validates bearer tokens and stores the caller identity. It does
// not reload the user: claims are trusted for the token's lifetime.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewForbidden("token expired")
		}
		return apperrors.NewForbidden("token is invalid")
	}

	c.Locals(identityKey, claims.Identity())
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
