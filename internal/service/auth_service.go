package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/repository"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

// RegisterInput carries a validated registration payload.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	Password     string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users           repository.UserRepository
	hasher          *auth.PasswordHasher
	tokenMgr        *auth.TokenManager
	adminEmail      string
	adminPassword   string
	embedAdminClaim bool
	dispatcher      events.Dispatcher
	logger          *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service. The admin flag is only embedded in tokens
// when the embedded order strategy, which relies on it, is active.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:           deps.UserRepo,
		hasher:          auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		tokenMgr:        auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		adminEmail:      cfg.Auth.AdminEmail,
		adminPassword:   cfg.Auth.AdminPassword,
		embedAdminClaim: cfg.Orders.Strategy == domain.OrderStrategyEmbedded,
		dispatcher:      deps.Dispatcher,
		logger:          logger,
	}
}

// Register creates a user and issues its first token. Submitting the configured
// admin email and password together grants the admin flag.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, domain.AccessToken, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.AccessToken{}, apperrors.NewConflict("Email already in use.", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.AccessToken{}, apperrors.NewValidationError("Validation failed", map[string]any{
			"password": "The password field may not be longer than 72 bytes.",
		})
	}
	if err != nil {
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		PasswordHash: hash,
		IsAdmin:      s.isAdminCredential(in.Email, in.Password),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.AccessToken{}, apperrors.NewConflict("Email already in use.", nil)
		}
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}

	token, err := s.tokenMgr.Issue(s.IdentityFor(user))
	if err != nil {
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID.Hex(), events.UserRegisteredPayload{
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}))
	return user, token, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.AccessToken, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.AccessToken{}, apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}

	ok, err := s.hasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}
	if !ok {
		return nil, domain.AccessToken{}, apperrors.NewUnauthorized("Invalid email or password")
	}

	token, err := s.tokenMgr.Issue(s.IdentityFor(user))
	if err != nil {
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// IdentityFor builds the token claims for a stored user.
func (s *AuthService) IdentityFor(user *domain.User) domain.Identity {
	identity := domain.Identity{Email: user.Email, UserID: user.ID.Hex()}
	if s.embedAdminClaim {
		isAdmin := user.IsAdmin
		identity.IsAdmin = &isAdmin
	}
	return identity
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) isAdminCredential(email, password string) bool {
	return s.adminEmail != "" && email == s.adminEmail && password == s.adminPassword
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
