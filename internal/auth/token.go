package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/food-order-service/internal/domain"
)

var (
	// ErrTokenInvalid covers bad signatures, wrong algorithms and malformed tokens.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes JWT payload.
type Claims struct {
	Email   string `json:"email"`
	UserID  string `json:"userId"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
	jwt.RegisteredClaims
}

// Identity strips the registered claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{Email: c.Email, UserID: c.UserID, IsAdmin: c.IsAdmin}
}

// Issue signs a token carrying the identity claims.
func (tm *TokenManager) Issue(identity domain.Identity) (domain.AccessToken, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email:   identity.Email,
		UserID:  identity.UserID,
		IsAdmin: identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.AccessToken{}, err
	}
	return domain.AccessToken{Token: tokenString, ExpiresAt: expiresAt}, nil
}

// Parse validates a token and returns its claims.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Join(ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
