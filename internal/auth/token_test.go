package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/food-order-service/internal/domain"
)

func boolPtr(v bool) *bool { return &v }

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager("secret", 7*24*time.Hour)

	issued, err := tm.Issue(domain.Identity{Email: "a@b.com", UserID: "u1", IsAdmin: boolPtr(true)})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := tm.Parse(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	require.NotNil(t, claims.IsAdmin)
	assert.True(t, claims.Identity().Admin())
}

func TestTokenManager_OmitsAdminClaim(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	issued, err := tm.Issue(domain.Identity{Email: "a@b.com", UserID: "u1"})
	require.NoError(t, err)

	claims, err := tm.Parse(issued.Token)
	require.NoError(t, err)
	assert.Nil(t, claims.IsAdmin)
	assert.False(t, claims.Identity().Admin())
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issued, err := NewTokenManager("other", time.Hour).Issue(domain.Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(issued.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsMalformed(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, token)
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	claims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
