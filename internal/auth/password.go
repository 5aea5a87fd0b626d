package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when the configured cost is out of bcrypt's range.
const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies passwords with bcrypt. The work runs on its
// own goroutine so a cancelled request stops waiting for it.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher with the given work factor.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the salted hash of a plaintext password.
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	var hashed []byte
	err := offload(ctx, func() error {
		var err error
		hashed, err = bcrypt.GenerateFromPassword([]byte(password), h.cost)
		return err
	})
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. A mismatch is not an error.
func (h *PasswordHasher) Verify(ctx context.Context, hashed, password string) (bool, error) {
	err := offload(ctx, func() error {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

func offload(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
