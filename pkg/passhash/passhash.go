package passhash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// Option configures a Hasher during construction.
type Option func(*Hasher)

// WithCost sets the bcrypt cost factor.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		h.cost = cost
	}
}

// New creates a hasher with bcrypt.DefaultCost unless overridden.
func New(opts ...Option) *Hasher {
	h := &Hasher{cost: bcrypt.DefaultCost}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Hash returns the bcrypt hash of the plaintext. Any bcrypt failure is
// reported as ErrHashingFailed; a successful call never yields an empty hash.
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}
	if len(hash) == 0 {
		return "", ErrHashingFailed
	}
	return string(hash), nil
}

// Verify compares the plaintext against a stored hash. A mismatch is
// (false, nil); any other bcrypt error is (false, ErrHashingFailed) so a
// broken hash is never reported as a plain mismatch.
func (h *Hasher) Verify(plain, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrHashingFailed, err)
}
