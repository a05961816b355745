package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds signing material for both token classes. The pending class
// may share the access secret but must expire much sooner: a pending token
// only bridges the gap between a provider callback and the finalized
// registration.
type Config struct {
	AccessSecret  string        `env:"JWT_SECRET,required"`
	AccessTTL     time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	PendingSecret string        `env:"JWT_TEMP_SECRET"`
	PendingTTL    time.Duration `env:"JWT_EXPIRES_IN_TEMP" envDefault:"15m"`
}

// AccessClaims is the payload of a confirmed access token.
type AccessClaims struct {
	Email    string `json:"email"`
	UserUUID string `json:"userUuid"`
	jwt.RegisteredClaims
}

// PendingClaims is the payload of a pending token: the profile a provider
// asserted for an identity that has no local user yet.
type PendingClaims struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Picture    string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// PendingIdentity is the provider-asserted profile carried by a pending token.
type PendingIdentity struct {
	Provider   string
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
	Picture    string
}

// Service signs and verifies HS256 tokens for both classes.
type Service struct {
	accessSecret  []byte
	pendingSecret []byte
	accessTTL     time.Duration
	pendingTTL    time.Duration
	now           func() time.Time
}

// Option configures a Service during construction.
type Option func(*Service)

// WithClock overrides the time source, used by expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token service. The pending secret falls back to the access
// secret when unset; an empty access secret is a configuration error.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.AccessSecret == "" {
		return nil, ErrMissingSecret
	}

	pendingSecret := cfg.PendingSecret
	if pendingSecret == "" {
		pendingSecret = cfg.AccessSecret
	}
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	pendingTTL := cfg.PendingTTL
	if pendingTTL <= 0 {
		pendingTTL = 15 * time.Minute
	}

	s := &Service{
		accessSecret:  []byte(cfg.AccessSecret),
		pendingSecret: []byte(pendingSecret),
		accessTTL:     accessTTL,
		pendingTTL:    pendingTTL,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// IssueAccess signs a confirmed access token over the user's identity.
func (s *Service) IssueAccess(email string, userUUID uuid.UUID) (string, error) {
	claims := AccessClaims{
		Email:            email,
		UserUUID:         userUUID.String(),
		RegisteredClaims: s.registeredClaims(s.accessTTL),
	}
	return s.sign(claims, s.accessSecret)
}

// IssuePending signs a short-lived token carrying a provider-asserted profile.
func (s *Service) IssuePending(id PendingIdentity) (string, error) {
	claims := PendingClaims{
		Provider:         id.Provider,
		ProviderID:       id.ProviderID,
		Email:            id.Email,
		FirstName:        id.FirstName,
		LastName:         id.LastName,
		Picture:          id.Picture,
		RegisteredClaims: s.registeredClaims(s.pendingTTL),
	}
	return s.sign(claims, s.pendingSecret)
}

// VerifyAccess validates signature and expiry of a confirmed token.
func (s *Service) VerifyAccess(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := s.verify(raw, &claims, s.accessSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

// VerifyPending validates a pending token and returns the asserted identity.
func (s *Service) VerifyPending(raw string) (*PendingIdentity, error) {
	var claims PendingClaims
	if err := s.verify(raw, &claims, s.pendingSecret); err != nil {
		return nil, err
	}
	return &PendingIdentity{
		Provider:   claims.Provider,
		ProviderID: claims.ProviderID,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Picture:    claims.Picture,
	}, nil
}

// Decode parses a token WITHOUT verifying its signature. It exists for claims
// a provider integration has already validated (e.g. an id_token received
// over the provider's TLS token endpoint) and must never authorize anything.
func Decode(raw string, claims jwt.Claims) error {
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}

func (s *Service) registeredClaims(ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *Service) sign(claims jwt.Claims, secret []byte) (string, error) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	// An empty signing result is a hard failure, never a silent success.
	if raw == "" {
		return "", ErrEmptyToken
	}
	return raw, nil
}

func (s *Service) verify(raw string, claims jwt.Claims, secret []byte) error {
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
