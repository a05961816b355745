package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dooferio/authkit/pkg/logger"
	"github.com/dooferio/authkit/pkg/passhash"
	"github.com/dooferio/authkit/pkg/store"
)

// Directory owns user uniqueness by email and credential validation.
type Directory struct {
	hasher *passhash.Hasher
	logger *slog.Logger
}

// DirectoryOption configures a Directory during construction.
type DirectoryOption func(*Directory)

// WithDirectoryLogger sets a custom logger for the directory.
func WithDirectoryLogger(l *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		d.logger = l
	}
}

// NewDirectory creates a user directory backed by the given password hasher.
func NewDirectory(hasher *passhash.Hasher, opts ...DirectoryOption) *Directory {
	d := &Directory{
		hasher: hasher,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// CreateUser inserts the base user row inside the caller's unit of work. The
// email pre-check gives a friendly early conflict; the unique index on email
// is what actually guarantees uniqueness under concurrency, so a duplicate
// slipping past the check still comes back as ErrEmailTaken.
func (d *Directory) CreateUser(ctx context.Context, tx *store.Store, email, firstName, lastName string, avatar *string) (*store.User, error) {
	_, err := tx.UserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	user := &store.User{
		UserUUID:  uuid.New(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Avatar:    avatar,
	}

	if err := tx.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		d.logger.Error("user creation failed",
			slog.String("email", email),
			logger.Error(err),
			logger.Component("directory"),
		)
		return nil, errors.Join(ErrUserCreationFailed, err)
	}

	return user, nil
}

// ValidateCredentials checks an email+password pair. Every failure mode —
// unknown email, missing credential record, wrong password — is the same
// ErrInvalidCredentials to the caller; the distinction only reaches the logs.
func (d *Directory) ValidateCredentials(ctx context.Context, s *store.Store, email, password string) (*store.User, error) {
	user, err := s.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			d.logger.Debug("login for unknown email", slog.String("email", email), logger.Component("directory"))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	acct, err := s.BasicAccountByUser(ctx, user.UserUUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			d.logger.Debug("user has no credential record",
				logger.UserID(user.UserUUID.String()),
				logger.Component("directory"),
			)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup basic account: %w", err)
	}

	ok, err := d.hasher.Verify(password, acct.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
