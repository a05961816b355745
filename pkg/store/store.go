package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store provides the narrow persistence surface the auth core needs. A Store
// handed to an Atomic callback is scoped to that transaction.
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the schema for all auth tables.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&User{}, &BasicAccount{}, &Individual{}, &Company{}, &OAuthAccount{})
}

// Atomic runs fn inside one database transaction. The callback receives a
// transaction-scoped Store; returning an error rolls back every write made
// through it, returning nil commits them.
func (s *Store) Atomic(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByUUID(ctx context.Context, userUUID uuid.UUID) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, "user_uuid = ?", userUUID).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) CreateBasicAccount(ctx context.Context, acct *BasicAccount) error {
	return translate(s.db.WithContext(ctx).Create(acct).Error)
}

func (s *Store) BasicAccountByUser(ctx context.Context, userUUID uuid.UUID) (*BasicAccount, error) {
	var acct BasicAccount
	if err := s.db.WithContext(ctx).First(&acct, "user_uuid = ?", userUUID).Error; err != nil {
		return nil, translate(err)
	}
	return &acct, nil
}

func (s *Store) CreateIndividual(ctx context.Context, ind *Individual) error {
	return translate(s.db.WithContext(ctx).Create(ind).Error)
}

// HasIndividual reports whether an Individual profile row exists for the user.
func (s *Store) HasIndividual(ctx context.Context, userUUID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Individual{}).
		Where("user_uuid = ?", userUUID).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *Store) CreateCompany(ctx context.Context, company *Company) error {
	return translate(s.db.WithContext(ctx).Create(company).Error)
}

func (s *Store) CompanyByUser(ctx context.Context, userUUID uuid.UUID) (*Company, error) {
	var company Company
	if err := s.db.WithContext(ctx).First(&company, "user_uuid = ?", userUUID).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (s *Store) CreateOAuthAccount(ctx context.Context, acct *OAuthAccount) error {
	return translate(s.db.WithContext(ctx).Create(acct).Error)
}

func (s *Store) OAuthAccountByUser(ctx context.Context, userUUID uuid.UUID, provider Provider) (*OAuthAccount, error) {
	var acct OAuthAccount
	if err := s.db.WithContext(ctx).
		First(&acct, "user_uuid = ? AND provider = ?", userUUID, provider).Error; err != nil {
		return nil, translate(err)
	}
	return &acct, nil
}
