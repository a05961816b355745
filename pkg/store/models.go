package store

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies a third-party identity provider.
type Provider string

const (
	ProviderGoogle    Provider = "GOOGLE"
	ProviderMicrosoft Provider = "MICROSOFT"
)

// User is the identity anchor. At most one user exists per email; the unique
// index is the authoritative guard against concurrent duplicate registration.
type User struct {
	UserUUID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"userUuid"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BasicAccount is the 1:1 credential record. It exists iff the user has ever
// set a password, which holds for both first-party and OAuth-finalized
// registration.
type BasicAccount struct {
	ID       uint      `gorm:"primaryKey"`
	UserUUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Password string    `gorm:"not null"` // bcrypt hash, never plaintext
}

// Individual marks a user as an individual account. Exactly one of
// Individual/Company exists per user once registration completes.
type Individual struct {
	ID       uint      `gorm:"primaryKey"`
	UserUUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
}

// Company marks a user as a company account.
type Company struct {
	ID          uint      `gorm:"primaryKey"`
	UserUUID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName string    `gorm:"not null"`
}

// OAuthAccount links a user to a provider identity. Acc holds the provider
// subject id hashed at rest; its unique index guarantees a given provider
// identity resolves to at most one user.
type OAuthAccount struct {
	ID        uint      `gorm:"primaryKey"`
	UserUUID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_oauth_user_provider"`
	Provider  Provider  `gorm:"not null;uniqueIndex:idx_oauth_user_provider"`
	Acc       string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
