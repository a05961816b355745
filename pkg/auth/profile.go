package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dooferio/authkit/pkg/store"
)

// ProfileFactory creates the credential record plus exactly one of the
// Individual/Company profile rows for a freshly created user.
type ProfileFactory struct{}

// NewProfileFactory creates a profile factory.
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// Create writes the BasicAccount and the selected profile row inside the
// caller's unit of work and reports whether the individual branch was taken.
// The two writes only depend on the already-created user row, not on each
// other; they run sequentially because a transaction handle is bound to one
// connection. Any failure aborts the whole unit of work.
func (f *ProfileFactory) Create(ctx context.Context, tx *store.Store, userUUID uuid.UUID, hashedPassword string, profile Profile) (bool, error) {
	if err := tx.CreateBasicAccount(ctx, &store.BasicAccount{
		UserUUID: userUUID,
		Password: hashedPassword,
	}); err != nil {
		return false, fmt.Errorf("create basic account: %w", err)
	}

	switch p := profile.(type) {
	case IndividualProfile:
		if err := tx.CreateIndividual(ctx, &store.Individual{UserUUID: userUUID}); err != nil {
			return false, fmt.Errorf("create individual: %w", err)
		}
		return true, nil
	case CompanyProfile:
		if err := tx.CreateCompany(ctx, &store.Company{
			UserUUID:    userUUID,
			CompanyName: p.CompanyName,
		}); err != nil {
			return false, fmt.Errorf("create company: %w", err)
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown profile type %T", profile)
	}
}
