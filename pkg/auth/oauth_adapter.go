package auth

import (
	"context"
	"errors"

	"github.com/dooferio/authkit/pkg/store"
)

var (
	ErrInvalidCode    = errors.New("auth: invalid authorization code")
	ErrNoProviderID   = errors.New("auth: provider returned no subject id")
	ErrNoPrimaryEmail = errors.New("auth: provider returned no email")
)

// ProviderAdapter turns a provider's OAuth callback into the normalized
// payload the orchestrator consumes. Token exchange, profile fetch and
// provider-specific claim decoding all stay behind this interface.
type ProviderAdapter interface {
	// Provider returns the provider this adapter serves.
	Provider() store.Provider

	// AuthURL builds the provider authorization URL for the given state.
	AuthURL(state string) string

	// ResolveProfile exchanges the authorization code and returns the
	// asserted profile.
	ResolveProfile(ctx context.Context, code string) (OAuthPayload, error)
}
