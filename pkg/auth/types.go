package auth

import (
	"github.com/dooferio/authkit/pkg/store"
)

// Profile selects the account type at registration. It is a closed set:
// IndividualProfile or CompanyProfile. The explicit discriminant replaces the
// company-name-presence check so the branch is exhaustive at the type level.
type Profile interface {
	isProfile()
}

// IndividualProfile registers the user as an individual account.
type IndividualProfile struct{}

func (IndividualProfile) isProfile() {}

// CompanyProfile registers the user as a company account.
type CompanyProfile struct {
	CompanyName string
}

func (CompanyProfile) isProfile() {}

// Registration is a first-party (email + password) registration request. The
// payload arrives already shape-checked by the transport layer.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Profile   Profile
}

// OAuthRegistration finalizes a pending third-party identity: the token is
// the pending token handed out by OAuthLogin, and the password becomes the
// local fallback credential.
type OAuthRegistration struct {
	Token    string
	Password string
	Profile  Profile
}

// OAuthPayload is the normalized profile a provider integration asserts
// after its own protocol exchange.
type OAuthPayload struct {
	Provider   store.Provider
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
	Picture    string
}

// AccessTokenResponse is the success result of every confirmed-identity flow.
type AccessTokenResponse struct {
	User         *store.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	IsIndividual bool        `json:"isIndividual"`
}

// OAuthLoginResult carries either a finished login or, for an identity with
// no local user yet, the front-end redirect URL with the pending token.
// Exactly one of the two fields is set.
type OAuthLoginResult struct {
	Response    *AccessTokenResponse
	RedirectURL string
}
