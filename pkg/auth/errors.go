package auth

import "errors"

// Caller-distinguishable failures.
var (
	ErrEmailTaken         = errors.New("auth: user already exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// Operation-scoped failures. Each orchestrator operation joins its sentinel
// with the original cause, so errors.Is works for both while the coarse kind
// is what a transport layer maps to a status code.
var (
	ErrRegistrationFailed      = errors.New("auth: registration failed")
	ErrLoginFailed             = errors.New("auth: login failed")
	ErrOAuthLoginFailed        = errors.New("auth: oauth login failed")
	ErrOAuthRegistrationFailed = errors.New("auth: oauth registration failed")
	ErrIndividualCheckFailed   = errors.New("auth: individual check failed")
	ErrUserCreationFailed      = errors.New("auth: user creation failed")
)

// Validation failures, for the transport layer's pre-checks.
var (
	ErrInvalidEmail         = errors.New("auth: invalid email address")
	ErrWeakPassword         = errors.New("auth: password does not meet complexity requirements")
	ErrCompanyNameTooShort  = errors.New("auth: company name too short")
	ErrMissingRequiredField = errors.New("auth: missing required field")
)
