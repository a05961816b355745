package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

const (
	minPasswordLength    = 8
	minCompanyNameLength = 2
)

const passwordSpecials = `@$!%*?&#^_-+=.,:;(){}[]<>~"'/\|`

// ValidateRegistration shape-checks a first-party registration payload. It
// belongs to the transport layer: the Service trusts payloads it receives.
func ValidateRegistration(req Registration) error {
	if req.FirstName == "" || req.LastName == "" {
		return ErrMissingRequiredField
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return err
	}
	return validateProfile(req.Profile)
}

// ValidateOAuthRegistration shape-checks an OAuth finalization payload.
func ValidateOAuthRegistration(req OAuthRegistration) error {
	if req.Token == "" {
		return ErrMissingRequiredField
	}
	if err := ValidatePassword(req.Password); err != nil {
		return err
	}
	return validateProfile(req.Profile)
}

// ValidateEmail checks address shape per RFC 5322 parsing.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// ValidatePassword enforces the complexity policy: at least 8 characters
// with an upper-case letter, a lower-case letter, a digit and a special
// character.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}

// ValidateCompanyName enforces the minimum company name length.
func ValidateCompanyName(name string) error {
	if len(strings.TrimSpace(name)) < minCompanyNameLength {
		return ErrCompanyNameTooShort
	}
	return nil
}

func validateProfile(profile Profile) error {
	switch p := profile.(type) {
	case IndividualProfile:
		return nil
	case CompanyProfile:
		return ValidateCompanyName(p.CompanyName)
	default:
		return ErrMissingRequiredField
	}
}
