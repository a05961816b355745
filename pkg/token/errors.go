package token

import "errors"

var (
	ErrMissingSecret = errors.New("token: missing signing secret")
	ErrEmptyToken    = errors.New("token: signing produced an empty token")
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrExpiredToken  = errors.New("token: token expired")
)
