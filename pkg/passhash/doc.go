// Package passhash wraps bcrypt for credential storage and comparison.
//
// The hasher distinguishes a plain mismatch from an internal bcrypt failure:
// a mismatch is a normal (false, nil) result, while a malformed hash or an
// invalid cost parameter surfaces as ErrHashingFailed so callers never treat
// a broken comparison as "wrong password".
package passhash
