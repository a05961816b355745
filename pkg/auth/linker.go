package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/dooferio/authkit/pkg/store"
)

// Linker binds users to third-party provider identities. Provider subject
// ids are PII-adjacent, so they are stored as a keyed HMAC-SHA256 digest;
// the digest is deterministic, which keeps the create and lookup paths
// hashing identically.
type Linker struct {
	pepper []byte
}

// NewLinker creates a linker. The pepper keys the subject-id digest and must
// stay stable for the lifetime of the stored links.
func NewLinker(pepper string) (*Linker, error) {
	if pepper == "" {
		return nil, fmt.Errorf("auth: linker requires a non-empty pepper")
	}
	return &Linker{pepper: []byte(pepper)}, nil
}

// Find resolves the user's link for a provider. Absence is store.ErrNotFound.
func (l *Linker) Find(ctx context.Context, s *store.Store, userUUID uuid.UUID, provider store.Provider) (*store.OAuthAccount, error) {
	return s.OAuthAccountByUser(ctx, userUUID, provider)
}

// Create stores a new link with the subject id hashed at rest.
func (l *Linker) Create(ctx context.Context, s *store.Store, userUUID uuid.UUID, provider store.Provider, rawSubjectID string) (*store.OAuthAccount, error) {
	acct := &store.OAuthAccount{
		UserUUID: userUUID,
		Provider: provider,
		Acc:      l.hashSubject(rawSubjectID),
	}
	if err := s.CreateOAuthAccount(ctx, acct); err != nil {
		return nil, fmt.Errorf("create oauth link: %w", err)
	}
	return acct, nil
}

// Matches reports whether a raw provider subject id belongs to the stored
// link, in constant time.
func (l *Linker) Matches(acct *store.OAuthAccount, rawSubjectID string) bool {
	digest := l.hashSubject(rawSubjectID)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(acct.Acc)) == 1
}

func (l *Linker) hashSubject(raw string) string {
	h := hmac.New(sha256.New, l.pepper)
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}
