package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/dooferio/authkit/pkg/logger"
	"github.com/dooferio/authkit/pkg/passhash"
	"github.com/dooferio/authkit/pkg/store"
	"github.com/dooferio/authkit/pkg/token"
)

// Config holds the orchestrator settings.
type Config struct {
	// FrontURL is the front-end base the browser is sent to with a pending
	// token when an OAuth identity has no local user yet.
	FrontURL string `env:"FRONT_URL,required"`
	// SubjectPepper keys the at-rest hashing of provider subject ids.
	SubjectPepper string `env:"OAUTH_SUBJECT_PEPPER,required"`
}

// Service is the top-level auth orchestrator. All collaborators are plain
// constructor-injected references; the service holds no ambient state beyond
// its configuration.
type Service struct {
	store     *store.Store
	tokens    *token.Service
	hasher    *passhash.Hasher
	directory *Directory
	profiles  *ProfileFactory
	linker    *Linker
	frontURL  string
	logger    *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates the auth orchestrator.
func New(
	st *store.Store,
	tokens *token.Service,
	hasher *passhash.Hasher,
	directory *Directory,
	profiles *ProfileFactory,
	linker *Linker,
	frontURL string,
	opts ...Option,
) *Service {
	s := &Service{
		store:     st,
		tokens:    tokens,
		hasher:    hasher,
		directory: directory,
		profiles:  profiles,
		linker:    linker,
		frontURL:  frontURL,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates a first-party account: base user, credential record and
// exactly one profile row, all in one unit of work, then issues a confirmed
// access token. ErrEmailTaken stays detectable through the joined error.
func (s *Service) Register(ctx context.Context, req Registration) (*AccessTokenResponse, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("registration failed", logger.Error(err), logger.Component("auth"))
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	var resp *AccessTokenResponse
	err = s.store.Atomic(ctx, func(tx *store.Store) error {
		user, err := s.directory.CreateUser(ctx, tx, req.Email, req.FirstName, req.LastName, nil)
		if err != nil {
			return err
		}

		isIndividual, err := s.profiles.Create(ctx, tx, user.UserUUID, hashed, req.Profile)
		if err != nil {
			return err
		}

		resp, err = s.issueResponse(user, isIndividual)
		return err
	})
	if err != nil {
		s.logger.Error("registration failed",
			slog.String("email", req.Email),
			logger.Error(err),
			logger.Component("auth"),
		)
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	return resp, nil
}

// Login validates email+password credentials and issues a confirmed token.
// Bad credentials surface as ErrInvalidCredentials rather than being folded
// into the internal login error, so callers can tell a wrong password from a
// broken backend.
func (s *Service) Login(ctx context.Context, email, password string) (*AccessTokenResponse, error) {
	user, err := s.directory.ValidateCredentials(ctx, s.store, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("login failed", logger.Error(err), logger.Component("auth"))
		return nil, errors.Join(ErrLoginFailed, err)
	}

	isIndividual, err := s.store.HasIndividual(ctx, user.UserUUID)
	if err != nil {
		s.logger.Error("login failed", logger.UserID(user.UserUUID.String()), logger.Error(err), logger.Component("auth"))
		return nil, errors.Join(ErrLoginFailed, err)
	}

	resp, err := s.issueResponse(user, isIndividual)
	if err != nil {
		s.logger.Error("login failed", logger.UserID(user.UserUUID.String()), logger.Error(err), logger.Component("auth"))
		return nil, errors.Join(ErrLoginFailed, err)
	}

	return resp, nil
}

// OAuthLogin handles a provider callback. A user known by the asserted email
// gets the provider link ensured lazily and a confirmed token; an unknown
// email gets a pending token and a front-end redirect so registration is
// completed explicitly.
func (s *Service) OAuthLogin(ctx context.Context, payload OAuthPayload) (*OAuthLoginResult, error) {
	user, err := s.store.UserByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		resp, err := s.loginLinked(ctx, user, payload)
		if err != nil {
			s.logger.Error("oauth login failed",
				logger.UserID(user.UserUUID.String()),
				logger.Provider(string(payload.Provider)),
				logger.Error(err),
				logger.Component("auth"),
			)
			return nil, errors.Join(ErrOAuthLoginFailed, err)
		}
		return &OAuthLoginResult{Response: resp}, nil

	case errors.Is(err, store.ErrNotFound):
		pending, err := s.tokens.IssuePending(token.PendingIdentity{
			Provider:   string(payload.Provider),
			ProviderID: payload.ProviderID,
			Email:      payload.Email,
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			Picture:    payload.Picture,
		})
		if err != nil {
			s.logger.Error("oauth login failed", logger.Error(err), logger.Component("auth"))
			return nil, errors.Join(ErrOAuthLoginFailed, err)
		}
		return &OAuthLoginResult{RedirectURL: s.frontURL + "/?token=" + url.QueryEscape(pending)}, nil

	default:
		s.logger.Error("oauth login failed", logger.Error(err), logger.Component("auth"))
		return nil, errors.Join(ErrOAuthLoginFailed, err)
	}
}

// loginLinked ensures the provider link exists for an already-registered
// user. A missing link is created on the spot, so a user who registered by
// email and later signs in with the same address through a provider gets
// auto-linked; an existing link must match the asserted subject id.
func (s *Service) loginLinked(ctx context.Context, user *store.User, payload OAuthPayload) (*AccessTokenResponse, error) {
	link, err := s.linker.Find(ctx, s.store, user.UserUUID, payload.Provider)
	if errors.Is(err, store.ErrNotFound) {
		link, err = s.linker.Create(ctx, s.store, user.UserUUID, payload.Provider, payload.ProviderID)
	}
	if err != nil {
		return nil, err
	}

	if !s.linker.Matches(link, payload.ProviderID) {
		return nil, ErrInvalidCredentials
	}

	isIndividual, err := s.store.HasIndividual(ctx, user.UserUUID)
	if err != nil {
		return nil, err
	}

	return s.issueResponse(user, isIndividual)
}

// OAuthRegistration finalizes a pending identity: the pending token is
// verified before any write happens, then user, provider link, credential and
// profile rows are created in one unit of work.
func (s *Service) OAuthRegistration(ctx context.Context, req OAuthRegistration) (*AccessTokenResponse, error) {
	identity, err := s.tokens.VerifyPending(req.Token)
	if err != nil {
		s.logger.Error("oauth registration failed", logger.Error(err), logger.Component("auth"))
		return nil, errors.Join(ErrOAuthRegistrationFailed, err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("oauth registration failed", logger.Error(err), logger.Component("auth"))
		return nil, errors.Join(ErrOAuthRegistrationFailed, err)
	}

	var avatar *string
	if identity.Picture != "" {
		avatar = &identity.Picture
	}

	var resp *AccessTokenResponse
	err = s.store.Atomic(ctx, func(tx *store.Store) error {
		user, err := s.directory.CreateUser(ctx, tx, identity.Email, identity.FirstName, identity.LastName, avatar)
		if err != nil {
			return err
		}

		if _, err := s.linker.Create(ctx, tx, user.UserUUID, store.Provider(identity.Provider), identity.ProviderID); err != nil {
			return err
		}

		isIndividual, err := s.profiles.Create(ctx, tx, user.UserUUID, hashed, req.Profile)
		if err != nil {
			return err
		}

		resp, err = s.issueResponse(user, isIndividual)
		return err
	})
	if err != nil {
		s.logger.Error("oauth registration failed",
			slog.String("email", identity.Email),
			logger.Provider(identity.Provider),
			logger.Error(err),
			logger.Component("auth"),
		)
		return nil, errors.Join(ErrOAuthRegistrationFailed, err)
	}

	return resp, nil
}

// IsIndividual reports whether the user has an Individual profile row.
func (s *Service) IsIndividual(ctx context.Context, userUUID uuid.UUID) (bool, error) {
	ok, err := s.store.HasIndividual(ctx, userUUID)
	if err != nil {
		s.logger.Error("individual check failed",
			logger.UserID(userUUID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
		return false, errors.Join(ErrIndividualCheckFailed, err)
	}
	return ok, nil
}

func (s *Service) issueResponse(user *store.User, isIndividual bool) (*AccessTokenResponse, error) {
	accessToken, err := s.tokens.IssueAccess(user.Email, user.UserUUID)
	if err != nil {
		return nil, err
	}
	return &AccessTokenResponse{
		User:         user,
		AccessToken:  accessToken,
		IsIndividual: isIndividual,
	}, nil
}
