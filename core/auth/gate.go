// Package auth holds the session gate: it exchanges credentials with the auth
// collaborator, resolves the caller's profile and checks the moderator
// allowlist. Session state itself lives with the auth service; this package
// only interprets it.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"NoLabelPanel/logger"
	"NoLabelPanel/model"
	"NoLabelPanel/repository"
	"NoLabelPanel/supabase"
)

// ErrMissingCredentials means the login form was submitted with an empty email
// or password. No collaborator is contacted in that case.
var ErrMissingCredentials = errors.New("email and password are required")

// ErrAccessDenied means the identity authenticated but is not an allowlisted
// moderator, or its moderator status could not be established. The gate fails
// closed: lookup failures are logged and denied, never retried.
var ErrAccessDenied = errors.New("not an allowed moderator")

// Authenticator is the credential side of the auth collaborator.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*supabase.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Session is an authorized moderator session.
type Session struct {
	ID          string
	User        model.User
	ArtistName  string
	AccessToken string
}

// Gate validates credentials and allowlist membership.
type Gate struct {
	auth       Authenticator
	moderators repository.ModeratorRepository
}

// NewGate creates a Gate over the auth collaborator and the moderator collections.
func NewGate(auth Authenticator, moderators repository.ModeratorRepository) *Gate {
	return &Gate{auth: auth, moderators: moderators}
}

// Authenticate resolves credentials to an authorized session. Exactly one of
// four outcomes: ErrMissingCredentials before any network call, an
// *supabase.AuthError from the credential exchange, ErrAccessDenied, or a
// session.
func (g *Gate) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	authSession, err := g.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := g.moderators.GetProfile(ctx, authSession.User.ID)
	if err != nil {
		logger.Warn("[Gate] profile lookup failed, denying access",
			logger.String("userId", authSession.User.ID),
			logger.ErrorField(err))
		return nil, ErrAccessDenied
	}

	allowed, err := g.moderators.IsAllowedModerator(ctx, profile.ArtistName)
	if err != nil {
		logger.Warn("[Gate] allowlist lookup failed, denying access",
			logger.String("artistName", profile.ArtistName),
			logger.ErrorField(err))
		return nil, ErrAccessDenied
	}
	if !allowed {
		logger.Info("[Gate] user is not a moderator",
			logger.String("artistName", profile.ArtistName))
		return nil, ErrAccessDenied
	}

	logger.Info("[Gate] moderator authorized",
		logger.String("artistName", profile.ArtistName))
	return &Session{
		ID:          uuid.NewString(),
		User:        authSession.User,
		ArtistName:  profile.ArtistName,
		AccessToken: authSession.AccessToken,
	}, nil
}

// SignOut asks the auth collaborator to forget the session's token.
func (g *Gate) SignOut(ctx context.Context, accessToken string) error {
	return g.auth.SignOut(ctx, accessToken)
}
