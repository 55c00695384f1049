package auth

import (
	"context"
	"errors"
	"testing"

	"NoLabelPanel/model"
	"NoLabelPanel/supabase"
)

type fakeAuthenticator struct {
	session    *supabase.AuthSession
	signInErr  error
	signInHits int
}

func (f *fakeAuthenticator) SignIn(ctx context.Context, email, password string) (*supabase.AuthSession, error) {
	f.signInHits++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAuthenticator) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

type fakeModeratorRepo struct {
	profile      *model.Profile
	profileErr   error
	allowed      bool
	allowlistErr error
}

func (f *fakeModeratorRepo) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeModeratorRepo) IsAllowedModerator(ctx context.Context, artistName string) (bool, error) {
	if f.allowlistErr != nil {
		return false, f.allowlistErr
	}
	return f.allowed, nil
}

func validAuthenticator() *fakeAuthenticator {
	return &fakeAuthenticator{
		session: &supabase.AuthSession{
			AccessToken: "upstream-token",
			User:        model.User{ID: "user-1", Email: "mod@example.com"},
		},
	}
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	authn := validAuthenticator()
	gate := NewGate(authn, &fakeModeratorRepo{})

	for _, creds := range [][2]string{{"", "pw"}, {"mod@example.com", ""}, {"", ""}} {
		_, err := gate.Authenticate(context.Background(), creds[0], creds[1])
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("Authenticate(%q, %q) = %v, want ErrMissingCredentials", creds[0], creds[1], err)
		}
	}
	if authn.signInHits != 0 {
		t.Errorf("collaborator contacted %d times for invalid input", authn.signInHits)
	}
}

func TestAuthenticateCredentialRejection(t *testing.T) {
	rejection := &supabase.AuthError{Status: 400, Message: "Invalid login credentials"}
	gate := NewGate(&fakeAuthenticator{signInErr: rejection}, &fakeModeratorRepo{})

	_, err := gate.Authenticate(context.Background(), "mod@example.com", "wrong")
	var authErr *supabase.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Authenticate error = %v, want *supabase.AuthError", err)
	}
	if authErr.Message != "Invalid login credentials" {
		t.Errorf("auth error message = %q, not passed through", authErr.Message)
	}
}

func TestAuthenticateProfileFailureDenies(t *testing.T) {
	gate := NewGate(validAuthenticator(), &fakeModeratorRepo{
		profileErr: errors.New("store unavailable"),
	})

	_, err := gate.Authenticate(context.Background(), "mod@example.com", "pw")
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Authenticate error = %v, want ErrAccessDenied", err)
	}
}

func TestAuthenticateNotOnAllowlist(t *testing.T) {
	// The allowlist returning no rows is an ordinary denial, not a crash.
	gate := NewGate(validAuthenticator(), &fakeModeratorRepo{
		profile: &model.Profile{ArtistName: "Someone"},
		allowed: false,
	})

	_, err := gate.Authenticate(context.Background(), "mod@example.com", "pw")
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Authenticate error = %v, want ErrAccessDenied", err)
	}
}

func TestAuthenticateAllowlistFailureDeniesClosed(t *testing.T) {
	gate := NewGate(validAuthenticator(), &fakeModeratorRepo{
		profile:      &model.Profile{ArtistName: "Someone"},
		allowlistErr: errors.New("store unavailable"),
	})

	_, err := gate.Authenticate(context.Background(), "mod@example.com", "pw")
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("Authenticate error = %v, want ErrAccessDenied", err)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	gate := NewGate(validAuthenticator(), &fakeModeratorRepo{
		profile: &model.Profile{ArtistName: "NoLabel Crew"},
		allowed: true,
	})

	session, err := gate.Authenticate(context.Background(), "mod@example.com", "pw")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if session.ID == "" {
		t.Error("session id not assigned")
	}
	if session.User.ID != "user-1" || session.User.Email != "mod@example.com" {
		t.Errorf("session user = %+v", session.User)
	}
	if session.ArtistName != "NoLabel Crew" {
		t.Errorf("session artist name = %q", session.ArtistName)
	}
	if session.AccessToken != "upstream-token" {
		t.Errorf("session access token = %q", session.AccessToken)
	}
}
