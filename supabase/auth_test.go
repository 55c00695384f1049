package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignInSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %q", got)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "mod@example.com" || body["password"] != "pw" {
			t.Errorf("credentials = %+v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "jwt-token",
			"token_type": "bearer",
			"expires_in": 3600,
			"user": {"id": "user-1", "email": "mod@example.com"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	session, err := client.SignIn(context.Background(), "mod@example.com", "pw")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if session.AccessToken != "jwt-token" {
		t.Errorf("access token = %q", session.AccessToken)
	}
	if session.User.ID != "user-1" || session.User.Email != "mod@example.com" {
		t.Errorf("user = %+v", session.User)
	}
}

func TestSignInRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	_, err := client.SignIn(context.Background(), "mod@example.com", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("SignIn error = %v, want *AuthError", err)
	}
	if authErr.Message != "Invalid login credentials" {
		t.Errorf("message = %q, want the collaborator's message", authErr.Message)
	}
}

func TestSignOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/logout" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	if err := client.SignOut(context.Background(), "user-token"); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if gotAuth != "Bearer user-token" {
		t.Errorf("Authorization = %q, want the session's token", gotAuth)
	}
}
