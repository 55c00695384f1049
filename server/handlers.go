package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"NoLabelPanel/config"
	"NoLabelPanel/core/auth"
	"NoLabelPanel/repository"
)

// SessionGate is the slice of the session gate the handlers need.
type SessionGate interface {
	Authenticate(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// ApprovalEngine is the slice of the approval engine the handlers need.
type ApprovalEngine interface {
	Approve(ctx context.Context, pendingID string) (string, error)
	Reject(ctx context.Context, pendingID string) error
}

// APIHandler handles all API requests.
type APIHandler struct {
	gate    SessionGate
	engine  ApprovalEngine
	catalog repository.CatalogRepository
	cfg     *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(gate SessionGate, engine ApprovalEngine, catalog repository.CatalogRepository, cfg *config.Config) *APIHandler {
	return &APIHandler{
		gate:    gate,
		engine:  engine,
		catalog: catalog,
		cfg:     cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type contextKey string

const claimsKey contextKey = "sessionClaims"

// contextWithClaims stores validated session claims for downstream handlers.
func contextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// claimsFromContext extracts the session claims the auth middleware stored.
func claimsFromContext(ctx context.Context) (*auth.Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("session claims not found in context")
	}
	return claims, nil
}
