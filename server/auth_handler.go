package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"NoLabelPanel/cache"
	"NoLabelPanel/core/auth"
	"NoLabelPanel/logger"
	"NoLabelPanel/supabase"
)

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler exchanges moderator credentials for a panel session token.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("[Login] failed to parse request body", logger.ErrorField(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.gate.Authenticate(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		var authErr *supabase.AuthError
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			http.Error(w, "Please fill in both email and password", http.StatusBadRequest)
		case errors.As(err, &authErr):
			logger.Warn("[Login] authentication failed", logger.String("email", req.Email))
			http.Error(w, authErr.Message, http.StatusUnauthorized)
		case errors.Is(err, auth.ErrAccessDenied):
			http.Error(w, "Access denied", http.StatusForbidden)
		default:
			logger.Error("[Login] unexpected error", logger.ErrorField(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	if err := cache.StoreSession(r.Context(), session); err != nil {
		logger.Error("[Login] failed to store session", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(session, h.cfg.JWTSecret)
	if err != nil {
		logger.Error("[Login] failed to generate token", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info("[Login] moderator logged in",
		logger.String("artistName", session.ArtistName))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]string{
			"id":         session.User.ID,
			"email":      session.User.Email,
			"artistName": session.ArtistName,
		},
	})
}

// LogoutHandler revokes the upstream token and drops the session's state.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := cache.GetSession(r.Context(), claims.SessionID)
	if err != nil {
		logger.Error("[Logout] failed to load session", logger.ErrorField(err))
	}
	if session != nil {
		// Best effort: the auth service owns session state, and our side is
		// cleared regardless of whether revocation goes through.
		if err := h.gate.SignOut(r.Context(), session.AccessToken); err != nil {
			logger.Warn("[Logout] upstream sign-out failed", logger.ErrorField(err))
		}
	}

	if err := cache.DeleteSession(r.Context(), claims.SessionID); err != nil {
		logger.Warn("[Logout] failed to delete session", logger.ErrorField(err))
	}
	if err := cache.ClearPlaybackState(r.Context(), claims.SessionID); err != nil {
		logger.Warn("[Logout] failed to clear playback state", logger.ErrorField(err))
	}

	logger.Info("[Logout] moderator logged out", logger.String("artistName", claims.ArtistName))
	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware checks for a valid panel session token.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(parts[1], h.cfg.JWTSecret)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := contextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
