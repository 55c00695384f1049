package server

import (
	"encoding/json"
	"net/http"

	"NoLabelPanel/cache"
	"NoLabelPanel/logger"
	"NoLabelPanel/model"
)

// GetPlayerHandler returns the session's playback state. A session that has
// nothing playing gets the zero state.
func (h *APIHandler) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	state, err := cache.GetPlaybackState(r.Context(), claims.SessionID)
	if err != nil {
		logger.Error("[Player] failed to load state", logger.ErrorField(err))
		http.Error(w, "Failed to load playback state", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdatePlayerHandler stores the session's playback state. The client reports
// position as it plays; the panel never touches the audio bytes themselves.
func (h *APIHandler) UpdatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var state model.PlaybackState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := cache.SetPlaybackState(r.Context(), claims.SessionID, state); err != nil {
		logger.Error("[Player] failed to store state", logger.ErrorField(err))
		http.Error(w, "Failed to store playback state", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StopPlayerHandler clears the session's playback state.
func (h *APIHandler) StopPlayerHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := cache.ClearPlaybackState(r.Context(), claims.SessionID); err != nil {
		logger.Error("[Player] failed to clear state", logger.ErrorField(err))
		http.Error(w, "Failed to clear playback state", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
