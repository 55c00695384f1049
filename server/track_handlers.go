package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"NoLabelPanel/core/moderation"
	"NoLabelPanel/logger"
	"NoLabelPanel/model"
)

// GetTracksHandler serves one of the three panel tabs: the pending queue, the
// moderated ("approved") view of the catalog, or the whole catalog.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = "pending"
	}

	var tracks []*model.Track
	var err error
	switch tab {
	case "pending":
		tracks, err = h.catalog.ListPending(r.Context())
	case "approved":
		tracks, err = h.catalog.ListPublishedApproved(r.Context())
	case "all":
		tracks, err = h.catalog.ListPublished(r.Context())
	default:
		http.Error(w, "Unknown tab", http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Error("[Tracks] failed to load tab",
			logger.String("tab", tab), logger.ErrorField(err))
		http.Error(w, "Failed to load data", http.StatusBadGateway)
		return
	}

	if tracks == nil {
		tracks = []*model.Track{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tracks": tracks})
}

// GetStatsHandler serves the tab counters.
func (h *APIHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.catalog.CountPublishedAll(r.Context())
	if err != nil {
		logger.Error("[Stats] failed to count catalog", logger.ErrorField(err))
		http.Error(w, "Failed to load stats", http.StatusBadGateway)
		return
	}
	pending, err := h.catalog.CountPending(r.Context())
	if err != nil {
		logger.Error("[Stats] failed to count pending", logger.ErrorField(err))
		http.Error(w, "Failed to load stats", http.StatusBadGateway)
		return
	}
	approved, err := h.catalog.CountPublishedApproved(r.Context())
	if err != nil {
		logger.Error("[Stats] failed to count approved", logger.ErrorField(err))
		http.Error(w, "Failed to load stats", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"all":      all,
		"pending":  pending,
		"approved": approved,
	})
}

// ApproveTrackHandler publishes a pending track.
func (h *APIHandler) ApproveTrackHandler(w http.ResponseWriter, r *http.Request) {
	pendingID := mux.Vars(r)["id"]

	publishedID, err := h.engine.Approve(r.Context(), pendingID)
	if err != nil {
		var orphan *moderation.OrphanError
		switch {
		case errors.Is(err, moderation.ErrTrackNotFound):
			http.Error(w, "Pending track not found", http.StatusNotFound)
		case errors.Is(err, moderation.ErrIDConflict):
			// Another moderator took the id first; the client re-approves to
			// allocate a fresh one.
			http.Error(w, "Allocation conflict, please retry", http.StatusConflict)
		case errors.As(err, &orphan):
			logger.Error("[Approve] orphaned pending record", logger.ErrorField(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":       "Track was published but the pending copy could not be removed",
				"publishedId": orphan.PublishedID,
			})
		default:
			logger.Error("[Approve] failed", logger.ErrorField(err))
			http.Error(w, "Failed to approve track", http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"publishedId": publishedID})
}

// RejectTrackHandler deletes a pending track. Rejecting an id that is already
// gone still returns 204.
func (h *APIHandler) RejectTrackHandler(w http.ResponseWriter, r *http.Request) {
	pendingID := mux.Vars(r)["id"]

	if err := h.engine.Reject(r.Context(), pendingID); err != nil {
		logger.Error("[Reject] failed", logger.ErrorField(err))
		http.Error(w, "Failed to reject track", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
