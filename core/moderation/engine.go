package moderation

import (
	"context"
	"errors"
	"fmt"

	"NoLabelPanel/logger"
	"NoLabelPanel/model"
	"NoLabelPanel/repository"
)

// Default links substituted when a submission left them blank. The buy link
// points at the site's static "not for sale" page.
const (
	defaultArtistLink = "#"
	defaultBuyLink    = "notforsale.html"
)

// Engine moves tracks out of the pending queue: approval republishes them into
// the catalog under a freshly allocated id, rejection deletes them. A track
// has exactly these two ways out; there is no other mutation path.
type Engine struct {
	catalog repository.CatalogRepository
}

// NewEngine creates an Engine over the given catalog.
func NewEngine(catalog repository.CatalogRepository) *Engine {
	return &Engine{catalog: catalog}
}

// Approve publishes the pending track with the given id and returns the new
// published id.
//
// The steps run strictly in sequence for one call, but there is no mutual
// exclusion across moderators: two concurrent approvals can scan the same
// catalog state and allocate the same number. The store's uniqueness check on
// insert is the collision detector; the loser gets ErrIDConflict and must call
// Approve again to re-scan. Do not replace the scan with a cached counter
// without re-deriving that guarantee.
func (e *Engine) Approve(ctx context.Context, pendingID string) (string, error) {
	pending, err := e.catalog.GetPendingByID(ctx, pendingID)
	if err != nil {
		return "", fmt.Errorf("approve %s: %w", pendingID, err)
	}
	if pending == nil {
		return "", fmt.Errorf("approve %s: %w", pendingID, ErrTrackNotFound)
	}

	ids, err := e.catalog.ListPublishedIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("approve %s: %w", pendingID, err)
	}
	publishedID := NextPublishedID(ids)

	published := buildPublished(pending, publishedID)
	if err := e.catalog.InsertPublished(ctx, published); err != nil {
		// The pending record is untouched on any insert failure; an approval
		// either fully publishes or changes nothing observable.
		if errors.Is(err, repository.ErrDuplicateID) {
			logger.Warn("[Approve] lost allocation race",
				logger.String("pendingId", pendingID),
				logger.String("publishedId", publishedID))
			return "", fmt.Errorf("approve %s: %w", pendingID, ErrIDConflict)
		}
		return "", fmt.Errorf("approve %s: %w", pendingID, err)
	}

	if err := e.catalog.DeletePending(ctx, pendingID); err != nil {
		// Published copy exists, pending copy stayed behind. Reported, not
		// rolled back; the duplicate stays visible until reconciled by hand.
		logger.Error("[Approve] pending delete failed after publish",
			logger.String("pendingId", pendingID),
			logger.String("publishedId", publishedID),
			logger.ErrorField(err))
		return "", &OrphanError{PendingID: pendingID, PublishedID: publishedID, Err: err}
	}

	logger.Info("[Approve] track published",
		logger.String("pendingId", pendingID),
		logger.String("publishedId", publishedID))
	return publishedID, nil
}

// buildPublished copies a pending track into its published form: fresh id,
// pfp_url taken from the submitted cover, optional links defaulted, and
// created_at preserved verbatim so publication does not reset submission time.
func buildPublished(pending *model.Track, publishedID string) *model.Track {
	published := &model.Track{
		ID:         publishedID,
		UserID:     pending.UserID,
		ArtistName: pending.ArtistName,
		Title:      pending.Title,
		Src:        pending.Src,
		PfpURL:     pending.Cover,
		ArtistLink: pending.ArtistLink,
		BuyLink:    pending.BuyLink,
		CreatedAt:  pending.CreatedAt,
		State:      model.TrackStatePublished,
	}
	if published.ArtistLink == "" {
		published.ArtistLink = defaultArtistLink
	}
	if published.BuyLink == "" {
		published.BuyLink = defaultBuyLink
	}
	return published
}

// Reject deletes the pending track. Rejection keeps no tombstone, and
// rejecting an id that is already gone succeeds with no observable effect.
func (e *Engine) Reject(ctx context.Context, pendingID string) error {
	if err := e.catalog.DeletePending(ctx, pendingID); err != nil {
		return fmt.Errorf("reject %s: %w", pendingID, err)
	}
	logger.Info("[Reject] pending track deleted", logger.String("pendingId", pendingID))
	return nil
}
