package repository

import (
	"context"
	"errors"
	"fmt"

	"NoLabelPanel/model"
	"NoLabelPanel/supabase"
)

const (
	pendingTable   = "pending_tracks"
	publishedTable = "audio_tracks"
)

// ErrDuplicateID is returned by InsertPublished when the store rejects the row
// because the id already exists. It is the collision detector the approval
// flow relies on; callers retry the whole approval to get a fresh id.
var ErrDuplicateID = errors.New("published id already exists")

// CatalogRepository is a thin facade over the two track collections of the
// external store. Every operation maps 1:1 to a filtered read or write; errors
// pass through unchanged, with no retries and no caching.
type CatalogRepository interface {
	ListPending(ctx context.Context) ([]*model.Track, error)
	GetPendingByID(ctx context.Context, id string) (*model.Track, error)
	ListPublished(ctx context.Context) ([]*model.Track, error)
	ListPublishedApproved(ctx context.Context) ([]*model.Track, error)
	ListPublishedIDs(ctx context.Context) ([]string, error)
	InsertPublished(ctx context.Context, track *model.Track) error
	DeletePending(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)
	CountPublishedAll(ctx context.Context) (int, error)
	CountPublishedApproved(ctx context.Context) (int, error)
}

// supabaseCatalogRepository implements CatalogRepository against the hosted store.
type supabaseCatalogRepository struct {
	client *supabase.Client
}

// NewSupabaseCatalogRepository creates a new instance of supabaseCatalogRepository.
func NewSupabaseCatalogRepository(client *supabase.Client) CatalogRepository {
	return &supabaseCatalogRepository{client: client}
}

var newestFirst = &supabase.Order{Column: "created_at", Ascending: false}

// idRow is the projection used when only ids are needed.
type idRow struct {
	ID string `json:"id"`
}

// ListPending returns the submission queue, newest first.
func (r *supabaseCatalogRepository) ListPending(ctx context.Context) ([]*model.Track, error) {
	var tracks []*model.Track
	if err := r.client.Select(ctx, pendingTable, "*", nil, newestFirst, &tracks); err != nil {
		return nil, fmt.Errorf("failed to list pending tracks: %w", err)
	}
	for _, t := range tracks {
		t.State = model.TrackStatePending
	}
	return tracks, nil
}

// GetPendingByID returns the pending track with the given id, or (nil, nil)
// when no such row exists.
func (r *supabaseCatalogRepository) GetPendingByID(ctx context.Context, id string) (*model.Track, error) {
	track := &model.Track{}
	err := r.client.SelectOne(ctx, pendingTable, "*", []supabase.Filter{supabase.Eq("id", id)}, track)
	if err != nil {
		if supabase.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending track %s: %w", id, err)
	}
	track.State = model.TrackStatePending
	return track, nil
}

// ListPublished returns the entire public catalog, newest first.
func (r *supabaseCatalogRepository) ListPublished(ctx context.Context) ([]*model.Track, error) {
	var tracks []*model.Track
	if err := r.client.Select(ctx, publishedTable, "*", nil, newestFirst, &tracks); err != nil {
		return nil, fmt.Errorf("failed to list published tracks: %w", err)
	}
	for _, t := range tracks {
		t.State = model.TrackStatePublished
	}
	return tracks, nil
}

// ListPublishedApproved returns the catalog restricted to tracks that went
// through moderation, i.e. numeric suffix >= 21. The legacy-range cut is done
// numerically here rather than with a lexicographic id filter on the store;
// string comparison misorders suffixes of different widths (audio-9 sorts
// after audio-21, audio-100 before it).
func (r *supabaseCatalogRepository) ListPublishedApproved(ctx context.Context) ([]*model.Track, error) {
	var tracks []*model.Track
	filters := []supabase.Filter{supabase.Like("id", model.PublishedIDPrefix+"%")}
	if err := r.client.Select(ctx, publishedTable, "*", filters, newestFirst, &tracks); err != nil {
		return nil, fmt.Errorf("failed to list approved tracks: %w", err)
	}

	approved := make([]*model.Track, 0, len(tracks))
	for _, t := range tracks {
		if model.IsApprovedID(t.ID) {
			t.State = model.TrackStatePublished
			approved = append(approved, t)
		}
	}
	return approved, nil
}

// ListPublishedIDs returns every id in the published collection. The approval
// flow scans the full set; suffixes are not contiguous, so a max-only query
// would not be safe against out-of-order deletions.
func (r *supabaseCatalogRepository) ListPublishedIDs(ctx context.Context) ([]string, error) {
	var rows []idRow
	filters := []supabase.Filter{supabase.Like("id", model.PublishedIDPrefix+"%")}
	if err := r.client.Select(ctx, publishedTable, "id", filters, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to list published ids: %w", err)
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// InsertPublished adds a track to the public catalog. The store enforces id
// uniqueness; a collision surfaces as ErrDuplicateID.
func (r *supabaseCatalogRepository) InsertPublished(ctx context.Context, track *model.Track) error {
	row := struct {
		ID         string `json:"id"`
		UserID     string `json:"user_id"`
		ArtistName string `json:"artist_name"`
		Title      string `json:"title"`
		Src        string `json:"src"`
		PfpURL     string `json:"pfp_url"`
		ArtistLink string `json:"artist_link"`
		BuyLink    string `json:"buy_link"`
		CreatedAt  string `json:"created_at"`
	}{
		ID:         track.ID,
		UserID:     track.UserID,
		ArtistName: track.ArtistName,
		Title:      track.Title,
		Src:        track.Src,
		PfpURL:     track.PfpURL,
		ArtistLink: track.ArtistLink,
		BuyLink:    track.BuyLink,
		CreatedAt:  track.CreatedAt.Format("2006-01-02T15:04:05.999999Z07:00"),
	}

	if err := r.client.Insert(ctx, publishedTable, row); err != nil {
		if supabase.IsDuplicate(err) {
			return fmt.Errorf("insert of %s: %w", track.ID, ErrDuplicateID)
		}
		return fmt.Errorf("failed to insert published track %s: %w", track.ID, err)
	}
	return nil
}

// DeletePending removes a track from the submission queue. Deleting an id that
// is already gone is not an error.
func (r *supabaseCatalogRepository) DeletePending(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, pendingTable, []supabase.Filter{supabase.Eq("id", id)}); err != nil {
		return fmt.Errorf("failed to delete pending track %s: %w", id, err)
	}
	return nil
}

// CountPending returns the size of the submission queue.
func (r *supabaseCatalogRepository) CountPending(ctx context.Context) (int, error) {
	n, err := r.client.Count(ctx, pendingTable, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending tracks: %w", err)
	}
	return n, nil
}

// CountPublishedAll returns the size of the whole public catalog.
func (r *supabaseCatalogRepository) CountPublishedAll(ctx context.Context) (int, error) {
	n, err := r.client.Count(ctx, publishedTable, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count published tracks: %w", err)
	}
	return n, nil
}

// CountPublishedApproved counts the approved view. Same numeric cut as
// ListPublishedApproved, computed over an id-only projection so no full rows
// are materialized.
func (r *supabaseCatalogRepository) CountPublishedApproved(ctx context.Context) (int, error) {
	ids, err := r.ListPublishedIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count approved tracks: %w", err)
	}
	n := 0
	for _, id := range ids {
		if model.IsApprovedID(id) {
			n++
		}
	}
	return n, nil
}
