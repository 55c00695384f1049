package model

import "time"

// TrackState is the lifecycle state of a track. The store encodes state in the
// id prefix at rest ("pen-" / "audio-"); the repository translates that to an
// explicit state at its boundary so nothing above it infers state from id text.
type TrackState string

const (
	TrackStatePending   TrackState = "pending"
	TrackStatePublished TrackState = "published"
)

// Track represents an audio track in either the pending queue or the published
// catalog. Fields mirror the store's column names.
type Track struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	ArtistName string     `json:"artist_name"`
	Title      string     `json:"title"`
	Src        string     `json:"src"`
	Cover      string     `json:"cover,omitempty"`
	PfpURL     string     `json:"pfp_url,omitempty"`
	ArtistLink string     `json:"artist_link,omitempty"`
	BuyLink    string     `json:"buy_link,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	State      TrackState `json:"state,omitempty"`
}
