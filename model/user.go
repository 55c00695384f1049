package model

// User is an authenticated identity resolved by the auth collaborator. The
// panel never stores credentials; it only interprets the identity it is given.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is a row of the profiles collection, keyed by identity.
type Profile struct {
	ArtistName string `json:"artist_name"`
}

// PlaybackState is the per-session player position. It replaces the ambient
// player globals of the old panel; each moderator session owns exactly one.
type PlaybackState struct {
	TrackID         string  `json:"trackId"`
	PositionSeconds float64 `json:"positionSeconds"`
	IsPlaying       bool    `json:"isPlaying"`
}
