package repository

import (
	"context"
	"fmt"

	"NoLabelPanel/model"
	"NoLabelPanel/supabase"
)

const (
	profilesTable   = "profiles"
	moderatorsTable = "allowed_moderators"
)

// ModeratorRepository reads the collections the session gate decides on:
// profiles (identity -> artist name) and the moderator allowlist.
type ModeratorRepository interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	IsAllowedModerator(ctx context.Context, artistName string) (bool, error)
}

type supabaseModeratorRepository struct {
	client *supabase.Client
}

// NewSupabaseModeratorRepository creates a new instance of supabaseModeratorRepository.
func NewSupabaseModeratorRepository(client *supabase.Client) ModeratorRepository {
	return &supabaseModeratorRepository{client: client}
}

// GetProfile returns the profile row for an authenticated identity.
func (r *supabaseModeratorRepository) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	err := r.client.SelectOne(ctx, profilesTable, "artist_name", []supabase.Filter{supabase.Eq("id", userID)}, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}
	return profile, nil
}

// IsAllowedModerator reports whether artistName has an allowlist row. A
// missing row is (false, nil); only other store failures surface as errors.
func (r *supabaseModeratorRepository) IsAllowedModerator(ctx context.Context, artistName string) (bool, error) {
	var row struct {
		ArtistName string `json:"artist_name"`
	}
	err := r.client.SelectOne(ctx, moderatorsTable, "artist_name", []supabase.Filter{supabase.Eq("artist_name", artistName)}, &row)
	if err != nil {
		if supabase.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check allowlist for %s: %w", artistName, err)
	}
	return true, nil
}
