package supabase

import (
	"errors"
	"fmt"
)

// PostgREST / Postgres error codes the panel has to recognize. Everything else
// is passed through opaquely.
const (
	codeNoRows          = "PGRST116" // single-object request matched no rows
	codeUniqueViolation = "23505"    // duplicate primary key on insert
)

// APIError is a failure reported by the store's REST layer.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("supabase: %s (http %d)", e.Message, e.Status)
}

// AuthError is a credential rejection from the auth service.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("supabase auth: %s", e.Message)
}

// IsNoRows reports whether err is the store's "no rows" signal for a
// single-object read.
func IsNoRows(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == codeNoRows
}

// IsDuplicate reports whether err is a primary-key uniqueness violation.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == codeUniqueViolation
}
