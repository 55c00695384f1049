package moderation

import (
	"errors"
	"fmt"
)

// ErrTrackNotFound is returned by Approve when the pending id does not exist.
// Nothing has been mutated when it is returned.
var ErrTrackNotFound = errors.New("pending track not found")

// ErrIDConflict is returned when the freshly allocated published id was taken
// between the allocation scan and the insert, i.e. another moderator won the
// race. The pending record is untouched; re-approving re-scans and gets a
// fresh number.
var ErrIDConflict = errors.New("published id conflict, retry approval")

// OrphanError reports a half-finished approval: the published record was
// inserted but deleting the pending record failed, so the track is visible in
// both collections until reconciled by hand. It is not rolled back.
type OrphanError struct {
	PendingID   string
	PublishedID string
	Err         error
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("track published as %s but pending record %s could not be deleted: %v",
		e.PublishedID, e.PendingID, e.Err)
}

func (e *OrphanError) Unwrap() error {
	return e.Err
}
