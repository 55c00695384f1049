package moderation

import (
	"NoLabelPanel/model"
)

// NextPublishedID computes the next free published id from a full scan of the
// catalog's ids. The result is strictly greater than every numeric suffix in
// ids and never inside the reserved legacy range (audio-0..audio-20).
//
// Suffixes are not contiguous (deletions leave gaps), which is why this works
// from the complete id set instead of a stored counter: it stays correct after
// manual deletions, at the cost of an O(catalog) scan per approval. Approvals
// are human-rate events, so that trade is fine. Ids that are not of the exact
// form audio-<digits> are ignored.
func NextPublishedID(ids []string) string {
	nextNumber := model.LegacyMaxNumber
	for _, id := range ids {
		n, ok := model.ParsePublishedNumber(id)
		if !ok {
			continue
		}
		if n >= nextNumber {
			nextNumber = n + 1
		}
	}
	return model.PublishedID(nextNumber)
}
