package store

import (
	"sort"
	"time"

	"github.com/social4sports/sportlink/internal/model"
)

// mergeResult classifies what a reconcile pass did with a candidate message.
type mergeResult int

const (
	// mergeInserted means the candidate was appended as a new message.
	mergeInserted mergeResult = iota
	// mergeDuplicate means a message with the same identity already exists.
	mergeDuplicate
	// mergeReplaced means the candidate's server identity superseded an
	// optimistic placeholder entry for the same logical send.
	mergeReplaced
)

func (r mergeResult) String() string {
	switch r {
	case mergeInserted:
		return "inserted"
	case mergeDuplicate:
		return "duplicate"
	case mergeReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// replaceWindow is how far apart an optimistic entry and its server-confirmed
// counterpart may be timestamped and still count as the same logical send.
const replaceWindow = 2 * time.Second

// reconcile merges a candidate message into an existing list and returns the
// new list plus the decision taken. It never mutates the input slice beyond
// appending; callers own the returned slice.
//
// A message with a server identity that matches an optimistic self-sent entry
// (same content, timestamps within replaceWindow) replaces that entry instead
// of appending a duplicate. The list is sorted ascending by CreatedAt after
// every change.
func reconcile(existing []model.Message, candidate model.Message) ([]model.Message, mergeResult) {
	for _, m := range existing {
		if m.ID == candidate.ID {
			return existing, mergeDuplicate
		}
	}

	if !candidate.Local() && candidate.Sender == model.SenderSelf {
		for i, m := range existing {
			if m.Local() && m.Sender == model.SenderSelf && m.Content == candidate.Content &&
				within(m.CreatedAt, candidate.CreatedAt, replaceWindow) {
				merged := make([]model.Message, len(existing))
				copy(merged, existing)
				merged[i] = candidate
				sortByCreatedAt(merged)
				return merged, mergeReplaced
			}
		}
	}

	merged := append(existing[:len(existing):len(existing)], candidate)
	sortByCreatedAt(merged)
	return merged, mergeInserted
}

func sortByCreatedAt(messages []model.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}

func within(a, b time.Time, window time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= window
}
