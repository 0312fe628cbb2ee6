package transport

import (
	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/internal/store"
)

// StoreSink funnels gateway events into the conversation store, which owns
// deduplication, ordering, and unread accounting.
type StoreSink struct {
	store *store.Store
}

// NewStoreSink binds an event sink to the conversation store.
func NewStoreSink(s *store.Store) *StoreSink {
	return &StoreSink{store: s}
}

func (s *StoreSink) HandleMessage(peerID string, msg model.Message) {
	s.store.MergeIncoming(peerID, msg)
}

func (s *StoreSink) HandlePresence(peerIDs []string) {
	s.store.SetPresence(peerIDs)
}

func (s *StoreSink) HandleTyping(peerID string, isTyping bool) {
	s.store.SetTyping(peerID, isTyping)
}
