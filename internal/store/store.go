// Package store holds the client's chat state: per-peer message lists,
// unread counters, presence and typing sets. It is the single writer of that
// state; the transport and dispatch layers funnel every mutation through it.
package store

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/pkg/logger"
	"github.com/social4sports/sportlink/pkg/metrics"
)

// conversation is the per-peer slice of chat state.
type conversation struct {
	messages []model.Message
	unread   int
}

// Store is the authoritative container for chat state. All mutations are
// atomic with respect to each other. Construct one per session with New;
// there is no package-level instance.
type Store struct {
	mu     sync.RWMutex
	active string
	convs  map[string]*conversation
	online map[string]struct{}
	typing map[string]struct{}
	seq    uint64

	cache  Cache
	logger *logger.Logger
}

// New creates a Store. When cache is non-nil a previously persisted snapshot
// is rehydrated; a corrupt snapshot is discarded and the store starts empty.
func New(cache Cache, log *logger.Logger) *Store {
	s := &Store{
		convs:  make(map[string]*conversation),
		online: make(map[string]struct{}),
		typing: make(map[string]struct{}),
		cache:  cache,
		logger: log.WithComponent("store"),
	}

	if cache != nil {
		snap, err := cache.Load()
		if err != nil {
			s.logger.Warn("discarding unreadable snapshot", zap.Error(err))
		} else if snap != nil {
			s.active = snap.ActivePeer
			for peerID, messages := range snap.Messages {
				s.convs[peerID] = &conversation{messages: messages}
			}
			for peerID, unread := range snap.UnreadCounts {
				s.conv(peerID).unread = unread
			}
			s.logger.Info("snapshot restored", zap.Int("conversations", len(s.convs)))
		}
	}

	return s
}

// conv returns the conversation for a peer, creating it if needed.
// Callers must hold the write lock.
func (s *Store) conv(peerID string) *conversation {
	c, ok := s.convs[peerID]
	if !ok {
		c = &conversation{}
		s.convs[peerID] = c
	}
	return c
}

// SetActiveConversation switches the active peer and zeroes its unread
// counter. Selecting the already-active peer is a no-op.
func (s *Store) SetActiveConversation(peerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == peerID {
		return
	}
	s.active = peerID
	s.conv(peerID).unread = 0
	s.persistLocked()
}

// MergeIncoming idempotently inserts a message into a peer's list. Messages
// without identity get a synthesized placeholder so they can still be
// deduplicated; a server identity later replaces the matching optimistic
// entry instead of duplicating it. Inbound messages for an inactive peer
// bump that peer's unread counter.
func (s *Store) MergeIncoming(peerID string, msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		s.seq++
		msg.ID = fmt.Sprintf("%s%s-%d-%d", model.LocalIDPrefix, peerID, s.seq, msg.CreatedAt.UnixNano())
		s.logger.Debug("synthesized placeholder identity", zap.String("id", msg.ID))
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	c := s.conv(peerID)
	merged, result := reconcile(c.messages, msg)
	metrics.MessagesMergedTotal.WithLabelValues(result.String()).Inc()

	if result == mergeDuplicate {
		s.logger.Debug("duplicate message dropped",
			zap.String("peer_id", peerID), zap.String("id", msg.ID))
		return
	}
	c.messages = merged

	if result == mergeInserted && msg.Inbound() && s.active != peerID {
		c.unread++
		s.publishUnreadLocked()
	}

	s.persistLocked()
}

// ReplaceHistory swaps a peer's message list wholesale after a REST backfill.
// Messages lacking identity are dropped as corrupt. Unread counters are not
// touched.
func (s *Store) ReplaceHistory(peerID string, messages []model.Message) {
	valid := make([]model.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == "" {
			s.logger.Warn("dropping backfilled message without identity",
				zap.String("peer_id", peerID), zap.Time("created_at", msg.CreatedAt))
			metrics.MessagesMergedTotal.WithLabelValues("dropped").Inc()
			continue
		}
		valid = append(valid, msg)
	}
	sortByCreatedAt(valid)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(peerID).messages = valid
	s.persistLocked()
}

// MarkRead zeroes a peer's unread counter. Individual readAt stamps are
// server-authoritative and never fabricated here.
func (s *Store) MarkRead(peerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv(peerID).unread = 0
	s.publishUnreadLocked()
	s.persistLocked()
}

// SetPresence replaces the online set wholesale. Presence broadcasts carry
// the complete set, so no incremental merge happens.
func (s *Store) SetPresence(peerIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = make(map[string]struct{}, len(peerIDs))
	for _, id := range peerIDs {
		s.online[id] = struct{}{}
	}
}

// SetTyping adds or removes a peer from the typing set.
func (s *Store) SetTyping(peerID string, isTyping bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isTyping {
		s.typing[peerID] = struct{}{}
	} else {
		delete(s.typing, peerID)
	}
}

// ClearAll wipes every conversation, counter, and the active-peer pointer,
// and removes the persisted snapshot. Used on logout.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = ""
	s.convs = make(map[string]*conversation)
	s.online = make(map[string]struct{})
	s.typing = make(map[string]struct{})
	metrics.UnreadMessages.Set(0)

	if s.cache != nil {
		if err := s.cache.Clear(); err != nil {
			s.logger.Warn("failed to clear snapshot", zap.Error(err))
		}
	}
}

// Messages returns a copy of a peer's message list, oldest first.
func (s *Store) Messages(peerID string) []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.convs[peerID]
	if !ok {
		return nil
	}
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastMessage returns the most recent message with a peer, or nil.
func (s *Store) LastMessage(peerID string) *model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.convs[peerID]
	if !ok || len(c.messages) == 0 {
		return nil
	}
	last := c.messages[len(c.messages)-1]
	return &last
}

// Unread returns a peer's unread counter.
func (s *Store) Unread(peerID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.convs[peerID]
	if !ok {
		return 0
	}
	return c.unread
}

// ActivePeer returns the currently selected peer, or "".
func (s *Store) ActivePeer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Online reports whether a peer is in the presence set.
func (s *Store) Online(peerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.online[peerID]
	return ok
}

// Typing reports whether a peer is currently typing to the user.
func (s *Store) Typing(peerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.typing[peerID]
	return ok
}

// Peers returns the IDs of every peer with a conversation.
func (s *Store) Peers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.convs))
	for peerID := range s.convs {
		out = append(out, peerID)
	}
	return out
}

// publishUnreadLocked refreshes the aggregate unread gauge.
// Callers must hold the lock.
func (s *Store) publishUnreadLocked() {
	total := 0
	for _, c := range s.convs {
		total += c.unread
	}
	metrics.UnreadMessages.Set(float64(total))
}

// persistLocked saves the durable snapshot. Callers must hold the lock.
// Persistence failures degrade to in-memory-only operation.
func (s *Store) persistLocked() {
	if s.cache == nil {
		return
	}

	snap := &Snapshot{
		ActivePeer:   s.active,
		Messages:     make(map[string][]model.Message, len(s.convs)),
		UnreadCounts: make(map[string]int, len(s.convs)),
	}
	for peerID, c := range s.convs {
		messages := make([]model.Message, len(c.messages))
		copy(messages, c.messages)
		snap.Messages[peerID] = messages
		if c.unread > 0 {
			snap.UnreadCounts[peerID] = c.unread
		}
	}

	if err := s.cache.Save(snap); err != nil {
		metrics.CacheWritesTotal.WithLabelValues("error").Inc()
		s.logger.Warn("failed to persist snapshot", zap.Error(err))
		return
	}
	metrics.CacheWritesTotal.WithLabelValues("ok").Inc()
}
