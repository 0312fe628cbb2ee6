// Package view orchestrates conversation selection and derives view-ready
// projections from the conversation store. It holds no chat state of its
// own; everything is recomputed from the store on demand.
package view

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/internal/store"
	"github.com/social4sports/sportlink/pkg/logger"
)

// previewLimit caps last-message previews, in runes.
const previewLimit = 80

// HistoryFetcher is the REST backfill path for conversation history.
type HistoryFetcher interface {
	Conversation(ctx context.Context, peerID string, limit int) ([]model.Message, error)
}

// ReadSignaler emits the server-side read receipt over the live transport.
type ReadSignaler interface {
	MarkRead(peerID string)
	Connected() bool
}

// Summary is a view-ready projection of one conversation.
type Summary struct {
	PeerID       string
	Name         string
	Preview      string
	LastActivity time.Time
	Unread       int
	Online       bool
	Typing       bool
}

// Controller coordinates fetch-on-select and read acknowledgement.
type Controller struct {
	api          HistoryFetcher
	store        *store.Store
	transport    ReadSignaler
	historyLimit int
	logger       *logger.Logger
}

// New creates a view controller.
func New(api HistoryFetcher, st *store.Store, tr ReadSignaler, historyLimit int, log *logger.Logger) *Controller {
	return &Controller{
		api:          api,
		store:        st,
		transport:    tr,
		historyLimit: historyLimit,
		logger:       log.WithComponent("view"),
	}
}

// SelectPeer makes peerID the active conversation, backfills its history,
// and acknowledges reads locally and (when connected) over the wire.
//
// The backfill result is keyed by the peer it was fetched for, so a late
// response after another switch still lands in the right conversation.
func (c *Controller) SelectPeer(ctx context.Context, peerID string) error {
	c.store.SetActiveConversation(peerID)

	messages, err := c.api.Conversation(ctx, peerID, c.historyLimit)
	if err != nil {
		return fmt.Errorf("failed to backfill conversation with %s: %w", peerID, err)
	}
	c.store.ReplaceHistory(peerID, messages)
	c.store.MarkRead(peerID)

	if c.transport.Connected() {
		c.transport.MarkRead(peerID)
	}
	return nil
}

// Summaries projects the friends list into conversation summaries ordered by
// last-message recency, ties broken by name.
func (c *Controller) Summaries(friends []model.Friend) []Summary {
	summaries := make([]Summary, 0, len(friends))
	for _, friend := range friends {
		s := Summary{
			PeerID: friend.ID,
			Name:   friend.FullName,
			Unread: c.store.Unread(friend.ID),
			Online: c.store.Online(friend.ID),
			Typing: c.store.Typing(friend.ID),
		}
		if last := c.store.LastMessage(friend.ID); last != nil {
			s.Preview = preview(last.Content)
			s.LastActivity = last.CreatedAt
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].LastActivity.Equal(summaries[j].LastActivity) {
			return summaries[i].LastActivity.After(summaries[j].LastActivity)
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

func preview(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}
