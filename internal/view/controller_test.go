package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/internal/store"
	"github.com/social4sports/sportlink/pkg/logger"
)

type fakeHistory struct {
	byPeer map[string][]model.Message
	err    error
	calls  []string
}

func (f *fakeHistory) Conversation(_ context.Context, peerID string, _ int) ([]model.Message, error) {
	f.calls = append(f.calls, peerID)
	if f.err != nil {
		return nil, f.err
	}
	return f.byPeer[peerID], nil
}

type fakeSignaler struct {
	connected bool
	marked    []string
}

func (f *fakeSignaler) MarkRead(peerID string) { f.marked = append(f.marked, peerID) }
func (f *fakeSignaler) Connected() bool        { return f.connected }

func msg(id, sender, content string, at time.Time) model.Message {
	return model.Message{ID: id, Sender: sender, Content: content, CreatedAt: at}
}

func TestSelectPeerBackfillsAndMarksRead(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{byPeer: map[string][]model.Message{
		"peer-a": {
			msg("m2", "peer-a", "second", base.Add(time.Minute)),
			msg("m1", "peer-a", "first", base),
		},
	}}
	signaler := &fakeSignaler{connected: true}
	st := store.New(nil, logger.NewNop())
	st.MergeIncoming("peer-a", msg("live", "peer-a", "pre-select", base.Add(-time.Hour)))

	c := New(history, st, signaler, 50, logger.NewNop())
	if err := c.SelectPeer(context.Background(), "peer-a"); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if st.ActivePeer() != "peer-a" {
		t.Fatalf("expected peer-a active, got %q", st.ActivePeer())
	}
	messages := st.Messages("peer-a")
	if len(messages) != 2 {
		t.Fatalf("expected history to replace wholesale, got %d messages", len(messages))
	}
	if messages[0].ID != "m1" || messages[1].ID != "m2" {
		t.Fatalf("expected backfill sorted ascending, got %s then %s", messages[0].ID, messages[1].ID)
	}
	if st.Unread("peer-a") != 0 {
		t.Fatalf("expected unread zeroed, got %d", st.Unread("peer-a"))
	}
	if len(signaler.marked) != 1 || signaler.marked[0] != "peer-a" {
		t.Fatalf("expected wire read receipt for peer-a, got %v", signaler.marked)
	}
}

func TestSelectPeerSkipsWireReceiptWhenDisconnected(t *testing.T) {
	history := &fakeHistory{byPeer: map[string][]model.Message{}}
	signaler := &fakeSignaler{connected: false}
	st := store.New(nil, logger.NewNop())

	c := New(history, st, signaler, 50, logger.NewNop())
	if err := c.SelectPeer(context.Background(), "peer-a"); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if len(signaler.marked) != 0 {
		t.Fatalf("expected no wire receipt while disconnected, got %v", signaler.marked)
	}
	if st.Unread("peer-a") != 0 {
		t.Fatalf("expected local mark-read regardless of connectivity")
	}
}

func TestSelectPeerBackfillFailureSurfacesError(t *testing.T) {
	history := &fakeHistory{err: errors.New("boom")}
	st := store.New(nil, logger.NewNop())
	base := time.Now()
	st.MergeIncoming("peer-a", msg("m1", "peer-a", "keep me", base))

	c := New(history, st, &fakeSignaler{}, 50, logger.NewNop())
	if err := c.SelectPeer(context.Background(), "peer-a"); err == nil {
		t.Fatalf("expected error from failed backfill")
	}

	// Prior messages stay; a failed read never clobbers state.
	if len(st.Messages("peer-a")) != 1 {
		t.Fatalf("expected existing messages untouched on failure")
	}
}

func TestSummariesOrderedByRecencyThenName(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := store.New(nil, logger.NewNop())
	st.MergeIncoming("peer-old", msg("m1", "peer-old", "old news", base))
	st.MergeIncoming("peer-new", msg("m2", "peer-new", "fresh", base.Add(time.Hour)))
	st.SetActiveConversation("peer-new")
	st.SetPresence([]string{"peer-old"})
	st.SetTyping("peer-new", true)

	c := New(&fakeHistory{}, st, &fakeSignaler{}, 50, logger.NewNop())
	friends := []model.Friend{
		{ID: "peer-quiet", FullName: "Quiet Quentin"},
		{ID: "peer-old", FullName: "Old Olive"},
		{ID: "peer-new", FullName: "New Nadia"},
	}

	summaries := c.Summaries(friends)
	if len(summaries) != 3 {
		t.Fatalf("expected three summaries, got %d", len(summaries))
	}
	if summaries[0].PeerID != "peer-new" || summaries[1].PeerID != "peer-old" {
		t.Fatalf("expected recency ordering, got %s then %s", summaries[0].PeerID, summaries[1].PeerID)
	}
	if summaries[2].PeerID != "peer-quiet" {
		t.Fatalf("expected peer without messages last, got %s", summaries[2].PeerID)
	}
	if !summaries[1].Online {
		t.Fatalf("expected online flag projected")
	}
	if !summaries[0].Typing {
		t.Fatalf("expected typing flag projected")
	}
	if summaries[0].Preview != "fresh" {
		t.Fatalf("expected last-message preview, got %q", summaries[0].Preview)
	}
}

func TestPreviewTruncatesLongContent(t *testing.T) {
	st := store.New(nil, logger.NewNop())
	long := ""
	for i := 0; i < 120; i++ {
		long += "x"
	}
	st.MergeIncoming("peer-a", msg("m1", "peer-a", long, time.Now()))

	c := New(&fakeHistory{}, st, &fakeSignaler{}, 50, logger.NewNop())
	summaries := c.Summaries([]model.Friend{{ID: "peer-a", FullName: "A"}})
	if got := len([]rune(summaries[0].Preview)); got != previewLimit+3 {
		t.Fatalf("expected preview truncated to %d runes plus ellipsis, got %d", previewLimit, got)
	}
}
