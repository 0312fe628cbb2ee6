package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/social4sports/sportlink/internal/api"
	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/pkg/logger"
)

type fakeFriendAPI struct {
	friends  []model.Friend
	sent     []model.FriendRequest
	received []model.FriendRequest

	sendErr    error
	respondErr error
	responded  *model.FriendRequest
}

func (f *fakeFriendAPI) Friends(context.Context) ([]model.Friend, error) {
	return f.friends, nil
}

func (f *fakeFriendAPI) SentRequests(context.Context) ([]model.FriendRequest, error) {
	return f.sent, nil
}

func (f *fakeFriendAPI) ReceivedRequests(context.Context) ([]model.FriendRequest, error) {
	return f.received, nil
}

func (f *fakeFriendAPI) SendFriendRequest(_ context.Context, recipientID string) (*model.FriendRequest, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	req := model.FriendRequest{
		ID:        "req-new",
		Requester: model.User{ID: "me"},
		Recipient: model.User{ID: recipientID},
		Status:    model.RequestPending,
	}
	return &req, nil
}

func (f *fakeFriendAPI) RespondFriendRequest(context.Context, string, bool) (*model.FriendRequest, error) {
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	return f.responded, nil
}

func TestRespondAcceptAppendsSynthesizedFriend(t *testing.T) {
	requester := model.User{ID: "peer-x", FullName: "Xena", Email: "x@example.com", Avatar: "x.png"}
	backend := &fakeFriendAPI{
		received: []model.FriendRequest{{
			ID:        "req-1",
			Requester: requester,
			Recipient: model.User{ID: "me"},
			Status:    model.RequestPending,
		}},
		responded: &model.FriendRequest{
			ID:        "req-1",
			Requester: requester,
			Recipient: model.User{ID: "me"},
			Status:    model.RequestAccepted,
		},
	}
	svc := NewFriends(backend, "me", logger.NewNop())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	before := time.Now()
	if err := svc.Respond(context.Background(), "req-1", true); err != nil {
		t.Fatalf("respond failed: %v", err)
	}

	if len(svc.Received()) != 0 {
		t.Fatalf("expected request removed from received list")
	}
	friends := svc.FriendsList()
	if len(friends) != 1 {
		t.Fatalf("expected one synthesized friend, got %d", len(friends))
	}
	if friends[0].ID != "peer-x" || friends[0].FullName != "Xena" {
		t.Fatalf("expected counterpart identity, got %+v", friends[0])
	}
	if friends[0].Since.Before(before) || friends[0].Since.After(time.Now()) {
		t.Fatalf("expected since ~ now, got %v", friends[0].Since)
	}
	if got := svc.Status("peer-x"); got != model.ConnectionFriends {
		t.Fatalf("expected derived status friends, got %q", got)
	}
}

func TestRespondDeclineOnlyRemovesRequest(t *testing.T) {
	backend := &fakeFriendAPI{
		received: []model.FriendRequest{{
			ID:        "req-1",
			Requester: model.User{ID: "peer-x"},
			Recipient: model.User{ID: "me"},
		}},
		responded: &model.FriendRequest{
			ID:        "req-1",
			Requester: model.User{ID: "peer-x"},
			Recipient: model.User{ID: "me"},
			Status:    model.RequestRejected,
		},
	}
	svc := NewFriends(backend, "me", logger.NewNop())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if err := svc.Respond(context.Background(), "req-1", false); err != nil {
		t.Fatalf("respond failed: %v", err)
	}

	if len(svc.Received()) != 0 {
		t.Fatalf("expected request removed")
	}
	if len(svc.FriendsList()) != 0 {
		t.Fatalf("expected no friend appended on decline")
	}
}

func TestRespondFailureLeavesStateUnmodified(t *testing.T) {
	backend := &fakeFriendAPI{
		received: []model.FriendRequest{{
			ID:        "req-1",
			Requester: model.User{ID: "peer-x"},
			Recipient: model.User{ID: "me"},
		}},
		respondErr: errors.New("boom"),
	}
	svc := NewFriends(backend, "me", logger.NewNop())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if err := svc.Respond(context.Background(), "req-1", true); err == nil {
		t.Fatalf("expected error")
	}

	if len(svc.Received()) != 1 {
		t.Fatalf("expected received list untouched on failure")
	}
	if len(svc.FriendsList()) != 0 {
		t.Fatalf("expected friends list untouched on failure")
	}
}

func TestSendRequestRecoversExistingOnConflict(t *testing.T) {
	existing := model.FriendRequest{
		ID:        "req-dup",
		Requester: model.User{ID: "me"},
		Recipient: model.User{ID: "peer-x"},
		Status:    model.RequestPending,
	}
	backend := &fakeFriendAPI{
		sendErr: &api.Error{Status: 409, Message: "duplicate request"},
		sent:    []model.FriendRequest{existing},
	}
	svc := NewFriends(backend, "me", logger.NewNop())

	got, err := svc.SendRequest(context.Background(), "peer-x")
	if err != nil {
		t.Fatalf("expected conflict to be recovered, got %v", err)
	}
	if got.ID != "req-dup" {
		t.Fatalf("expected existing request returned, got %+v", got)
	}
}

func TestSendRequestConflictWithoutExistingFails(t *testing.T) {
	backend := &fakeFriendAPI{
		sendErr: &api.Error{Status: 409, Message: "duplicate request"},
	}
	svc := NewFriends(backend, "me", logger.NewNop())

	if _, err := svc.SendRequest(context.Background(), "peer-x"); err == nil {
		t.Fatalf("expected error when no existing request can be recovered")
	}
}

func TestSendRequestSuccessAppendsToSent(t *testing.T) {
	svc := NewFriends(&fakeFriendAPI{}, "me", logger.NewNop())

	if _, err := svc.SendRequest(context.Background(), "peer-x"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got := svc.Status("peer-x"); got != model.ConnectionPendingSent {
		t.Fatalf("expected pending-sent after send, got %q", got)
	}
}
