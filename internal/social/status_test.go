package social

import (
	"testing"

	"github.com/social4sports/sportlink/internal/model"
)

func lists() ([]model.Friend, []model.FriendRequest, []model.FriendRequest) {
	friends := []model.Friend{{ID: "friend-1", FullName: "Fran"}}
	sent := []model.FriendRequest{{
		ID:        "req-s",
		Requester: model.User{ID: "me"},
		Recipient: model.User{ID: "target-sent"},
		Status:    model.RequestPending,
	}}
	received := []model.FriendRequest{{
		ID:        "req-r",
		Requester: model.User{ID: "target-received"},
		Recipient: model.User{ID: "me"},
		Status:    model.RequestPending,
	}}
	return friends, sent, received
}

func TestDeriveStatusCases(t *testing.T) {
	friends, sent, received := lists()

	cases := []struct {
		target string
		want   model.ConnectionStatus
	}{
		{"friend-1", model.ConnectionFriends},
		{"target-sent", model.ConnectionPendingSent},
		{"target-received", model.ConnectionPendingReceived},
		{"stranger", model.ConnectionNone},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.target, friends, sent, received); got != tc.want {
			t.Fatalf("DeriveStatus(%q) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

func TestDeriveStatusFriendshipBeatsStaleRequest(t *testing.T) {
	// The request should have been removed on acceptance server-side; if
	// both exist the client must not show a contradictory state.
	friends := []model.Friend{{ID: "both"}}
	sent := []model.FriendRequest{{
		ID:        "stale",
		Recipient: model.User{ID: "both"},
		Status:    model.RequestPending,
	}}

	if got := DeriveStatus("both", friends, sent, nil); got != model.ConnectionFriends {
		t.Fatalf("expected friendship to win over stale request, got %q", got)
	}
}

func TestDeriveStatusIsDeterministic(t *testing.T) {
	friends, sent, received := lists()
	first := DeriveStatus("target-sent", friends, sent, received)
	for i := 0; i < 10; i++ {
		if got := DeriveStatus("target-sent", friends, sent, received); got != first {
			t.Fatalf("same inputs produced different outputs: %q vs %q", first, got)
		}
	}
}
