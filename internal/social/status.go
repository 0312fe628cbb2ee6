// Package social implements the friend and match relationship helpers:
// derived connection status, request responses with optimistic updates, and
// the match lifecycle.
package social

import "github.com/social4sports/sportlink/internal/model"

// DeriveStatus computes the connection status between the current user and a
// target player from the friends list and the two request lists. It is a
// pure function of its inputs; the status is never stored.
//
// Friendship takes precedence over any stale pending request, so a backend
// that failed to clean up a request on acceptance never produces a
// contradictory answer.
func DeriveStatus(targetID string, friends []model.Friend, sent, received []model.FriendRequest) model.ConnectionStatus {
	for _, f := range friends {
		if f.ID == targetID {
			return model.ConnectionFriends
		}
	}
	for _, req := range sent {
		if req.Recipient.ID == targetID {
			return model.ConnectionPendingSent
		}
	}
	for _, req := range received {
		if req.Requester.ID == targetID {
			return model.ConnectionPendingReceived
		}
	}
	return model.ConnectionNone
}
