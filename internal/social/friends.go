package social

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/social4sports/sportlink/internal/api"
	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/pkg/logger"
)

// FriendAPI is the REST surface the friend service consumes.
type FriendAPI interface {
	Friends(ctx context.Context) ([]model.Friend, error)
	SentRequests(ctx context.Context) ([]model.FriendRequest, error)
	ReceivedRequests(ctx context.Context) ([]model.FriendRequest, error)
	SendFriendRequest(ctx context.Context, recipientID string) (*model.FriendRequest, error)
	RespondFriendRequest(ctx context.Context, requestID string, accept bool) (*model.FriendRequest, error)
}

// Friends holds the three relationship lists and derives connection status
// from them. Optimistic local updates after accept/decline are reconciled by
// the next Refresh.
type Friends struct {
	api    FriendAPI
	selfID string
	logger *logger.Logger

	mu       sync.RWMutex
	friends  []model.Friend
	sent     []model.FriendRequest
	received []model.FriendRequest
}

// NewFriends creates the friend relationship service for the given user.
func NewFriends(friendAPI FriendAPI, selfID string, log *logger.Logger) *Friends {
	return &Friends{
		api:    friendAPI,
		selfID: selfID,
		logger: log.WithComponent("friends"),
	}
}

// Refresh refetches all three lists. Each list is replaced only when its
// fetch succeeds; a failed fetch leaves the prior list untouched.
func (f *Friends) Refresh(ctx context.Context) error {
	var errs []error

	if friends, err := f.api.Friends(ctx); err != nil {
		errs = append(errs, err)
	} else {
		f.mu.Lock()
		f.friends = friends
		f.mu.Unlock()
	}

	if sent, err := f.api.SentRequests(ctx); err != nil {
		errs = append(errs, err)
	} else {
		f.mu.Lock()
		f.sent = sent
		f.mu.Unlock()
	}

	if received, err := f.api.ReceivedRequests(ctx); err != nil {
		errs = append(errs, err)
	} else {
		f.mu.Lock()
		f.received = received
		f.mu.Unlock()
	}

	return errors.Join(errs...)
}

// Status derives the connection status for a target player from the
// currently held lists.
func (f *Friends) Status(targetID string) model.ConnectionStatus {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return DeriveStatus(targetID, f.friends, f.sent, f.received)
}

// SendRequest sends a friend request. A 409 from the server means a request
// already exists; it is recovered from the sent list instead of failing.
func (f *Friends) SendRequest(ctx context.Context, recipientID string) (*model.FriendRequest, error) {
	request, err := f.api.SendFriendRequest(ctx, recipientID)
	if err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			if existing := f.recoverExisting(ctx, recipientID); existing != nil {
				f.logger.Info("recovered existing friend request",
					zap.String("recipient_id", recipientID))
				return existing, nil
			}
			return nil, fmt.Errorf("friend request to %s already exists: %w", recipientID, err)
		}
		return nil, fmt.Errorf("failed to send friend request: %w", err)
	}

	f.mu.Lock()
	f.sent = append(f.sent, *request)
	f.mu.Unlock()
	return request, nil
}

// recoverExisting refetches the sent list and looks for a request addressed
// to recipientID.
func (f *Friends) recoverExisting(ctx context.Context, recipientID string) *model.FriendRequest {
	sent, err := f.api.SentRequests(ctx)
	if err != nil {
		return nil
	}

	f.mu.Lock()
	f.sent = sent
	f.mu.Unlock()

	for i := range sent {
		if sent[i].Recipient.ID == recipientID {
			return &sent[i]
		}
	}
	return nil
}

// Respond accepts or declines a received request. On accept the counterpart
// is optimistically appended to the friends list with Since set to now; the
// next Refresh reconciles against the server. Failure leaves local state
// unmodified.
func (f *Friends) Respond(ctx context.Context, requestID string, accept bool) error {
	response, err := f.api.RespondFriendRequest(ctx, requestID, accept)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, req := range f.received {
		if req.ID == requestID {
			f.received = append(f.received[:i], f.received[i+1:]...)
			break
		}
	}

	if accept {
		counterpart := response.Requester
		if counterpart.ID == f.selfID {
			counterpart = response.Recipient
		}
		f.friends = append(f.friends, model.Friend{
			ID:       counterpart.ID,
			FullName: counterpart.FullName,
			Email:    counterpart.Email,
			Avatar:   counterpart.Avatar,
			Since:    time.Now(),
		})
	}
	return nil
}

// FriendsList returns a copy of the friends list.
func (f *Friends) FriendsList() []model.Friend {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.Friend, len(f.friends))
	copy(out, f.friends)
	return out
}

// Sent returns a copy of the sent-requests list.
func (f *Friends) Sent() []model.FriendRequest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.FriendRequest, len(f.sent))
	copy(out, f.sent)
	return out
}

// Received returns a copy of the received-requests list.
func (f *Friends) Received() []model.FriendRequest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.FriendRequest, len(f.received))
	copy(out, f.received)
	return out
}
