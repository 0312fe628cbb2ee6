package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/social4sports/sportlink/internal/model"
)

// Friends lists the current user's friends.
func (c *Client) Friends(ctx context.Context) ([]model.Friend, error) {
	var friends []model.Friend
	if err := c.get(ctx, "/friends", &friends); err != nil {
		return nil, fmt.Errorf("failed to fetch friends: %w", err)
	}
	return friends, nil
}

// SentRequests lists friend requests the current user has sent.
func (c *Client) SentRequests(ctx context.Context) ([]model.FriendRequest, error) {
	var requests []model.FriendRequest
	if err := c.get(ctx, "/friends/requests/sent", &requests); err != nil {
		return nil, fmt.Errorf("failed to fetch sent requests: %w", err)
	}
	return requests, nil
}

// ReceivedRequests lists friend requests addressed to the current user.
func (c *Client) ReceivedRequests(ctx context.Context) ([]model.FriendRequest, error) {
	var requests []model.FriendRequest
	if err := c.get(ctx, "/friends/requests/received", &requests); err != nil {
		return nil, fmt.Errorf("failed to fetch received requests: %w", err)
	}
	return requests, nil
}

// SendFriendRequest sends a connection request to another player. The server
// answers 409 when a request to that player already exists.
func (c *Client) SendFriendRequest(ctx context.Context, recipientID string) (*model.FriendRequest, error) {
	body := map[string]string{"recipientId": recipientID}
	var request model.FriendRequest
	if err := c.post(ctx, "/friends/requests", body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// RespondFriendRequest accepts or declines a received friend request.
func (c *Client) RespondFriendRequest(ctx context.Context, requestID string, accept bool) (*model.FriendRequest, error) {
	body := map[string]bool{"accept": accept}
	var request model.FriendRequest
	if err := c.put(ctx, "/friends/requests/"+url.PathEscape(requestID), body, &request); err != nil {
		return nil, fmt.Errorf("failed to respond to friend request: %w", err)
	}
	return &request, nil
}
