package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/social4sports/sportlink/internal/model"
)

// Conversation fetches message history with a peer, oldest first. A non-zero
// before timestamp pages backwards; limit caps the page size.
func (c *Client) Conversation(ctx context.Context, peerID string, limit int) ([]model.Message, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/messages/" + url.PathEscape(peerID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var messages []model.Message
	if err := c.get(ctx, path, &messages); err != nil {
		return nil, fmt.Errorf("failed to fetch conversation with %s: %w", peerID, err)
	}
	return messages, nil
}

// SendMessage persists a message to a peer and returns it with its
// server-assigned identity.
func (c *Client) SendMessage(ctx context.Context, peerID, content string) (model.Message, error) {
	body := map[string]string{"content": content}
	var message model.Message
	if err := c.post(ctx, "/messages/"+url.PathEscape(peerID), body, &message); err != nil {
		return model.Message{}, fmt.Errorf("failed to send message to %s: %w", peerID, err)
	}
	return message, nil
}

// MarkMessageRead stamps a single message as read server-side.
func (c *Client) MarkMessageRead(ctx context.Context, messageID string) error {
	if err := c.put(ctx, "/messages/"+url.PathEscape(messageID)+"/read", nil, nil); err != nil {
		return fmt.Errorf("failed to mark message %s read: %w", messageID, err)
	}
	return nil
}
