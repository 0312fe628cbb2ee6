package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/social4sports/sportlink/internal/model"
)

// Notifications lists the current user's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.get(ctx, "/notifications", &notifications); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// DeleteNotification removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	if err := c.delete(ctx, "/notifications/"+url.PathEscape(notificationID)); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
