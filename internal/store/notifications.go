package store

import (
	"sync"

	"github.com/social4sports/sportlink/internal/model"
)

// Notifications holds the current user's notification list. Like the chat
// state it has a single writer and is never persisted; the server is the
// source of truth and the list is refetched on startup.
type Notifications struct {
	mu    sync.RWMutex
	items []model.Notification
}

// NewNotifications creates an empty notification list.
func NewNotifications() *Notifications {
	return &Notifications{}
}

// Set replaces the list wholesale after a REST fetch.
func (n *Notifications) Set(items []model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = make([]model.Notification, len(items))
	copy(n.items, items)
}

// Add prepends a freshly arrived notification.
func (n *Notifications) Add(item model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append([]model.Notification{item}, n.items...)
}

// Remove drops a notification by ID.
func (n *Notifications) Remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Clear empties the list. Used on logout.
func (n *Notifications) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
}

// List returns a copy of the notifications, newest first.
func (n *Notifications) List() []model.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]model.Notification, len(n.items))
	copy(out, n.items)
	return out
}
