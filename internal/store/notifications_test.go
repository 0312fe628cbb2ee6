package store

import (
	"testing"

	"github.com/social4sports/sportlink/internal/model"
)

func TestNotificationsAddPrepends(t *testing.T) {
	n := NewNotifications()
	n.Set([]model.Notification{{ID: "old"}})
	n.Add(model.Notification{ID: "new"})

	items := n.List()
	if len(items) != 2 || items[0].ID != "new" {
		t.Fatalf("expected newest first, got %+v", items)
	}
}

func TestNotificationsRemove(t *testing.T) {
	n := NewNotifications()
	n.Set([]model.Notification{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	n.Remove("b")

	items := n.List()
	if len(items) != 2 {
		t.Fatalf("expected two items after remove, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == "b" {
			t.Fatalf("expected b removed")
		}
	}

	// Removing an unknown ID is a no-op.
	n.Remove("zzz")
	if got := len(n.List()); got != 2 {
		t.Fatalf("expected list unchanged, got %d items", got)
	}
}

func TestNotificationsClear(t *testing.T) {
	n := NewNotifications()
	n.Set([]model.Notification{{ID: "a"}})
	n.Clear()
	if got := len(n.List()); got != 0 {
		t.Fatalf("expected empty list after clear, got %d", got)
	}
}
