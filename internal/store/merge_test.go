package store

import (
	"testing"
	"time"

	"github.com/social4sports/sportlink/internal/model"
)

func msg(id, sender, content string, at time.Time) model.Message {
	return model.Message{ID: id, Sender: sender, Content: content, CreatedAt: at}
}

func TestReconcileInsertsAndSorts(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	list, res := reconcile(nil, msg("m2", "peer-1", "second", base.Add(time.Minute)))
	if res != mergeInserted {
		t.Fatalf("expected insert, got %v", res)
	}
	list, res = reconcile(list, msg("m1", "peer-1", "first", base))
	if res != mergeInserted {
		t.Fatalf("expected insert, got %v", res)
	}

	if list[0].ID != "m1" || list[1].ID != "m2" {
		t.Fatalf("expected ascending createdAt order, got %s then %s", list[0].ID, list[1].ID)
	}
}

func TestReconcileDuplicateIdentityDropped(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	list, _ := reconcile(nil, msg("m1", "peer-1", "hi", base))

	again, res := reconcile(list, msg("m1", "peer-1", "hi", base))
	if res != mergeDuplicate {
		t.Fatalf("expected duplicate, got %v", res)
	}
	if len(again) != 1 {
		t.Fatalf("expected exactly one copy, got %d", len(again))
	}
}

func TestReconcileServerIdentityReplacesOptimistic(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	optimistic := msg(model.LocalIDPrefix+"abc", model.SenderSelf, "hello", base)
	list, _ := reconcile(nil, optimistic)

	confirmed := msg("srv-1", model.SenderSelf, "hello", base.Add(time.Second))
	list, res := reconcile(list, confirmed)
	if res != mergeReplaced {
		t.Fatalf("expected replacement, got %v", res)
	}
	if len(list) != 1 {
		t.Fatalf("expected single message after replacement, got %d", len(list))
	}
	if list[0].ID != "srv-1" {
		t.Fatalf("expected server identity to win, got %s", list[0].ID)
	}
}

func TestReconcileOptimisticOutsideWindowNotReplaced(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	optimistic := msg(model.LocalIDPrefix+"abc", model.SenderSelf, "hello", base)
	list, _ := reconcile(nil, optimistic)

	confirmed := msg("srv-1", model.SenderSelf, "hello", base.Add(replaceWindow+time.Second))
	list, res := reconcile(list, confirmed)
	if res != mergeInserted {
		t.Fatalf("expected insert outside tolerance window, got %v", res)
	}
	if len(list) != 2 {
		t.Fatalf("expected both messages kept, got %d", len(list))
	}
}

func TestReconcileInboundNeverReplacesOptimistic(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	optimistic := msg(model.LocalIDPrefix+"abc", model.SenderSelf, "hello", base)
	list, _ := reconcile(nil, optimistic)

	inbound := msg("srv-2", "peer-1", "hello", base)
	list, res := reconcile(list, inbound)
	if res != mergeInserted {
		t.Fatalf("expected inbound message to insert, got %v", res)
	}
	if len(list) != 2 {
		t.Fatalf("expected two messages, got %d", len(list))
	}
}

func TestReconcileSortInvariantAcrossArrivalOrders(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(3 * time.Minute),
		base,
		base.Add(time.Minute),
		base.Add(2 * time.Minute),
	}

	var list []model.Message
	for i, at := range times {
		list, _ = reconcile(list, msg(string(rune('a'+i)), "peer-1", "x", at))
		for j := 1; j < len(list); j++ {
			if list[j].CreatedAt.Before(list[j-1].CreatedAt) {
				t.Fatalf("list out of order after merge %d", i)
			}
		}
	}
}
