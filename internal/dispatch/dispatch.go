// Package dispatch coordinates outbound chat traffic: dual-path message
// delivery (REST for durability, socket for immediacy) and debounced
// typing-intent signals.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/internal/store"
	"github.com/social4sports/sportlink/pkg/logger"
)

// ErrEmptyMessage rejects sends whose content is empty after trimming.
var ErrEmptyMessage = errors.New("dispatch: message content is empty")

// MessageSender is the REST persistence path for outbound messages.
type MessageSender interface {
	SendMessage(ctx context.Context, peerID, content string) (model.Message, error)
}

// Emitter is the live delivery path for outbound messages and typing
// signals. Implementations drop emissions when not connected.
type Emitter interface {
	SendMessage(peerID, content string)
	StartTyping(peerID string)
	StopTyping(peerID string)
	Connected() bool
}

// Dispatcher is the single entry point for sending messages and signaling
// typing intent.
type Dispatcher struct {
	api       MessageSender
	store     *store.Store
	transport Emitter
	idle      time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a dispatcher. idle is the inactivity window after which a
// typing signal auto-expires into stop-typing.
func New(api MessageSender, st *store.Store, tr Emitter, idle time.Duration, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		api:       api,
		store:     st,
		transport: tr,
		idle:      idle,
		logger:    log.WithComponent("dispatch"),
		timers:    make(map[string]*time.Timer),
	}
}

// Send delivers a message to a peer. The REST call persists it first; on
// success the returned message is merged into the store as self-originated
// and, when the transport is live, emitted over the socket so the peer sees
// it immediately. On REST failure nothing is merged and the error is
// returned for the caller to surface; there is no automatic retry.
func (d *Dispatcher) Send(ctx context.Context, peerID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}

	msg, err := d.api.SendMessage(ctx, peerID, content)
	if err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}

	msg.Sender = model.SenderSelf
	d.store.MergeIncoming(peerID, msg)

	if d.transport.Connected() {
		d.transport.SendMessage(peerID, content)
	}
	return nil
}

// SetTypingIntent forwards the typing boolean to the transport immediately.
// A true signal (re)arms a per-peer inactivity timer that auto-fires the
// false signal after the idle window; repeated true signals just reset it.
func (d *Dispatcher) SetTypingIntent(peerID string, isTyping bool) {
	if isTyping {
		d.transport.StartTyping(peerID)
		d.armTimer(peerID)
		return
	}

	d.transport.StopTyping(peerID)
	d.cancelTimer(peerID)
}

func (d *Dispatcher) armTimer(peerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[peerID]; ok {
		t.Stop()
	}
	d.timers[peerID] = time.AfterFunc(d.idle, func() {
		d.SetTypingIntent(peerID, false)
	})
}

func (d *Dispatcher) cancelTimer(peerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[peerID]; ok {
		t.Stop()
		delete(d.timers, peerID)
	}
}

// Close cancels all in-flight typing timers.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for peerID, t := range d.timers {
		t.Stop()
		delete(d.timers, peerID)
	}
}
