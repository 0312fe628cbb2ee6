package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/pkg/logger"
	"github.com/social4sports/sportlink/pkg/metrics"
)

// State is the adapter's connection lifecycle state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// ErrNoCredential indicates Connect was called without a usable session.
var ErrNoCredential = errors.New("transport: no session credential")

var errClosed = errors.New("transport: adapter closed")

// EventSink receives inbound gateway events translated into domain terms.
// The conversation store (via StoreSink) is the intended implementation, so
// every event funnels through its deduplicating merge.
type EventSink interface {
	HandleMessage(peerID string, msg model.Message)
	HandlePresence(peerIDs []string)
	HandleTyping(peerID string, isTyping bool)
}

// Credentials supplies the handshake token and the current user's identity,
// used to resolve which conversation an inbound message belongs to.
type Credentials interface {
	Token() string
	UserID() string
}

// Config holds transport settings.
type Config struct {
	// URL is the gateway base URL (ws:// or wss://).
	URL string
	// Namespace is the dedicated chat path tried first; the root path is
	// the fallback when its handshake fails.
	Namespace string

	DialTimeout       time.Duration
	ReconnectAttempts int
	ReconnectDelay    time.Duration
}

// Adapter owns at most one live connection to the realtime gateway.
//
// Lifecycle: Disconnected -> Connecting -> Connected, with Reconnecting
// entered on unexpected drop. Bounded constant-backoff retries; exhaustion
// settles into Disconnected until Connect is called again with a fresh
// credential. Outbound operations are silently dropped unless Connected;
// message durability is the REST path's job.
type Adapter struct {
	cfg    Config
	creds  Credentials
	sink   EventSink
	logger *logger.Logger

	mu     sync.Mutex // guards conn and writes to it
	conn   *websocket.Conn
	state  atomic.Int32
	closed atomic.Bool

	onState func(State)
}

// New creates a transport adapter. Events are funneled into sink.
func New(cfg Config, creds Credentials, sink EventSink, log *logger.Logger) *Adapter {
	return &Adapter{
		cfg:    cfg,
		creds:  creds,
		sink:   sink,
		logger: log.WithComponent("transport"),
	}
}

// OnStateChange registers a hook invoked on every state transition. Must be
// called before Connect.
func (a *Adapter) OnStateChange(fn func(State)) {
	a.onState = fn
}

// State returns the current lifecycle state.
func (a *Adapter) State() State {
	return State(a.state.Load())
}

// Connected reports whether the adapter holds a live connection.
func (a *Adapter) Connected() bool {
	return a.State() == StateConnected
}

// Connect establishes the gateway connection. On handshake failure it runs
// the bounded reconnect policy before giving up.
func (a *Adapter) Connect(ctx context.Context) error {
	if a.creds.Token() == "" {
		return ErrNoCredential
	}
	a.closed.Store(false)
	a.setState(StateConnecting)

	conn, err := a.dial(ctx)
	if err != nil {
		a.logger.Warn("initial handshake failed", zap.Error(err))
		return a.reconnect()
	}

	a.setConn(conn)
	a.setState(StateConnected)
	go a.readLoop(conn)
	return nil
}

// Close tears down the connection and suppresses automatic reconnection
// until the next Connect. Used on logout and shutdown.
func (a *Adapter) Close() {
	a.closed.Store(true)
	a.mu.Lock()
	if a.conn != nil {
		a.conn.Close()
		a.conn = nil
	}
	a.mu.Unlock()
	a.setState(StateDisconnected)
}

// SendMessage emits a private_message for near-instant delivery to the peer.
// Dropped when not connected; the REST path carries durability.
func (a *Adapter) SendMessage(peerID, content string) {
	a.emit(EventPrivateMessage, outboundMessage{To: peerID, Content: content})
}

// StartTyping signals that the user is typing to a peer.
func (a *Adapter) StartTyping(peerID string) {
	a.emit(EventTyping, peerSignal{PeerID: peerID})
}

// StopTyping signals that the user stopped typing to a peer.
func (a *Adapter) StopTyping(peerID string) {
	a.emit(EventStopTyping, peerSignal{PeerID: peerID})
}

// MarkRead signals a server-side read receipt for a peer's conversation.
func (a *Adapter) MarkRead(peerID string) {
	a.emit(EventMarkRead, peerSignal{PeerID: peerID})
}

func (a *Adapter) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: a.cfg.DialTimeout}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+a.creds.Token())

	target := a.cfg.URL + a.cfg.Namespace
	conn, _, err := dialer.DialContext(ctx, target, header)
	if err == nil {
		return conn, nil
	}

	if a.cfg.Namespace == "" {
		return nil, err
	}

	// Dedicated namespace unavailable; fall back to the default channel.
	a.logger.Warn("namespace handshake failed, trying default channel",
		zap.String("namespace", a.cfg.Namespace), zap.Error(err))
	conn, _, err = dialer.DialContext(ctx, a.cfg.URL, header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (a *Adapter) setConn(conn *websocket.Conn) {
	a.mu.Lock()
	if a.conn != nil {
		a.conn.Close()
	}
	a.conn = conn
	a.mu.Unlock()
}

func (a *Adapter) setState(next State) {
	prev := State(a.state.Swap(int32(next)))
	if prev == next {
		return
	}
	if next == StateConnected {
		metrics.SocketConnected.Set(1)
	} else {
		metrics.SocketConnected.Set(0)
	}
	a.logger.Info("state changed",
		zap.String("from", prev.String()), zap.String("to", next.String()))
	if a.onState != nil {
		a.onState(next)
	}
}

func (a *Adapter) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			if a.closed.Load() {
				a.setState(StateDisconnected)
				return
			}
			a.logger.Warn("connection dropped", zap.Error(err))
			a.reconnect()
			return
		}
		a.handleFrame(data)
	}
}

// reconnect runs the bounded retry policy. On success a fresh read loop is
// started; on exhaustion the adapter settles into Disconnected.
func (a *Adapter) reconnect() error {
	a.setState(StateReconnecting)

	var conn *websocket.Conn
	operation := func() error {
		if a.closed.Load() {
			return backoff.Permanent(errClosed)
		}
		metrics.SocketReconnectsTotal.Inc()

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.DialTimeout)
		defer cancel()

		c, err := a.dial(ctx)
		if err != nil {
			a.logger.Warn("reconnect attempt failed", zap.Error(err))
			return err
		}
		conn = c
		return nil
	}

	policy := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(a.cfg.ReconnectDelay),
		uint64(a.cfg.ReconnectAttempts),
	)
	if err := backoff.Retry(operation, policy); err != nil {
		a.setState(StateDisconnected)
		a.logger.Error("reconnect attempts exhausted", zap.Error(err))
		return err
	}

	a.setConn(conn)
	a.setState(StateConnected)
	go a.readLoop(conn)
	return nil
}

func (a *Adapter) emit(event string, payload any) {
	if a.State() != StateConnected {
		a.logger.Debug("dropping outbound event while not connected",
			zap.String("event", event))
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		a.logger.Error("failed to encode outbound event",
			zap.String("event", event), zap.Error(err))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conn == nil {
		return
	}
	if err := a.conn.WriteJSON(frame{Event: event, Data: data}); err != nil {
		a.logger.Warn("failed to write outbound event",
			zap.String("event", event), zap.Error(err))
		return
	}
	metrics.RecordSocketEvent(event, "outbound")
}

func (a *Adapter) handleFrame(data []byte) {
	f, err := decodeFrame(data)
	if err != nil {
		a.logger.Warn("discarding malformed frame", zap.Error(err))
		return
	}
	metrics.RecordSocketEvent(f.Event, "inbound")

	switch f.Event {
	case EventNewMessage, EventMessage:
		a.handleMessage(f.Data)

	case EventTyping:
		var ev typingEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			a.logger.Warn("malformed typing event", zap.Error(err))
			return
		}
		a.sink.HandleTyping(ev.From, true)

	case EventStopTyping:
		var ev typingEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			a.logger.Warn("malformed stop_typing event", zap.Error(err))
			return
		}
		a.sink.HandleTyping(ev.From, false)

	case EventOnlineUsers:
		var peerIDs []string
		if err := json.Unmarshal(f.Data, &peerIDs); err != nil {
			a.logger.Warn("malformed presence broadcast", zap.Error(err))
			return
		}
		a.sink.HandlePresence(peerIDs)

	default:
		a.logger.Debug("ignoring unknown event", zap.String("event", f.Event))
	}
}

// handleMessage resolves which conversation an inbound message belongs to
// and normalizes the sender to the "self" sentinel for own messages echoed
// back by the gateway.
func (a *Adapter) handleMessage(data json.RawMessage) {
	var wm wireMessage
	if err := json.Unmarshal(data, &wm); err != nil {
		a.logger.Warn("malformed message payload", zap.Error(err))
		return
	}

	self := a.creds.UserID()
	sender := string(wm.Sender)
	recipient := string(wm.Recipient)

	peerID := sender
	msgSender := sender
	if sender == self {
		peerID = recipient
		msgSender = model.SenderSelf
	}
	if peerID == "" {
		a.logger.Warn("message without resolvable peer dropped",
			zap.String("id", wm.identity()))
		return
	}

	a.sink.HandleMessage(peerID, model.Message{
		ID:        wm.identity(),
		Sender:    msgSender,
		Recipient: recipient,
		Content:   wm.Content,
		CreatedAt: wm.CreatedAt,
		ReadAt:    wm.ReadAt,
	})
}
