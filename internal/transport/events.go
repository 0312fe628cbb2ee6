// Package transport maintains the live WebSocket connection to the
// messaging gateway and translates its event vocabulary into typed calls on
// the conversation store.
package transport

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire event names. The gateway has emitted both new_message and message for
// inbound chat payloads across versions; both are accepted.
const (
	EventPrivateMessage = "private_message"
	EventNewMessage     = "new_message"
	EventMessage        = "message"
	EventTyping         = "typing"
	EventStopTyping     = "stop_typing"
	EventMarkRead       = "mark_read"
	EventOnlineUsers    = "online_users"
)

// frame is the envelope every wire event travels in.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outboundMessage is the payload for private_message.
type outboundMessage struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

// peerSignal is the payload for outbound typing, stop_typing, and mark_read.
type peerSignal struct {
	PeerID string `json:"peerId"`
}

// typingEvent is the payload of inbound typing and stop_typing.
type typingEvent struct {
	From string `json:"from"`
}

// userRef decodes a participant reference that arrives either as a plain ID
// string or as an embedded user object.
type userRef string

func (u *userRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*u = userRef(id)
		return nil
	}

	var obj struct {
		ID    string `json:"id"`
		AltID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("participant is neither string nor object: %w", err)
	}
	if obj.ID != "" {
		*u = userRef(obj.ID)
	} else {
		*u = userRef(obj.AltID)
	}
	return nil
}

// wireMessage is an inbound chat message payload. The gateway has shipped
// both id and _id for identity; either is honored.
type wireMessage struct {
	ID        string     `json:"id"`
	AltID     string     `json:"_id"`
	Sender    userRef    `json:"sender"`
	Recipient userRef    `json:"recipient"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// identity returns the message's wire identity, preferring id over _id.
func (m wireMessage) identity() string {
	if m.ID != "" {
		return m.ID
	}
	return m.AltID
}

func decodeFrame(data []byte) (frame, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return frame{}, fmt.Errorf("failed to decode event frame: %w", err)
	}
	if f.Event == "" {
		return frame{}, fmt.Errorf("event frame missing event name")
	}
	return f, nil
}
