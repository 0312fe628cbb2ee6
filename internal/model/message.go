// Package model defines data structures for the Social4Sports client.
package model

import (
	"strings"
	"time"
)

// SenderSelf is the sentinel sender value for messages originated by the
// current user.
const SenderSelf = "self"

// LocalIDPrefix marks placeholder identities synthesized on the client for
// messages that have not yet been assigned a server ID.
const LocalIDPrefix = "local-"

// Message represents a single chat message within a one-to-one conversation.
type Message struct {
	ID        string     `json:"id"`
	Sender    string     `json:"sender"`
	Recipient string     `json:"recipient,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// Local reports whether the message carries a client-synthesized placeholder
// identity rather than a server-assigned one.
func (m Message) Local() bool {
	return strings.HasPrefix(m.ID, LocalIDPrefix)
}

// Inbound reports whether the message was sent by the peer rather than the
// current user.
func (m Message) Inbound() bool {
	return m.Sender != SenderSelf
}
