package model

import "time"

// RequestStatus is the lifecycle state of a friend request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Friend is an established friendship as seen by the current user.
type Friend struct {
	ID       string    `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	Since    time.Time `json:"since"`
}

// FriendRequest is a pending, accepted, or rejected connection request
// between two players.
type FriendRequest struct {
	ID        string        `json:"id"`
	Requester User          `json:"requester"`
	Recipient User          `json:"recipient"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt,omitempty"`
}

// ConnectionStatus is the derived relationship between the current user and
// a target player. It is computed from the friends and request lists, never
// stored.
type ConnectionStatus string

const (
	ConnectionNone            ConnectionStatus = "none"
	ConnectionPendingSent     ConnectionStatus = "pending-sent"
	ConnectionPendingReceived ConnectionStatus = "pending-received"
	ConnectionFriends         ConnectionStatus = "friends"
)
