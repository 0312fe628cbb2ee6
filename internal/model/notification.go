package model

import "time"

// NotificationType identifies what a notification is about. The backend may
// introduce new types; unknown values are carried through untouched.
type NotificationType string

const (
	NotifyMatchInvite         NotificationType = "MatchInvite"
	NotifyMatchInviteAccepted NotificationType = "MatchInviteAccepted"
	NotifyMatchCancelled      NotificationType = "MatchCancelled"
	NotifyMatchDeclined       NotificationType = "MatchDeclined"
	NotifyFriendRequest       NotificationType = "FriendRequest"
	NotifyFriendAccepted      NotificationType = "FriendAccepted"
)

// Notification is a server-generated event addressed to the current user.
type Notification struct {
	ID        string           `json:"id"`
	Recipient string           `json:"recipient"`
	Actor     string           `json:"actor"`
	Type      NotificationType `json:"type"`
	Payload   map[string]any   `json:"payload,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
