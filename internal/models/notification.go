package models

import "time"

// NotificationType enumerates invitation kinds.
type NotificationType string

const (
	NotificationJoinDiscussion NotificationType = "JOIN_DISCUSSION"
	NotificationJoinSession    NotificationType = "JOIN_SESSION"
)

// Valid reports whether the type is supported.
func (t NotificationType) Valid() bool {
	return t == NotificationJoinDiscussion || t == NotificationJoinSession
}

// Notification is an invitation addressed to one account. TargetID is the discussion id
// for both types since a session is keyed by its discussion.
type Notification struct {
	ID         string           `db:"id" json:"id"`
	ReceiverID string           `db:"receiver_id" json:"receiver_id"`
	SenderID   string           `db:"sender_id" json:"sender_id"`
	TargetID   string           `db:"target_id" json:"target_id"`
	Type       NotificationType `db:"type" json:"type"`
	Read       bool             `db:"read" json:"read"`
	Executed   bool             `db:"executed" json:"executed"`
	SentAt     time.Time        `db:"sent_at" json:"sent_at"`
}

// NotificationFilter captures listing criteria for an account's inbox.
type NotificationFilter struct {
	ReceiverID string
	UnreadOnly bool
	Page       int
	PageSize   int
}
