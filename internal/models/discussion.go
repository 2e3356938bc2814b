package models

import (
	"time"

	"github.com/lib/pq"
)

// Discussion is a group conversation that can host one game session.
type Discussion struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	CreatorID    string         `db:"creator_id" json:"creator_id"`
	Participants pq.StringArray `db:"participants" json:"participants"`
	Admins       pq.StringArray `db:"admins" json:"admins"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// IsParticipant reports whether accountID belongs to the discussion.
func (d *Discussion) IsParticipant(accountID string) bool {
	return contains(d.Participants, accountID)
}

// IsAdmin reports whether accountID administers the discussion.
func (d *Discussion) IsAdmin(accountID string) bool {
	return contains(d.Admins, accountID)
}

// AddParticipant appends accountID if missing and reports whether it changed.
func (d *Discussion) AddParticipant(accountID string) bool {
	if d.IsParticipant(accountID) {
		return false
	}
	d.Participants = append(d.Participants, accountID)
	return true
}

// RemoveParticipant drops accountID from participants and admins.
func (d *Discussion) RemoveParticipant(accountID string) bool {
	before := len(d.Participants)
	d.Participants = without(d.Participants, accountID)
	d.Admins = without(d.Admins, accountID)
	return len(d.Participants) != before
}

// DiscussionMessage is a single message posted in a discussion.
type DiscussionMessage struct {
	ID           string    `db:"id" json:"id"`
	DiscussionID string    `db:"discussion_id" json:"discussion_id"`
	SenderID     string    `db:"sender_id" json:"sender_id"`
	Content      string    `db:"content" json:"content"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// MessageFilter pages through a discussion's messages, newest first.
type MessageFilter struct {
	DiscussionID string
	Page         int
	PageSize     int
}

func contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

func without(values []string, v string) pq.StringArray {
	out := make(pq.StringArray, 0, len(values))
	for _, item := range values {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
