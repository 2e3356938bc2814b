package models

import (
	"time"

	"github.com/lib/pq"
)

// Session is the game session scheduled inside a discussion.
type Session struct {
	DiscussionID string         `db:"discussion_id" json:"discussion_id"`
	Name         string         `db:"name" json:"name"`
	GameID       string         `db:"game_id" json:"game_id"`
	Date         time.Time      `db:"date" json:"date"`
	Location     `json:"location"`
	Participants pq.StringArray `db:"participants" json:"participants"`
	RentalID     *string        `db:"rental_id" json:"rental_id,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether accountID takes part in the session.
func (s *Session) HasParticipant(accountID string) bool {
	return contains(s.Participants, accountID)
}
