package models

import (
	"database/sql/driver"
	"time"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
)

// Space is a rentable table or room offered by a space renter.
type Space struct {
	Seats       int     `json:"seats" validate:"gte=1"`
	CostPerHour float64 `json:"cost_per_hour" validate:"gte=0"`
}

// Spaces is persisted as JSONB; a rental addresses a space by index.
type Spaces []Space

// Value marshals the spaces for persistence.
func (s Spaces) Value() (driver.Value, error) {
	if s == nil {
		s = Spaces{}
	}
	return marshalJSONB([]Space(s), "spaces")
}

// Scan unmarshals the JSONB column.
func (s *Spaces) Scan(value interface{}) error {
	*s = Spaces{}
	return scanJSONB(value, (*[]Space)(s), "spaces")
}

// SpaceRenter is a venue renting out play spaces.
type SpaceRenter struct {
	ID           string            `db:"id" json:"id"`
	OwnerID      string            `db:"owner_id" json:"owner_id"`
	Name         string            `db:"name" json:"name"`
	Phone        string            `db:"phone" json:"phone"`
	Email        string            `db:"email" json:"email"`
	Website      string            `db:"website" json:"website"`
	Location     `json:"address"`
	OpeningHours availability.Week `db:"opening_hours" json:"opening_hours"`
	Spaces       Spaces            `db:"spaces" json:"spaces"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// Space returns the space at index, false when out of range.
func (r *SpaceRenter) Space(index int) (Space, bool) {
	if index < 0 || index >= len(r.Spaces) {
		return Space{}, false
	}
	return r.Spaces[index], true
}

// SpaceRenterFilter captures filtering criteria for listing space renters.
type SpaceRenterFilter struct {
	Search   string
	OwnerID  string
	Page     int
	PageSize int
}

// OpeningHoursView pairs the stored table with its display lines.
type OpeningHoursView struct {
	OpeningHours availability.Week `json:"opening_hours"`
	Lines        []string          `json:"lines"`
}
