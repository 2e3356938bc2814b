package models

import (
	"database/sql/driver"
	"time"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
)

// GameItem is one entry of a shop's game collection.
type GameItem struct {
	GameID   string `json:"game_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// GameCollection is persisted as JSONB.
type GameCollection []GameItem

// Value marshals the collection for persistence.
func (g GameCollection) Value() (driver.Value, error) {
	if g == nil {
		g = GameCollection{}
	}
	return marshalJSONB([]GameItem(g), "game collection")
}

// Scan unmarshals the JSONB column.
func (g *GameCollection) Scan(value interface{}) error {
	*g = GameCollection{}
	return scanJSONB(value, (*[]GameItem)(g), "game collection")
}

// Shop is a board game store listed on MeepleMeet.
type Shop struct {
	ID             string            `db:"id" json:"id"`
	OwnerID        string            `db:"owner_id" json:"owner_id"`
	Name           string            `db:"name" json:"name"`
	Phone          string            `db:"phone" json:"phone"`
	Email          string            `db:"email" json:"email"`
	Website        string            `db:"website" json:"website"`
	Location       `json:"address"`
	OpeningHours   availability.Week `db:"opening_hours" json:"opening_hours"`
	GameCollection GameCollection    `db:"game_collection" json:"game_collection"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// ShopFilter captures filtering criteria for listing shops.
type ShopFilter struct {
	Search   string
	OwnerID  string
	Page     int
	PageSize int
}
