package models

import (
	"time"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
)

// RentalStatus captures the rental lifecycle.
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusCompleted RentalStatus = "COMPLETED"
)

// Rental reserves one space of a space renter for a time window.
type Rental struct {
	ID                  string       `db:"id" json:"id"`
	RenterID            string       `db:"renter_id" json:"renter_id"`
	SpaceRenterID       string       `db:"space_renter_id" json:"space_renter_id"`
	SpaceIndex          int          `db:"space_index" json:"space_index"`
	StartDate           time.Time    `db:"start_date" json:"start_date"`
	EndDate             time.Time    `db:"end_date" json:"end_date"`
	Status              RentalStatus `db:"status" json:"status"`
	TotalCost           float64      `db:"total_cost" json:"total_cost"`
	Notes               string       `db:"notes" json:"notes"`
	SessionDiscussionID *string      `db:"session_discussion_id" json:"session_discussion_id,omitempty"`
	CreatedAt           time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at" json:"updated_at"`
}

// Window returns the reserved interval.
func (r Rental) Window() availability.Window {
	return availability.Window{Start: r.StartDate, End: r.EndDate}
}

// Active reports whether the rental still holds its slot.
func (r Rental) Active() bool {
	return r.Status == RentalStatusActive
}

// RentalFilter captures filtering criteria for listing rentals.
type RentalFilter struct {
	RenterID      string
	SpaceRenterID string
	ActiveOnly    bool
	Page          int
	PageSize      int
}

// RentalResourceInfo is a read-only view joining a rental with the rented resource.
type RentalResourceInfo struct {
	Rental             Rental `json:"rental"`
	ResourceName       string `json:"resource_name"`
	ResourceAddress    string `json:"resource_address"`
	ResourceDetailInfo string `json:"resource_detail_info"`
}

// Compatible reports whether a session selected at date/tod fits the rental window.
func (i RentalResourceInfo) Compatible(date *time.Time, tod *availability.TimeOfDay, cfg availability.Config) bool {
	return availability.CheckRentalCompatibility(i.Rental.Window(), date, tod, cfg)
}
