package models

import "time"

// Role represents the available roles for the RBAC system.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Account is a MeepleMeet member stored in the accounts table.
type Account struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Handle       string     `db:"handle" json:"handle"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	PushToken    *string    `db:"push_token" json:"-"`
	ShopOwner    bool       `db:"shop_owner" json:"shop_owner"`
	SpaceRenter  bool       `db:"space_renter" json:"space_renter"`
	Role         Role       `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// NewPagination normalises page inputs the same way repositories do.
func NewPagination(page, size, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return &Pagination{Page: page, PageSize: size, TotalCount: total}
}

// Location is a named place with coordinates.
type Location struct {
	Name      string  `db:"address" json:"name"`
	Latitude  float64 `db:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `db:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
}
