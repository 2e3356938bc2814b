package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
)

const spaceRenterColumns = `id, owner_id, name, phone, email, website, address, latitude, longitude, opening_hours, spaces, created_at, updated_at`

// SpaceRenterRepository persists venues renting out play spaces.
type SpaceRenterRepository struct {
	db *sqlx.DB
}

// NewSpaceRenterRepository constructs the repository.
func NewSpaceRenterRepository(db *sqlx.DB) *SpaceRenterRepository {
	return &SpaceRenterRepository{db: db}
}

// FindByID returns a space renter by identifier.
func (r *SpaceRenterRepository) FindByID(ctx context.Context, id string) (*models.SpaceRenter, error) {
	query := fmt.Sprintf(`SELECT %s FROM space_renters WHERE id = $1`, spaceRenterColumns)
	var renter models.SpaceRenter
	if err := r.db.GetContext(ctx, &renter, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find space renter: %w", err)
	}
	return &renter, nil
}

// List returns space renters ordered by name together with the total count.
func (r *SpaceRenterRepository) List(ctx context.Context, filter models.SpaceRenterFilter) ([]models.SpaceRenter, int, error) {
	where, args := listConditions(filter.Search, filter.OwnerID)
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	listQuery := fmt.Sprintf(`SELECT %s FROM space_renters%s ORDER BY name ASC LIMIT %d OFFSET %d`, spaceRenterColumns, where, limit, offset)
	var renters []models.SpaceRenter
	if err := r.db.SelectContext(ctx, &renters, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list space renters: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM space_renters`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count space renters: %w", err)
	}
	return renters, total, nil
}

// Create inserts a new space renter.
func (r *SpaceRenterRepository) Create(ctx context.Context, renter *models.SpaceRenter) error {
	if renter.ID == "" {
		renter.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	renter.CreatedAt = now
	renter.UpdatedAt = now
	const query = `INSERT INTO space_renters (id, owner_id, name, phone, email, website, address, latitude, longitude, opening_hours, spaces, created_at, updated_at) VALUES (:id, :owner_id, :name, :phone, :email, :website, :address, :latitude, :longitude, :opening_hours, :spaces, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, renter); err != nil {
		return fmt.Errorf("create space renter: %w", err)
	}
	return nil
}

// Update stores every mutable column of the space renter.
func (r *SpaceRenterRepository) Update(ctx context.Context, renter *models.SpaceRenter) error {
	renter.UpdatedAt = time.Now().UTC()
	const query = `UPDATE space_renters SET name = :name, phone = :phone, email = :email, website = :website, address = :address, latitude = :latitude, longitude = :longitude, opening_hours = :opening_hours, spaces = :spaces, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, renter)
	if err != nil {
		return fmt.Errorf("update space renter: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a space renter; its rentals cascade.
func (r *SpaceRenterRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM space_renters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete space renter: %w", err)
	}
	return expectAffected(res)
}
