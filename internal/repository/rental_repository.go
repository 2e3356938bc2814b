package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
)

const rentalColumns = `id, renter_id, space_renter_id, space_index, start_date, end_date, status, total_cost, notes, session_discussion_id, created_at, updated_at`

// RentalRepository persists space rentals.
type RentalRepository struct {
	db *sqlx.DB
}

// NewRentalRepository constructs the repository.
func NewRentalRepository(db *sqlx.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

// FindByID returns a rental by identifier.
func (r *RentalRepository) FindByID(ctx context.Context, id string) (*models.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE id = $1`, rentalColumns)
	var rental models.Rental
	if err := r.db.GetContext(ctx, &rental, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}
	return &rental, nil
}

// List returns rentals matching the filter, soonest first.
func (r *RentalRepository) List(ctx context.Context, filter models.RentalFilter) ([]models.Rental, int, error) {
	var conditions []string
	var args []interface{}
	if filter.RenterID != "" {
		args = append(args, filter.RenterID)
		conditions = append(conditions, fmt.Sprintf("renter_id = $%d", len(args)))
	}
	if filter.SpaceRenterID != "" {
		args = append(args, filter.SpaceRenterID)
		conditions = append(conditions, fmt.Sprintf("space_renter_id = $%d", len(args)))
	}
	if filter.ActiveOnly {
		args = append(args, models.RentalStatusActive)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	listQuery := fmt.Sprintf(`SELECT %s FROM rentals%s ORDER BY start_date ASC LIMIT %d OFFSET %d`, rentalColumns, where, limit, offset)
	var rentals []models.Rental
	if err := r.db.SelectContext(ctx, &rentals, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list rentals: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM rentals`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count rentals: %w", err)
	}
	return rentals, total, nil
}

// ListBySpaceRenter returns every rental of a space renter, for exports.
func (r *RentalRepository) ListBySpaceRenter(ctx context.Context, spaceRenterID string) ([]models.Rental, error) {
	query := fmt.Sprintf(`SELECT %s FROM rentals WHERE space_renter_id = $1 ORDER BY start_date ASC`, rentalColumns)
	var rentals []models.Rental
	if err := r.db.SelectContext(ctx, &rentals, query, spaceRenterID); err != nil {
		return nil, fmt.Errorf("list space renter rentals: %w", err)
	}
	return rentals, nil
}

// ErrSpaceTaken is returned by Create when an active rental of the same space intersects the new one.
var ErrSpaceTaken = errors.New("space already rented for this window")

const overlapQuery = `SELECT EXISTS(SELECT 1 FROM rentals WHERE space_renter_id = $1 AND space_index = $2 AND status = $3 AND start_date < $5 AND end_date > $4)`

// Create inserts a new rental. The space renter row is locked for the duration of
// the overlap check and insert, so concurrent bookings of one renter serialise.
func (r *RentalRepository) Create(ctx context.Context, rental *models.Rental) (err error) {
	if rental.ID == "" {
		rental.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rental.CreatedAt = now
	rental.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rental tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var locked string
	if err = tx.GetContext(ctx, &locked, `SELECT id FROM space_renters WHERE id = $1 FOR UPDATE`, rental.SpaceRenterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("lock space renter: %w", err)
	}

	var taken bool
	if err = tx.GetContext(ctx, &taken, overlapQuery, rental.SpaceRenterID, rental.SpaceIndex, models.RentalStatusActive, rental.StartDate, rental.EndDate); err != nil {
		return fmt.Errorf("check rental overlap: %w", err)
	}
	if taken {
		return ErrSpaceTaken
	}

	const insert = `INSERT INTO rentals (id, renter_id, space_renter_id, space_index, start_date, end_date, status, total_cost, notes, session_discussion_id, created_at, updated_at) VALUES (:id, :renter_id, :space_renter_id, :space_index, :start_date, :end_date, :status, :total_cost, :notes, :session_discussion_id, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insert, rental); err != nil {
		return fmt.Errorf("create rental: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit rental tx: %w", err)
	}
	return nil
}

// UpdateStatus transitions a rental.
func (r *RentalRepository) UpdateStatus(ctx context.Context, id string, status models.RentalStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rentals SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update rental status: %w", err)
	}
	return expectAffected(res)
}

// SetSession associates the rental with a session discussion, or clears it when nil.
func (r *RentalRepository) SetSession(ctx context.Context, id string, discussionID *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rentals SET session_discussion_id = $2, updated_at = $3 WHERE id = $1`, id, discussionID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set rental session: %w", err)
	}
	return expectAffected(res)
}

// CompleteEnded marks active rentals whose window closed before now as completed.
func (r *RentalRepository) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE rentals SET status = $1, updated_at = $3 WHERE status = $2 AND end_date < $3`, models.RentalStatusCompleted, models.RentalStatusActive, now)
	if err != nil {
		return 0, fmt.Errorf("complete ended rentals: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
