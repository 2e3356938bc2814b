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

const shopColumns = `id, owner_id, name, phone, email, website, address, latitude, longitude, opening_hours, game_collection, created_at, updated_at`

// ShopRepository persists board game shops.
type ShopRepository struct {
	db *sqlx.DB
}

// NewShopRepository constructs the repository.
func NewShopRepository(db *sqlx.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// FindByID returns a shop by identifier.
func (r *ShopRepository) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM shops WHERE id = $1`, shopColumns)
	var shop models.Shop
	if err := r.db.GetContext(ctx, &shop, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return &shop, nil
}

// List returns shops ordered by name together with the total count.
func (r *ShopRepository) List(ctx context.Context, filter models.ShopFilter) ([]models.Shop, int, error) {
	where, args := listConditions(filter.Search, filter.OwnerID)
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	listQuery := fmt.Sprintf(`SELECT %s FROM shops%s ORDER BY name ASC LIMIT %d OFFSET %d`, shopColumns, where, limit, offset)
	var shops []models.Shop
	if err := r.db.SelectContext(ctx, &shops, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list shops: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shops`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count shops: %w", err)
	}
	return shops, total, nil
}

// Create inserts a new shop.
func (r *ShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	if shop.ID == "" {
		shop.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	shop.CreatedAt = now
	shop.UpdatedAt = now
	const query = `INSERT INTO shops (id, owner_id, name, phone, email, website, address, latitude, longitude, opening_hours, game_collection, created_at, updated_at) VALUES (:id, :owner_id, :name, :phone, :email, :website, :address, :latitude, :longitude, :opening_hours, :game_collection, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, shop); err != nil {
		return fmt.Errorf("create shop: %w", err)
	}
	return nil
}

// Update stores every mutable column of the shop.
func (r *ShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	shop.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shops SET name = :name, phone = :phone, email = :email, website = :website, address = :address, latitude = :latitude, longitude = :longitude, opening_hours = :opening_hours, game_collection = :game_collection, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, shop)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a shop.
func (r *ShopRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	return expectAffected(res)
}

// listConditions builds the WHERE clause shared by shop and space renter listings.
func listConditions(search, ownerID string) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	if ownerID != "" {
		args = append(args, ownerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
