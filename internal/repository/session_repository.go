package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
)

const sessionColumns = `discussion_id, name, game_id, date, address, latitude, longitude, participants, rental_id, created_at, updated_at`

// SessionRepository persists the game session attached to a discussion.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// FindByDiscussion returns the session of a discussion.
func (r *SessionRepository) FindByDiscussion(ctx context.Context, discussionID string) (*models.Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM game_sessions WHERE discussion_id = $1`, sessionColumns)
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, discussionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &session, nil
}

// Create inserts a session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	const query = `INSERT INTO game_sessions (discussion_id, name, game_id, date, address, latitude, longitude, participants, rental_id, created_at, updated_at) VALUES (:discussion_id, :name, :game_id, :date, :address, :latitude, :longitude, :participants, :rental_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Update stores every mutable field of the session.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()
	const query = `UPDATE game_sessions SET name = :name, game_id = :game_id, date = :date, address = :address, latitude = :latitude, longitude = :longitude, participants = :participants, rental_id = :rental_id, updated_at = :updated_at WHERE discussion_id = :discussion_id`
	res, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return expectAffected(res)
}

// Delete removes the session of a discussion.
func (r *SessionRepository) Delete(ctx context.Context, discussionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM game_sessions WHERE discussion_id = $1`, discussionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return expectAffected(res)
}
