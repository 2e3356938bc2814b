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

const discussionColumns = `id, name, description, creator_id, participants, admins, created_at, updated_at`

// DiscussionRepository persists discussions and their messages.
type DiscussionRepository struct {
	db *sqlx.DB
}

// NewDiscussionRepository constructs the repository.
func NewDiscussionRepository(db *sqlx.DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

// FindByID returns a discussion by identifier.
func (r *DiscussionRepository) FindByID(ctx context.Context, id string) (*models.Discussion, error) {
	query := fmt.Sprintf(`SELECT %s FROM discussions WHERE id = $1`, discussionColumns)
	var discussion models.Discussion
	if err := r.db.GetContext(ctx, &discussion, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find discussion: %w", err)
	}
	return &discussion, nil
}

// ListByParticipant returns the discussions an account takes part in, most recently active first.
func (r *DiscussionRepository) ListByParticipant(ctx context.Context, accountID string) ([]models.Discussion, error) {
	query := fmt.Sprintf(`SELECT %s FROM discussions WHERE $1 = ANY(participants) ORDER BY updated_at DESC`, discussionColumns)
	var discussions []models.Discussion
	if err := r.db.SelectContext(ctx, &discussions, query, accountID); err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	return discussions, nil
}

// Create inserts a new discussion.
func (r *DiscussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	if discussion.ID == "" {
		discussion.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	discussion.CreatedAt = now
	discussion.UpdatedAt = now
	const query = `INSERT INTO discussions (id, name, description, creator_id, participants, admins, created_at, updated_at) VALUES (:id, :name, :description, :creator_id, :participants, :admins, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, discussion); err != nil {
		return fmt.Errorf("create discussion: %w", err)
	}
	return nil
}

// Update stores name, description and membership.
func (r *DiscussionRepository) Update(ctx context.Context, discussion *models.Discussion) error {
	discussion.UpdatedAt = time.Now().UTC()
	const query = `UPDATE discussions SET name = :name, description = :description, participants = :participants, admins = :admins, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, discussion)
	if err != nil {
		return fmt.Errorf("update discussion: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a discussion; its messages and session cascade.
func (r *DiscussionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete discussion: %w", err)
	}
	return expectAffected(res)
}

// CreateMessage appends a message and bumps the discussion's activity timestamp.
func (r *DiscussionRepository) CreateMessage(ctx context.Context, message *models.DiscussionMessage) (err error) {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin message tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO discussion_messages (id, discussion_id, sender_id, content, created_at) VALUES (:id, :discussion_id, :sender_id, :content, :created_at)`
	if _, err = tx.NamedExecContext(ctx, insert, message); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE discussions SET updated_at = $2 WHERE id = $1`, message.DiscussionID, message.CreatedAt); err != nil {
		return fmt.Errorf("touch discussion: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit message tx: %w", err)
	}
	return nil
}

// ListMessages pages through a discussion's messages, newest first.
func (r *DiscussionRepository) ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.DiscussionMessage, int, error) {
	limit, offset := pageBounds(filter.Page, filter.PageSize)
	query := fmt.Sprintf(`SELECT id, discussion_id, sender_id, content, created_at FROM discussion_messages WHERE discussion_id = $1 ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)
	var messages []models.DiscussionMessage
	if err := r.db.SelectContext(ctx, &messages, query, filter.DiscussionID); err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM discussion_messages WHERE discussion_id = $1`, filter.DiscussionID); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}
	return messages, total, nil
}
