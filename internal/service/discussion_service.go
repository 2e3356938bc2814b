package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type discussionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Discussion, error)
	ListByParticipant(ctx context.Context, accountID string) ([]models.Discussion, error)
	Create(ctx context.Context, discussion *models.Discussion) error
	Update(ctx context.Context, discussion *models.Discussion) error
	Delete(ctx context.Context, id string) error
	CreateMessage(ctx context.Context, message *models.DiscussionMessage) error
	ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.DiscussionMessage, int, error)
}

// discussionHooks lets the session layer react to membership changes.
type discussionHooks interface {
	ParticipantLeft(ctx context.Context, discussionID, accountID string) error
	DiscussionDeleted(ctx context.Context, discussionID string) error
}

// DiscussionRequest carries the editable discussion fields.
type DiscussionRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

// MessageRequest is a chat message payload.
type MessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// DiscussionService manages discussions, membership and messages.
type DiscussionService struct {
	repo      discussionRepository
	accounts  ownerLookup
	hooks     discussionHooks
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDiscussionService constructs the discussion service. hooks may be nil.
func NewDiscussionService(repo discussionRepository, accounts ownerLookup, hooks discussionHooks, validate *validator.Validate, logger *zap.Logger) *DiscussionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscussionService{repo: repo, accounts: accounts, hooks: hooks, validator: validate, logger: logger}
}

// SetHooks attaches the session hooks once both services exist.
func (s *DiscussionService) SetHooks(hooks discussionHooks) {
	s.hooks = hooks
}

// Create opens a discussion with the actor as its only participant and admin.
func (s *DiscussionService) Create(ctx context.Context, req DiscussionRequest, actor *models.JWTClaims) (*models.Discussion, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid discussion payload")
	}
	discussion := &models.Discussion{
		Name:         req.Name,
		Description:  req.Description,
		CreatorID:    actor.AccountID,
		Participants: pq.StringArray{actor.AccountID},
		Admins:       pq.StringArray{actor.AccountID},
	}
	if err := s.repo.Create(ctx, discussion); err != nil {
		return nil, appErrors.Internal(err, "failed to create discussion")
	}
	s.logger.Info("discussion created", zap.String("discussion_id", discussion.ID), zap.String("creator_id", actor.AccountID))
	return discussion, nil
}

// Get returns a discussion to one of its participants.
func (s *DiscussionService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Discussion, error) {
	discussion, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(discussion, actor); err != nil {
		return nil, err
	}
	return discussion, nil
}

// ListMine returns every discussion the actor takes part in.
func (s *DiscussionService) ListMine(ctx context.Context, actor *models.JWTClaims) ([]models.Discussion, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	discussions, err := s.repo.ListByParticipant(ctx, actor.AccountID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list discussions")
	}
	return discussions, nil
}

// Update renames or redescribes a discussion. Admins only.
func (s *DiscussionService) Update(ctx context.Context, id string, req DiscussionRequest, actor *models.JWTClaims) (*models.Discussion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid discussion payload")
	}
	discussion, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireDiscussionAdmin(discussion, actor); err != nil {
		return nil, err
	}
	discussion.Name = req.Name
	discussion.Description = req.Description
	if err := s.repo.Update(ctx, discussion); err != nil {
		return nil, mapWriteError(err, "discussion", "failed to update discussion")
	}
	return discussion, nil
}

// AddParticipant lets an admin add an existing account.
func (s *DiscussionService) AddParticipant(ctx context.Context, id, accountID string, actor *models.JWTClaims) (*models.Discussion, error) {
	discussion, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireDiscussionAdmin(discussion, actor); err != nil {
		return nil, err
	}
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, mapLoadError(err, "account")
	}
	if !discussion.AddParticipant(accountID) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "account already participates")
	}
	if err := s.repo.Update(ctx, discussion); err != nil {
		return nil, mapWriteError(err, "discussion", "failed to add participant")
	}
	return discussion, nil
}

// Join adds the account directly; used when an invitation is accepted.
func (s *DiscussionService) Join(ctx context.Context, id, accountID string) (*models.Discussion, error) {
	discussion, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !discussion.AddParticipant(accountID) {
		return discussion, nil
	}
	if err := s.repo.Update(ctx, discussion); err != nil {
		return nil, mapWriteError(err, "discussion", "failed to join discussion")
	}
	return discussion, nil
}

// RemoveParticipant removes an account. Admins may remove anyone but the creator; anyone may leave.
func (s *DiscussionService) RemoveParticipant(ctx context.Context, id, accountID string, actor *models.JWTClaims) (*models.Discussion, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	discussion, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.AccountID != accountID {
		if err := requireDiscussionAdmin(discussion, actor); err != nil {
			return nil, err
		}
	}
	if accountID == discussion.CreatorID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "the creator cannot leave; delete the discussion instead")
	}
	if !discussion.RemoveParticipant(accountID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "account is not a participant")
	}
	if err := s.repo.Update(ctx, discussion); err != nil {
		return nil, mapWriteError(err, "discussion", "failed to remove participant")
	}
	if s.hooks != nil {
		if err := s.hooks.ParticipantLeft(ctx, id, accountID); err != nil {
			s.logger.Warn("failed to drop session participant", zap.String("discussion_id", id), zap.Error(err))
		}
	}
	return discussion, nil
}

// SendMessage posts a message on behalf of a participant.
func (s *DiscussionService) SendMessage(ctx context.Context, id string, req MessageRequest, actor *models.JWTClaims) (*models.DiscussionMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid message payload")
	}
	if _, err := s.Get(ctx, id, actor); err != nil {
		return nil, err
	}
	message := &models.DiscussionMessage{DiscussionID: id, SenderID: actor.AccountID, Content: req.Content}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, appErrors.Internal(err, "failed to send message")
	}
	return message, nil
}

// ListMessages pages through a discussion's messages, newest first.
func (s *DiscussionService) ListMessages(ctx context.Context, filter models.MessageFilter, actor *models.JWTClaims) ([]models.DiscussionMessage, *models.Pagination, error) {
	if _, err := s.Get(ctx, filter.DiscussionID, actor); err != nil {
		return nil, nil, err
	}
	messages, total, err := s.repo.ListMessages(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list messages")
	}
	return messages, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Delete removes the discussion with its session and messages. Creator or admin role only.
func (s *DiscussionService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	discussion, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(actor, discussion.CreatorID); err != nil {
		return err
	}
	if s.hooks != nil {
		if err := s.hooks.DiscussionDeleted(ctx, id); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "discussion", "failed to delete discussion")
	}
	s.logger.Info("discussion deleted", zap.String("discussion_id", id))
	return nil
}

func (s *DiscussionService) load(ctx context.Context, id string) (*models.Discussion, error) {
	discussion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "discussion")
	}
	return discussion, nil
}

func requireParticipant(discussion *models.Discussion, actor *models.JWTClaims) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin || discussion.IsParticipant(actor.AccountID) {
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "not a participant of this discussion")
}

func requireDiscussionAdmin(discussion *models.Discussion, actor *models.JWTClaims) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin || discussion.IsAdmin(actor.AccountID) {
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "only discussion admins can do this")
}
