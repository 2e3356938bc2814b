package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
	"github.com/meeplemeet/meeplemeet-api/pkg/jobs"
	"github.com/meeplemeet/meeplemeet-api/pkg/push"
)

// NotificationJobType identifies delivery jobs on the notification queue.
const NotificationJobType = "notification.deliver"

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, id string) error
	MarkExecuted(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type sessionLookup interface {
	FindByDiscussion(ctx context.Context, discussionID string) (*models.Session, error)
}

type discussionJoiner interface {
	Join(ctx context.Context, id, accountID string) (*models.Discussion, error)
}

type sessionJoiner interface {
	Join(ctx context.Context, discussionID, accountID string) (*models.Session, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// pushQueue never blocks the request; a full buffer drops the push, never the stored row.
type pushQueue interface {
	TryEnqueue(job jobs.Job) error
}

// SendNotificationRequest is an invitation payload.
type SendNotificationRequest struct {
	ReceiverID string                  `json:"receiver_id" validate:"required"`
	Type       models.NotificationType `json:"type" validate:"required,oneof=JOIN_DISCUSSION JOIN_SESSION"`
	TargetID   string                  `json:"target_id" validate:"required"`
}

// NotificationService stores invitations, executes them on acceptance and pushes them to devices.
type NotificationService struct {
	repo            notificationRepository
	accounts        ownerLookup
	discussions     discussionLookup
	sessions        sessionLookup
	discussionJoins discussionJoiner
	sessionJoins    sessionJoiner
	sender          push.Sender
	queue           pushQueue
	metrics         *MetricsService
	validator       *validator.Validate
	logger          *zap.Logger
}

// NotificationDeps groups the collaborators of NotificationService.
type NotificationDeps struct {
	Repo            notificationRepository
	Accounts        ownerLookup
	Discussions     discussionLookup
	Sessions        sessionLookup
	DiscussionJoins discussionJoiner
	SessionJoins    sessionJoiner
	Sender          push.Sender
	Metrics         *MetricsService
}

// NewNotificationService constructs the notification service. Without a queue, deliveries run inline.
func NewNotificationService(deps NotificationDeps, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sender := deps.Sender
	if sender == nil {
		sender = push.NopSender{}
	}
	return &NotificationService{
		repo:            deps.Repo,
		accounts:        deps.Accounts,
		discussions:     deps.Discussions,
		sessions:        deps.Sessions,
		discussionJoins: deps.DiscussionJoins,
		sessionJoins:    deps.SessionJoins,
		sender:          sender,
		metrics:         deps.Metrics,
		validator:       validate,
		logger:          logger,
	}
}

// SetQueue routes deliveries through a background queue.
func (s *NotificationService) SetQueue(queue pushQueue) {
	s.queue = queue
}

// Send validates and stores an invitation, then schedules its push.
func (s *NotificationService) Send(ctx context.Context, req SendNotificationRequest, actor *models.JWTClaims) (*models.Notification, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid notification payload")
	}
	if req.ReceiverID == actor.AccountID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot invite yourself")
	}
	if _, err := s.accounts.FindByID(ctx, req.ReceiverID); err != nil {
		return nil, mapLoadError(err, "receiver")
	}
	discussion, err := s.discussions.FindByID(ctx, req.TargetID)
	if err != nil {
		return nil, mapLoadError(err, "discussion")
	}
	if err := requireParticipant(discussion, actor); err != nil {
		return nil, err
	}

	switch req.Type {
	case models.NotificationJoinDiscussion:
		if discussion.IsParticipant(req.ReceiverID) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "receiver already participates")
		}
	case models.NotificationJoinSession:
		session, err := s.sessions.FindByDiscussion(ctx, req.TargetID)
		if err != nil {
			return nil, mapLoadError(err, "session")
		}
		if !discussion.IsParticipant(req.ReceiverID) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "receiver must join the discussion first")
		}
		if session.HasParticipant(req.ReceiverID) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "receiver already joined the session")
		}
	}

	notification := &models.Notification{
		ReceiverID: req.ReceiverID,
		SenderID:   actor.AccountID,
		TargetID:   req.TargetID,
		Type:       req.Type,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, appErrors.Internal(err, "failed to send notification")
	}
	s.dispatch(ctx, *notification)
	return notification, nil
}

// NotifySession stores a JOIN_SESSION invitation for each receiver, then schedules its push.
func (s *NotificationService) NotifySession(ctx context.Context, discussionID, senderID string, receivers []string) {
	for _, receiver := range receivers {
		notification := &models.Notification{
			ReceiverID: receiver,
			SenderID:   senderID,
			TargetID:   discussionID,
			Type:       models.NotificationJoinSession,
		}
		if err := s.repo.Create(ctx, notification); err != nil {
			s.metrics.RecordNotification(string(notification.Type), false)
			s.logger.Warn("failed to store session invitation", zap.String("receiver_id", receiver), zap.Error(err))
			continue
		}
		s.dispatch(ctx, *notification)
	}
}

// ListMine returns the actor's notifications, newest first.
func (s *NotificationService) ListMine(ctx context.Context, unreadOnly bool, page, pageSize int, actor *models.JWTClaims) ([]models.Notification, *models.Pagination, error) {
	if err := requireActor(actor); err != nil {
		return nil, nil, err
	}
	filter := models.NotificationFilter{ReceiverID: actor.AccountID, UnreadOnly: unreadOnly, Page: page, PageSize: pageSize}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list notifications")
	}
	return items, models.NewPagination(page, pageSize, total), nil
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.loadOwned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return mapWriteError(err, "notification", "failed to mark notification read")
	}
	return nil
}

// Accept executes the invitation: the receiver joins the discussion or its session.
func (s *NotificationService) Accept(ctx context.Context, id string, actor *models.JWTClaims) (*models.Notification, error) {
	notification, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if notification.Executed {
		return nil, appErrors.Clone(appErrors.ErrConflict, "notification already accepted")
	}
	switch notification.Type {
	case models.NotificationJoinDiscussion:
		_, err = s.discussionJoins.Join(ctx, notification.TargetID, notification.ReceiverID)
	case models.NotificationJoinSession:
		_, err = s.sessionJoins.Join(ctx, notification.TargetID, notification.ReceiverID)
	default:
		err = appErrors.Clone(appErrors.ErrValidation, "unsupported notification type")
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkExecuted(ctx, id); err != nil {
		return nil, mapWriteError(err, "notification", "failed to accept notification")
	}
	notification.Read = true
	notification.Executed = true
	return notification, nil
}

// Delete removes a notification from the actor's inbox.
func (s *NotificationService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.loadOwned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "notification", "failed to delete notification")
	}
	return nil
}

// HandleDelivery is the queue handler: it pushes an already stored notification.
func (s *NotificationService) HandleDelivery(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(*models.Notification)
	if !ok || notification == nil {
		return fmt.Errorf("unexpected notification payload %T", job.Payload)
	}
	return s.deliver(ctx, notification)
}

// RecordDropped counts a delivery that exhausted its retries.
func (s *NotificationService) RecordDropped(job jobs.Job, err error) {
	notification, ok := job.Payload.(*models.Notification)
	if !ok || notification == nil {
		return
	}
	s.metrics.RecordNotification(string(notification.Type), false)
	s.logger.Warn("notification dropped", zap.String("receiver_id", notification.ReceiverID), zap.Error(err))
}

func (s *NotificationService) dispatch(ctx context.Context, notification models.Notification) {
	if s.queue == nil {
		if err := s.deliver(ctx, &notification); err != nil {
			s.metrics.RecordNotification(string(notification.Type), false)
			s.logger.Warn("notification delivery failed", zap.String("receiver_id", notification.ReceiverID), zap.Error(err))
		}
		return
	}
	job := jobs.Job{ID: notification.ID, Type: NotificationJobType, Payload: &notification}
	if err := s.queue.TryEnqueue(job); err != nil {
		s.RecordDropped(job, err)
	}
}

func (s *NotificationService) deliver(ctx context.Context, notification *models.Notification) error {
	receiver, err := s.accounts.FindByID(ctx, notification.ReceiverID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if receiver.PushToken == nil || *receiver.PushToken == "" {
		return nil
	}
	message := push.Message{
		Token: *receiver.PushToken,
		Title: notificationTitle(notification.Type),
		Body:  "Open MeepleMeet to respond",
		Data: map[string]string{
			"notification_id": notification.ID,
			"type":            string(notification.Type),
			"target_id":       notification.TargetID,
		},
	}
	if err := s.sender.Send(ctx, message); err != nil {
		return err
	}
	s.metrics.RecordNotification(string(notification.Type), true)
	return nil
}

func (s *NotificationService) loadOwned(ctx context.Context, id string, actor *models.JWTClaims) (*models.Notification, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "notification")
	}
	if notification.ReceiverID != actor.AccountID && actor.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "notification belongs to another account")
	}
	return notification, nil
}

func notificationTitle(t models.NotificationType) string {
	if t == models.NotificationJoinSession {
		return "You're invited to a game session"
	}
	return "You're invited to a discussion"
}
