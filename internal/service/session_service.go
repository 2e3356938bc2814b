package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type sessionRepository interface {
	FindByDiscussion(ctx context.Context, discussionID string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, discussionID string) error
}

type discussionLookup interface {
	FindByID(ctx context.Context, id string) (*models.Discussion, error)
}

type rentalLinker interface {
	ForSession(ctx context.Context, rentalID, accountID string) (*models.RentalResourceInfo, error)
	AttachSession(ctx context.Context, rentalID, discussionID string) error
	DetachSession(ctx context.Context, rentalID string) error
}

type sessionNotifier interface {
	NotifySession(ctx context.Context, discussionID, senderID string, receivers []string)
}

// ErrRentalWindow rejects sessions scheduled outside their rental.
var ErrRentalWindow = appErrors.Clone(appErrors.ErrValidation, "Session time is outside the rental window")

// SessionRequest carries the fields of a discussion's game session.
type SessionRequest struct {
	Name         string          `json:"name" validate:"required,max=120"`
	GameID       string          `json:"game_id" validate:"max=64"`
	Date         time.Time       `json:"date" validate:"required"`
	Location     models.Location `json:"location"`
	Participants []string        `json:"participants" validate:"dive,required"`
	RentalID     *string         `json:"rental_id"`
}

// SessionService schedules the single game session of a discussion.
type SessionService struct {
	repo        sessionRepository
	discussions discussionLookup
	rentals     rentalLinker
	notifier    sessionNotifier
	checker     *availability.Validator
	availConfig availability.Config
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSessionService constructs the session service. notifier may be nil.
func NewSessionService(repo sessionRepository, discussions discussionLookup, rentals rentalLinker, notifier sessionNotifier, availConfig availability.Config, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		repo:        repo,
		discussions: discussions,
		rentals:     rentals,
		notifier:    notifier,
		checker:     availability.NewValidator(availConfig),
		availConfig: availConfig,
		validator:   validate,
		logger:      logger,
	}
}

// SetNotifier attaches the notifier once the notification service exists.
func (s *SessionService) SetNotifier(notifier sessionNotifier) {
	s.notifier = notifier
}

// Get returns the session of a discussion to one of its participants.
func (s *SessionService) Get(ctx context.Context, discussionID string, actor *models.JWTClaims) (*models.Session, error) {
	discussion, err := s.loadDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(discussion, actor); err != nil {
		return nil, err
	}
	return s.load(ctx, discussionID)
}

// Create schedules the session and invites the other discussion participants.
func (s *SessionService) Create(ctx context.Context, discussionID string, req SessionRequest, actor *models.JWTClaims) (*models.Session, error) {
	discussion, err := s.loadDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if err := requireDiscussionAdmin(discussion, actor); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByDiscussion(ctx, discussionID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "discussion already has a session")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, mapLoadError(err, "session")
	}

	session := &models.Session{DiscussionID: discussionID}
	if err := s.apply(ctx, session, discussion, req, actor); err != nil {
		return nil, err
	}
	if session.RentalID != nil {
		if err := s.rentals.AttachSession(ctx, *session.RentalID, discussionID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, session); err != nil {
		if session.RentalID != nil {
			_ = s.rentals.DetachSession(ctx, *session.RentalID)
		}
		return nil, appErrors.Internal(err, "failed to create session")
	}
	s.logger.Info("session created", zap.String("discussion_id", discussionID))

	if s.notifier != nil {
		var receivers []string
		for _, participant := range discussion.Participants {
			if participant != actor.AccountID && !session.HasParticipant(participant) {
				receivers = append(receivers, participant)
			}
		}
		if len(receivers) > 0 {
			s.notifier.NotifySession(ctx, discussionID, actor.AccountID, receivers)
		}
	}
	return session, nil
}

// Update replaces the session fields, moving the rental link if it changed.
func (s *SessionService) Update(ctx context.Context, discussionID string, req SessionRequest, actor *models.JWTClaims) (*models.Session, error) {
	discussion, err := s.loadDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if err := requireDiscussionAdmin(discussion, actor); err != nil {
		return nil, err
	}
	session, err := s.load(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	previousRental := session.RentalID
	if err := s.apply(ctx, session, discussion, req, actor); err != nil {
		return nil, err
	}
	moved := !sameRental(previousRental, session.RentalID)
	if moved && session.RentalID != nil {
		if err := s.rentals.AttachSession(ctx, *session.RentalID, discussionID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, session); err != nil {
		if moved && session.RentalID != nil {
			if detachErr := s.rentals.DetachSession(ctx, *session.RentalID); detachErr != nil {
				s.logger.Warn("failed to release rental after session update error", zap.String("rental_id", *session.RentalID), zap.Error(detachErr))
			}
		}
		return nil, mapWriteError(err, "session", "failed to update session")
	}
	// The previous rental stays linked until the session row no longer points at it.
	if moved && previousRental != nil {
		if err := s.rentals.DetachSession(ctx, *previousRental); err != nil {
			s.logger.Warn("failed to detach previous rental", zap.String("rental_id", *previousRental), zap.Error(err))
		}
	}
	return session, nil
}

// Delete removes the session and releases its rental. Discussion admins only.
func (s *SessionService) Delete(ctx context.Context, discussionID string, actor *models.JWTClaims) error {
	discussion, err := s.loadDiscussion(ctx, discussionID)
	if err != nil {
		return err
	}
	if err := requireDiscussionAdmin(discussion, actor); err != nil {
		return err
	}
	return s.remove(ctx, discussionID)
}

// Join adds a discussion participant to the session; used when an invitation is accepted.
func (s *SessionService) Join(ctx context.Context, discussionID, accountID string) (*models.Session, error) {
	discussion, err := s.loadDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if !discussion.IsParticipant(accountID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "join the discussion before its session")
	}
	session, err := s.load(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if session.HasParticipant(accountID) {
		return session, nil
	}
	session.Participants = append(session.Participants, accountID)
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, mapWriteError(err, "session", "failed to join session")
	}
	return session, nil
}

// ParticipantLeft drops an account that left the discussion from its session.
func (s *SessionService) ParticipantLeft(ctx context.Context, discussionID, accountID string) error {
	session, err := s.repo.FindByDiscussion(ctx, discussionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return mapLoadError(err, "session")
	}
	if !session.HasParticipant(accountID) {
		return nil
	}
	remaining := make(pq.StringArray, 0, len(session.Participants))
	for _, participant := range session.Participants {
		if participant != accountID {
			remaining = append(remaining, participant)
		}
	}
	session.Participants = remaining
	if err := s.repo.Update(ctx, session); err != nil {
		return mapWriteError(err, "session", "failed to update session")
	}
	return nil
}

// DiscussionDeleted releases the rental held by the discussion's session.
func (s *SessionService) DiscussionDeleted(ctx context.Context, discussionID string) error {
	err := s.remove(ctx, discussionID)
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
		return nil
	}
	return err
}

func (s *SessionService) remove(ctx context.Context, discussionID string) error {
	session, err := s.load(ctx, discussionID)
	if err != nil {
		return err
	}
	if session.RentalID != nil {
		if err := s.rentals.DetachSession(ctx, *session.RentalID); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, discussionID); err != nil {
		return mapWriteError(err, "session", "failed to delete session")
	}
	s.logger.Info("session deleted", zap.String("discussion_id", discussionID))
	return nil
}

// apply validates req and copies it onto session.
func (s *SessionService) apply(ctx context.Context, session *models.Session, discussion *models.Discussion, req SessionRequest, actor *models.JWTClaims) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Invalid(err, "invalid session payload")
	}

	loc := s.location()
	// Sessions are scheduled to the minute; the stored instant is the one checked.
	date := req.Date.In(loc).Truncate(time.Minute)
	tod := availability.TimeOfDayFrom(date)
	if err := s.checker.Validate(availability.Request{Date: &date, Time: &tod}); err != nil {
		var v *availability.Violation
		if errors.As(err, &v) {
			return appErrors.Invalid(v, v.Message)
		}
		return appErrors.Internal(err, "failed to validate session date")
	}

	participants := req.Participants
	if len(participants) == 0 {
		participants = []string{actor.AccountID}
	}
	unique := make(pq.StringArray, 0, len(participants))
	for _, participant := range participants {
		if !discussion.IsParticipant(participant) {
			return appErrors.Clone(appErrors.ErrValidation, "session participants must belong to the discussion")
		}
		if !contains(unique, participant) {
			unique = append(unique, participant)
		}
	}

	location := req.Location
	if req.RentalID != nil && *req.RentalID != "" {
		info, err := s.rentals.ForSession(ctx, *req.RentalID, actor.AccountID)
		if err != nil {
			return err
		}
		if !info.Compatible(&date, &tod, s.availConfig) {
			return appErrors.Clone(ErrRentalWindow, "")
		}
		if location.Name == "" {
			location.Name = info.ResourceAddress
		}
		rentalID := *req.RentalID
		session.RentalID = &rentalID
	} else {
		session.RentalID = nil
	}

	session.Name = req.Name
	session.GameID = req.GameID
	session.Date = date.UTC()
	session.Location = location
	session.Participants = unique
	return nil
}

func (s *SessionService) load(ctx context.Context, discussionID string) (*models.Session, error) {
	session, err := s.repo.FindByDiscussion(ctx, discussionID)
	if err != nil {
		return nil, mapLoadError(err, "session")
	}
	return session, nil
}

func (s *SessionService) loadDiscussion(ctx context.Context, id string) (*models.Discussion, error) {
	discussion, err := s.discussions.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "discussion")
	}
	return discussion, nil
}

func (s *SessionService) location() *time.Location {
	if s.availConfig.Location == nil {
		return time.UTC
	}
	return s.availConfig.Location
}

func sameRental(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}
