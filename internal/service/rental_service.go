package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/repository"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type rentalRepository interface {
	FindByID(ctx context.Context, id string) (*models.Rental, error)
	List(ctx context.Context, filter models.RentalFilter) ([]models.Rental, int, error)
	Create(ctx context.Context, rental *models.Rental) error
	UpdateStatus(ctx context.Context, id string, status models.RentalStatus) error
	SetSession(ctx context.Context, id string, discussionID *string) error
	CompleteEnded(ctx context.Context, now time.Time) (int64, error)
}

type spaceRenterLookup interface {
	FindByID(ctx context.Context, id string) (*models.SpaceRenter, error)
}

// CreateRentalRequest books one space. Dates are calendar days, times are "HH:mm" in the service zone.
type CreateRentalRequest struct {
	SpaceRenterID string                  `json:"space_renter_id" validate:"required"`
	SpaceIndex    int                     `json:"space_index" validate:"gte=0"`
	StartDate     string                  `json:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime     *availability.TimeOfDay `json:"start_time" validate:"required"`
	EndDate       string                  `json:"end_date" validate:"required,datetime=2006-01-02"`
	EndTime       *availability.TimeOfDay `json:"end_time" validate:"required"`
	Notes         string                  `json:"notes" validate:"max=500"`
}

// CompatibilityRequest asks whether a session date/time still fits a rental.
type CompatibilityRequest struct {
	RentalID string                  `json:"rental_id" validate:"required"`
	Date     *string                 `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time     *availability.TimeOfDay `json:"time"`
}

// CompatibilityResult is the checker verdict with the rental window for display.
type CompatibilityResult struct {
	Compatible bool   `json:"compatible"`
	Window     string `json:"window"`
}

// RentalService books spaces and answers availability questions about rentals.
type RentalService struct {
	repo        rentalRepository
	renters     spaceRenterLookup
	checker     *availability.Validator
	availConfig availability.Config
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewRentalService constructs the rental service.
func NewRentalService(repo rentalRepository, renters spaceRenterLookup, availConfig availability.Config, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RentalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentalService{
		repo:        repo,
		renters:     renters,
		checker:     availability.NewValidator(availConfig),
		availConfig: availConfig,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Create validates the selection against the space renter's opening hours and books the space.
func (s *RentalService) Create(ctx context.Context, req CreateRentalRequest, actor *models.JWTClaims) (*models.Rental, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid rental payload")
	}
	startDate, endDate, err := s.parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	renter, err := s.renters.FindByID(ctx, req.SpaceRenterID)
	if err != nil {
		return nil, mapLoadError(err, "space renter")
	}
	space, ok := renter.Space(req.SpaceIndex)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "space does not exist")
	}

	var hours availability.Week
	if len(renter.OpeningHours) > 0 {
		hours = renter.OpeningHours
	}
	endpoints := []availability.Request{
		{Date: &startDate, Time: req.StartTime, OpeningHours: hours, OtherDate: &endDate, OtherTime: req.EndTime, IsStart: true},
		{Date: &endDate, Time: req.EndTime, OpeningHours: hours, OtherDate: &startDate, OtherTime: req.StartTime, IsStart: false},
	}
	for _, endpoint := range endpoints {
		if err := s.checker.Validate(endpoint); err != nil {
			return nil, s.violation(err)
		}
	}

	loc := s.location()
	start := req.StartTime.On(startDate, loc)
	end := req.EndTime.On(endDate, loc)

	rental := &models.Rental{
		RenterID:      actor.AccountID,
		SpaceRenterID: renter.ID,
		SpaceIndex:    req.SpaceIndex,
		StartDate:     start.UTC(),
		EndDate:       end.UTC(),
		Status:        models.RentalStatusActive,
		TotalCost:     rentalCost(space, start, end),
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, rental); err != nil {
		switch {
		case errors.Is(err, repository.ErrSpaceTaken):
			return nil, appErrors.Clone(appErrors.ErrConflict, "space is already rented for this time")
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "space renter not found")
		}
		return nil, appErrors.Internal(err, "failed to create rental")
	}
	s.metrics.RecordRentalCreated()
	s.logger.Info("rental created",
		zap.String("rental_id", rental.ID),
		zap.String("space_renter_id", renter.ID),
		zap.Int("space_index", rental.SpaceIndex),
	)
	return rental, nil
}

// Get returns a rental visible to its renter, the space renter owner or an admin.
func (s *RentalService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Rental, error) {
	rental, _, err := s.loadVisible(ctx, id, actor)
	return rental, err
}

// ListMine returns the actor's rentals.
func (s *RentalService) ListMine(ctx context.Context, activeOnly bool, page, pageSize int, actor *models.JWTClaims) ([]models.Rental, *models.Pagination, error) {
	if err := requireActor(actor); err != nil {
		return nil, nil, err
	}
	filter := models.RentalFilter{RenterID: actor.AccountID, ActiveOnly: activeOnly, Page: page, PageSize: pageSize}
	return s.list(ctx, filter)
}

// ListForSpaceRenter returns the rentals of a space renter to its owner.
func (s *RentalService) ListForSpaceRenter(ctx context.Context, spaceRenterID string, activeOnly bool, page, pageSize int, actor *models.JWTClaims) ([]models.Rental, *models.Pagination, error) {
	renter, err := s.renters.FindByID(ctx, spaceRenterID)
	if err != nil {
		return nil, nil, mapLoadError(err, "space renter")
	}
	if err := ownerOrAdmin(actor, renter.OwnerID); err != nil {
		return nil, nil, err
	}
	filter := models.RentalFilter{SpaceRenterID: spaceRenterID, ActiveOnly: activeOnly, Page: page, PageSize: pageSize}
	return s.list(ctx, filter)
}

// Cancel releases an active rental. Rentals attached to a session must be detached first.
func (s *RentalService) Cancel(ctx context.Context, id string, actor *models.JWTClaims) (*models.Rental, error) {
	rental, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "rental")
	}
	if err := ownerOrAdmin(actor, rental.RenterID); err != nil {
		return nil, err
	}
	if !rental.Active() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "rental is not active")
	}
	if rental.SessionDiscussionID != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "rental is attached to a session")
	}
	if err := s.repo.UpdateStatus(ctx, id, models.RentalStatusCancelled); err != nil {
		return nil, mapWriteError(err, "rental", "failed to cancel rental")
	}
	rental.Status = models.RentalStatusCancelled
	s.logger.Info("rental cancelled", zap.String("rental_id", id))
	return rental, nil
}

// ResourceInfo returns the rental joined with its space renter and a display string.
func (s *RentalService) ResourceInfo(ctx context.Context, id string, actor *models.JWTClaims) (*models.RentalResourceInfo, error) {
	rental, renter, err := s.loadVisible(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return s.resourceInfo(rental, renter), nil
}

// CheckCompatibility reports whether the date/time still falls inside the rental window.
func (s *RentalService) CheckCompatibility(ctx context.Context, req CompatibilityRequest, actor *models.JWTClaims) (*CompatibilityResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid compatibility payload")
	}
	info, err := s.ResourceInfo(ctx, req.RentalID, actor)
	if err != nil {
		return nil, err
	}
	var date *time.Time
	if req.Date != nil {
		parsed, err := time.ParseInLocation(dateLayout, *req.Date, s.location())
		if err != nil {
			return nil, appErrors.Invalid(err, "invalid date")
		}
		date = &parsed
	}
	return &CompatibilityResult{
		Compatible: info.Compatible(date, req.Time, s.availConfig),
		Window:     info.ResourceDetailInfo,
	}, nil
}

// ForSession loads a rental the actor may attach to a session.
func (s *RentalService) ForSession(ctx context.Context, rentalID, accountID string) (*models.RentalResourceInfo, error) {
	rental, err := s.repo.FindByID(ctx, rentalID)
	if err != nil {
		return nil, mapLoadError(err, "rental")
	}
	if rental.RenterID != accountID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "rental belongs to another account")
	}
	if !rental.Active() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rental is not active")
	}
	renter, err := s.renters.FindByID(ctx, rental.SpaceRenterID)
	if err != nil {
		return nil, mapLoadError(err, "space renter")
	}
	return s.resourceInfo(rental, renter), nil
}

// AttachSession links a rental to the session of discussionID.
func (s *RentalService) AttachSession(ctx context.Context, rentalID, discussionID string) error {
	rental, err := s.repo.FindByID(ctx, rentalID)
	if err != nil {
		return mapLoadError(err, "rental")
	}
	if rental.SessionDiscussionID != nil && *rental.SessionDiscussionID != discussionID {
		return appErrors.Clone(appErrors.ErrConflict, "rental is already used by another session")
	}
	if err := s.repo.SetSession(ctx, rentalID, &discussionID); err != nil {
		return mapWriteError(err, "rental", "failed to attach rental")
	}
	return nil
}

// DetachSession clears a rental's session link.
func (s *RentalService) DetachSession(ctx context.Context, rentalID string) error {
	if err := s.repo.SetSession(ctx, rentalID, nil); err != nil {
		return mapWriteError(err, "rental", "failed to detach rental")
	}
	return nil
}

// CompleteEnded marks past rentals as completed.
func (s *RentalService) CompleteEnded(ctx context.Context) (int64, error) {
	n, err := s.repo.CompleteEnded(ctx, s.now().UTC())
	if err != nil {
		return 0, appErrors.Internal(err, "failed to complete rentals")
	}
	if n > 0 {
		s.logger.Info("rentals completed", zap.Int64("count", n))
	}
	return n, nil
}

func (s *RentalService) list(ctx context.Context, filter models.RentalFilter) ([]models.Rental, *models.Pagination, error) {
	rentals, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list rentals")
	}
	return rentals, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

func (s *RentalService) loadVisible(ctx context.Context, id string, actor *models.JWTClaims) (*models.Rental, *models.SpaceRenter, error) {
	if err := requireActor(actor); err != nil {
		return nil, nil, err
	}
	rental, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, mapLoadError(err, "rental")
	}
	renter, err := s.renters.FindByID(ctx, rental.SpaceRenterID)
	if err != nil {
		return nil, nil, mapLoadError(err, "space renter")
	}
	if actor.Role != models.RoleAdmin && actor.AccountID != rental.RenterID && actor.AccountID != renter.OwnerID {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "rental belongs to another account")
	}
	return rental, renter, nil
}

func (s *RentalService) resourceInfo(rental *models.Rental, renter *models.SpaceRenter) *models.RentalResourceInfo {
	return &models.RentalResourceInfo{
		Rental:             *rental,
		ResourceName:       renter.Name,
		ResourceAddress:    renter.Location.Name,
		ResourceDetailInfo: availability.DetailInfo(rental.Window(), s.availConfig),
	}
}

func (s *RentalService) parseDates(rawStart, rawEnd string) (time.Time, time.Time, error) {
	loc := s.location()
	start, err := time.ParseInLocation(dateLayout, rawStart, loc)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Invalid(err, "invalid start date")
	}
	end, err := time.ParseInLocation(dateLayout, rawEnd, loc)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Invalid(err, "invalid end date")
	}
	return start, end, nil
}

// violation converts an availability violation into a VALIDATION_ERROR carrying its advisory message.
func (s *RentalService) violation(err error) error {
	var v *availability.Violation
	if !errors.As(err, &v) {
		return appErrors.Internal(err, "failed to validate selection")
	}
	s.metrics.RecordAvailabilityViolation(v.Kind.String())
	return appErrors.Invalid(v, v.Message)
}

func (s *RentalService) location() *time.Location {
	if s.availConfig.Location == nil {
		return time.UTC
	}
	return s.availConfig.Location
}

func (s *RentalService) now() time.Time {
	if s.availConfig.Now == nil {
		return time.Now()
	}
	return s.availConfig.Now()
}

// rentalCost charges the space's hourly rate pro rata, rounded to cents.
func rentalCost(space models.Space, start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	return math.Round(hours*space.CostPerHour*100) / 100
}
