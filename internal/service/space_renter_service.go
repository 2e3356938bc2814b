package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type spaceRenterRepository interface {
	FindByID(ctx context.Context, id string) (*models.SpaceRenter, error)
	List(ctx context.Context, filter models.SpaceRenterFilter) ([]models.SpaceRenter, int, error)
	Create(ctx context.Context, renter *models.SpaceRenter) error
	Update(ctx context.Context, renter *models.SpaceRenter) error
	Delete(ctx context.Context, id string) error
}

// SpaceRenterRequest is the full space renter payload used for create and update.
type SpaceRenterRequest struct {
	Name         string            `json:"name" validate:"required,max=120"`
	Phone        string            `json:"phone" validate:"omitempty,max=32"`
	Email        string            `json:"email" validate:"omitempty,email"`
	Website      string            `json:"website" validate:"omitempty,url"`
	Address      models.Location   `json:"address"`
	OpeningHours availability.Week `json:"opening_hours" validate:"dive"`
	Spaces       []models.Space    `json:"spaces" validate:"dive"`
}

// SpaceRenterService handles venues that rent out play spaces.
type SpaceRenterService struct {
	repo      spaceRenterRepository
	accounts  ownerLookup
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSpaceRenterService constructs the space renter service.
func NewSpaceRenterService(repo spaceRenterRepository, accounts ownerLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SpaceRenterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpaceRenterService{repo: repo, accounts: accounts, cache: cache, validator: validate, logger: logger}
}

// List returns space renters and pagination metadata.
func (s *SpaceRenterService) List(ctx context.Context, filter models.SpaceRenterFilter) ([]models.SpaceRenter, *models.Pagination, error) {
	renters, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list space renters")
	}
	return renters, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a space renter, served from cache when possible. The bool reports a cache hit.
func (s *SpaceRenterService) Get(ctx context.Context, id string) (*models.SpaceRenter, bool, error) {
	return readThrough(ctx, s.cache, spaceRenterCacheKey(id), func(ctx context.Context) (*models.SpaceRenter, error) {
		renter, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, mapLoadError(err, "space renter")
		}
		return renter, nil
	})
}

// OpeningHours returns the weekly table with human-readable lines.
func (s *SpaceRenterService) OpeningHours(ctx context.Context, id string) (*models.OpeningHoursView, error) {
	renter, _, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OpeningHoursView{
		OpeningHours: renter.OpeningHours,
		Lines:        availability.FormatWeek(renter.OpeningHours),
	}, nil
}

// Create registers a space renter owned by the actor, who must be flagged as a space renter.
func (s *SpaceRenterService) Create(ctx context.Context, req SpaceRenterRequest, actor *models.JWTClaims) (*models.SpaceRenter, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	owner, err := s.accounts.FindByID(ctx, actor.AccountID)
	if err != nil {
		return nil, mapLoadError(err, "account")
	}
	if !owner.SpaceRenter {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account is not a space renter")
	}

	renter := &models.SpaceRenter{OwnerID: owner.ID}
	applySpaceRenterRequest(renter, req)
	if err := s.repo.Create(ctx, renter); err != nil {
		return nil, appErrors.Internal(err, "failed to create space renter")
	}
	s.logger.Info("space renter created", zap.String("space_renter_id", renter.ID), zap.String("owner_id", owner.ID))
	return renter, nil
}

// Update replaces the space renter's fields.
func (s *SpaceRenterService) Update(ctx context.Context, id string, req SpaceRenterRequest, actor *models.JWTClaims) (*models.SpaceRenter, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	renter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "space renter")
	}
	if err := ownerOrAdmin(actor, renter.OwnerID); err != nil {
		return nil, err
	}
	applySpaceRenterRequest(renter, req)
	if err := s.repo.Update(ctx, renter); err != nil {
		return nil, mapWriteError(err, "space renter", "failed to update space renter")
	}
	s.cache.Evict(ctx, spaceRenterCacheKey(id))
	return renter, nil
}

// Delete removes the space renter and, through the schema, its rentals.
func (s *SpaceRenterService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	renter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapLoadError(err, "space renter")
	}
	if err := ownerOrAdmin(actor, renter.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "space renter", "failed to delete space renter")
	}
	s.cache.Evict(ctx, spaceRenterCacheKey(id))
	return nil
}

func (s *SpaceRenterService) validate(req SpaceRenterRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Invalid(err, "invalid space renter payload")
	}
	if err := availability.ValidateTable(req.OpeningHours); err != nil {
		return appErrors.Invalid(err, "invalid opening hours: "+err.Error())
	}
	return nil
}

func applySpaceRenterRequest(renter *models.SpaceRenter, req SpaceRenterRequest) {
	renter.Name = req.Name
	renter.Phone = req.Phone
	renter.Email = req.Email
	renter.Website = req.Website
	renter.Location = req.Address
	renter.OpeningHours = req.OpeningHours
	renter.Spaces = models.Spaces(req.Spaces)
}
