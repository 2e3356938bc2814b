package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type shopRepository interface {
	FindByID(ctx context.Context, id string) (*models.Shop, error)
	List(ctx context.Context, filter models.ShopFilter) ([]models.Shop, int, error)
	Create(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id string) error
}

type ownerLookup interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

// ShopRequest is the full shop payload used for create and update.
type ShopRequest struct {
	Name           string            `json:"name" validate:"required,max=120"`
	Phone          string            `json:"phone" validate:"omitempty,max=32"`
	Email          string            `json:"email" validate:"omitempty,email"`
	Website        string            `json:"website" validate:"omitempty,url"`
	Address        models.Location   `json:"address"`
	OpeningHours   availability.Week `json:"opening_hours" validate:"dive"`
	GameCollection []models.GameItem `json:"game_collection" validate:"dive"`
}

// ShopService handles shop listings.
type ShopService struct {
	repo      shopRepository
	accounts  ownerLookup
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShopService constructs the shop service.
func NewShopService(repo shopRepository, accounts ownerLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ShopService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{repo: repo, accounts: accounts, cache: cache, validator: validate, logger: logger}
}

// List returns shops and pagination metadata.
func (s *ShopService) List(ctx context.Context, filter models.ShopFilter) ([]models.Shop, *models.Pagination, error) {
	shops, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list shops")
	}
	return shops, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a shop, served from cache when possible. The bool reports a cache hit.
func (s *ShopService) Get(ctx context.Context, id string) (*models.Shop, bool, error) {
	return readThrough(ctx, s.cache, shopCacheKey(id), func(ctx context.Context) (*models.Shop, error) {
		shop, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, mapLoadError(err, "shop")
		}
		return shop, nil
	})
}

// Create registers a shop owned by the actor, who must be flagged as a shop owner.
func (s *ShopService) Create(ctx context.Context, req ShopRequest, actor *models.JWTClaims) (*models.Shop, error) {
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
	if !owner.ShopOwner {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account is not a shop owner")
	}

	shop := &models.Shop{OwnerID: owner.ID}
	applyShopRequest(shop, req)
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, appErrors.Internal(err, "failed to create shop")
	}
	s.logger.Info("shop created", zap.String("shop_id", shop.ID), zap.String("owner_id", owner.ID))
	return shop, nil
}

// Update replaces the shop's fields.
func (s *ShopService) Update(ctx context.Context, id string, req ShopRequest, actor *models.JWTClaims) (*models.Shop, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "shop")
	}
	if err := ownerOrAdmin(actor, shop.OwnerID); err != nil {
		return nil, err
	}
	applyShopRequest(shop, req)
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, mapWriteError(err, "shop", "failed to update shop")
	}
	s.cache.Evict(ctx, shopCacheKey(id))
	return shop, nil
}

// Delete removes the shop.
func (s *ShopService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapLoadError(err, "shop")
	}
	if err := ownerOrAdmin(actor, shop.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "shop", "failed to delete shop")
	}
	s.cache.Evict(ctx, shopCacheKey(id))
	return nil
}

func (s *ShopService) validate(req ShopRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Invalid(err, "invalid shop payload")
	}
	if err := availability.ValidateTable(req.OpeningHours); err != nil {
		return appErrors.Invalid(err, "invalid opening hours: "+err.Error())
	}
	return nil
}

func applyShopRequest(shop *models.Shop, req ShopRequest) {
	shop.Name = req.Name
	shop.Phone = req.Phone
	shop.Email = req.Email
	shop.Website = req.Website
	shop.Location = req.Address
	shop.OpeningHours = req.OpeningHours
	shop.GameCollection = models.GameCollection(req.GameCollection)
}
