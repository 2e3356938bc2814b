package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type accountRepository interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByHandle(ctx context.Context, handle string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByHandle(ctx context.Context, handle, excludeID string) (bool, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) error
}

// RegisterRequest holds payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Handle   string `json:"handle" validate:"required,min=3,max=32,alphanum"`
	Name     string `json:"name" validate:"required,max=80"`
}

// UpdateAccountRequest holds the mutable profile fields; nil pointers are left unchanged.
type UpdateAccountRequest struct {
	Handle      *string `json:"handle" validate:"omitempty,min=3,max=32,alphanum"`
	Name        *string `json:"name" validate:"omitempty,max=80"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	PushToken   *string `json:"push_token"`
	ShopOwner   *bool   `json:"shop_owner"`
	SpaceRenter *bool   `json:"space_renter"`
}

// AccountService handles account registration and profile use-cases.
type AccountService struct {
	repo      accountRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccountService constructs the account service.
func NewAccountService(repo accountRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Register creates a USER account with a bcrypt password hash.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*models.Account, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid registration payload")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	if err := s.ensureHandleFree(ctx, req.Handle, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}
	account := &models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		Handle:       req.Handle,
		Name:         req.Name,
		Role:         models.RoleUser,
		Active:       true,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, appErrors.Internal(err, "failed to create account")
	}
	s.logger.Info("account registered", zap.String("account_id", account.ID))
	return account, nil
}

// Get returns an account by id.
func (s *AccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "account")
	}
	return account, nil
}

// GetByHandle returns an account by its public handle.
func (s *AccountService) GetByHandle(ctx context.Context, handle string) (*models.Account, error) {
	account, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		return nil, mapLoadError(err, "account")
	}
	return account, nil
}

// Update applies profile changes to the account.
func (s *AccountService) Update(ctx context.Context, id string, req UpdateAccountRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid account payload")
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err, "account")
	}

	if req.Handle != nil && *req.Handle != account.Handle {
		if err := s.ensureHandleFree(ctx, *req.Handle, id); err != nil {
			return nil, err
		}
		account.Handle = *req.Handle
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.PushToken != nil {
		token := strings.TrimSpace(*req.PushToken)
		if token == "" {
			account.PushToken = nil
		} else {
			account.PushToken = &token
		}
	}
	if req.ShopOwner != nil {
		account.ShopOwner = *req.ShopOwner
	}
	if req.SpaceRenter != nil {
		account.SpaceRenter = *req.SpaceRenter
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, appErrors.Internal(err, "failed to update account")
	}
	return account, nil
}

// Delete removes the account. Owned shops and space renters go with it, so their cache entries are dropped.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "account", "failed to delete account")
	}
	_ = s.cache.Invalidate(ctx, shopCacheKey("*"))
	_ = s.cache.Invalidate(ctx, spaceRenterCacheKey("*"))
	s.logger.Info("account deleted", zap.String("account_id", id))
	return nil
}

func (s *AccountService) ensureHandleFree(ctx context.Context, handle, excludeID string) error {
	taken, err := s.repo.ExistsByHandle(ctx, handle, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to validate handle")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, "handle already taken")
	}
	return nil
}

// mapLoadError turns repository read errors into NOT_FOUND or INTERNAL_ERROR.
func mapLoadError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Internal(err, "failed to load "+entity)
}

func mapWriteError(err error, entity, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	}
	return appErrors.Internal(err, message)
}
