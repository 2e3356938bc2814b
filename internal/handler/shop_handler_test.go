package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/middleware"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type shopServiceMock struct {
	hit       bool
	filter    models.ShopFilter
	createReq service.ShopRequest
	deleteErr error
	lastActor *models.JWTClaims
}

func (m *shopServiceMock) List(ctx context.Context, filter models.ShopFilter) ([]models.Shop, *models.Pagination, error) {
	m.filter = filter
	return []models.Shop{{ID: "shop-1"}}, models.NewPagination(filter.Page, filter.PageSize, 1), nil
}

func (m *shopServiceMock) Get(ctx context.Context, id string) (*models.Shop, bool, error) {
	return &models.Shop{ID: id, Name: "Meeple Corner"}, m.hit, nil
}

func (m *shopServiceMock) Create(ctx context.Context, req service.ShopRequest, actor *models.JWTClaims) (*models.Shop, error) {
	m.createReq, m.lastActor = req, actor
	return &models.Shop{ID: "shop-1", Name: req.Name}, nil
}

func (m *shopServiceMock) Update(ctx context.Context, id string, req service.ShopRequest, actor *models.JWTClaims) (*models.Shop, error) {
	return &models.Shop{ID: id, Name: req.Name}, nil
}

func (m *shopServiceMock) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	return m.deleteErr
}

type spaceRenterServiceMock struct {
	view *models.OpeningHoursView
}

func (m *spaceRenterServiceMock) List(ctx context.Context, filter models.SpaceRenterFilter) ([]models.SpaceRenter, *models.Pagination, error) {
	return nil, models.NewPagination(filter.Page, filter.PageSize, 0), nil
}

func (m *spaceRenterServiceMock) Get(ctx context.Context, id string) (*models.SpaceRenter, bool, error) {
	return &models.SpaceRenter{ID: id}, false, nil
}

func (m *spaceRenterServiceMock) OpeningHours(ctx context.Context, id string) (*models.OpeningHoursView, error) {
	return m.view, nil
}

func (m *spaceRenterServiceMock) Create(ctx context.Context, req service.SpaceRenterRequest, actor *models.JWTClaims) (*models.SpaceRenter, error) {
	return nil, appErrors.Clone(appErrors.ErrForbidden, "account is not a space renter")
}

func (m *spaceRenterServiceMock) Update(ctx context.Context, id string, req service.SpaceRenterRequest, actor *models.JWTClaims) (*models.SpaceRenter, error) {
	return &models.SpaceRenter{ID: id}, nil
}

func (m *spaceRenterServiceMock) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	return nil
}

func TestShopHandlerListFilter(t *testing.T) {
	mockSvc := &shopServiceMock{}
	handler := NewShopHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/shops?search=%20meeple%20&page=3&limit=10", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "meeple", mockSvc.filter.Search)
	assert.Equal(t, 3, mockSvc.filter.Page)
	assert.Equal(t, 10, mockSvc.filter.PageSize)
}

func TestShopHandlerGetReportsCacheHit(t *testing.T) {
	handler := NewShopHandler(&shopServiceMock{hit: true})

	c, w := newGinContext(http.MethodGet, "/shops/shop-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "shop-1"}}
	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get(middleware.CacheHeader))
	meta := decodeEnvelope(t, w)["meta"].(map[string]interface{})
	assert.Equal(t, true, meta["cache_hit"])
}

func TestShopHandlerCreateBindsOpeningHours(t *testing.T) {
	mockSvc := &shopServiceMock{}
	handler := NewShopHandler(mockSvc)

	body := `{"name":"Meeple Corner","opening_hours":[{"day":1,"hours":[{"open":"09:00","close":"18:00"}]}]}`
	c, w := newGinContext(http.MethodPost, "/shops", []byte(body))
	withAccount(c, "owner-1")
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, mockSvc.createReq.OpeningHours, 1)
	assert.Equal(t, []availability.TimeSlot{{Open: "09:00", Close: "18:00"}}, mockSvc.createReq.OpeningHours[0].Hours)
	assert.Equal(t, "owner-1", mockSvc.lastActor.AccountID)
}

func TestShopHandlerDeleteForbidden(t *testing.T) {
	handler := NewShopHandler(&shopServiceMock{deleteErr: appErrors.ErrForbidden})

	c, w := newGinContext(http.MethodDelete, "/shops/shop-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "shop-1"}}
	withAccount(c, "someone")
	handler.Delete(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSpaceRenterHandlerOpeningHours(t *testing.T) {
	view := &models.OpeningHoursView{Lines: availability.FormatWeek(availability.Week{
		{Day: 1, Hours: []availability.TimeSlot{{Open: "09:00", Close: "18:00"}}},
	})}
	handler := NewSpaceRenterHandler(&spaceRenterServiceMock{view: view})

	c, w := newGinContext(http.MethodGet, "/space-renters/sr-1/opening-hours", nil)
	c.Params = gin.Params{{Key: "id", Value: "sr-1"}}
	handler.OpeningHours(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Monday: 09:00 - 18:00")
	assert.Contains(t, w.Body.String(), "Sunday: Closed")
}

func TestSpaceRenterHandlerCreateForbidden(t *testing.T) {
	handler := NewSpaceRenterHandler(&spaceRenterServiceMock{})

	c, w := newGinContext(http.MethodPost, "/space-renters", []byte(`{"name":"Dice Den"}`))
	withAccount(c, "player")
	handler.Create(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
