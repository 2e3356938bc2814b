package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/middleware"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type shopService interface {
	List(ctx context.Context, filter models.ShopFilter) ([]models.Shop, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Shop, bool, error)
	Create(ctx context.Context, req service.ShopRequest, actor *models.JWTClaims) (*models.Shop, error)
	Update(ctx context.Context, id string, req service.ShopRequest, actor *models.JWTClaims) (*models.Shop, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// ShopHandler exposes shop endpoints.
type ShopHandler struct {
	shops shopService
}

// NewShopHandler constructs ShopHandler.
func NewShopHandler(shops shopService) *ShopHandler {
	return &ShopHandler{shops: shops}
}

// List godoc
// @Summary List shops
// @Tags Shops
// @Produce json
// @Param search query string false "Search by name"
// @Param ownerId query string false "Filter by owner"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /shops [get]
func (h *ShopHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	filter := models.ShopFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		OwnerID:  c.Query("ownerId"),
		Page:     page,
		PageSize: size,
	}
	shops, pagination, err := h.shops.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, shops, pagination)
}

// Get godoc
// @Summary Get shop
// @Tags Shops
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shops/{id} [get]
func (h *ShopHandler) Get(c *gin.Context) {
	shop, hit, err := h.shops.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	cachedJSON(c, shop, hit)
}

// Create godoc
// @Summary Create shop
// @Tags Shops
// @Accept json
// @Produce json
// @Param payload body service.ShopRequest true "Shop payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /shops [post]
func (h *ShopHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.ShopRequest
	if !bindJSON(c, &req, "invalid shop payload") {
		return
	}
	shop, err := h.shops.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, shop)
}

// Update godoc
// @Summary Update shop
// @Tags Shops
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Param payload body service.ShopRequest true "Shop payload"
// @Success 200 {object} response.Envelope
// @Router /shops/{id} [put]
func (h *ShopHandler) Update(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.ShopRequest
	if !bindJSON(c, &req, "invalid shop payload") {
		return
	}
	shop, err := h.shops.Update(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, shop)
}

// Delete godoc
// @Summary Delete shop
// @Tags Shops
// @Param id path string true "Shop ID"
// @Success 204
// @Router /shops/{id} [delete]
func (h *ShopHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.shops.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func cachedJSON(c *gin.Context, data interface{}, hit bool) {
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, data, nil, middleware.ExtractMeta(c))
}
