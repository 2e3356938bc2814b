package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type spaceRenterService interface {
	List(ctx context.Context, filter models.SpaceRenterFilter) ([]models.SpaceRenter, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.SpaceRenter, bool, error)
	OpeningHours(ctx context.Context, id string) (*models.OpeningHoursView, error)
	Create(ctx context.Context, req service.SpaceRenterRequest, actor *models.JWTClaims) (*models.SpaceRenter, error)
	Update(ctx context.Context, id string, req service.SpaceRenterRequest, actor *models.JWTClaims) (*models.SpaceRenter, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// SpaceRenterHandler exposes space renter endpoints.
type SpaceRenterHandler struct {
	renters spaceRenterService
}

// NewSpaceRenterHandler constructs SpaceRenterHandler.
func NewSpaceRenterHandler(renters spaceRenterService) *SpaceRenterHandler {
	return &SpaceRenterHandler{renters: renters}
}

// List godoc
// @Summary List space renters
// @Tags SpaceRenters
// @Produce json
// @Param search query string false "Search by name"
// @Param ownerId query string false "Filter by owner"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /space-renters [get]
func (h *SpaceRenterHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	filter := models.SpaceRenterFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		OwnerID:  c.Query("ownerId"),
		Page:     page,
		PageSize: size,
	}
	renters, pagination, err := h.renters.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, renters, pagination)
}

// Get godoc
// @Summary Get space renter
// @Tags SpaceRenters
// @Produce json
// @Param id path string true "Space renter ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /space-renters/{id} [get]
func (h *SpaceRenterHandler) Get(c *gin.Context) {
	renter, hit, err := h.renters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	cachedJSON(c, renter, hit)
}

// OpeningHours godoc
// @Summary Space renter opening hours
// @Description Weekly table plus one display line per day, Sunday first
// @Tags SpaceRenters
// @Produce json
// @Param id path string true "Space renter ID"
// @Success 200 {object} response.Envelope
// @Router /space-renters/{id}/opening-hours [get]
func (h *SpaceRenterHandler) OpeningHours(c *gin.Context) {
	view, err := h.renters.OpeningHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Create godoc
// @Summary Create space renter
// @Tags SpaceRenters
// @Accept json
// @Produce json
// @Param payload body service.SpaceRenterRequest true "Space renter payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /space-renters [post]
func (h *SpaceRenterHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.SpaceRenterRequest
	if !bindJSON(c, &req, "invalid space renter payload") {
		return
	}
	renter, err := h.renters.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, renter)
}

// Update godoc
// @Summary Update space renter
// @Tags SpaceRenters
// @Accept json
// @Produce json
// @Param id path string true "Space renter ID"
// @Param payload body service.SpaceRenterRequest true "Space renter payload"
// @Success 200 {object} response.Envelope
// @Router /space-renters/{id} [put]
func (h *SpaceRenterHandler) Update(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.SpaceRenterRequest
	if !bindJSON(c, &req, "invalid space renter payload") {
		return
	}
	renter, err := h.renters.Update(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, renter)
}

// Delete godoc
// @Summary Delete space renter
// @Tags SpaceRenters
// @Param id path string true "Space renter ID"
// @Success 204
// @Router /space-renters/{id} [delete]
func (h *SpaceRenterHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.renters.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
