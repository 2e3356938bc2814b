package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type rentalService interface {
	Create(ctx context.Context, req service.CreateRentalRequest, actor *models.JWTClaims) (*models.Rental, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Rental, error)
	ListMine(ctx context.Context, activeOnly bool, page, pageSize int, actor *models.JWTClaims) ([]models.Rental, *models.Pagination, error)
	ListForSpaceRenter(ctx context.Context, spaceRenterID string, activeOnly bool, page, pageSize int, actor *models.JWTClaims) ([]models.Rental, *models.Pagination, error)
	Cancel(ctx context.Context, id string, actor *models.JWTClaims) (*models.Rental, error)
	ResourceInfo(ctx context.Context, id string, actor *models.JWTClaims) (*models.RentalResourceInfo, error)
	CheckCompatibility(ctx context.Context, req service.CompatibilityRequest, actor *models.JWTClaims) (*service.CompatibilityResult, error)
}

// RentalHandler exposes rental booking endpoints.
type RentalHandler struct {
	rentals rentalService
}

// NewRentalHandler constructs RentalHandler.
func NewRentalHandler(rentals rentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

// Create godoc
// @Summary Rent a space
// @Description Validates both endpoints against the space renter's opening hours. A rejected selection returns 400 with the advisory message.
// @Tags Rentals
// @Accept json
// @Produce json
// @Param payload body service.CreateRentalRequest true "Rental payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /rentals [post]
func (h *RentalHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.CreateRentalRequest
	if !bindJSON(c, &req, "invalid rental payload") {
		return
	}
	rental, err := h.rentals.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rental)
}

// ListMine godoc
// @Summary List my rentals
// @Tags Rentals
// @Produce json
// @Param active query bool false "Only active rentals"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /rentals [get]
func (h *RentalHandler) ListMine(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	page, size := pageParams(c)
	rentals, pagination, err := h.rentals.ListMine(c.Request.Context(), queryBool(c, "active"), page, size, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, rentals, pagination)
}

// ListForSpaceRenter godoc
// @Summary List rentals of a space renter
// @Tags Rentals
// @Produce json
// @Param id path string true "Space renter ID"
// @Param active query bool false "Only active rentals"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /space-renters/{id}/rentals [get]
func (h *RentalHandler) ListForSpaceRenter(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	page, size := pageParams(c)
	rentals, pagination, err := h.rentals.ListForSpaceRenter(c.Request.Context(), c.Param("id"), queryBool(c, "active"), page, size, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, rentals, pagination)
}

// Get godoc
// @Summary Get rental
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Envelope
// @Router /rentals/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	rental, err := h.rentals.Get(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rental)
}

// Cancel godoc
// @Summary Cancel rental
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /rentals/{id}/cancel [post]
func (h *RentalHandler) Cancel(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	rental, err := h.rentals.Cancel(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rental)
}

// Resource godoc
// @Summary Rental resource info
// @Description Rental joined with the rented space and a readable window
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Envelope
// @Router /rentals/{id}/resource [get]
func (h *RentalHandler) Resource(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	info, err := h.rentals.ResourceInfo(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

// Compatibility godoc
// @Summary Check a session time against a rental
// @Description Missing date or time is always compatible
// @Tags Rentals
// @Accept json
// @Produce json
// @Param payload body service.CompatibilityRequest true "Compatibility query"
// @Success 200 {object} response.Envelope
// @Router /rentals/compatibility [post]
func (h *RentalHandler) Compatibility(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.CompatibilityRequest
	if !bindJSON(c, &req, "invalid compatibility payload") {
		return
	}
	result, err := h.rentals.CheckCompatibility(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
