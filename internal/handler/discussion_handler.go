package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type discussionService interface {
	Create(ctx context.Context, req service.DiscussionRequest, actor *models.JWTClaims) (*models.Discussion, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Discussion, error)
	ListMine(ctx context.Context, actor *models.JWTClaims) ([]models.Discussion, error)
	Update(ctx context.Context, id string, req service.DiscussionRequest, actor *models.JWTClaims) (*models.Discussion, error)
	AddParticipant(ctx context.Context, id, accountID string, actor *models.JWTClaims) (*models.Discussion, error)
	RemoveParticipant(ctx context.Context, id, accountID string, actor *models.JWTClaims) (*models.Discussion, error)
	SendMessage(ctx context.Context, id string, req service.MessageRequest, actor *models.JWTClaims) (*models.DiscussionMessage, error)
	ListMessages(ctx context.Context, filter models.MessageFilter, actor *models.JWTClaims) ([]models.DiscussionMessage, *models.Pagination, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// DiscussionHandler exposes discussion and message endpoints.
type DiscussionHandler struct {
	discussions discussionService
}

// NewDiscussionHandler constructs DiscussionHandler.
func NewDiscussionHandler(discussions discussionService) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions}
}

type participantPayload struct {
	AccountID string `json:"account_id" binding:"required"`
}

// Create godoc
// @Summary Create discussion
// @Tags Discussions
// @Accept json
// @Produce json
// @Param payload body service.DiscussionRequest true "Discussion payload"
// @Success 201 {object} response.Envelope
// @Router /discussions [post]
func (h *DiscussionHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.DiscussionRequest
	if !bindJSON(c, &req, "invalid discussion payload") {
		return
	}
	discussion, err := h.discussions.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, discussion)
}

// ListMine godoc
// @Summary List my discussions
// @Tags Discussions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /discussions [get]
func (h *DiscussionHandler) ListMine(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	discussions, err := h.discussions.ListMine(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, discussions)
}

// Get godoc
// @Summary Get discussion
// @Tags Discussions
// @Produce json
// @Param id path string true "Discussion ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /discussions/{id} [get]
func (h *DiscussionHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	discussion, err := h.discussions.Get(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, discussion)
}

// Update godoc
// @Summary Rename or describe a discussion
// @Tags Discussions
// @Accept json
// @Produce json
// @Param id path string true "Discussion ID"
// @Param payload body service.DiscussionRequest true "Discussion payload"
// @Success 200 {object} response.Envelope
// @Router /discussions/{id} [put]
func (h *DiscussionHandler) Update(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.DiscussionRequest
	if !bindJSON(c, &req, "invalid discussion payload") {
		return
	}
	discussion, err := h.discussions.Update(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, discussion)
}

// Delete godoc
// @Summary Delete discussion
// @Tags Discussions
// @Param id path string true "Discussion ID"
// @Success 204
// @Router /discussions/{id} [delete]
func (h *DiscussionHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.discussions.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddParticipant godoc
// @Summary Add participant
// @Tags Discussions
// @Accept json
// @Produce json
// @Param id path string true "Discussion ID"
// @Param payload body participantPayload true "Account to add"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /discussions/{id}/participants [post]
func (h *DiscussionHandler) AddParticipant(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var payload participantPayload
	if !bindJSON(c, &payload, "account_id required") {
		return
	}
	discussion, err := h.discussions.AddParticipant(c.Request.Context(), c.Param("id"), payload.AccountID, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, discussion)
}

// RemoveParticipant godoc
// @Summary Remove participant or leave
// @Tags Discussions
// @Produce json
// @Param id path string true "Discussion ID"
// @Param accountId path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /discussions/{id}/participants/{accountId} [delete]
func (h *DiscussionHandler) RemoveParticipant(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	discussion, err := h.discussions.RemoveParticipant(c.Request.Context(), c.Param("id"), c.Param("accountId"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, discussion)
}

// SendMessage godoc
// @Summary Post a message
// @Tags Discussions
// @Accept json
// @Produce json
// @Param id path string true "Discussion ID"
// @Param payload body service.MessageRequest true "Message"
// @Success 201 {object} response.Envelope
// @Router /discussions/{id}/messages [post]
func (h *DiscussionHandler) SendMessage(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.MessageRequest
	if !bindJSON(c, &req, "invalid message payload") {
		return
	}
	message, err := h.discussions.SendMessage(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// ListMessages godoc
// @Summary List messages
// @Tags Discussions
// @Produce json
// @Param id path string true "Discussion ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /discussions/{id}/messages [get]
func (h *DiscussionHandler) ListMessages(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	page, size := pageParams(c)
	filter := models.MessageFilter{DiscussionID: c.Param("id"), Page: page, PageSize: size}
	messages, pagination, err := h.discussions.ListMessages(c.Request.Context(), filter, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, messages, pagination)
}
