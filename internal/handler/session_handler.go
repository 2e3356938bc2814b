package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type sessionService interface {
	Get(ctx context.Context, discussionID string, actor *models.JWTClaims) (*models.Session, error)
	Create(ctx context.Context, discussionID string, req service.SessionRequest, actor *models.JWTClaims) (*models.Session, error)
	Update(ctx context.Context, discussionID string, req service.SessionRequest, actor *models.JWTClaims) (*models.Session, error)
	Delete(ctx context.Context, discussionID string, actor *models.JWTClaims) error
	Join(ctx context.Context, discussionID, accountID string) (*models.Session, error)
}

// SessionHandler exposes the game session nested under a discussion.
type SessionHandler struct {
	sessions sessionService
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(sessions sessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Get godoc
// @Summary Get discussion session
// @Tags Sessions
// @Produce json
// @Param id path string true "Discussion ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /discussions/{id}/session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// Create godoc
// @Summary Schedule a session
// @Description The date must not be in the past and must fall inside the attached rental window
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Discussion ID"
// @Param payload body service.SessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /discussions/{id}/session [post]
func (h *SessionHandler) Create(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.SessionRequest
	if !bindJSON(c, &req, "invalid session payload") {
		return
	}
	session, err := h.sessions.Create(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Update godoc
// @Summary Update session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Discussion ID"
// @Param payload body service.SessionRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /discussions/{id}/session [put]
func (h *SessionHandler) Update(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.SessionRequest
	if !bindJSON(c, &req, "invalid session payload") {
		return
	}
	session, err := h.sessions.Update(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// Delete godoc
// @Summary Delete session
// @Description Releases the attached rental
// @Tags Sessions
// @Param id path string true "Discussion ID"
// @Success 204
// @Router /discussions/{id}/session [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Join godoc
// @Summary Join session
// @Tags Sessions
// @Produce json
// @Param id path string true "Discussion ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /discussions/{id}/session/join [post]
func (h *SessionHandler) Join(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	session, err := h.sessions.Join(c.Request.Context(), c.Param("id"), claims.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}
