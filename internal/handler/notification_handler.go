package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type notificationService interface {
	Send(ctx context.Context, req service.SendNotificationRequest, actor *models.JWTClaims) (*models.Notification, error)
	ListMine(ctx context.Context, unreadOnly bool, page, pageSize int, actor *models.JWTClaims) ([]models.Notification, *models.Pagination, error)
	MarkRead(ctx context.Context, id string, actor *models.JWTClaims) error
	Accept(ctx context.Context, id string, actor *models.JWTClaims) (*models.Notification, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// NotificationHandler exposes invitation endpoints.
type NotificationHandler struct {
	notifications notificationService
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(notifications notificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Send godoc
// @Summary Send invitation
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.SendNotificationRequest true "Invitation"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /notifications [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req service.SendNotificationRequest
	if !bindJSON(c, &req, "invalid notification payload") {
		return
	}
	notification, err := h.notifications.Send(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notification)
}

// ListMine godoc
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) ListMine(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	page, size := pageParams(c)
	items, pagination, err := h.notifications.ListMine(c.Request.Context(), queryBool(c, "unread"), page, size, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, items, pagination)
}

// MarkRead godoc
// @Summary Mark notification read
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Accept godoc
// @Summary Accept invitation
// @Description Joins the discussion or session the invitation points to
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /notifications/{id}/accept [post]
func (h *NotificationHandler) Accept(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	notification, err := h.notifications.Accept(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notification)
}

// Delete godoc
// @Summary Delete notification
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
