package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/response"
)

type accountService interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	GetByHandle(ctx context.Context, handle string) (*models.Account, error)
	Update(ctx context.Context, id string, req service.UpdateAccountRequest) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

// AccountHandler exposes account profile endpoints.
type AccountHandler struct {
	accounts accountService
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Get godoc
// @Summary Get account
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accounts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, account)
}

// GetByHandle godoc
// @Summary Find account by handle
// @Tags Accounts
// @Produce json
// @Param handle path string true "Handle"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /accounts/handle/{handle} [get]
func (h *AccountHandler) GetByHandle(c *gin.Context) {
	account, err := h.accounts.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, account)
}

// Update godoc
// @Summary Update account profile
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param payload body service.UpdateAccountRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var req service.UpdateAccountRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}
	account, err := h.accounts.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, account)
}

// Delete godoc
// @Summary Delete account
// @Tags Accounts
// @Param id path string true "Account ID"
// @Success 204
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.accounts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
