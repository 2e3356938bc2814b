package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type discussionServiceMock struct {
	added     string
	removed   string
	message   service.MessageRequest
	msgFilter models.MessageFilter
	removeErr error
	deleteErr error
}

func (m *discussionServiceMock) Create(ctx context.Context, req service.DiscussionRequest, actor *models.JWTClaims) (*models.Discussion, error) {
	return &models.Discussion{ID: "disc-1", Name: req.Name, CreatorID: actor.AccountID}, nil
}

func (m *discussionServiceMock) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Discussion, error) {
	return &models.Discussion{ID: id}, nil
}

func (m *discussionServiceMock) ListMine(ctx context.Context, actor *models.JWTClaims) ([]models.Discussion, error) {
	return []models.Discussion{{ID: "disc-1"}}, nil
}

func (m *discussionServiceMock) Update(ctx context.Context, id string, req service.DiscussionRequest, actor *models.JWTClaims) (*models.Discussion, error) {
	return &models.Discussion{ID: id, Name: req.Name}, nil
}

func (m *discussionServiceMock) AddParticipant(ctx context.Context, id, accountID string, actor *models.JWTClaims) (*models.Discussion, error) {
	m.added = accountID
	return &models.Discussion{ID: id}, nil
}

func (m *discussionServiceMock) RemoveParticipant(ctx context.Context, id, accountID string, actor *models.JWTClaims) (*models.Discussion, error) {
	m.removed = accountID
	if m.removeErr != nil {
		return nil, m.removeErr
	}
	return &models.Discussion{ID: id}, nil
}

func (m *discussionServiceMock) SendMessage(ctx context.Context, id string, req service.MessageRequest, actor *models.JWTClaims) (*models.DiscussionMessage, error) {
	m.message = req
	return &models.DiscussionMessage{ID: "msg-1", DiscussionID: id, Content: req.Content}, nil
}

func (m *discussionServiceMock) ListMessages(ctx context.Context, filter models.MessageFilter, actor *models.JWTClaims) ([]models.DiscussionMessage, *models.Pagination, error) {
	m.msgFilter = filter
	return nil, models.NewPagination(filter.Page, filter.PageSize, 0), nil
}

func (m *discussionServiceMock) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	return m.deleteErr
}

func TestDiscussionHandlerCreate(t *testing.T) {
	handler := NewDiscussionHandler(&discussionServiceMock{})

	c, w := newGinContext(http.MethodPost, "/discussions", []byte(`{"name":"Catan night"}`))
	withAccount(c, "alice")
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Catan night", data["name"])
}

func TestDiscussionHandlerParticipants(t *testing.T) {
	mockSvc := &discussionServiceMock{}
	handler := NewDiscussionHandler(mockSvc)

	c, w := newGinContext(http.MethodPost, "/discussions/disc-1/participants", []byte(`{"account_id":"carol"}`))
	c.Params = gin.Params{{Key: "id", Value: "disc-1"}}
	withAccount(c, "alice")
	handler.AddParticipant(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "carol", mockSvc.added)

	c, w = newGinContext(http.MethodPost, "/discussions/disc-1/participants", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "disc-1"}}
	withAccount(c, "alice")
	handler.AddParticipant(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscussionHandlerCreatorCannotLeave(t *testing.T) {
	mockSvc := &discussionServiceMock{removeErr: appErrors.Clone(appErrors.ErrValidation, "the creator cannot leave the discussion")}
	handler := NewDiscussionHandler(mockSvc)

	c, w := newGinContext(http.MethodDelete, "/discussions/disc-1/participants/alice", nil)
	c.Params = gin.Params{{Key: "id", Value: "disc-1"}, {Key: "accountId", Value: "alice"}}
	withAccount(c, "alice")
	handler.RemoveParticipant(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "alice", mockSvc.removed)
}

func TestDiscussionHandlerMessages(t *testing.T) {
	mockSvc := &discussionServiceMock{}
	handler := NewDiscussionHandler(mockSvc)

	c, w := newGinContext(http.MethodPost, "/discussions/disc-1/messages", []byte(`{"content":"Who brings snacks?"}`))
	c.Params = gin.Params{{Key: "id", Value: "disc-1"}}
	withAccount(c, "bob")
	handler.SendMessage(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Who brings snacks?", mockSvc.message.Content)

	c, w = newGinContext(http.MethodGet, "/discussions/disc-1/messages?page=2", nil)
	c.Params = gin.Params{{Key: "id", Value: "disc-1"}}
	withAccount(c, "bob")
	handler.ListMessages(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.MessageFilter{DiscussionID: "disc-1", Page: 2, PageSize: 20}, mockSvc.msgFilter)
}
