package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type discussionRepoStub struct {
	discussions map[string]*models.Discussion
	messages    []models.DiscussionMessage
	deleted     []string
}

func newDiscussionRepoStub() *discussionRepoStub {
	return &discussionRepoStub{discussions: map[string]*models.Discussion{}}
}

func (r *discussionRepoStub) FindByID(ctx context.Context, id string) (*models.Discussion, error) {
	discussion, ok := r.discussions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *discussion
	clone.Participants = append(pq.StringArray{}, discussion.Participants...)
	clone.Admins = append(pq.StringArray{}, discussion.Admins...)
	return &clone, nil
}

func (r *discussionRepoStub) ListByParticipant(ctx context.Context, accountID string) ([]models.Discussion, error) {
	var out []models.Discussion
	for _, discussion := range r.discussions {
		if discussion.IsParticipant(accountID) {
			out = append(out, *discussion)
		}
	}
	return out, nil
}

func (r *discussionRepoStub) Create(ctx context.Context, discussion *models.Discussion) error {
	discussion.ID = "disc-new"
	r.discussions[discussion.ID] = discussion
	return nil
}

func (r *discussionRepoStub) Update(ctx context.Context, discussion *models.Discussion) error {
	if _, ok := r.discussions[discussion.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *discussion
	r.discussions[discussion.ID] = &stored
	return nil
}

func (r *discussionRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.discussions[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.discussions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *discussionRepoStub) CreateMessage(ctx context.Context, message *models.DiscussionMessage) error {
	message.ID = "msg-1"
	r.messages = append(r.messages, *message)
	return nil
}

func (r *discussionRepoStub) ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.DiscussionMessage, int, error) {
	return r.messages, len(r.messages), nil
}

type accountLookupStub struct {
	accounts map[string]*models.Account
}

func (a accountLookupStub) FindByID(ctx context.Context, id string) (*models.Account, error) {
	account, ok := a.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return account, nil
}

func testAccounts() accountLookupStub {
	token := "device-token"
	return accountLookupStub{accounts: map[string]*models.Account{
		"alice": {ID: "alice", Handle: "alice", PushToken: &token},
		"bob":   {ID: "bob", Handle: "bob"},
		"carol": {ID: "carol", Handle: "carol"},
	}}
}

type hooksStub struct {
	left    []string
	deleted []string
}

func (h *hooksStub) ParticipantLeft(ctx context.Context, discussionID, accountID string) error {
	h.left = append(h.left, accountID)
	return nil
}

func (h *hooksStub) DiscussionDeleted(ctx context.Context, discussionID string) error {
	h.deleted = append(h.deleted, discussionID)
	return nil
}

func seedDiscussion(repo *discussionRepoStub) {
	repo.discussions["disc-1"] = &models.Discussion{
		ID:           "disc-1",
		Name:         "Friday games",
		CreatorID:    "alice",
		Participants: pq.StringArray{"alice", "bob"},
		Admins:       pq.StringArray{"alice"},
	}
}

func actorFor(id string) *models.JWTClaims {
	return &models.JWTClaims{AccountID: id, Role: models.RoleUser}
}

func TestDiscussionServiceCreateAndGet(t *testing.T) {
	repo := newDiscussionRepoStub()
	svc := NewDiscussionService(repo, testAccounts(), nil, nil, zap.NewNop())
	ctx := context.Background()

	discussion, err := svc.Create(ctx, DiscussionRequest{Name: "Catan night"}, actorFor("alice"))
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"alice"}, discussion.Participants)
	assert.Equal(t, pq.StringArray{"alice"}, discussion.Admins)

	_, err = svc.Create(ctx, DiscussionRequest{}, actorFor("alice"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Get(ctx, discussion.ID, actorFor("bob"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	got, err := svc.Get(ctx, discussion.ID, actorFor("alice"))
	require.NoError(t, err)
	assert.Equal(t, "Catan night", got.Name)

	mine, err := svc.ListMine(ctx, actorFor("alice"))
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDiscussionServiceUpdateRequiresAdmin(t *testing.T) {
	repo := newDiscussionRepoStub()
	seedDiscussion(repo)
	svc := NewDiscussionService(repo, testAccounts(), nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Update(ctx, "disc-1", DiscussionRequest{Name: "Renamed"}, actorFor("bob"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	updated, err := svc.Update(ctx, "disc-1", DiscussionRequest{Name: "Renamed", Description: "weekly"}, actorFor("alice"))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "weekly", repo.discussions["disc-1"].Description)
}

func TestDiscussionServiceMembership(t *testing.T) {
	repo := newDiscussionRepoStub()
	seedDiscussion(repo)
	hooks := &hooksStub{}
	svc := NewDiscussionService(repo, testAccounts(), nil, nil, zap.NewNop())
	svc.SetHooks(hooks)
	ctx := context.Background()

	_, err := svc.AddParticipant(ctx, "disc-1", "carol", actorFor("bob"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = svc.AddParticipant(ctx, "disc-1", "nobody", actorFor("alice"))
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	discussion, err := svc.AddParticipant(ctx, "disc-1", "carol", actorFor("alice"))
	require.NoError(t, err)
	assert.True(t, discussion.IsParticipant("carol"))

	_, err = svc.AddParticipant(ctx, "disc-1", "carol", actorFor("alice"))
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.RemoveParticipant(ctx, "disc-1", "carol", actorFor("bob"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	discussion, err = svc.RemoveParticipant(ctx, "disc-1", "bob", actorFor("bob"))
	require.NoError(t, err)
	assert.False(t, discussion.IsParticipant("bob"))
	assert.Equal(t, []string{"bob"}, hooks.left)

	_, err = svc.RemoveParticipant(ctx, "disc-1", "alice", actorFor("alice"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	joined, err := svc.Join(ctx, "disc-1", "bob")
	require.NoError(t, err)
	assert.True(t, joined.IsParticipant("bob"))
}

func TestDiscussionServiceMessages(t *testing.T) {
	repo := newDiscussionRepoStub()
	seedDiscussion(repo)
	svc := NewDiscussionService(repo, testAccounts(), nil, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "disc-1", MessageRequest{Content: "hi"}, actorFor("carol"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = svc.SendMessage(ctx, "disc-1", MessageRequest{}, actorFor("bob"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	message, err := svc.SendMessage(ctx, "disc-1", MessageRequest{Content: "bring snacks"}, actorFor("bob"))
	require.NoError(t, err)
	assert.Equal(t, "bob", message.SenderID)

	messages, pagination, err := svc.ListMessages(ctx, models.MessageFilter{DiscussionID: "disc-1", Page: 1, PageSize: 20}, actorFor("alice"))
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestDiscussionServiceDelete(t *testing.T) {
	repo := newDiscussionRepoStub()
	seedDiscussion(repo)
	hooks := &hooksStub{}
	svc := NewDiscussionService(repo, testAccounts(), hooks, nil, zap.NewNop())
	ctx := context.Background()

	err := svc.Delete(ctx, "disc-1", actorFor("bob"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, "disc-1", actorFor("alice")))
	assert.Equal(t, []string{"disc-1"}, hooks.deleted)
	assert.Equal(t, []string{"disc-1"}, repo.deleted)

	err = svc.Delete(ctx, "disc-1", actorFor("alice"))
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
