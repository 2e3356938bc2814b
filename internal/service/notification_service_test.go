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
	"github.com/meeplemeet/meeplemeet-api/pkg/jobs"
	"github.com/meeplemeet/meeplemeet-api/pkg/push"
)

type notificationRepoStub struct {
	items   map[string]*models.Notification
	created int
}

func newNotificationRepoStub() *notificationRepoStub {
	return &notificationRepoStub{items: map[string]*models.Notification{}}
}

func (r *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	r.created++
	n.ID = "notif-" + string(rune('0'+r.created))
	stored := *n
	r.items[n.ID] = &stored
	return nil
}

func (r *notificationRepoStub) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *n
	return &clone, nil
}

func (r *notificationRepoStub) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	var out []models.Notification
	for _, n := range r.items {
		if n.ReceiverID == filter.ReceiverID && (!filter.UnreadOnly || !n.Read) {
			out = append(out, *n)
		}
	}
	return out, len(out), nil
}

func (r *notificationRepoStub) MarkRead(ctx context.Context, id string) error {
	r.items[id].Read = true
	return nil
}

func (r *notificationRepoStub) MarkExecuted(ctx context.Context, id string) error {
	r.items[id].Read = true
	r.items[id].Executed = true
	return nil
}

func (r *notificationRepoStub) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type pushSenderStub struct {
	sent []push.Message
	err  error
}

func (p *pushSenderStub) Send(ctx context.Context, msg push.Message) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, msg)
	return nil
}

type joinStub struct {
	discussionJoins []string
	sessionJoins    []string
}

func (j *joinStub) Join(ctx context.Context, id, accountID string) (*models.Discussion, error) {
	j.discussionJoins = append(j.discussionJoins, id+":"+accountID)
	return &models.Discussion{ID: id}, nil
}

type sessionJoinStub struct{ joins *joinStub }

func (s sessionJoinStub) Join(ctx context.Context, discussionID, accountID string) (*models.Session, error) {
	s.joins.sessionJoins = append(s.joins.sessionJoins, discussionID+":"+accountID)
	return &models.Session{DiscussionID: discussionID}, nil
}

type notificationFixture struct {
	svc    *NotificationService
	repo   *notificationRepoStub
	sender *pushSenderStub
	joins  *joinStub
}

func newNotificationFixture() notificationFixture {
	discussions := newDiscussionRepoStub()
	seedDiscussion(discussions)
	sessions := &sessionRepoStub{sessions: map[string]*models.Session{
		"disc-1": {DiscussionID: "disc-1", Participants: pq.StringArray{"bob"}},
	}}
	repo := newNotificationRepoStub()
	sender := &pushSenderStub{}
	joins := &joinStub{}
	svc := NewNotificationService(NotificationDeps{
		Repo:            repo,
		Accounts:        testAccounts(),
		Discussions:     discussions,
		Sessions:        sessions,
		DiscussionJoins: joins,
		SessionJoins:    sessionJoinStub{joins: joins},
		Sender:          sender,
		Metrics:         NewMetricsService(),
	}, nil, zap.NewNop())
	return notificationFixture{svc: svc, repo: repo, sender: sender, joins: joins}
}

func TestNotificationServiceSendPushesToDevice(t *testing.T) {
	f := newNotificationFixture()

	n, err := f.svc.Send(context.Background(), SendNotificationRequest{
		ReceiverID: "alice",
		Type:       models.NotificationJoinSession,
		TargetID:   "disc-1",
	}, actorFor("bob"))
	require.NoError(t, err)
	assert.Equal(t, "bob", n.SenderID)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "device-token", f.sender.sent[0].Token)
	assert.Equal(t, n.ID, f.sender.sent[0].Data["notification_id"])
	assert.Equal(t, 1, f.repo.created)
}

func TestNotificationServiceSendValidation(t *testing.T) {
	f := newNotificationFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		req   SendNotificationRequest
		actor string
		want  *appErrors.Error
	}{
		{"bad type", SendNotificationRequest{ReceiverID: "carol", Type: "PING", TargetID: "disc-1"}, "alice", appErrors.ErrValidation},
		{"self", SendNotificationRequest{ReceiverID: "alice", Type: models.NotificationJoinDiscussion, TargetID: "disc-1"}, "alice", appErrors.ErrValidation},
		{"unknown receiver", SendNotificationRequest{ReceiverID: "zed", Type: models.NotificationJoinDiscussion, TargetID: "disc-1"}, "alice", appErrors.ErrNotFound},
		{"outsider sender", SendNotificationRequest{ReceiverID: "bob", Type: models.NotificationJoinDiscussion, TargetID: "disc-1"}, "carol", appErrors.ErrForbidden},
		{"already participant", SendNotificationRequest{ReceiverID: "bob", Type: models.NotificationJoinDiscussion, TargetID: "disc-1"}, "alice", appErrors.ErrConflict},
		{"session outsider", SendNotificationRequest{ReceiverID: "carol", Type: models.NotificationJoinSession, TargetID: "disc-1"}, "alice", appErrors.ErrValidation},
		{"already in session", SendNotificationRequest{ReceiverID: "bob", Type: models.NotificationJoinSession, TargetID: "disc-1"}, "alice", appErrors.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Send(ctx, tc.req, actorFor(tc.actor))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), err.Error())
		})
	}
	assert.Zero(t, f.repo.created)
}

func TestNotificationServiceAccept(t *testing.T) {
	f := newNotificationFixture()
	ctx := context.Background()

	invite, err := f.svc.Send(ctx, SendNotificationRequest{ReceiverID: "carol", Type: models.NotificationJoinDiscussion, TargetID: "disc-1"}, actorFor("alice"))
	require.NoError(t, err)
	assert.Empty(t, f.sender.sent)

	_, err = f.svc.Accept(ctx, invite.ID, actorFor("bob"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	accepted, err := f.svc.Accept(ctx, invite.ID, actorFor("carol"))
	require.NoError(t, err)
	assert.True(t, accepted.Executed)
	assert.Equal(t, []string{"disc-1:carol"}, f.joins.discussionJoins)

	_, err = f.svc.Accept(ctx, invite.ID, actorFor("carol"))
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	f.repo.items["notif-s"] = &models.Notification{ID: "notif-s", ReceiverID: "alice", TargetID: "disc-1", Type: models.NotificationJoinSession}
	_, err = f.svc.Accept(ctx, "notif-s", actorFor("alice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"disc-1:alice"}, f.joins.sessionJoins)
}

func TestNotificationServiceInbox(t *testing.T) {
	f := newNotificationFixture()
	ctx := context.Background()
	f.repo.items["n1"] = &models.Notification{ID: "n1", ReceiverID: "carol", Type: models.NotificationJoinDiscussion}
	f.repo.items["n2"] = &models.Notification{ID: "n2", ReceiverID: "carol", Type: models.NotificationJoinDiscussion, Read: true}

	unread, pagination, err := f.svc.ListMine(ctx, true, 1, 20, actorFor("carol"))
	require.NoError(t, err)
	assert.Len(t, unread, 1)
	assert.Equal(t, 1, pagination.TotalCount)

	require.NoError(t, f.svc.MarkRead(ctx, "n1", actorFor("carol")))
	assert.True(t, f.repo.items["n1"].Read)

	err = f.svc.Delete(ctx, "n2", actorFor("alice"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
	require.NoError(t, f.svc.Delete(ctx, "n2", actorFor("carol")))
	assert.NotContains(t, f.repo.items, "n2")

	err = f.svc.MarkRead(ctx, "missing", actorFor("carol"))
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestNotificationServiceQueuedFanOut(t *testing.T) {
	f := newNotificationFixture()
	queue := &queueStub{}
	f.svc.SetQueue(queue)
	ctx := context.Background()

	f.svc.NotifySession(ctx, "disc-1", "bob", []string{"alice", "carol"})
	require.Len(t, queue.jobs, 2)
	assert.Equal(t, 2, f.repo.created)

	for _, job := range queue.jobs {
		assert.Equal(t, NotificationJobType, job.Type)
		assert.NotEmpty(t, job.ID)
		require.NoError(t, f.svc.HandleDelivery(ctx, job))
	}
	assert.Equal(t, 2, f.repo.created)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "device-token", f.sender.sent[0].Token)
}

func TestNotificationServiceFullQueueKeepsInvitations(t *testing.T) {
	f := newNotificationFixture()
	f.svc.SetQueue(&queueStub{err: jobs.ErrQueueFull})
	ctx := context.Background()

	f.svc.NotifySession(ctx, "disc-1", "bob", []string{"alice", "carol"})
	assert.Equal(t, 2, f.repo.created)
	assert.Empty(t, f.sender.sent)

	items, _, err := f.svc.ListMine(ctx, false, 1, 10, actorFor("alice"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationJoinSession, items[0].Type)
}

func TestNotificationServiceRetryReusesStoredRow(t *testing.T) {
	f := newNotificationFixture()
	f.sender.err = errors.New("fcm unavailable")
	job := jobs.Job{ID: "notif-9", Type: NotificationJobType, Payload: &models.Notification{ID: "notif-9", ReceiverID: "alice", SenderID: "bob", TargetID: "disc-1", Type: models.NotificationJoinSession}}

	require.Error(t, f.svc.HandleDelivery(context.Background(), job))
	f.sender.err = nil
	require.NoError(t, f.svc.HandleDelivery(context.Background(), job))
	assert.Zero(t, f.repo.created)
	require.Len(t, f.sender.sent, 1)

	f.svc.RecordDropped(job, errors.New("gave up"))
	require.Error(t, f.svc.HandleDelivery(context.Background(), jobs.Job{Payload: "nope"}))
}
