package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
)

func TestNotificationListUnread(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+notificationColumns+" FROM notifications WHERE receiver_id = $1 AND read = FALSE ORDER BY sent_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "receiver_id", "sender_id", "target_id", "type", "read", "executed", "sent_at"}).
			AddRow("n1", "b", "a", "d1", "JOIN_DISCUSSION", false, false, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE receiver_id = $1 AND read = FALSE")).
		WithArgs("b").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.List(context.Background(), models.NotificationFilter{ReceiverID: "b", UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationJoinDiscussion, items[0].Type)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationCreateAndMarkExecuted(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET executed = TRUE, read = TRUE WHERE id = $1")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n := &models.Notification{ReceiverID: "b", SenderID: "a", TargetID: "d1", Type: models.NotificationJoinSession}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.SentAt.IsZero())
	require.NoError(t, repo.MarkExecuted(context.Background(), n.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
