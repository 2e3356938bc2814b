package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
)

func TestDiscussionFindByIDScansArrays(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiscussionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "creator_id", "participants", "admins", "created_at", "updated_at"}).
		AddRow("d1", "Friday night", "", "a", "{a,b}", "{a}", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+discussionColumns+" FROM discussions WHERE id = $1")).
		WithArgs("d1").
		WillReturnRows(rows)

	discussion, err := repo.FindByID(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, discussion.IsParticipant("b"))
	assert.True(t, discussion.IsAdmin("a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscussionListByParticipant(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiscussionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE $1 = ANY(participants) ORDER BY updated_at DESC")).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "creator_id", "participants", "admins", "created_at", "updated_at"}))

	discussions, err := repo.ListByParticipant(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, discussions)
}

func TestDiscussionCreateMessageCommits(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiscussionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO discussion_messages").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE discussions SET updated_at = $2 WHERE id = $1")).
		WithArgs("d1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg := &models.DiscussionMessage{DiscussionID: "d1", SenderID: "a", Content: "hi"}
	require.NoError(t, repo.CreateMessage(context.Background(), msg))
	assert.NotEmpty(t, msg.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscussionCreateMessageRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiscussionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO discussion_messages").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.CreateMessage(context.Background(), &models.DiscussionMessage{DiscussionID: "d1", SenderID: "a", Content: "hi"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscussionListMessages(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDiscussionRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM discussion_messages WHERE discussion_id = $1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "discussion_id", "sender_id", "content", "created_at"}).AddRow("m1", "d1", "a", "hi", now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM discussion_messages WHERE discussion_id = $1")).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	messages, total, err := repo.ListMessages(context.Background(), models.MessageFilter{DiscussionID: "d1"})
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, 1, total)
}
