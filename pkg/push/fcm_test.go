package push

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/pkg/config"
)

type clientStub struct {
	sent []*messaging.Message
	err  error
}

func (c *clientStub) Send(_ context.Context, m *messaging.Message) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.sent = append(c.sent, m)
	return "projects/p/messages/1", nil
}

func TestFCMSenderSend(t *testing.T) {
	stub := &clientStub{}
	sender := &FCMSender{client: stub, logger: zap.NewNop()}

	err := sender.Send(context.Background(), Message{
		Token: "device-token",
		Title: "Session invite",
		Body:  "Alice invited you",
		Data:  map[string]string{"type": "JOIN_SESSION"},
	})
	require.NoError(t, err)
	require.Len(t, stub.sent, 1)
	assert.Equal(t, "device-token", stub.sent[0].Token)
	assert.Equal(t, "Session invite", stub.sent[0].Notification.Title)
	assert.Equal(t, "JOIN_SESSION", stub.sent[0].Data["type"])
}

func TestFCMSenderSkipsEmptyToken(t *testing.T) {
	stub := &clientStub{}
	sender := &FCMSender{client: stub, logger: zap.NewNop()}

	require.NoError(t, sender.Send(context.Background(), Message{Title: "x"}))
	assert.Empty(t, stub.sent)
}

func TestFCMSenderPropagatesError(t *testing.T) {
	sender := &FCMSender{client: &clientStub{err: errors.New("unavailable")}, logger: zap.NewNop()}

	err := sender.Send(context.Background(), Message{Token: "t"})
	assert.ErrorContains(t, err, "unavailable")
}

func TestNewDisabledReturnsNop(t *testing.T) {
	sender, err := New(context.Background(), config.PushConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.IsType(t, NopSender{}, sender)
	assert.NoError(t, sender.Send(context.Background(), Message{Token: "t"}))
}
