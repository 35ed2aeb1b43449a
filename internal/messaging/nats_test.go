package messaging

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishWithoutConnection(t *testing.T) {
	c := &NATSClient{}

	assert.ErrorIs(t, c.Publish("users.created", []byte("{}")), nats.ErrConnectionClosed)
	assert.NotPanics(t, c.Close)
}

func TestNewNATSClientUnreachable(t *testing.T) {
	cfg := DefaultNATSConfig()
	cfg.URL = "nats://127.0.0.1:1"

	_, err := NewNATSClient(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	client, err := NewNATSClient(DefaultNATSConfig(), zap.New(core))
	if err != nil {
		t.Skipf("skipping: NATS not available: %v", err)
	}
	defer client.Close()

	sub, err := client.conn.SubscribeSync("users.>")
	require.NoError(t, err)

	require.NoError(t, client.Publish("users.created", []byte(`{"user_id":1}`)))

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "users.created", msg.Subject)
	assert.JSONEq(t, `{"user_id":1}`, string(msg.Data))
	assert.Equal(t, 1, logs.FilterMessage("nats connected").Len())
}
