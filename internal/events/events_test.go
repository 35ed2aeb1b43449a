package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.messages = append(f.messages, published{subject: subject, data: data})
	return f.err
}

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	NewLogObserver(zap.New(core)).Notify(context.Background(), NewEvent(7, ActionCreated))

	entries := logs.FilterMessage("user created").All()
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(7), entries[0].ContextMap()["user_id"])
	assert.Equal(t, "created", entries[0].ContextMap()["action"])
}

func TestPublishObserver(t *testing.T) {
	publisher := &fakePublisher{}
	o := NewPublishObserver(publisher, "users", zaptest.NewLogger(t))

	o.Notify(context.Background(), NewEvent(3, ActionDeactivated))

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "users.deactivated", publisher.messages[0].subject)

	var got Event
	require.NoError(t, json.Unmarshal(publisher.messages[0].data, &got))
	assert.Equal(t, uint(3), got.UserID)
	assert.Equal(t, ActionDeactivated, got.Action)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestPublishObserverLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	publisher := &fakePublisher{err: errors.New("nats: connection closed")}

	NewPublishObserver(publisher, "users", zap.New(core)).
		Notify(context.Background(), NewEvent(3, ActionUpdated))

	entries := logs.FilterMessage("publish event failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "users.updated", entries[0].ContextMap()["subject"])
}

func TestMulti(t *testing.T) {
	var order []string
	record := func(name string) Observer {
		return ObserverFunc(func(_ context.Context, e Event) {
			order = append(order, name+":"+string(e.Action))
		})
	}

	Multi(record("a"), nil, record("b")).Notify(context.Background(), NewEvent(1, ActionUpdated))

	assert.Equal(t, []string{"a:updated", "b:updated"}, order)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop.Notify(context.Background(), NewEvent(1, ActionCreated))
	})
}
