// Package events carries profile lifecycle notifications from the user
// service to whatever sinks are configured at startup: structured logs,
// Prometheus counters and a NATS subject.
package events

import (
	"context"
	"encoding/json"
	"time"

	"profilematch/internal/metrics"

	"go.uber.org/zap"
)

type Action string

const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionDeactivated Action = "deactivated"
)

type Event struct {
	UserID     uint      `json:"user_id"`
	Action     Action    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(userID uint, action Action) Event {
	return Event{UserID: userID, Action: action, OccurredAt: time.Now().UTC()}
}

// Observer receives an event after the change it describes has been
// committed. Implementations must not block the caller for long.
type Observer interface {
	Notify(ctx context.Context, event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, event Event)

func (f ObserverFunc) Notify(ctx context.Context, event Event) {
	f(ctx, event)
}

// Multi fans an event out to every observer in order.
func Multi(observers ...Observer) Observer {
	return multi(observers)
}

type multi []Observer

func (m multi) Notify(ctx context.Context, event Event) {
	for _, o := range m {
		if o != nil {
			o.Notify(ctx, event)
		}
	}
}

// Nop discards every event.
var Nop Observer = ObserverFunc(func(context.Context, Event) {})

type logObserver struct {
	logger *zap.Logger
}

// NewLogObserver writes one info entry per event.
func NewLogObserver(logger *zap.Logger) Observer {
	return &logObserver{logger: logger}
}

func (o *logObserver) Notify(_ context.Context, event Event) {
	o.logger.Info("user "+string(event.Action),
		zap.Uint("user_id", event.UserID),
		zap.String("action", string(event.Action)),
	)
}

type metricsObserver struct{}

// NewMetricsObserver counts events in metrics.ProfileEventsTotal.
func NewMetricsObserver() Observer {
	return metricsObserver{}
}

func (metricsObserver) Notify(_ context.Context, event Event) {
	metrics.ProfileEventsTotal.WithLabelValues(string(event.Action)).Inc()
}

// Publisher is the subset of messaging.NATSClient the publisher sink needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type publishObserver struct {
	publisher Publisher
	prefix    string
	logger    *zap.Logger
}

// NewPublishObserver publishes each event as JSON on "<prefix>.<action>".
// Publish failures are logged and otherwise ignored: the change is already
// committed.
func NewPublishObserver(publisher Publisher, prefix string, logger *zap.Logger) Observer {
	return &publishObserver{publisher: publisher, prefix: prefix, logger: logger}
}

func (o *publishObserver) Notify(_ context.Context, event Event) {
	subject := o.prefix + "." + string(event.Action)

	data, err := json.Marshal(event)
	if err != nil {
		o.logger.Error("marshal event", zap.Error(err), zap.Uint("user_id", event.UserID))
		return
	}

	if err := o.publisher.Publish(subject, data); err != nil {
		o.logger.Warn("publish event failed",
			zap.String("subject", subject),
			zap.Uint("user_id", event.UserID),
			zap.Error(err),
		)
	}
}
