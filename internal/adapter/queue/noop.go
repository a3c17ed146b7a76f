package queue

import (
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/ports"
)

// NoopQueue drops every message. It is used when messaging is disabled.
type NoopQueue struct {
	log *zap.Logger
}

func NewNoopQueue(log *zap.Logger) *NoopQueue {
	return &NoopQueue{log: log}
}

func (q *NoopQueue) Publish(subject string, data []byte) error {
	q.log.Debug("Dropping event, messaging disabled", zap.String("subject", subject))
	return nil
}

func (q *NoopQueue) Subscribe(subject string, handler func(data []byte) error) error {
	return nil
}

func (q *NoopQueue) Close() error { return nil }

var _ ports.MessageQueue = (*NoopQueue)(nil)
