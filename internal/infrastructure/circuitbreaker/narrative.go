// Package circuitbreaker guards the narrative provider so a failing LLM
// backend is skipped quickly instead of holding every request until timeout.
package circuitbreaker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/ports"
)

// ErrEmptyCompletion is counted as a failure by the breaker.
var ErrEmptyCompletion = errors.New("narrative provider returned empty text")

type Settings struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// MinRequests and FailureRatio decide when the breaker opens.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultSettings mirrors the HTTP API breaker thresholds.
func DefaultSettings() Settings {
	return Settings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// Generator wraps a ports.NarrativeGenerator with a gobreaker circuit.
type Generator struct {
	next ports.NarrativeGenerator
	cb   *gobreaker.CircuitBreaker
	log  *zap.Logger
}

// OnStateChange is notified of every transition, e.g. to update a gauge.
type OnStateChange func(name string, from, to gobreaker.State)

func Wrap(next ports.NarrativeGenerator, s Settings, log *zap.Logger, notify OnStateChange) *Generator {
	name := "narrative-" + next.Name()
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= s.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if notify != nil {
				notify(name, from, to)
			}
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations and a disabled provider say nothing about
			// backend health.
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, domain.ErrNarrativeDisabled)
		},
	})

	return &Generator{next: next, cb: cb, log: log}
}

func (g *Generator) Generate(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		text, err := g.next.Generate(ctx, messages)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyCompletion
		}
		return text, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errors.Join(domain.ErrNarrativeUnavailable, err)
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (g *Generator) Name() string { return g.next.Name() }

// State reports "closed", "half-open" or "open".
func (g *Generator) State() string {
	return g.cb.State().String()
}

var _ ports.NarrativeGenerator = (*Generator)(nil)
