package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status of a single check or of the service as a whole.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

type CheckResult struct {
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
	Message    string    `json:"message,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker probes one dependency. It must honour ctx.
type Checker func(ctx context.Context) CheckResult

// Pinger is anything that can report connectivity, such as the profile store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service aggregates liveness and readiness for the HTTP probes.
type Service struct {
	startTime time.Time
	version   string
	timeout   time.Duration
	checkers  map[string]Checker
	log       *zap.Logger
	mu        sync.RWMutex
}

func NewService(version string, log *zap.Logger) *Service {
	return &Service{
		startTime: time.Now(),
		version:   version,
		timeout:   5 * time.Second,
		checkers:  make(map[string]Checker),
		log:       log,
	}
}

// RegisterChecker adds or replaces the check reported under name.
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
	s.log.Info("Registered health checker", zap.String("name", name))
}

// Health answers the liveness probe. It never runs checkers.
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Timestamp: time.Now(),
	}
}

// Ready runs every registered check concurrently, each under its own
// timeout. Any unhealthy check makes the service not ready; degraded checks
// only lower the status.
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	checks := make([]Checker, len(names))
	for i, name := range names {
		checks[i] = s.checkers[name]
	}
	s.mu.RUnlock()

	// Each goroutine owns one slot, so no lock is needed.
	slots := make([]CheckResult, len(names))
	var g errgroup.Group
	for i := range checks {
		i := i
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			slots[i] = checks[i](checkCtx)
			slots[i].Name = names[i]
			return nil
		})
	}
	_ = g.Wait()

	resp := &ReadyResponse{
		Ready:     true,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]CheckResult, len(slots)),
	}
	for _, r := range slots {
		resp.Checks[r.Name] = r
		resp.Status = worse(resp.Status, r.Status)
	}
	resp.Ready = resp.Status != StatusUnhealthy

	if !resp.Ready {
		s.log.Warn("Readiness check failed", zap.String("status", string(resp.Status)))
	}
	return resp
}

func worse(a, b Status) Status {
	rank := func(s Status) int {
		switch s {
		case StatusUnhealthy:
			return 2
		case StatusDegraded:
			return 1
		}
		return 0
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}

// PingChecker reports unhealthy when p cannot be reached.
func PingChecker(p Pinger, log *zap.Logger) Checker {
	return func(ctx context.Context) CheckResult {
		start := time.Now()
		result := CheckResult{Timestamp: start}

		err := p.Ping(ctx)
		result.DurationMS = time.Since(start).Milliseconds()

		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = fmt.Sprintf("ping failed: %v", err)
			log.Warn("Health check failed", zap.Error(err))
		} else {
			result.Status = StatusHealthy
			result.Message = "connection ok"
		}
		return result
	}
}

// BreakerChecker reports degraded while the narrative circuit is not closed.
// Analysis still works without narrative, so it never marks the service
// unready.
func BreakerChecker(state func() string) Checker {
	return func(ctx context.Context) CheckResult {
		st := state()
		result := CheckResult{
			Status:    StatusHealthy,
			Message:   "circuit " + st,
			Timestamp: time.Now(),
		}
		if st != "closed" {
			result.Status = StatusDegraded
		}
		return result
	}
}
