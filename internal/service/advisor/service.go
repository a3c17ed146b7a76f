// Package advisor runs analyses and chat turns: deterministic results from
// the analysis engine, narrative text from the configured generator.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/observability/telemetry"
	"github.com/seu-repo/clinic-advisor/internal/ports"
	"github.com/seu-repo/clinic-advisor/internal/service/analysis"
	"github.com/seu-repo/clinic-advisor/internal/service/narrative"
)

type Config struct {
	// NarrativeTimeout bounds a single generator call.
	NarrativeTimeout time.Duration
	MaxChatHistory   int
	// MaxChatMessageLength is counted in characters after trimming.
	MaxChatMessageLength int
}

func DefaultConfig() Config {
	return Config{
		NarrativeTimeout:     180 * time.Second,
		MaxChatHistory:       20,
		MaxChatMessageLength: 2000,
	}
}

type Service struct {
	engine    analysis.Engine
	generator ports.NarrativeGenerator
	cfg       Config
	tracer    trace.Tracer
	log       *zap.Logger
}

func NewService(engine analysis.Engine, generator ports.NarrativeGenerator, cfg Config, log *zap.Logger) *Service {
	return &Service{
		engine:    engine,
		generator: generator,
		cfg:       cfg,
		tracer:    telemetry.Tracer(),
		log:       log,
	}
}

// Analyze always returns the deterministic result for a known tab. The
// narrative is best effort: generator failures end up in the diagnostic.
func (s *Service) Analyze(ctx context.Context, kind domain.AnalysisKind, profile domain.ClinicProfile) (*domain.AnalysisEnvelope, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.Analyze",
		trace.WithAttributes(attribute.String("clinic.tab", string(kind))),
	)
	defer span.End()
	start := time.Now()

	result, err := s.engine.Run(kind, profile)
	if err != nil {
		telemetry.AnalysisRequestsTotal.WithLabelValues("unknown", "rejected").Inc()
		span.SetStatus(codes.Error, "unknown tab")
		return nil, err
	}

	env := &domain.AnalysisEnvelope{
		Tab:           kind,
		Deterministic: result,
		Financials:    analysis.DeriveFinancials(profile),
	}

	if msgs, ok := narrative.AnalysisMessages(kind, profile); ok {
		env.Narrative = s.narrate(ctx, msgs)
	}

	status := "ok"
	if env.Narrative.Diagnostic != nil {
		status = "degraded"
	}
	telemetry.AnalysisRequestsTotal.WithLabelValues(string(kind), status).Inc()
	telemetry.AnalysisDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.String("clinic.verdict", string(result.Result().Verdict)),
		attribute.Bool("clinic.narrative", env.Narrative.Text != nil),
	)

	s.log.Info("Analysis completed",
		zap.String("tab", string(kind)),
		zap.String("verdict", string(result.Result().Verdict)),
		zap.Bool("narrative", env.Narrative.Text != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return env, nil
}

func (s *Service) narrate(ctx context.Context, msgs []domain.ChatMessage) domain.Narrative {
	text, err := s.generate(ctx, msgs)
	switch {
	case errors.Is(err, domain.ErrNarrativeDisabled):
		return domain.Narrative{}
	case err != nil:
		s.log.Warn("Narrative unavailable, returning deterministic analysis only", zap.Error(err))
		diag := err.Error()
		return domain.Narrative{Diagnostic: &diag}
	}
	return domain.Narrative{Text: &text}
}

// generate calls the generator under the configured timeout and cleans up
// the text. An empty cleaned result is an error.
func (s *Service) generate(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.generate",
		trace.WithAttributes(attribute.String("llm.provider", s.generator.Name())),
	)
	defer span.End()

	if s.cfg.NarrativeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.NarrativeTimeout)
		defer cancel()
	}

	provider := s.generator.Name()
	start := time.Now()
	raw, err := s.generator.Generate(ctx, msgs)
	telemetry.NarrativeLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrNarrativeDisabled) {
			outcome = "disabled"
		}
		telemetry.NarrativeRequestsTotal.WithLabelValues(provider, outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return "", err
	}

	text := narrative.PostProcess(raw)
	if text == "" {
		telemetry.NarrativeRequestsTotal.WithLabelValues(provider, "empty").Inc()
		span.SetStatus(codes.Error, "empty")
		return "", fmt.Errorf("%w: empty completion", domain.ErrNarrativeUnavailable)
	}

	telemetry.NarrativeRequestsTotal.WithLabelValues(provider, "ok").Inc()
	return text, nil
}

// Chat answers one free-form question about the profile.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.Chat")
	defer span.End()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		telemetry.ChatRequestsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: 메시지를 입력해주십시오", domain.ErrInvalidChatMessage)
	}
	if req.Profile == nil {
		telemetry.ChatRequestsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrProfileRequired
	}
	if limit := s.cfg.MaxChatMessageLength; limit > 0 && utf8.RuneCountInString(message) > limit {
		telemetry.ChatRequestsTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("%w: 메시지는 %d자 이하로 입력해주십시오", domain.ErrInvalidChatMessage, limit)
	}

	msgs := narrative.ChatMessages(*req.Profile, req.History, message, s.cfg.MaxChatHistory)
	span.SetAttributes(attribute.Int("chat.turns", len(msgs)))

	reply, err := s.generate(ctx, msgs)
	if err != nil {
		telemetry.ChatRequestsTotal.WithLabelValues("unavailable").Inc()
		s.log.Warn("Chat reply unavailable", zap.Error(err))
		if errors.Is(err, domain.ErrNarrativeUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrNarrativeUnavailable, err)
	}

	telemetry.ChatRequestsTotal.WithLabelValues("ok").Inc()
	return reply, nil
}

var (
	_ ports.AnalysisService = (*Service)(nil)
	_ ports.ChatService     = (*Service)(nil)
)
