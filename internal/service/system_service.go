package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"aptilab/internal/adapter/quizgen"
	"aptilab/internal/cache"
	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/logger"
	"aptilab/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultChatTopic    = "Aptitude"
	defaultChatLevel    = "intermediate"
	defaultChatCount    = 5
	maxChatQuestions    = 15
	dependencyCheckTime = 3 * time.Second
)

var errAIUnconfigured = errors.New("GEMINI_API_KEY is not configured")

// ChatService answers tutoring requests through the text generator.
type ChatService interface {
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatServiceImpl struct {
	// generator is nil when no backend is configured.
	generator domain.TextGenerator
}

func NewChatService(generator domain.TextGenerator) ChatService {
	return &chatServiceImpl{generator: generator}
}

func (s *chatServiceImpl) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.NewInvalidInputError("Message is required")
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = defaultChatTopic
	}
	level := strings.TrimSpace(req.Level)
	if level == "" {
		level = defaultChatLevel
	}
	count := req.QuestionCount
	if count == 0 {
		count = defaultChatCount
	}
	count = util.ClampInt(count, 1, maxChatQuestions)

	if s.generator == nil {
		return nil, domain.NewGenerationError("AI service failed", errAIUnconfigured)
	}
	completion, err := s.generator.Complete(ctx, quizgen.TutorPrompt(message, topic, level, count))
	if err != nil {
		return nil, err
	}
	return &dto.ChatResponse{Success: true, Model: completion.Model, Reply: completion.Text}, nil
}

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthService reports liveness of the API and its dependencies.
type HealthService interface {
	Health(ctx context.Context) *dto.HealthResponse
	// AIHealth probes the generation backend. The response is always populated;
	// a non-nil error carries the status the response should be rendered with.
	AIHealth(ctx context.Context) (*dto.AIHealthResponse, error)
}

type healthServiceImpl struct {
	db        Pinger
	cache     domain.Cache
	generator domain.TextGenerator
	source    string
	cacheTTL  time.Duration
	group     singleflight.Group
}

func NewHealthService(db Pinger, c domain.Cache, generator domain.TextGenerator, source string, cacheTTL time.Duration) HealthService {
	return &healthServiceImpl{db: db, cache: c, generator: generator, source: source, cacheTTL: cacheTTL}
}

func (s *healthServiceImpl) Health(ctx context.Context) *dto.HealthResponse {
	resp := &dto.HealthResponse{
		Status:   "running",
		Database: "connected",
		Cache:    "connected",
		AI:       "configured",
		Source:   s.source,
	}

	checkCtx, cancel := context.WithTimeout(ctx, dependencyCheckTime)
	defer cancel()

	if s.db == nil || s.db.PingContext(checkCtx) != nil {
		resp.Database = "unreachable"
	}
	if err := s.cache.Ping(checkCtx); err != nil {
		resp.Cache = "unreachable"
	}
	if s.generator == nil {
		resp.AI = "missing"
	}
	return resp
}

func (s *healthServiceImpl) AIHealth(ctx context.Context) (*dto.AIHealthResponse, error) {
	if s.generator == nil {
		return &dto.AIHealthResponse{Status: "error", AI: "missing", Error: errAIUnconfigured.Error()},
			domain.NewInvalidInputError(errAIUnconfigured.Error())
	}

	if cached, ok := s.cachedProbe(ctx); ok {
		return probeResponse(cached), nil
	}

	v, _, _ := s.group.Do("ai-health", func() (interface{}, error) {
		probe := s.generator.Probe(context.WithoutCancel(ctx))
		if probe.OK {
			s.storeProbe(ctx, probe)
		}
		return probe, nil
	})
	probe := v.(*domain.ProbeResult)

	resp := probeResponse(probe)
	if !probe.OK {
		logger.Get().Warn("AI health probe failed", zap.Int("candidates", len(probe.Tried)))
		return resp, domain.NewGenerationError(resp.Error, nil)
	}
	return resp, nil
}

func (s *healthServiceImpl) cachedProbe(ctx context.Context) (*domain.ProbeResult, bool) {
	raw, err := s.cache.Get(ctx, cache.AIHealthKey())
	if err != nil {
		return nil, false
	}
	var probe domain.ProbeResult
	if err := json.Unmarshal([]byte(raw), &probe); err != nil || !probe.OK {
		return nil, false
	}
	return &probe, true
}

func (s *healthServiceImpl) storeProbe(ctx context.Context, probe *domain.ProbeResult) {
	if s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(probe)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cache.AIHealthKey(), string(raw), s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to cache AI health probe", zap.Error(err))
	}
}

func probeResponse(p *domain.ProbeResult) *dto.AIHealthResponse {
	if p.OK {
		return &dto.AIHealthResponse{Status: "ok", AI: "ok", Model: p.Model, Reply: p.Reply}
	}
	return &dto.AIHealthResponse{
		Status: "error",
		AI:     "error",
		Error:  "All candidate Gemini models failed",
		Tried:  p.Tried,
	}
}
