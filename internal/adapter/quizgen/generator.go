package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aptilab/internal/domain"
	"aptilab/internal/logger"
	"aptilab/internal/metrics"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	defaultAttemptTimeout = 60 * time.Second
	defaultHealthTimeout  = 7 * time.Second
)

// Options configures a FailoverGenerator.
type Options struct {
	// Models are tried in order; empty entries and repeats are skipped.
	Models         []string
	AttemptTimeout time.Duration
	HealthTimeout  time.Duration
	Temperature    float64
	Metrics        *metrics.Metrics
}

// FailoverGenerator calls one langchaingo model client, switching the model
// name per attempt until one answers with a usable response.
type FailoverGenerator struct {
	llm            llms.Model
	models         []string
	attemptTimeout time.Duration
	healthTimeout  time.Duration
	temperature    float64
	metrics        *metrics.Metrics
}

var (
	_ domain.QuestionGenerator = (*FailoverGenerator)(nil)
	_ domain.TextGenerator     = (*FailoverGenerator)(nil)
)

func NewFailoverGenerator(llm llms.Model, opts Options) (*FailoverGenerator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	models := Candidates(opts.Models...)
	if len(models) == 0 {
		return nil, errors.New("at least one model name is required")
	}
	g := &FailoverGenerator{
		llm:            llm,
		models:         models,
		attemptTimeout: opts.AttemptTimeout,
		healthTimeout:  opts.HealthTimeout,
		temperature:    opts.Temperature,
		metrics:        opts.Metrics,
	}
	if g.attemptTimeout <= 0 {
		g.attemptTimeout = defaultAttemptTimeout
	}
	if g.healthTimeout <= 0 {
		g.healthTimeout = defaultHealthTimeout
	}
	if g.temperature <= 0 {
		g.temperature = 0.7
	}
	return g, nil
}

// Candidates trims names and drops empty and repeated entries, keeping first occurrences.
func Candidates(names ...string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Models returns the candidate chain in the order it is tried.
func (g *FailoverGenerator) Models() []string {
	return append([]string(nil), g.models...)
}

// Generate asks for count questions on topic. Transport failures, empty or
// unparseable output and short lists all move on to the next candidate.
func (g *FailoverGenerator) Generate(ctx context.Context, topic string, count int) (*domain.GeneratedQuestions, error) {
	prompt := questionPrompt(topic, count)
	var lastErr error

	for _, model := range g.models {
		text, err := g.call(ctx, model, prompt, g.attemptTimeout)
		if err == nil {
			var questions []*domain.Question
			questions, err = parseQuestions(text, topic, count)
			if err == nil {
				g.metrics.GenerationAttempt(model, "ok")
				return &domain.GeneratedQuestions{Questions: questions, Model: model}, nil
			}
		}

		g.metrics.GenerationAttempt(model, "error")
		logger.Get().Warn("Question generation attempt failed",
			zap.String("model", model),
			zap.String("topic", topic),
			zap.Int("count", count),
			zap.Error(err),
		)
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	var short *insufficientError
	if errors.As(lastErr, &short) {
		return nil, domain.NewInsufficientQuestionsError(lastErr).WithContext("models_tried", len(g.models))
	}
	return nil, domain.NewGenerationError("Failed to generate AI questions", lastErr).
		WithContext("models_tried", len(g.models))
}

// Complete returns the first non-empty free-form answer along the chain.
func (g *FailoverGenerator) Complete(ctx context.Context, prompt string) (*domain.Completion, error) {
	var lastErr error
	for _, model := range g.models {
		text, err := g.call(ctx, model, prompt, g.attemptTimeout)
		if err == nil {
			g.metrics.GenerationAttempt(model, "ok")
			return &domain.Completion{Text: StripThinking(text), Model: model}, nil
		}
		g.metrics.GenerationAttempt(model, "error")
		logger.Get().Warn("Completion attempt failed", zap.String("model", model), zap.Error(err))
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, domain.NewGenerationError("AI service failed", lastErr)
}

// Probe exercises each candidate with a short timeout and reports every failure.
func (g *FailoverGenerator) Probe(ctx context.Context) *domain.ProbeResult {
	res := &domain.ProbeResult{}
	for _, model := range g.models {
		text, err := g.call(ctx, model, probePrompt, g.healthTimeout)
		if err == nil {
			res.OK = true
			res.Model = model
			res.Reply = StripThinking(text)
			if res.Reply == "" {
				res.Reply = "OK"
			}
			return res
		}
		res.Tried = append(res.Tried, domain.ModelAttempt{Model: model, Error: err.Error()})
		if ctx.Err() != nil {
			break
		}
	}
	return res
}

func (g *FailoverGenerator) call(ctx context.Context, model, prompt string, timeout time.Duration) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := llms.GenerateFromSinglePrompt(attemptCtx, g.llm, prompt,
		llms.WithModel(model),
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", model, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: empty response from model", model)
	}
	return text, nil
}
