package service

import (
	"context"
	"fmt"
	"time"

	"aptilab/internal/config"
	"aptilab/internal/domain"
	"aptilab/internal/logger"
	"aptilab/internal/metrics"

	"go.uber.org/zap"
)

// StoreBackedSource serves questions from the Question Store. When the unused
// pool for (user, topic) cannot cover a request, the user's ledger for that
// topic is wiped and the selection runs again against the whole pool.
type StoreBackedSource struct {
	questions domain.QuestionRepository
	usage     domain.UsageRepository
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewStoreBackedSource(questions domain.QuestionRepository, usage domain.UsageRepository, m *metrics.Metrics) *StoreBackedSource {
	return &StoreBackedSource{questions: questions, usage: usage, metrics: m, now: time.Now}
}

func (s *StoreBackedSource) Name() string { return config.SourceStore }

func (s *StoreBackedSource) SelectQuestions(ctx context.Context, userKey, topic string, count int) (*domain.Selection, error) {
	appLogger := logger.Get()

	questions, err := s.questions.SelectUnused(ctx, userKey, topic, count)
	if err != nil {
		return nil, domain.NewStorageError("select_unused", err)
	}

	if len(questions) < count {
		removed, err := s.usage.ResetUserTopic(ctx, userKey, topic)
		if err != nil {
			return nil, domain.NewStorageError("reset_usage", err)
		}
		if removed > 0 {
			s.metrics.LedgerReset(topic)
			appLogger.Info("Question pool exhausted, usage ledger reset",
				zap.String("user", userKey),
				zap.String("topic", topic),
				zap.Int("unused", len(questions)),
				zap.Int("requested", count),
				zap.Int64("records_removed", removed),
			)
		}

		questions, err = s.questions.SelectUnused(ctx, userKey, topic, count)
		if err != nil {
			return nil, domain.NewStorageError("select_unused", err)
		}
	}

	questions = uniqueByID(questions)
	if err := s.usage.RecordUsage(ctx, usageRecords(userKey, topic, questions, s.now())); err != nil {
		return nil, domain.NewStorageError("record_usage", err)
	}

	s.metrics.Served(s.Name(), len(questions))
	return &domain.Selection{Questions: questions}, nil
}

// GenerativeSource asks the generator for fresh questions, then stores them and
// records them as served in a single transaction.
type GenerativeSource struct {
	generator domain.QuestionGenerator
	questions domain.QuestionRepository
	usage     domain.UsageRepository
	tx        domain.TransactionManager
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewGenerativeSource(
	generator domain.QuestionGenerator,
	questions domain.QuestionRepository,
	usage domain.UsageRepository,
	tx domain.TransactionManager,
	m *metrics.Metrics,
) *GenerativeSource {
	return &GenerativeSource{
		generator: generator,
		questions: questions,
		usage:     usage,
		tx:        tx,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *GenerativeSource) Name() string { return config.SourceGenerative }

func (s *GenerativeSource) SelectQuestions(ctx context.Context, userKey, topic string, count int) (*domain.Selection, error) {
	generated, err := s.generator.Generate(ctx, topic, count)
	if err != nil {
		return nil, err
	}

	for _, q := range generated.Questions {
		q.Topic = topic
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.questions.SaveQuestions(txCtx, generated.Questions); err != nil {
			return err
		}
		return s.usage.RecordUsage(txCtx, usageRecords(userKey, topic, generated.Questions, s.now()))
	})
	if err != nil {
		logger.Get().Error("Failed to persist generated questions",
			zap.String("topic", topic),
			zap.String("model", generated.Model),
			zap.Error(err),
		)
		return nil, domain.NewStorageError("save_generated_questions", err)
	}

	s.metrics.Served(s.Name(), len(generated.Questions))
	return &domain.Selection{Questions: generated.Questions, Model: generated.Model}, nil
}

// NewQuestionSource builds the source named by cfg.Source. The generator is
// only required in generative mode.
func NewQuestionSource(
	cfg config.QuestionsConfig,
	questions domain.QuestionRepository,
	usage domain.UsageRepository,
	tx domain.TransactionManager,
	generator domain.QuestionGenerator,
	m *metrics.Metrics,
) (domain.QuestionSource, error) {
	switch cfg.Source {
	case "", config.SourceStore:
		return NewStoreBackedSource(questions, usage, m), nil
	case config.SourceGenerative:
		if generator == nil {
			return nil, fmt.Errorf("question source %q requires a configured generator", cfg.Source)
		}
		return NewGenerativeSource(generator, questions, usage, tx, m), nil
	default:
		return nil, fmt.Errorf("unknown question source %q", cfg.Source)
	}
}

func uniqueByID(questions []*domain.Question) []*domain.Question {
	seen := make(map[int64]bool, len(questions))
	out := questions[:0]
	for _, q := range questions {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

func usageRecords(userKey, topic string, questions []*domain.Question, usedAt time.Time) []domain.UsageRecord {
	records := make([]domain.UsageRecord, 0, len(questions))
	for _, q := range questions {
		records = append(records, domain.UsageRecord{
			UserKey:    userKey,
			Topic:      topic,
			QuestionID: q.ID,
			UsedAt:     usedAt,
		})
	}
	return records
}
