package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aptilab/internal/domain"

	"go.uber.org/zap"
)

// BatchService grows topic pools with generated questions.
type BatchService interface {
	GenerateNewQuestionsAndSave(ctx context.Context, topics []string, perTopic int) (*BatchReport, error)
}

// BatchReport counts what one batch run stored per topic.
type BatchReport struct {
	Saved  map[string]int
	Failed []string
}

type batchService struct {
	generator domain.QuestionGenerator
	questions domain.QuestionRepository
	tx        domain.TransactionManager
	logger    *zap.Logger
}

func NewBatchService(generator domain.QuestionGenerator, questions domain.QuestionRepository, tx domain.TransactionManager, logger *zap.Logger) BatchService {
	return &batchService{generator: generator, questions: questions, tx: tx, logger: logger}
}

// GenerateNewQuestionsAndSave generates perTopic questions for every topic and
// stores each topic's batch in one transaction. A failing topic is logged and
// skipped; the run only errors when every topic failed.
func (s *batchService) GenerateNewQuestionsAndSave(ctx context.Context, topics []string, perTopic int) (*BatchReport, error) {
	if perTopic <= 0 {
		perTopic = 10
	}
	s.logger.Info("Starting batch question generation",
		zap.Strings("topics", topics),
		zap.Int("per_topic", perTopic),
		zap.Time("start_time", time.Now()),
	)

	report := &BatchReport{Saved: make(map[string]int, len(topics))}
	for _, topic := range topics {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		before, err := s.questions.CountByTopic(ctx, topic)
		if err != nil {
			s.logger.Error("Failed to count questions for topic", zap.String("topic", topic), zap.Error(err))
			report.Failed = append(report.Failed, topic)
			continue
		}

		generated, err := s.generator.Generate(ctx, topic, perTopic)
		if err != nil {
			s.logger.Error("Failed to generate questions for topic", zap.String("topic", topic), zap.Error(err))
			report.Failed = append(report.Failed, topic)
			continue
		}

		fresh := distinctByText(generated.Questions)
		for _, q := range fresh {
			q.Topic = topic
		}
		err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			return s.questions.SaveQuestions(txCtx, fresh)
		})
		if err != nil {
			s.logger.Error("Failed to save generated questions", zap.String("topic", topic), zap.Error(err))
			report.Failed = append(report.Failed, topic)
			continue
		}

		report.Saved[topic] = len(fresh)
		s.logger.Info("Stored generated questions",
			zap.String("topic", topic),
			zap.String("model", generated.Model),
			zap.Int("saved", len(fresh)),
			zap.Int("pool_before", before),
		)
	}

	s.logger.Info("Batch question generation completed", zap.Time("end_time", time.Now()))
	if len(topics) > 0 && len(report.Failed) == len(topics) {
		return report, fmt.Errorf("batch generation failed for every topic: %s", strings.Join(report.Failed, ", "))
	}
	return report, nil
}

// distinctByText drops questions whose text repeats an earlier one in the same batch.
func distinctByText(questions []*domain.Question) []*domain.Question {
	seen := make(map[string]bool, len(questions))
	out := make([]*domain.Question, 0, len(questions))
	for _, q := range questions {
		key := strings.ToLower(strings.Join(strings.Fields(q.Text), " "))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}
