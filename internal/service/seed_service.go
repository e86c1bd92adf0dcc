package service

import (
	"context"

	"aptilab/internal/domain"
	"aptilab/internal/logger"
	"aptilab/internal/seed"

	"go.uber.org/zap"
)

// SeedService keeps every topic's pool at seed.QuestionsPerTopic questions.
type SeedService interface {
	EnsureQuestionBank(ctx context.Context) (map[string]int, error)
}

type seedServiceImpl struct {
	bank      *seed.Bank
	questions domain.QuestionRepository
	tx        domain.TransactionManager
	topics    []string
}

func NewSeedService(bank *seed.Bank, questions domain.QuestionRepository, tx domain.TransactionManager) SeedService {
	return &seedServiceImpl{bank: bank, questions: questions, tx: tx, topics: domain.Topics}
}

// EnsureQuestionBank returns the number of questions inserted per topic.
// An empty topic receives its curated questions followed by placeholders; a
// partially filled one is padded with placeholders numbered after its count.
func (s *seedServiceImpl) EnsureQuestionBank(ctx context.Context) (map[string]int, error) {
	appLogger := logger.Get()
	inserted := make(map[string]int, len(s.topics))

	for _, topic := range s.topics {
		count, err := s.questions.CountByTopic(ctx, topic)
		if err != nil {
			return inserted, domain.NewStorageError("count_questions", err)
		}
		if count >= seed.QuestionsPerTopic {
			appLogger.Debug("Topic already seeded", zap.String("topic", topic), zap.Int("count", count))
			continue
		}

		var batch []*domain.Question
		if count == 0 {
			batch = s.bank.Pool(topic, seed.QuestionsPerTopic)
		} else {
			batch = seed.Placeholders(topic, count+1, seed.QuestionsPerTopic)
		}

		err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			return s.questions.SaveQuestions(txCtx, batch)
		})
		if err != nil {
			return inserted, domain.NewStorageError("seed_questions", err)
		}
		inserted[topic] = len(batch)
		appLogger.Info("Seeded topic",
			zap.String("topic", topic),
			zap.Int("existing", count),
			zap.Int("inserted", len(batch)),
		)
	}
	return inserted, nil
}
