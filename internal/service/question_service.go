package service

import (
	"context"
	"errors"
	"strings"

	"aptilab/internal/cache"
	"aptilab/internal/config"
	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/logger"
	"aptilab/internal/util"

	"go.uber.org/zap"
)

// AnonymousUser is the ledger key used when a request names no user.
const AnonymousUser = "anonymous"

// QuestionService delivers question sets through the configured source.
type QuestionService interface {
	GetQuestions(ctx context.Context, query dto.QuestionsQuery) (*dto.QuestionsResponse, error)
	SourceName() string
}

type questionServiceImpl struct {
	source domain.QuestionSource
	cfg    config.QuestionsConfig
}

func NewQuestionService(source domain.QuestionSource, cfg config.QuestionsConfig) QuestionService {
	return &questionServiceImpl{source: source, cfg: cfg}
}

func (s *questionServiceImpl) SourceName() string {
	return s.source.Name()
}

func (s *questionServiceImpl) GetQuestions(ctx context.Context, query dto.QuestionsQuery) (*dto.QuestionsResponse, error) {
	query = NormalizeQuestionsQuery(query, s.cfg)

	selection, err := s.source.SelectQuestions(ctx, query.UserEmail, query.Topic, query.Count)
	if err != nil {
		return nil, err
	}
	if len(selection.Questions) == 0 {
		return nil, domain.NewEmptyTopicError(query.Topic)
	}
	if len(selection.Questions) < query.Count {
		logger.Get().Info("Topic pool smaller than requested count",
			zap.String("topic", query.Topic),
			zap.Int("requested", query.Count),
			zap.Int("served", len(selection.Questions)),
		)
	}

	return &dto.QuestionsResponse{
		Questions: dto.ToQuestionDTOs(selection.Questions),
		Topic:     query.Topic,
		Source:    s.source.Name(),
		Model:     selection.Model,
	}, nil
}

// NormalizeQuestionsQuery fills defaults and clamps count to [1, MaxCount].
// A count of zero or less means "use the default".
func NormalizeQuestionsQuery(q dto.QuestionsQuery, cfg config.QuestionsConfig) dto.QuestionsQuery {
	maxCount := cfg.MaxCount
	if maxCount <= 0 {
		maxCount = 20
	}
	defCount := cfg.DefaultCount
	if defCount <= 0 {
		defCount = 10
	}

	q.Topic = strings.TrimSpace(q.Topic)
	if q.Topic == "" {
		q.Topic = cfg.DefaultTopic
	}
	if q.Count <= 0 {
		q.Count = defCount
	}
	q.Count = util.ClampInt(q.Count, 1, maxCount)
	q.UserEmail = domain.NormalizeEmail(q.UserEmail)
	if q.UserEmail == "" {
		q.UserEmail = AnonymousUser
	}
	return q
}

// ReconcileSourceMode wipes the whole Usage Ledger when the configured source
// differs from the one recorded in the cache by the previous run. A missing
// marker is treated as a first start and only records the current mode.
func ReconcileSourceMode(ctx context.Context, c domain.Cache, usage domain.UsageRepository, mode string, resetOnSwitch bool) (bool, error) {
	appLogger := logger.Get()

	previous, err := c.Get(ctx, cache.SourceModeKey())
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		appLogger.Warn("Could not read question source marker, skipping reconciliation", zap.Error(err))
		return false, nil
	}

	wiped := false
	if previous != "" && previous != mode && resetOnSwitch {
		removed, err := usage.ResetAll(ctx)
		if err != nil {
			return false, domain.NewStorageError("reset_all_usage", err)
		}
		wiped = true
		appLogger.Info("Question source changed, usage ledger wiped",
			zap.String("previous", previous),
			zap.String("current", mode),
			zap.Int64("records_removed", removed),
		)
	}

	if err := c.Set(ctx, cache.SourceModeKey(), mode, 0); err != nil {
		appLogger.Warn("Failed to store question source marker", zap.Error(err))
	}
	return wiped, nil
}
