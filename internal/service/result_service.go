package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"aptilab/internal/cache"
	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/logger"

	"go.uber.org/zap"
)

const (
	// RecentResultsLimit caps GET /api/user-results.
	RecentResultsLimit = 10
	resultMailTimeout  = 30 * time.Second
)

type ResultService interface {
	Submit(ctx context.Context, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error)
	UserResults(ctx context.Context, email string) ([]*domain.TestResult, error)
	AllResults(ctx context.Context) ([]*domain.TestResult, error)
}

type resultServiceImpl struct {
	results domain.ResultRepository
	cache   domain.Cache
	// mailer is nil when SMTP is not configured.
	mailer   domain.Mailer
	cacheTTL time.Duration
	now      func() time.Time
	async    func(fn func())
}

func NewResultService(results domain.ResultRepository, c domain.Cache, mailer domain.Mailer, cacheTTL time.Duration) ResultService {
	return &resultServiceImpl{
		results:  results,
		cache:    c,
		mailer:   mailer,
		cacheTTL: cacheTTL,
		now:      time.Now,
		async:    func(fn func()) { go fn() },
	}
}

func (s *resultServiceImpl) Submit(ctx context.Context, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error) {
	appLogger := logger.Get()

	if req.Score == nil {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("score")}
	}
	score := *req.Score
	if score < 0 || req.TotalQuestions <= 0 || score > req.TotalQuestions {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("score", score, 0, req.TotalQuestions)}
	}

	percentage := domain.Percentage(score, req.TotalQuestions)
	result := &domain.TestResult{
		UserEmail:      domain.NormalizeEmail(req.UserEmail),
		UserName:       strings.TrimSpace(req.UserName),
		Score:          score,
		TotalQuestions: req.TotalQuestions,
		Percentage:     float64(percentage),
		Topic:          strings.TrimSpace(req.Topic),
		TimeSpent:      req.TimeSpent,
		CreatedAt:      s.now(),
	}

	id, err := s.results.Create(ctx, result)
	if err != nil {
		return nil, domain.NewStorageError("create_result", err)
	}
	result.ID = id

	if err := s.cache.Delete(ctx, cache.UserResultsKey(result.UserEmail)); err != nil {
		appLogger.Warn("Failed to invalidate cached results", zap.String("email", result.UserEmail), zap.Error(err))
	}

	appLogger.Info("Test result saved",
		zap.Int64("result_id", id),
		zap.String("email", result.UserEmail),
		zap.String("topic", result.Topic),
		zap.Int("score", score),
		zap.Int("total", req.TotalQuestions),
		zap.Int("answers", len(req.Answers)),
	)

	queued := s.queueResultMail(result)
	return &dto.SubmitTestResponse{
		Success:     true,
		Message:     "Results saved successfully",
		ResultID:    id,
		Score:       score,
		Total:       req.TotalQuestions,
		Percentage:  percentage,
		EmailQueued: queued,
	}, nil
}

// queueResultMail sends the result mail in the background. Failures are only logged.
func (s *resultServiceImpl) queueResultMail(result *domain.TestResult) bool {
	if s.mailer == nil {
		return false
	}
	s.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), resultMailTimeout)
		defer cancel()

		body, err := RenderReport(result, "AptiLab Test Result", "Thanks for taking the test. Here is how you did:")
		if err == nil {
			err = s.mailer.Send(ctx, result.UserEmail, ResultSubject(result), body)
		}
		if err != nil {
			logger.Get().Warn("Result email failed (non-blocking)",
				zap.Int64("result_id", result.ID),
				zap.String("email", result.UserEmail),
				zap.Error(err),
			)
			return
		}
		logger.Get().Info("Result email sent", zap.Int64("result_id", result.ID), zap.String("email", result.UserEmail))
	})
	return true
}

// UserResults returns the most recent results for email, newest first, reading through the cache.
func (s *resultServiceImpl) UserResults(ctx context.Context, email string) ([]*domain.TestResult, error) {
	appLogger := logger.Get()
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("email")}
	}
	key := cache.UserResultsKey(email)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var results []*domain.TestResult
		if jsonErr := json.Unmarshal([]byte(cached), &results); jsonErr == nil {
			return results, nil
		}
		appLogger.Warn("Discarding undecodable cached results", zap.String("key", key))
	case !errors.Is(err, domain.ErrCacheMiss):
		appLogger.Warn("Results cache read failed", zap.String("key", key), zap.Error(err))
	}

	results, err := s.results.ListByEmail(ctx, email, RecentResultsLimit)
	if err != nil {
		return nil, domain.NewStorageError("list_results", err)
	}
	if results == nil {
		results = []*domain.TestResult{}
	}

	if raw, err := json.Marshal(results); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
			appLogger.Warn("Results cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return results, nil
}

func (s *resultServiceImpl) AllResults(ctx context.Context) ([]*domain.TestResult, error) {
	results, err := s.results.ListAll(ctx)
	if err != nil {
		return nil, domain.NewStorageError("list_all_results", err)
	}
	if results == nil {
		results = []*domain.TestResult{}
	}
	return results, nil
}
