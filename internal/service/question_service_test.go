package service

import (
	"context"
	"errors"
	"testing"

	"aptilab/internal/cache"
	"aptilab/internal/config"
	"aptilab/internal/domain"
	"aptilab/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testQuestionsCfg = config.QuestionsConfig{
	Source:       config.SourceStore,
	DefaultTopic: "Maths",
	DefaultCount: 10,
	MaxCount:     20,
}

type stubSource struct {
	name      string
	selection *domain.Selection
	err       error
	gotUser   string
	gotTopic  string
	gotCount  int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) SelectQuestions(ctx context.Context, userKey, topic string, count int) (*domain.Selection, error) {
	s.gotUser, s.gotTopic, s.gotCount = userKey, topic, count
	return s.selection, s.err
}

func TestNormalizeQuestionsQuery(t *testing.T) {
	tests := []struct {
		name string
		in   dto.QuestionsQuery
		want dto.QuestionsQuery
	}{
		{"defaults", dto.QuestionsQuery{}, dto.QuestionsQuery{Topic: "Maths", Count: 10, UserEmail: "anonymous"}},
		{"zero count uses default", dto.QuestionsQuery{Topic: "Logic", Count: 0, UserEmail: "a@b.com"}, dto.QuestionsQuery{Topic: "Logic", Count: 10, UserEmail: "a@b.com"}},
		{"negative count uses default", dto.QuestionsQuery{Count: -4}, dto.QuestionsQuery{Topic: "Maths", Count: 10, UserEmail: "anonymous"}},
		{"clamped to max", dto.QuestionsQuery{Count: 500}, dto.QuestionsQuery{Topic: "Maths", Count: 20, UserEmail: "anonymous"}},
		{"trimmed", dto.QuestionsQuery{Topic: "  Cloud ", Count: 3, UserEmail: " x@y.z "}, dto.QuestionsQuery{Topic: "Cloud", Count: 3, UserEmail: "x@y.z"}},
		{"email case folded", dto.QuestionsQuery{Topic: "Cloud", Count: 3, UserEmail: "Ann@Example.COM"}, dto.QuestionsQuery{Topic: "Cloud", Count: 3, UserEmail: "ann@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuestionsQuery(tt.in, testQuestionsCfg))
		})
	}
}

func TestQuestionService_GetQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the selection", func(t *testing.T) {
		src := &stubSource{name: "generative", selection: &domain.Selection{
			Questions: questionsWithIDs("Cloud", 7, 8),
			Model:     "gemini-2.5-flash",
		}}
		resp, err := NewQuestionService(src, testQuestionsCfg).GetQuestions(ctx, dto.QuestionsQuery{Topic: "Cloud", Count: 2})
		require.NoError(t, err)
		assert.Equal(t, "anonymous", src.gotUser)
		assert.Equal(t, 2, src.gotCount)
		assert.Equal(t, "Cloud", resp.Topic)
		assert.Equal(t, "generative", resp.Source)
		assert.Equal(t, "gemini-2.5-flash", resp.Model)
		require.Len(t, resp.Questions, 2)
		assert.Equal(t, int64(7), resp.Questions[0].ID)
		assert.Len(t, resp.Questions[0].Options, 4)
		assert.Equal(t, "A", resp.Questions[0].CorrectOption)
	})

	t.Run("empty topic", func(t *testing.T) {
		src := &stubSource{name: "store", selection: &domain.Selection{}}
		_, err := NewQuestionService(src, testQuestionsCfg).GetQuestions(ctx, dto.QuestionsQuery{Topic: "Security"})
		assert.True(t, domain.IsCode(err, domain.CodeEmptyTopic))
	})

	t.Run("fewer than requested is success", func(t *testing.T) {
		src := &stubSource{name: "store", selection: &domain.Selection{Questions: questionsWithIDs("Maths", 1)}}
		resp, err := NewQuestionService(src, testQuestionsCfg).GetQuestions(ctx, dto.QuestionsQuery{Count: 5})
		require.NoError(t, err)
		assert.Len(t, resp.Questions, 1)
	})

	t.Run("source error", func(t *testing.T) {
		srcErr := domain.NewGenerationError("Failed to generate AI questions", errors.New("timeout"))
		src := &stubSource{name: "generative", err: srcErr}
		_, err := NewQuestionService(src, testQuestionsCfg).GetQuestions(ctx, dto.QuestionsQuery{})
		assert.ErrorIs(t, err, srcErr)
	})
}

func TestReconcileSourceMode(t *testing.T) {
	ctx := context.Background()
	key := cache.SourceModeKey()

	t.Run("first start only records the mode", func(t *testing.T) {
		c := new(MockCache)
		usage := new(MockUsageRepository)
		c.On("Get", ctx, key).Return("", domain.ErrCacheMiss)
		c.On("Set", ctx, key, "store", mock.Anything).Return(nil)

		wiped, err := ReconcileSourceMode(ctx, c, usage, "store", true)
		require.NoError(t, err)
		assert.False(t, wiped)
		usage.AssertNotCalled(t, "ResetAll", mock.Anything)
		c.AssertExpectations(t)
	})

	t.Run("switch wipes the ledger", func(t *testing.T) {
		c := new(MockCache)
		usage := new(MockUsageRepository)
		c.On("Get", ctx, key).Return("store", nil)
		usage.On("ResetAll", ctx).Return(int64(120), nil)
		c.On("Set", ctx, key, "generative", mock.Anything).Return(nil)

		wiped, err := ReconcileSourceMode(ctx, c, usage, "generative", true)
		require.NoError(t, err)
		assert.True(t, wiped)
		usage.AssertExpectations(t)
	})

	t.Run("switch without reset keeps the ledger", func(t *testing.T) {
		c := new(MockCache)
		usage := new(MockUsageRepository)
		c.On("Get", ctx, key).Return("store", nil)
		c.On("Set", ctx, key, "generative", mock.Anything).Return(nil)

		wiped, err := ReconcileSourceMode(ctx, c, usage, "generative", false)
		require.NoError(t, err)
		assert.False(t, wiped)
		usage.AssertNotCalled(t, "ResetAll", mock.Anything)
	})

	t.Run("same mode", func(t *testing.T) {
		c := new(MockCache)
		usage := new(MockUsageRepository)
		c.On("Get", ctx, key).Return("store", nil)
		c.On("Set", ctx, key, "store", mock.Anything).Return(nil)

		wiped, err := ReconcileSourceMode(ctx, c, usage, "store", true)
		require.NoError(t, err)
		assert.False(t, wiped)
	})

	t.Run("cache down skips reconciliation", func(t *testing.T) {
		c := new(MockCache)
		usage := new(MockUsageRepository)
		c.On("Get", ctx, key).Return("", errors.New("connection refused"))

		wiped, err := ReconcileSourceMode(ctx, c, usage, "store", true)
		require.NoError(t, err)
		assert.False(t, wiped)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wipe failure", func(t *testing.T) {
		c := new(MockCache)
		usage := new(MockUsageRepository)
		c.On("Get", ctx, key).Return("generative", nil)
		usage.On("ResetAll", ctx).Return(int64(0), errors.New("db gone"))

		_, err := ReconcileSourceMode(ctx, c, usage, "store", true)
		assert.True(t, domain.IsCode(err, domain.CodeStorage))
	})
}
