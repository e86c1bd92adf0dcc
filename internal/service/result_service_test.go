package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"aptilab/internal/cache"
	"aptilab/internal/config"
	"aptilab/internal/domain"
	"aptilab/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestResultService(results *MockResultRepository, c *MockCache, mailer domain.Mailer) *resultServiceImpl {
	svc := NewResultService(results, c, mailer, 2*time.Minute).(*resultServiceImpl)
	svc.async = func(fn func()) { fn() }
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestResultService_Submit(t *testing.T) {
	ctx := context.Background()
	req := dto.SubmitTestRequest{
		UserEmail:      "amy@example.com",
		UserName:       "Amy",
		Score:          intPtr(7),
		TotalQuestions: 10,
		Topic:          "Maths",
		TimeSpent:      95,
		Answers:        map[string]string{"1": "A"},
	}

	t.Run("persists percentage and queues mail", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		mailer := new(MockMailer)

		results.On("Create", ctx, mock.MatchedBy(func(r *domain.TestResult) bool {
			return r.Score == 7 && r.TotalQuestions == 10 && r.Percentage == 70 && r.Topic == "Maths" && r.TimeSpent == 95
		})).Return(int64(42), nil)
		c.On("Delete", ctx, cache.UserResultsKey("amy@example.com")).Return(nil)
		mailer.On("Send", mock.Anything, "amy@example.com", "AptiLab Test Result - Maths",
			mock.MatchedBy(func(body string) bool { return strings.Contains(body, "7/10") && strings.Contains(body, "70%") }),
		).Return(nil)

		resp, err := newTestResultService(results, c, mailer).Submit(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, &dto.SubmitTestResponse{
			Success:     true,
			Message:     "Results saved successfully",
			ResultID:    42,
			Score:       7,
			Total:       10,
			Percentage:  70,
			EmailQueued: true,
		}, resp)
		results.AssertExpectations(t)
		c.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("mail failure does not fail the submission", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		mailer := new(MockMailer)
		results.On("Create", ctx, mock.Anything).Return(int64(1), nil)
		c.On("Delete", ctx, mock.Anything).Return(errors.New("redis down"))
		mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("535 auth failed"))

		resp, err := newTestResultService(results, c, mailer).Submit(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("no mailer means nothing queued", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		results.On("Create", ctx, mock.Anything).Return(int64(3), nil)
		c.On("Delete", ctx, mock.Anything).Return(nil)

		resp, err := newTestResultService(results, c, nil).Submit(ctx, req)
		require.NoError(t, err)
		assert.False(t, resp.EmailQueued)
	})

	t.Run("email case folded", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		results.On("Create", ctx, mock.MatchedBy(func(r *domain.TestResult) bool {
			return r.UserEmail == "amy@example.com"
		})).Return(int64(5), nil)
		c.On("Delete", ctx, cache.UserResultsKey("amy@example.com")).Return(nil)

		r := req
		r.UserEmail = " Amy@Example.COM "
		_, err := newTestResultService(results, c, nil).Submit(ctx, r)
		require.NoError(t, err)
		results.AssertExpectations(t)
	})

	t.Run("rounding", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		results.On("Create", ctx, mock.Anything).Return(int64(4), nil)
		c.On("Delete", ctx, mock.Anything).Return(nil)

		r := req
		r.Score, r.TotalQuestions = intPtr(2), 3
		resp, err := newTestResultService(results, c, nil).Submit(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, 67, resp.Percentage)
	})

	t.Run("score above total is rejected", func(t *testing.T) {
		results := new(MockResultRepository)
		r := req
		r.Score = intPtr(11)
		_, err := newTestResultService(results, new(MockCache), nil).Submit(ctx, r)
		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "score", verrs[0].Field)
		results.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		results := new(MockResultRepository)
		results.On("Create", ctx, mock.Anything).Return(int64(0), errors.New("disk full"))
		_, err := newTestResultService(results, new(MockCache), nil).Submit(ctx, req)
		assert.True(t, domain.IsCode(err, domain.CodeStorage))
	})
}

func TestResultService_UserResults(t *testing.T) {
	ctx := context.Background()
	email := "amy@example.com"
	key := cache.UserResultsKey(email)
	rows := []*domain.TestResult{{ID: 2, UserEmail: email, Score: 5}, {ID: 1, UserEmail: email, Score: 3}}

	t.Run("cache hit", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		raw, _ := json.Marshal(rows)
		c.On("Get", ctx, key).Return(string(raw), nil)

		got, err := newTestResultService(results, c, nil).UserResults(ctx, email)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
		results.AssertNotCalled(t, "ListByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss reads through", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		c.On("Get", ctx, key).Return("", domain.ErrCacheMiss)
		results.On("ListByEmail", ctx, email, RecentResultsLimit).Return(rows, nil)
		c.On("Set", ctx, key, mock.AnythingOfType("string"), 2*time.Minute).Return(nil)

		got, err := newTestResultService(results, c, nil).UserResults(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
		c.AssertExpectations(t)
	})

	t.Run("no results is an empty list", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		c.On("Get", ctx, key).Return("", domain.ErrCacheMiss)
		results.On("ListByEmail", ctx, email, RecentResultsLimit).Return(nil, nil)
		c.On("Set", ctx, key, "[]", 2*time.Minute).Return(nil)

		got, err := newTestResultService(results, c, nil).UserResults(ctx, email)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("mixed case email reads the same list", func(t *testing.T) {
		results := new(MockResultRepository)
		c := new(MockCache)
		c.On("Get", ctx, key).Return("", domain.ErrCacheMiss)
		results.On("ListByEmail", ctx, email, RecentResultsLimit).Return(rows, nil)
		c.On("Set", ctx, key, mock.AnythingOfType("string"), 2*time.Minute).Return(nil)

		got, err := newTestResultService(results, c, nil).UserResults(ctx, "AMY@example.com")
		require.NoError(t, err)
		assert.Equal(t, rows, got)
		results.AssertExpectations(t)
	})

	t.Run("blank email", func(t *testing.T) {
		_, err := newTestResultService(new(MockResultRepository), new(MockCache), nil).UserResults(ctx, " ")
		var verrs domain.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestResultService_AllResults(t *testing.T) {
	ctx := context.Background()
	results := new(MockResultRepository)
	results.On("ListAll", ctx).Return(nil, errors.New("timeout"))

	_, err := newTestResultService(results, new(MockCache), nil).AllResults(ctx)
	assert.True(t, domain.IsCode(err, domain.CodeStorage))
}

func TestReportService_SendLatestReport(t *testing.T) {
	ctx := context.Background()
	smtp := config.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "bot", Password: "pw", From: "bot@example.com"}
	latest := &domain.TestResult{
		ID: 9, UserEmail: "amy@example.com", Score: 8, TotalQuestions: 10, Percentage: 80,
		Topic: "", TimeSpent: 120, CreatedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}

	t.Run("missing email", func(t *testing.T) {
		err := NewReportService(new(MockResultRepository), new(MockMailer), smtp).SendLatestReport(ctx, "")
		assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
		assert.EqualError(t, err, "Email is required")
	})

	t.Run("smtp not configured is checked before lookup", func(t *testing.T) {
		results := new(MockResultRepository)
		err := NewReportService(results, new(MockMailer), config.SMTPConfig{Host: "smtp.example.com"}).
			SendLatestReport(ctx, "amy@example.com")
		require.True(t, domain.IsCode(err, domain.CodeMailConfig))
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "SMTP_USER, SMTP_PASS, SMTP_FROM", de.Context["missing"])
		results.AssertNotCalled(t, "LatestByEmail", mock.Anything, mock.Anything)
	})

	t.Run("no results sends nothing", func(t *testing.T) {
		results := new(MockResultRepository)
		mailer := new(MockMailer)
		results.On("LatestByEmail", ctx, "ghost@example.com").Return(nil, nil)

		err := NewReportService(results, mailer, smtp).SendLatestReport(ctx, "ghost@example.com")
		assert.True(t, domain.IsCode(err, domain.CodeResultNotFound))
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sends the latest result", func(t *testing.T) {
		results := new(MockResultRepository)
		mailer := new(MockMailer)
		results.On("LatestByEmail", ctx, "amy@example.com").Return(latest, nil)
		mailer.On("Send", ctx, "amy@example.com", "AptiLab Test Report - General", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "8/10") &&
				strings.Contains(body, "80%") &&
				strings.Contains(body, "120 seconds") &&
				strings.Contains(body, "2026-02-01 09:30:00") &&
				strings.Contains(body, "Keep practicing to improve your score!")
		})).Return(nil)

		require.NoError(t, NewReportService(results, mailer, smtp).SendLatestReport(ctx, "amy@example.com"))
		mailer.AssertExpectations(t)
	})

	t.Run("transport failure", func(t *testing.T) {
		results := new(MockResultRepository)
		mailer := new(MockMailer)
		results.On("LatestByEmail", ctx, "amy@example.com").Return(latest, nil)
		mailer.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: i/o timeout"))

		err := NewReportService(results, mailer, smtp).SendLatestReport(ctx, "amy@example.com")
		require.True(t, domain.IsCode(err, domain.CodeMailSend))
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "dial tcp: i/o timeout", de.Detail())
	})
}

func TestRenderReport_EscapesTopic(t *testing.T) {
	body, err := RenderReport(&domain.TestResult{Topic: "<script>", Score: 1, TotalQuestions: 2, Percentage: 50}, "h", "i")
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
