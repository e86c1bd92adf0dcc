package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aptilab/internal/config"
	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/handler"
	"aptilab/internal/middleware"
	"aptilab/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockQuestionService struct {
	GetQuestionsFunc func(ctx context.Context, query dto.QuestionsQuery) (*dto.QuestionsResponse, error)
}

func (m *MockQuestionService) GetQuestions(ctx context.Context, query dto.QuestionsQuery) (*dto.QuestionsResponse, error) {
	if m.GetQuestionsFunc != nil {
		return m.GetQuestionsFunc(ctx, query)
	}
	panic("MockQuestionService.GetQuestionsFunc not implemented")
}

func (m *MockQuestionService) SourceName() string { return config.SourceStore }

type MockResultService struct {
	SubmitFunc      func(ctx context.Context, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error)
	UserResultsFunc func(ctx context.Context, email string) ([]*domain.TestResult, error)
	AllResultsFunc  func(ctx context.Context) ([]*domain.TestResult, error)
}

func (m *MockResultService) Submit(ctx context.Context, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	panic("MockResultService.SubmitFunc not implemented")
}

func (m *MockResultService) UserResults(ctx context.Context, email string) ([]*domain.TestResult, error) {
	if m.UserResultsFunc != nil {
		return m.UserResultsFunc(ctx, email)
	}
	panic("MockResultService.UserResultsFunc not implemented")
}

func (m *MockResultService) AllResults(ctx context.Context) ([]*domain.TestResult, error) {
	if m.AllResultsFunc != nil {
		return m.AllResultsFunc(ctx)
	}
	panic("MockResultService.AllResultsFunc not implemented")
}

type MockReportService struct {
	SendLatestReportFunc func(ctx context.Context, email string) error
}

func (m *MockReportService) SendLatestReport(ctx context.Context, email string) error {
	if m.SendLatestReportFunc != nil {
		return m.SendLatestReportFunc(ctx, email)
	}
	panic("MockReportService.SendLatestReportFunc not implemented")
}

type MockUserService struct {
	RegisterFunc func(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	LoginFunc    func(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockUserService.RegisterFunc not implemented")
}

func (m *MockUserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockUserService.LoginFunc not implemented")
}

type MockChatService struct {
	ChatFunc func(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
}

func (m *MockChatService) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	panic("MockChatService.ChatFunc not implemented")
}

type MockHealthService struct {
	HealthFunc   func(ctx context.Context) *dto.HealthResponse
	AIHealthFunc func(ctx context.Context) (*dto.AIHealthResponse, error)
}

func (m *MockHealthService) Health(ctx context.Context) *dto.HealthResponse {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	panic("MockHealthService.HealthFunc not implemented")
}

func (m *MockHealthService) AIHealth(ctx context.Context) (*dto.AIHealthResponse, error) {
	if m.AIHealthFunc != nil {
		return m.AIHealthFunc(ctx)
	}
	panic("MockHealthService.AIHealthFunc not implemented")
}

type MockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, token string) (*dto.AuthClaims, error)
}

func (m *MockTokenValidator) ValidateJWT(ctx context.Context, token string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, token)
	}
	panic("MockTokenValidator.ValidateJWTFunc not implemented")
}

// --- Test app ---

type testServices struct {
	questions *MockQuestionService
	results   *MockResultService
	reports   *MockReportService
	users     *MockUserService
	chat      *MockChatService
	health    *MockHealthService
	auth      *MockTokenValidator
}

func newTestServices() *testServices {
	return &testServices{
		questions: &MockQuestionService{},
		results:   &MockResultService{},
		reports:   &MockReportService{},
		users:     &MockUserService{},
		chat:      &MockChatService{},
		health:    &MockHealthService{},
		auth:      &MockTokenValidator{},
	}
}

func testQuestionsConfig() config.QuestionsConfig {
	return config.QuestionsConfig{DefaultTopic: "Maths", DefaultCount: 10, MaxCount: 20}
}

// newTestApp mounts every route the way cmd/api does. withAuth controls
// whether a token validator is configured.
func newTestApp(s *testServices, withAuth bool) *fiber.App {
	v := validation.NewValidator()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.Handlers{
		Questions:  handler.NewQuestionHandler(s.questions),
		Results:    handler.NewResultHandler(s.results, s.reports, v),
		Users:      handler.NewUserHandler(s.users, v),
		System:     handler.NewSystemHandler(s.chat, s.health, v),
		Validation: middleware.NewValidationMiddleware(testQuestionsConfig()),
	}
	if withAuth {
		h.Auth = s.auth
	}
	handler.SetupRoutes(app, h)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) middleware.ErrorResponse {
	t.Helper()
	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
