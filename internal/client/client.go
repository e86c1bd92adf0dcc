// Package client is a typed HTTP client for the aptilab API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/seed"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Detail != "" {
		return fmt.Sprintf("api %d %s: %s (%s)", e.Status, e.Code, msg, e.Detail)
	}
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, msg)
}

// QuestionSet is what FetchQuestions hands to a test session.
type QuestionSet struct {
	Topic     string
	Source    string
	Model     string
	Questions []*domain.Question
	// Offline is set when the questions come from the built-in bank because
	// the server could not be reached or refused the request.
	Offline bool
	Err     error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	bank       *seed.Bank
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithOfflineBank sets the bank used when the server is unavailable.
func WithOfflineBank(b *seed.Bank) Option {
	return func(c *Client) { c.bank = b }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:3307.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out != nil {
			// some endpoints carry a full body on failure
			_ = json.Unmarshal(data, out)
		}
		return decodeAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status}
	var body struct {
		Code   string `json:"code"`
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		apiErr.Detail = body.Detail
	}
	return apiErr
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, &out); err != nil {
		return nil, err
	}
	if out.Token != "" {
		c.token = out.Token
	}
	return &out, nil
}

// FetchQuestions asks the server for count questions. Any failure falls back
// to the offline bank; the original error is kept in QuestionSet.Err.
func (c *Client) FetchQuestions(ctx context.Context, topic string, count int, userEmail string) *QuestionSet {
	q := url.Values{}
	if topic != "" {
		q.Set("topic", topic)
	}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	if userEmail != "" {
		q.Set("user_email", userEmail)
	}

	var out dto.QuestionsResponse
	err := c.do(ctx, http.MethodGet, "/questions", q, nil, &out)
	if err == nil && len(out.Questions) > 0 {
		set := &QuestionSet{Topic: out.Topic, Source: out.Source, Model: out.Model}
		for _, d := range out.Questions {
			set.Questions = append(set.Questions, d.ToDomainQuestion(out.Topic))
		}
		return set
	}
	if err == nil {
		err = errors.New("server returned no questions")
	}
	return c.offlineSet(topic, count, err)
}

func (c *Client) offlineSet(topic string, count int, cause error) *QuestionSet {
	if topic == "" {
		topic = "Maths"
	}
	if count <= 0 {
		count = 10
	}
	bank := c.bank
	if bank == nil {
		bank, _ = seed.DefaultBank()
	}

	pool := bank.Pool(topic, count)
	if len(pool) > count {
		pool = pool[:count]
	}
	for i, q := range pool {
		q.ID = int64(i + 1)
	}
	return &QuestionSet{Topic: topic, Source: "offline", Questions: pool, Offline: true, Err: cause}
}

func (c *Client) SubmitTest(ctx context.Context, req dto.SubmitTestRequest) (*dto.SubmitTestResponse, error) {
	var out dto.SubmitTestResponse
	if err := c.do(ctx, http.MethodPost, "/submit-test", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserResults(ctx context.Context, email string) ([]*domain.TestResult, error) {
	var out dto.ResultsResponse
	if err := c.do(ctx, http.MethodGet, "/user-results/"+url.PathEscape(email), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// MyResults needs a token from Login.
func (c *Client) MyResults(ctx context.Context) ([]*domain.TestResult, error) {
	var out dto.ResultsResponse
	if err := c.do(ctx, http.MethodGet, "/me/results", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) AllResults(ctx context.Context) ([]*domain.TestResult, error) {
	var out dto.ResultsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/results", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) SendReport(ctx context.Context, email string) (*dto.SendReportResponse, error) {
	var out dto.SendReportResponse
	if err := c.do(ctx, http.MethodPost, "/send-report", nil, dto.SendReportRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	var out dto.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chatbot", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var out dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AIHealth returns the probe body even when the server answers 4xx/5xx,
// together with the APIError.
func (c *Client) AIHealth(ctx context.Context) (*dto.AIHealthResponse, error) {
	var out dto.AIHealthResponse
	err := c.do(ctx, http.MethodGet, "/ai-health", nil, nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &out, err
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
