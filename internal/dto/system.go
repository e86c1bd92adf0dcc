package dto

import "aptilab/internal/domain"

// ChatRequest is the body of POST /api/chatbot.
type ChatRequest struct {
	Message       string `json:"message" validate:"required,max=4000"`
	Topic         string `json:"topic"`
	Level         string `json:"level"`
	QuestionCount int    `json:"questionCount"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Model   string `json:"model"`
	Reply   string `json:"reply"`
}

// HealthResponse answers GET /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	AI       string `json:"ai"`
	Source   string `json:"source"`
}

// AIHealthResponse answers GET /api/ai-health.
type AIHealthResponse struct {
	Status string                `json:"status"`
	AI     string                `json:"ai"`
	Model  string                `json:"model,omitempty"`
	Reply  string                `json:"reply,omitempty"`
	Error  string                `json:"error,omitempty"`
	Tried  []domain.ModelAttempt `json:"tried,omitempty"`
}
