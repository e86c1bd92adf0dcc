package dto

import "aptilab/internal/domain"

// SubmitTestRequest is the body of POST /api/submit-test.
type SubmitTestRequest struct {
	UserEmail      string            `json:"user_email" validate:"required,email"`
	UserName       string            `json:"user_name" validate:"max=100"`
	Score          *int              `json:"score" validate:"required,gte=0"`
	TotalQuestions int               `json:"total_questions" validate:"required,gt=0"`
	Topic          string            `json:"topic" validate:"max=100"`
	TimeSpent      int               `json:"time_spent" validate:"gte=0"`
	Answers        map[string]string `json:"answers,omitempty"`
}

// SubmitTestResponse answers POST /api/submit-test.
type SubmitTestResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ResultID    int64  `json:"resultId"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Percentage  int    `json:"percentage"`
	EmailQueued bool   `json:"emailQueued"`
}

// ResultsResponse wraps a list of results, newest first.
type ResultsResponse struct {
	Results []*domain.TestResult `json:"results"`
}

// SendReportRequest is the body of POST /api/send-report.
type SendReportRequest struct {
	Email string `json:"email"`
}

type SendReportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
