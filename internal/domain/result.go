package domain

import (
	"context"
	"math"
	"time"
)

// TestResult is one submitted attempt. Rows are append-only.
type TestResult struct {
	ID             int64     `json:"id"`
	UserEmail      string    `json:"user_email"`
	UserName       string    `json:"user_name"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	Topic          string    `json:"topic"`
	TimeSpent      int       `json:"time_spent"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResultRepository is the Result Store.
type ResultRepository interface {
	Create(ctx context.Context, result *TestResult) (int64, error)
	ListByEmail(ctx context.Context, email string, limit int) ([]*TestResult, error)
	ListAll(ctx context.Context) ([]*TestResult, error)
	LatestByEmail(ctx context.Context, email string) (*TestResult, error)
}

// ScoreResult is the outcome of scoring one attempt.
type ScoreResult struct {
	Score   int
	Correct []bool
}

// Score compares answers (question id to option letter) against each question's correct option.
// Unanswered questions count as incorrect.
func Score(questions []*Question, answers map[int64]string) ScoreResult {
	res := ScoreResult{Correct: make([]bool, len(questions))}
	for i, q := range questions {
		if ans, ok := answers[q.ID]; ok && ans == q.CorrectOption {
			res.Correct[i] = true
			res.Score++
		}
	}
	return res
}

// Percentage returns round(score/total*100) with half-up rounding; 0 when total is not positive.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(score)/float64(total)*100 + 0.5))
}
