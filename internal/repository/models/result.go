package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TestResult is a row of the test_results table.
type TestResult struct {
	ID             int64           `db:"id"`
	UserEmail      string          `db:"user_email"`
	UserName       string          `db:"user_name"`
	Score          int             `db:"score"`
	TotalQuestions int             `db:"total_questions"`
	Percentage     decimal.Decimal `db:"percentage"` // DECIMAL(5,2)
	Topic          string          `db:"topic"`
	TimeSpent      int             `db:"time_spent"`
	CreatedAt      time.Time       `db:"created_at"`
}
