package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aptilab/internal/domain"
	"aptilab/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const resultColumns = `id, user_email, user_name, score, total_questions, percentage, topic, time_spent, created_at`

// ResultDatabaseAdapter is the MySQL-backed Result Store.
type ResultDatabaseAdapter struct {
	db DBTX
}

func NewResultDatabaseAdapter(db *sqlx.DB) domain.ResultRepository {
	return &ResultDatabaseAdapter{db: db}
}

func (a *ResultDatabaseAdapter) Create(ctx context.Context, result *domain.TestResult) (int64, error) {
	m := fromDomainResult(result)
	query := `INSERT INTO test_results (user_email, user_name, score, total_questions, percentage, topic, time_spent)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		m.UserEmail, m.UserName, m.Score, m.TotalQuestions, m.Percentage, m.Topic, m.TimeSpent)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read test result id: %w", err)
	}
	result.ID = id
	return id, nil
}

func (a *ResultDatabaseAdapter) ListByEmail(ctx context.Context, email string, limit int) ([]*domain.TestResult, error) {
	query := `SELECT ` + resultColumns + ` FROM test_results WHERE user_email = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	return a.list(ctx, query, email, limit)
}

func (a *ResultDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.TestResult, error) {
	query := `SELECT ` + resultColumns + ` FROM test_results ORDER BY created_at DESC, id DESC`
	return a.list(ctx, query)
}

// LatestByEmail returns nil, nil when the email has no results.
func (a *ResultDatabaseAdapter) LatestByEmail(ctx context.Context, email string) (*domain.TestResult, error) {
	var row models.TestResult
	query := `SELECT ` + resultColumns + ` FROM test_results WHERE user_email = ? ORDER BY created_at DESC, id DESC LIMIT 1`
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest test result: %w", err)
	}
	return toDomainResult(&row), nil
}

func (a *ResultDatabaseAdapter) list(ctx context.Context, query string, args ...interface{}) ([]*domain.TestResult, error) {
	var rows []models.TestResult
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list test results: %w", err)
	}
	results := make([]*domain.TestResult, 0, len(rows))
	for i := range rows {
		results = append(results, toDomainResult(&rows[i]))
	}
	return results, nil
}

func toDomainResult(m *models.TestResult) *domain.TestResult {
	if m == nil {
		return nil
	}
	pct, _ := m.Percentage.Float64()
	return &domain.TestResult{
		ID:             m.ID,
		UserEmail:      m.UserEmail,
		UserName:       m.UserName,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Percentage:     pct,
		Topic:          m.Topic,
		TimeSpent:      m.TimeSpent,
		CreatedAt:      m.CreatedAt,
	}
}

func fromDomainResult(r *domain.TestResult) *models.TestResult {
	if r == nil {
		return nil
	}
	return &models.TestResult{
		ID:             r.ID,
		UserEmail:      r.UserEmail,
		UserName:       r.UserName,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     decimal.NewFromFloat(r.Percentage).Round(2),
		Topic:          r.Topic,
		TimeSpent:      r.TimeSpent,
		CreatedAt:      r.CreatedAt,
	}
}
