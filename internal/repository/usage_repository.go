package repository

import (
	"context"
	"fmt"
	"time"

	"aptilab/internal/domain"
	"aptilab/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// UsageDatabaseAdapter is the MySQL-backed Usage Ledger.
type UsageDatabaseAdapter struct {
	db DBTX
}

func NewUsageDatabaseAdapter(db *sqlx.DB) domain.UsageRepository {
	return &UsageDatabaseAdapter{db: db}
}

// RecordUsage writes all records in one statement. The unique key on
// (user_email, topic, question_id) turns concurrent duplicates into no-ops.
func (a *UsageDatabaseAdapter) RecordUsage(ctx context.Context, records []domain.UsageRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]models.QuestionUsage, 0, len(records))
	for _, r := range records {
		usedAt := r.UsedAt
		if usedAt.IsZero() {
			usedAt = now
		}
		rows = append(rows, models.QuestionUsage{
			UserEmail:  r.UserKey,
			Topic:      r.Topic,
			QuestionID: r.QuestionID,
			UsedAt:     usedAt,
		})
	}

	query := `INSERT IGNORE INTO question_usage (user_email, topic, question_id, used_at)
		VALUES (:user_email, :topic, :question_id, :used_at)`
	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to record question usage: %w", err)
	}
	return nil
}

func (a *UsageDatabaseAdapter) ResetUserTopic(ctx context.Context, userKey, topic string) (int64, error) {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`DELETE FROM question_usage WHERE user_email = ? AND topic = ?`, userKey, topic)
	if err != nil {
		return 0, fmt.Errorf("failed to reset question usage: %w", err)
	}
	return res.RowsAffected()
}

func (a *UsageDatabaseAdapter) ResetAll(ctx context.Context) (int64, error) {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM question_usage`)
	if err != nil {
		return 0, fmt.Errorf("failed to wipe question usage: %w", err)
	}
	return res.RowsAffected()
}
