package repository

import (
	"context"
	"fmt"

	"aptilab/internal/domain"
	"aptilab/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `q.id, q.topic, q.question_text, q.option_a, q.option_b, q.option_c, q.option_d, q.correct_option, q.created_at`

// QuestionDatabaseAdapter is the MySQL-backed Question Store.
type QuestionDatabaseAdapter struct {
	db DBTX
}

func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func (a *QuestionDatabaseAdapter) SelectUnused(ctx context.Context, userKey, topic string, limit int) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + `
		FROM questions q
		WHERE q.topic = ?
		  AND NOT EXISTS (
			SELECT 1 FROM question_usage u
			WHERE u.user_email = ? AND u.topic = q.topic AND u.question_id = q.id
		  )
		ORDER BY RAND()
		LIMIT ?`

	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, topic, userKey, limit); err != nil {
		return nil, fmt.Errorf("failed to select unused questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

func (a *QuestionDatabaseAdapter) CountByTopic(ctx context.Context, topic string) (int, error) {
	var count int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM questions WHERE topic = ?`, topic); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// SaveQuestions inserts each question and writes the generated ID back onto it.
func (a *QuestionDatabaseAdapter) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	query := `INSERT INTO questions (topic, question_text, option_a, option_b, option_c, option_d, correct_option)
		VALUES (:topic, :question_text, :option_a, :option_b, :option_c, :option_d, :correct_option)`

	exec := GetExecutor(ctx, a.db)
	for _, q := range questions {
		res, err := exec.NamedExecContext(ctx, query, fromDomainQuestion(q))
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read question id: %w", err)
		}
		q.ID = id
	}
	return nil
}

// DeleteAll removes every question; usage rows go with them through the cascading key.
func (a *QuestionDatabaseAdapter) DeleteAll(ctx context.Context) error {
	if _, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	return nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		Topic:         m.Topic,
		Text:          m.QuestionText,
		Options:       [4]string{m.OptionA, m.OptionB, m.OptionC, m.OptionD},
		CorrectOption: m.CorrectOption,
		CreatedAt:     m.CreatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:            q.ID,
		Topic:         q.Topic,
		QuestionText:  q.Text,
		OptionA:       q.Options[0],
		OptionB:       q.Options[1],
		OptionC:       q.Options[2],
		OptionD:       q.Options[3],
		CorrectOption: q.CorrectOption,
		CreatedAt:     q.CreatedAt,
	}
}
