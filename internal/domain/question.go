package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Topics served by the seeded question bank.
var Topics = []string{"Maths", "Language", "Networking", "Logic", "Cloud", "Security"}

// OptionLetters are the valid answer letters in option order.
var OptionLetters = [4]string{"A", "B", "C", "D"}

// Question is an immutable multiple choice question belonging to a topic.
type Question struct {
	ID            int64
	Topic         string
	Text          string
	Options       [4]string
	CorrectOption string
	CreatedAt     time.Time
}

// Validate checks the structural shape of a question before it is stored.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Topic) == "" {
		errs = append(errs, NewMissingFieldError("topic"))
	}
	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, NewMissingFieldError("question"))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, NewMissingFieldError(fmt.Sprintf("options[%d]", i)))
		}
	}
	if !IsOptionLetter(q.CorrectOption) {
		errs = append(errs, NewInvalidFormatError("correct_option", q.CorrectOption))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsOptionLetter reports whether s is exactly one of A, B, C or D.
func IsOptionLetter(s string) bool {
	switch s {
	case "A", "B", "C", "D":
		return true
	}
	return false
}

// PlaceholderQuestion builds the filler question used to pad a topic's pool.
func PlaceholderQuestion(topic string, n int) *Question {
	return &Question{
		Topic:         topic,
		Text:          fmt.Sprintf("[%s] Question %d: What is the correct answer?", topic, n),
		Options:       [4]string{"Option A", "Option B", "Option C", "Option D"},
		CorrectOption: "A",
	}
}

// QuestionRepository is the Question Store.
type QuestionRepository interface {
	// SelectUnused returns up to limit random questions of topic the user has not been served.
	SelectUnused(ctx context.Context, userKey, topic string, limit int) ([]*Question, error)
	CountByTopic(ctx context.Context, topic string) (int, error)
	SaveQuestions(ctx context.Context, questions []*Question) error
	DeleteAll(ctx context.Context) error
}

// UsageRecord marks a question as already served to a user for a topic.
type UsageRecord struct {
	UserKey    string
	Topic      string
	QuestionID int64
	UsedAt     time.Time
}

// UsageRepository is the Usage Ledger.
type UsageRepository interface {
	// RecordUsage inserts records, silently ignoring ones that already exist.
	RecordUsage(ctx context.Context, records []UsageRecord) error
	// ResetUserTopic removes every record for (userKey, topic) and returns how many were removed.
	ResetUserTopic(ctx context.Context, userKey, topic string) (int64, error)
	// ResetAll wipes the whole ledger.
	ResetAll(ctx context.Context) (int64, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
