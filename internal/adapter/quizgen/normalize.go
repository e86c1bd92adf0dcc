package quizgen

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"aptilab/internal/domain"
)

// NormalizeQuestions coerces raw generated items into questions for topic.
// Items that do not have a question, exactly four non-empty options and a
// correct letter in A-D are dropped.
func NormalizeQuestions(items []json.RawMessage, topic string) []*domain.Question {
	out := make([]*domain.Question, 0, len(items))
	for _, raw := range items {
		if q, ok := normalizeItem(raw, topic); ok {
			out = append(out, q)
		}
	}
	return out
}

func normalizeItem(raw json.RawMessage, topic string) (*domain.Question, bool) {
	var item map[string]interface{}
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, false
	}

	text := strings.TrimSpace(coerceString(item["question"]))
	if text == "" {
		return nil, false
	}

	rawOptions, ok := item["options"].([]interface{})
	if !ok || len(rawOptions) != 4 {
		return nil, false
	}
	var options [4]string
	for i, o := range rawOptions {
		options[i] = strings.TrimSpace(coerceString(o))
		if options[i] == "" {
			return nil, false
		}
	}

	correct := coerceString(item["correct_option"])
	if strings.TrimSpace(correct) == "" {
		correct = coerceString(item["correctOption"])
	}
	correct = strings.ToUpper(strings.TrimSpace(correct))
	if !domain.IsOptionLetter(correct) {
		return nil, false
	}

	return &domain.Question{
		Topic:         topic,
		Text:          text,
		Options:       options,
		CorrectOption: correct,
	}, true
}

// coerceString renders JSON scalars as text; objects and arrays become empty.
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// parseQuestions runs extraction and normalization over one model response and
// fails unless it yields at least want questions. Extra questions are trimmed.
func parseQuestions(text, topic string, want int) ([]*domain.Question, error) {
	span, ok := ExtractJSONArray(text)
	if !ok {
		return nil, fmt.Errorf("response did not contain a JSON array")
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("response contained an empty question list")
	}

	questions := NormalizeQuestions(items, topic)
	if len(questions) < want {
		return nil, &insufficientError{got: len(questions), want: want}
	}
	return questions[:want], nil
}

type insufficientError struct {
	got, want int
}

func (e *insufficientError) Error() string {
	return fmt.Sprintf("AI returned only %d/%d valid questions", e.got, e.want)
}
