package dto

import "aptilab/internal/domain"

// QuestionDTO is a question as delivered to the test client.
type QuestionDTO struct {
	ID            int64    `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
}

// QuestionsResponse answers GET /api/questions.
type QuestionsResponse struct {
	Questions []QuestionDTO `json:"questions"`
	Topic     string        `json:"topic"`
	Source    string        `json:"source"`
	Model     string        `json:"model,omitempty"`
}

// QuestionsQuery holds the parsed and clamped query string of GET /api/questions.
type QuestionsQuery struct {
	Topic     string
	Count     int
	UserEmail string
}

func ToQuestionDTO(q *domain.Question) QuestionDTO {
	return QuestionDTO{
		ID:            q.ID,
		Question:      q.Text,
		Options:       q.Options[:],
		CorrectOption: q.CorrectOption,
	}
}

func ToQuestionDTOs(questions []*domain.Question) []QuestionDTO {
	out := make([]QuestionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, ToQuestionDTO(q))
	}
	return out
}

// ToDomainQuestion converts a client-held question back for local scoring.
func (d QuestionDTO) ToDomainQuestion(topic string) *domain.Question {
	q := &domain.Question{ID: d.ID, Topic: topic, Text: d.Question, CorrectOption: d.CorrectOption}
	copy(q.Options[:], d.Options)
	return q
}
