package domain

import "context"

// Selection is the outcome of a question request.
type Selection struct {
	Questions []*Question
	// Model names the generation backend that answered; empty for the store.
	Model string
}

// QuestionSource delivers questions for (user, topic) and keeps the Usage Ledger current.
type QuestionSource interface {
	Name() string
	SelectQuestions(ctx context.Context, userKey, topic string, count int) (*Selection, error)
}

// GeneratedQuestions is the outcome of one successful generation call.
type GeneratedQuestions struct {
	Questions []*Question
	Model     string
}

// QuestionGenerator synthesizes questions through an external text-generation service.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic string, count int) (*GeneratedQuestions, error)
}

// Completion is a free-form text answer from the generation service.
type Completion struct {
	Text  string
	Model string
}

// ModelAttempt records one failed candidate during a probe.
type ModelAttempt struct {
	Model string `json:"model"`
	Error string `json:"error"`
}

// ProbeResult is the outcome of exercising the generation backend.
type ProbeResult struct {
	OK    bool           `json:"ok"`
	Model string         `json:"model,omitempty"`
	Reply string         `json:"reply,omitempty"`
	Tried []ModelAttempt `json:"tried,omitempty"`
}

// TextGenerator is the free-form side of the generation backend.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
	Probe(ctx context.Context) *ProbeResult
}
