package quizgen

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// fakeLLM answers per model name and records the models it was called with.
type fakeLLM struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	block     map[string]bool
	calls     []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}

	f.mu.Lock()
	f.calls = append(f.calls, opts.Model)
	f.mu.Unlock()

	if f.block[opts.Model] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := f.errs[opts.Model]; err != nil {
		return nil, err
	}
	text, ok := f.responses[opts.Model]
	if !ok {
		return nil, errors.New("model not found")
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text}}}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeLLM) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
