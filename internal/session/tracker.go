// Package session tracks one test attempt on the client side: the timer, the
// answers given so far and the final score. Nothing here is persisted.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"aptilab/internal/domain"
)

// DefaultDuration is the time allowed for one attempt.
const DefaultDuration = 2 * time.Minute

var (
	ErrNotStarted      = errors.New("session: not started")
	ErrAlreadyStarted  = errors.New("session: already started")
	ErrExpired         = errors.New("session: time is up")
	ErrFinished        = errors.New("session: already finished")
	ErrUnknownQuestion = errors.New("session: unknown question")
	ErrInvalidOption   = errors.New("session: option must be one of A, B, C, D")
)

// Summary is the scored outcome of a finished attempt.
type Summary struct {
	Topic      string
	Score      int
	Total      int
	Percentage int
	Correct    []bool
	TimeSpent  time.Duration
	TimedOut   bool
}

// Progress reports how far an attempt has got.
type Progress struct {
	Answered  int
	Total     int
	Remaining time.Duration
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDuration overrides DefaultDuration. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.duration = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// Tracker holds the state of a single attempt. It is safe for concurrent use,
// so a timer goroutine may call Expired while answers come in.
type Tracker struct {
	mu        sync.Mutex
	topic     string
	questions []*domain.Question
	index     map[int64]struct{}
	answers   map[int64]string
	duration  time.Duration
	now       func() time.Time
	startedAt time.Time
	finished  bool
}

// NewTracker prepares an attempt over questions. Call Start to begin the clock.
func NewTracker(topic string, questions []*domain.Question, opts ...Option) *Tracker {
	t := &Tracker{
		topic:     topic,
		questions: questions,
		index:     make(map[int64]struct{}, len(questions)),
		answers:   make(map[int64]string, len(questions)),
		duration:  DefaultDuration,
		now:       time.Now,
	}
	for _, q := range questions {
		t.index[q.ID] = struct{}{}
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return ErrFinished
	}
	if !t.startedAt.IsZero() {
		return ErrAlreadyStarted
	}
	t.startedAt = t.now()
	return nil
}

// Answer records letter for question id, replacing an earlier answer.
func (t *Tracker) Answer(id int64, letter string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkOpen(); err != nil {
		return err
	}
	if _, ok := t.index[id]; !ok {
		return ErrUnknownQuestion
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if !domain.IsOptionLetter(letter) {
		return ErrInvalidOption
	}
	t.answers[id] = letter
	return nil
}

func (t *Tracker) checkOpen() error {
	switch {
	case t.finished:
		return ErrFinished
	case t.startedAt.IsZero():
		return ErrNotStarted
	case t.expiredLocked():
		return ErrExpired
	}
	return nil
}

func (t *Tracker) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked()
}

func (t *Tracker) remainingLocked() time.Duration {
	if t.startedAt.IsZero() {
		return t.duration
	}
	left := t.duration - t.now().Sub(t.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

func (t *Tracker) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expiredLocked()
}

func (t *Tracker) expiredLocked() bool {
	return !t.startedAt.IsZero() && t.remainingLocked() == 0
}

func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Progress{Answered: len(t.answers), Total: len(t.questions), Remaining: t.remainingLocked()}
}

// Finish scores the attempt and discards the in-progress answers. It may be
// called after expiry; time spent is capped at the allowed duration.
func (t *Tracker) Finish() (*Summary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return nil, ErrFinished
	}
	if t.startedAt.IsZero() {
		return nil, ErrNotStarted
	}

	spent := t.now().Sub(t.startedAt)
	timedOut := spent >= t.duration
	if timedOut {
		spent = t.duration
	}

	scored := domain.Score(t.questions, t.answers)
	t.finished = true
	t.answers = nil

	return &Summary{
		Topic:      t.topic,
		Score:      scored.Score,
		Total:      len(t.questions),
		Percentage: domain.Percentage(scored.Score, len(t.questions)),
		Correct:    scored.Correct,
		TimeSpent:  spent,
		TimedOut:   timedOut,
	}, nil
}

// Questions returns the questions of the attempt in order.
func (t *Tracker) Questions() []*domain.Question {
	return t.questions
}

func (t *Tracker) Topic() string {
	return t.topic
}
