// Package seed loads the curated question bank and builds per-topic pools from it.
package seed

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"aptilab/configs"
	"aptilab/internal/domain"
)

// QuestionsPerTopic is the pool size every topic is padded to.
const QuestionsPerTopic = 40

// SeedQuestion is one curated question as stored in the bank file.
type SeedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
}

// SeedTopic groups curated questions under a topic name.
type SeedTopic struct {
	Name      string         `json:"name"`
	Questions []SeedQuestion `json:"questions"`
}

// Bank is the decoded question bank file.
type Bank struct {
	Topics []SeedTopic `json:"topics"`
}

// LoadBank decodes the bank stored at path in fsys.
func LoadBank(fsys fs.FS, path string) (*Bank, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	var bank Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}
	return &bank, nil
}

// DefaultBank loads the bank embedded in the binary.
func DefaultBank() (*Bank, error) {
	return LoadBank(configs.SeedData, configs.QuestionBankPath)
}

// Curated returns the valid curated questions for topic, matched case-insensitively.
func (b *Bank) Curated(topic string) []*domain.Question {
	if b == nil {
		return nil
	}
	var out []*domain.Question
	for _, t := range b.Topics {
		if !strings.EqualFold(t.Name, topic) {
			continue
		}
		for _, sq := range t.Questions {
			if len(sq.Options) != 4 {
				continue
			}
			q := &domain.Question{
				Topic:         topic,
				Text:          strings.TrimSpace(sq.Question),
				Options:       [4]string{sq.Options[0], sq.Options[1], sq.Options[2], sq.Options[3]},
				CorrectOption: strings.ToUpper(strings.TrimSpace(sq.CorrectOption)),
			}
			if q.Validate() == nil {
				out = append(out, q)
			}
		}
	}
	return out
}

// Pool returns the curated questions for topic padded with placeholders up to size.
// Topics with more curated questions than size keep all of them.
func (b *Bank) Pool(topic string, size int) []*domain.Question {
	pool := b.Curated(topic)
	return append(pool, Placeholders(topic, len(pool)+1, size)...)
}

// Placeholders builds placeholder questions numbered from..to inclusive.
func Placeholders(topic string, from, to int) []*domain.Question {
	var out []*domain.Question
	for n := from; n <= to; n++ {
		out = append(out, domain.PlaceholderQuestion(topic, n))
	}
	return out
}
