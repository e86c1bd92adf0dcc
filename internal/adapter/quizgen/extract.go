package quizgen

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedJSONPattern = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")
	thinkPattern      = regexp.MustCompile(`(?s)<think>.*?</think>`)
)

// StripThinking removes <think>...</think> blocks emitted by reasoning models.
func StripThinking(text string) string {
	return strings.TrimSpace(thinkPattern.ReplaceAllString(text, ""))
}

// ExtractJSONArray locates the JSON array in a model response. A ```json fenced
// block wins when present; otherwise the span from the first '[' to the last ']'
// is used. ok is false when no span parses as a JSON array.
func ExtractJSONArray(text string) (string, bool) {
	text = StripThinking(text)

	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		if span, ok := outermostArray(m[1]); ok {
			return span, true
		}
	}
	return outermostArray(text)
}

func outermostArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return "", false
	}
	span := text[start : end+1]

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return "", false
	}
	return span, true
}
