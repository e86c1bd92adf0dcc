package cache

import "strings"

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "aptilab"

// Key joins the prefix and parts with ':'. Qualifiers, when present, are
// joined with '_' into one trailing segment.
func Key(area, kind, id string, qualifiers ...string) string {
	var b strings.Builder
	b.WriteString(KeyPrefix)
	for _, p := range []string{area, kind, id} {
		b.WriteByte(':')
		b.WriteString(p)
	}
	if len(qualifiers) > 0 {
		b.WriteByte(':')
		b.WriteString(strings.Join(qualifiers, "_"))
	}
	return b.String()
}

// UserResultsKey is case-insensitive in the email.
func UserResultsKey(email string) string {
	return Key("results", "user", strings.ToLower(email))
}

func AIHealthKey() string {
	return Key("health", "ai", "probe")
}

// SourceModeKey stores the question source of the previous run.
func SourceModeKey() string {
	return Key("questions", "source", "mode")
}
