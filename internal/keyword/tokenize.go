package keyword

import "strings"

// Normalize returns the canonical form of a single keyword.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Tokenize splits text on whitespace and returns its distinct normalized
// words in first-seen order.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) < 2 {
		return fields
	}
	out := fields[:0]
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
