package pipeline

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Normalize trims model output and rejects empty responses so an empty reply
// follows the same fallback path as a failed call.
func Normalize(raw string) (string, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return "", errors.New("model returned empty text")
	}
	return md, nil
}

// ExtractTitle returns the first level-one heading, if any.
func ExtractTitle(md string) string {
	if m := titleRe.FindStringSubmatch(md); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Summary collapses markdown to a single line of at most limit bytes.
func Summary(md string, limit int) string {
	joined := strings.Join(strings.Fields(md), " ")
	if len(joined) <= limit {
		return joined
	}
	return joined[:limit]
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
