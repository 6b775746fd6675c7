package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Free-text model output carries no guaranteed schema, so extraction is
// best-effort: the explicit score line first, then a sentiment estimate, and
// finally the unscored sentinel.

var (
	scoreRe  = regexp.MustCompile(`(?i)QUALITY SCORE:\s*(\d+(?:\.\d+)?)`)
	metricRe = regexp.MustCompile(`(?im)^\s*(?:[-*\d.]+\s*)*(CLARITY|STRUCTURE|ENGAGEMENT|DEPTH|COMPLETENESS)\b[^:\n]*:\s*(\d+(?:\.\d+)?)\s*/\s*10`)

	negativeWords = []string{"poor", "weak", "lacking", "needs improvement", "unclear", "confusing"}
	positiveWords = []string{"excellent", "great", "good", "clear", "engaging", "well-written"}
)

// ExtractScore pulls the overall quality score out of critique text. The
// second return reports whether a score could be determined at all.
func ExtractScore(text string) (float64, bool) {
	if m := scoreRe.FindStringSubmatch(text); len(m) == 2 {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return clampScore(v), true
		}
	}

	// Sentiment estimate: only when the text carries any signal at all.
	lower := strings.ToLower(text)
	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	if pos == 0 && neg == 0 {
		return 0, false
	}
	return clampScore(5.0 + 0.5*float64(pos) - 0.5*float64(neg)), true
}

// ExtractMetrics pulls per-dimension scores out of critique text. Every
// rubric key is present in the result; dimensions the model did not score get
// UnscoredValue.
func ExtractMetrics(text string) map[string]float64 {
	metrics := make(map[string]float64, len(RubricMetrics))
	for _, k := range RubricMetrics {
		metrics[k] = UnscoredValue
	}
	for _, m := range metricRe.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(m[1])
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		metrics[key] = clampScore(v)
	}
	return metrics
}

// UnscoredMetrics returns the sentinel mapping used when nothing could be
// extracted.
func UnscoredMetrics() map[string]float64 {
	metrics := make(map[string]float64, len(RubricMetrics))
	for _, k := range RubricMetrics {
		metrics[k] = UnscoredValue
	}
	return metrics
}

func clampScore(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
