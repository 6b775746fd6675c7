package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"self_critic_writer/pipeline"
)

func Test_ExtractScore(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		score  float64
		scored bool
	}{
		{"explicit line", "Solid overall.\n\nQUALITY SCORE: 7/10", 7, true},
		{"decimal", "QUALITY SCORE: 8.5/10", 8.5, true},
		{"case insensitive", "quality score: 6/10", 6, true},
		{"clamped high", "QUALITY SCORE: 15/10", 10, true},
		{"sentiment positive", "The writing is clear and engaging throughout.", 6, true},
		{"sentiment negative", "The argument is weak and lacking in evidence.", 4, true},
		{"no signal", "The text discusses its subject.", 0, false},
		{"empty", "", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, scored := pipeline.ExtractScore(tc.text)
			assert.Equal(t, tc.scored, scored)
			assert.InDelta(t, tc.score, score, 0.001)
		})
	}
}

func Test_ExtractMetrics(t *testing.T) {
	text := `Detailed review below.

CLARITY: 8/10
2. STRUCTURE and flow: 6/10
- ENGAGEMENT: 7.5/10

QUALITY SCORE: 7/10`

	metrics := pipeline.ExtractMetrics(text)
	assert.InDelta(t, 8, metrics["clarity"], 0.001)
	assert.InDelta(t, 6, metrics["structure"], 0.001)
	assert.InDelta(t, 7.5, metrics["engagement"], 0.001)
	// Dimensions the model skipped carry the sentinel, not a missing key.
	assert.InDelta(t, pipeline.UnscoredValue, metrics["depth"], 0.001)
	assert.InDelta(t, pipeline.UnscoredValue, metrics["completeness"], 0.001)
}

func Test_ExtractMetrics_AllAbsent(t *testing.T) {
	metrics := pipeline.ExtractMetrics("nothing structured here")
	assert.Equal(t, pipeline.UnscoredMetrics(), metrics)
	for _, k := range pipeline.RubricMetrics {
		assert.InDelta(t, pipeline.UnscoredValue, metrics[k], 0.001)
	}
}
