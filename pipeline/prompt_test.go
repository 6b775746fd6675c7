package pipeline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"self_critic_writer/pipeline"
)

func Test_BuildGenerationPrompt_LengthTiers(t *testing.T) {
	short := pipeline.BuildGenerationPrompt(pipeline.GenerationRequest{Topic: "x", Length: pipeline.LengthShort})
	long := pipeline.BuildGenerationPrompt(pipeline.GenerationRequest{Topic: "x", Length: pipeline.LengthLong})

	assert.Contains(t, short.System, "150 words")
	assert.Contains(t, long.System, "800 words")
	assert.NotEqual(t, short.System, long.System)
}

func Test_BuildGenerationPrompt_EmbedsTopic(t *testing.T) {
	p := pipeline.BuildGenerationPrompt(pipeline.GenerationRequest{Topic: "AI in healthcare", Length: pipeline.LengthMedium})
	assert.Contains(t, p.User, "AI in healthcare")
	assert.Empty(t, p.History)
}

func Test_BuildCritiquePrompt_EmbedsContent(t *testing.T) {
	content := pipeline.GeneratedContent{Text: "# Title\n\nA very specific body sentence."}
	p := pipeline.BuildCritiquePrompt(pipeline.CritiqueRequest{Content: content, Length: pipeline.LengthMedium})

	assert.Contains(t, p.User, "A very specific body sentence.")
	assert.Contains(t, p.System, "QUALITY SCORE: X/10")
	for _, m := range pipeline.RubricMetrics {
		assert.Contains(t, p.System, strings.ToUpper(m))
	}
}

func Test_BuildRevisionPrompt_EmbedsDraftAndCriticism(t *testing.T) {
	prev := pipeline.GeneratedContent{Text: "# Draft\n\nOriginal body."}
	crit := pipeline.Critique{Text: "Needs concrete examples."}
	req := pipeline.GenerationRequest{Topic: "x", Length: pipeline.LengthShort}

	p := pipeline.BuildRevisionPrompt(prev, crit, req)
	require.Contains(t, p.User, "Original body.")
	require.Contains(t, p.User, "Needs concrete examples.")
	assert.Contains(t, p.System, "150 words")
}

func Test_ParseLengthTier(t *testing.T) {
	assert.Equal(t, pipeline.LengthShort, pipeline.ParseLengthTier("short"))
	assert.Equal(t, pipeline.LengthMedium, pipeline.ParseLengthTier(""))
	assert.Equal(t, pipeline.LengthMedium, pipeline.ParseLengthTier("gigantic"))
	assert.Equal(t, 400, pipeline.LengthTier("unknown").Words())
}
