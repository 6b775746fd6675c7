package pipeline_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"self_critic_writer/pipeline"
)

func Test_Generator_ModelSuccess(t *testing.T) {
	llm := &pipeline.ScriptedModel{Reply: "# Stub\n\nStub body."}
	g := pipeline.NewGenerator(llm, pipeline.StageConfig{})

	got := g.Run(context.Background(), pipeline.GenerationRequest{Topic: "AI in healthcare", Length: pipeline.LengthShort})
	assert.Equal(t, pipeline.SourceModel, got.Source)
	assert.Equal(t, "# Stub\n\nStub body.", got.Text)
	assert.False(t, got.CreatedAt.IsZero())

	// Prompt capture: the tier instruction reached the client.
	require.Len(t, llm.Calls, 1)
	assert.Contains(t, llm.Calls[0].System, "150 words")
}

func Test_Generator_TotalUnderFailure(t *testing.T) {
	llm := &pipeline.ScriptedModel{Err: errors.New("connection refused")}
	g := pipeline.NewGenerator(llm, pipeline.StageConfig{})

	got := g.Run(context.Background(), pipeline.GenerationRequest{Topic: "climate change", Length: pipeline.LengthMedium})
	assert.Equal(t, pipeline.SourceFallback, got.Source)
	assert.NotEmpty(t, got.Text)
}

func Test_Generator_NilClientIsFallbackOnly(t *testing.T) {
	g := pipeline.NewGenerator(nil, pipeline.StageConfig{})
	got := g.Run(context.Background(), pipeline.GenerationRequest{Topic: "climate change", Length: pipeline.LengthMedium})
	assert.Equal(t, pipeline.SourceFallback, got.Source)
	assert.NotEmpty(t, got.Text)
}

func Test_Generator_EmptyModelReplyFallsBack(t *testing.T) {
	llm := &pipeline.ScriptedModel{Reply: "   \n\t  \n"}
	g := pipeline.NewGenerator(llm, pipeline.StageConfig{})
	got := g.Run(context.Background(), pipeline.GenerationRequest{Topic: "climate change", Length: pipeline.LengthMedium})
	assert.Equal(t, pipeline.SourceFallback, got.Source)
	assert.NotEmpty(t, got.Text)
}

func Test_Generator_Revise(t *testing.T) {
	llm := &pipeline.ScriptedModel{Reply: "# Revised\n\nBetter body."}
	g := pipeline.NewGenerator(llm, pipeline.StageConfig{})

	prev := pipeline.GeneratedContent{Text: "# Draft\n\nOld body.", Source: pipeline.SourceModel}
	crit := pipeline.Critique{Text: "Add examples."}
	got := g.Revise(context.Background(), prev, crit, pipeline.GenerationRequest{Topic: "x", Length: pipeline.LengthShort})

	assert.Equal(t, pipeline.SourceModel, got.Source)
	assert.Equal(t, "# Revised\n\nBetter body.", got.Text)
	require.Len(t, llm.Calls, 1)
	assert.Contains(t, llm.Calls[0].User, "Old body.")
	assert.Contains(t, llm.Calls[0].User, "Add examples.")
}

func Test_Generator_ReviseFailureUsesDeterministicTouchups(t *testing.T) {
	llm := &pipeline.ScriptedModel{Err: errors.New("boom")}
	g := pipeline.NewGenerator(llm, pipeline.StageConfig{})

	prev := pipeline.GeneratedContent{Text: "Old body.", Source: pipeline.SourceModel}
	crit := pipeline.Critique{Text: "Weak structure, no examples."}
	got := g.Revise(context.Background(), prev, crit, pipeline.GenerationRequest{Topic: "x", Length: pipeline.LengthShort})

	assert.Equal(t, pipeline.SourceFallback, got.Source)
	assert.Contains(t, got.Text, "Old body.")
	assert.Contains(t, got.Text, "# Introduction")
}

func Test_Critic_ModelSuccess(t *testing.T) {
	llm := &pipeline.ScriptedModel{Reply: "Strong draft.\n\nCLARITY: 8/10\n\nQUALITY SCORE: 8.5/10"}
	c := pipeline.NewCritic(llm, pipeline.StageConfig{})

	crit := c.Run(context.Background(), pipeline.CritiqueRequest{
		Content: pipeline.GeneratedContent{Text: "# T\n\nBody."},
		Length:  pipeline.LengthMedium,
	})
	assert.Equal(t, pipeline.SourceModel, crit.Source)
	assert.True(t, crit.Scored)
	assert.InDelta(t, 8.5, crit.Score, 0.001)
	assert.InDelta(t, 8, crit.Metrics["clarity"], 0.001)
	assert.InDelta(t, pipeline.UnscoredValue, crit.Metrics["depth"], 0.001)
}

func Test_Critic_AmbiguousOutputDegradesToUnscored(t *testing.T) {
	llm := &pipeline.ScriptedModel{Reply: "The text discusses its subject at length."}
	c := pipeline.NewCritic(llm, pipeline.StageConfig{})

	crit := c.Run(context.Background(), pipeline.CritiqueRequest{
		Content: pipeline.GeneratedContent{Text: "# T\n\nBody."},
		Length:  pipeline.LengthMedium,
	})
	assert.Equal(t, pipeline.SourceModel, crit.Source)
	assert.False(t, crit.Scored)
	assert.Equal(t, pipeline.UnscoredMetrics(), crit.Metrics)
	assert.NotEmpty(t, crit.Text)
}

func Test_Critic_TotalUnderFailure(t *testing.T) {
	llm := &pipeline.ScriptedModel{Err: errors.New("429 too many requests")}
	c := pipeline.NewCritic(llm, pipeline.StageConfig{})

	crit := c.Run(context.Background(), pipeline.CritiqueRequest{
		Content: pipeline.GeneratedContent{Text: "# T\n\nBody."},
		Length:  pipeline.LengthMedium,
	})
	assert.Equal(t, pipeline.SourceFallback, crit.Source)
	assert.NotEmpty(t, crit.Text)
	assert.True(t, crit.Scored)
}

func Test_Classify(t *testing.T) {
	assert.Equal(t, pipeline.FailureTimeout, pipeline.Classify(context.DeadlineExceeded))
	assert.Equal(t, pipeline.FailureTimeout, pipeline.Classify(errors.Wrap(context.DeadlineExceeded, "call")))
	assert.Equal(t, pipeline.FailureUnavailable, pipeline.Classify(errors.New("dial tcp: connection refused")))
}
