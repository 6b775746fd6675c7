package pipeline

import (
	"context"
	"log"
)

// Critic evaluates generated content against the rubric. A nil client means
// fallback-only mode.
type Critic struct {
	llm ModelClient
	cfg StageConfig
}

func NewCritic(llm ModelClient, cfg StageConfig) *Critic {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultStageTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Critic{llm: llm, cfg: cfg}
}

// Run critiques the content with a single model call, extracting the overall
// score and per-metric scores best-effort. An ambiguous response degrades to
// unscored; it never fails the pipeline.
func (c *Critic) Run(ctx context.Context, req CritiqueRequest) Critique {
	text, err := completeOnce(ctx, c.llm, BuildCritiquePrompt(req), c.cfg)
	if err != nil {
		c.cfg.Logger.Printf("[critique] falling back (%s): %v", Classify(err), err)
		return FallbackCritique(req.Content)
	}

	score, scored := ExtractScore(text)
	return Critique{
		Text:    text,
		Source:  SourceModel,
		Score:   score,
		Scored:  scored,
		Metrics: ExtractMetrics(text),
	}
}
