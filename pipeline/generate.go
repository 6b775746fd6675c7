package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/cockroachdb/errors"
)

// StageConfig carries per-stage call settings. The timeout bounds every model
// call; a stage never waits longer than this.
type StageConfig struct {
	Calls   CallOptions
	Timeout time.Duration
	Logger  *log.Logger
}

const defaultStageTimeout = 30 * time.Second

// Generator produces draft content for a topic. A nil client means
// fallback-only mode: every run uses the template generator.
type Generator struct {
	llm ModelClient
	cfg StageConfig
}

func NewGenerator(llm ModelClient, cfg StageConfig) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultStageTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Generator{llm: llm, cfg: cfg}
}

// Run builds the generation prompt, makes a single model call, and falls back
// to the template generator on any failure. It always returns a value.
func (g *Generator) Run(ctx context.Context, req GenerationRequest) GeneratedContent {
	text, err := completeOnce(ctx, g.llm, BuildGenerationPrompt(req), g.cfg)
	if err != nil {
		g.cfg.Logger.Printf("[generate] falling back (%s): %v", Classify(err), err)
		return GeneratedContent{Text: FallbackContent(req.Topic), Source: SourceFallback, CreatedAt: time.Now()}
	}
	return GeneratedContent{Text: text, Source: SourceModel, CreatedAt: time.Now()}
}

// Revise reworks the previous draft so the criticism is addressed. Same
// fallback discipline as Run.
func (g *Generator) Revise(ctx context.Context, prev GeneratedContent, critique Critique, req GenerationRequest) GeneratedContent {
	text, err := completeOnce(ctx, g.llm, BuildRevisionPrompt(prev, critique, req), g.cfg)
	if err != nil {
		g.cfg.Logger.Printf("[revise] falling back (%s): %v", Classify(err), err)
		return GeneratedContent{Text: FallbackRevision(prev.Text, critique.Text), Source: SourceFallback, CreatedAt: time.Now()}
	}
	return GeneratedContent{Text: text, Source: SourceModel, CreatedAt: time.Now()}
}

// completeOnce makes exactly one bounded model call. No retries: a failed
// call costs money and the fallback is always available.
func completeOnce(ctx context.Context, llm ModelClient, prompt Prompt, cfg StageConfig) (string, error) {
	if llm == nil {
		return "", errors.New("no model client configured")
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	raw, err := llm.Complete(ctx, prompt, cfg.Calls)
	if err != nil {
		return "", err
	}
	return Normalize(raw)
}
