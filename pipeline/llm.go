package pipeline

import "context"

// ModelClient abstracts the chat-completion endpoint so stages can be swapped
// to a scripted implementation or run without network access.
type ModelClient interface {
	Complete(ctx context.Context, prompt Prompt, opts CallOptions) (string, error)
}

// CallOptions bound a single completion call.
type CallOptions struct {
	MaxTokens   int
	Temperature float64
}

// ModelSettings provides base configuration for concrete clients.
type ModelSettings struct {
	Model   string
	APIKey  string
	BaseURL string
	// MaxTokensCeiling caps whatever CallOptions ask for. Zero means the
	// package default.
	MaxTokensCeiling int
}

const defaultMaxTokensCeiling = 1024

func clampTokens(n, ceiling int) int {
	if ceiling <= 0 {
		ceiling = defaultMaxTokensCeiling
	}
	if n <= 0 || n > ceiling {
		return ceiling
	}
	return n
}

func clampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
