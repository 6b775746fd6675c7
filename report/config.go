package report

import (
	"encoding/json"
	"os"

	"self_critic_writer/pipeline"
)

// Config is the app-level configuration, read once at startup.
type Config struct {
	ServerAddr string         `json:"server_addr,omitempty"`
	LLM        *LLMConfig     `json:"llm,omitempty"`
	Pipeline   PipelineConfig `json:"pipeline,omitempty"`
}

// LLMConfig configures the model endpoint. APIKeyEnv names an environment
// variable consulted when APIKey is empty; an absent credential means
// fallback-only mode, never a startup failure.
type LLMConfig struct {
	Model     string `json:"model,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// PipelineConfig tunes the two stages and the improvement loop.
type PipelineConfig struct {
	Length           string  `json:"length,omitempty"`
	GenerationTokens int     `json:"generation_tokens,omitempty"`
	CritiqueTokens   int     `json:"critique_tokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	TimeoutSeconds   int     `json:"timeout_seconds,omitempty"`
	QualityThreshold float64 `json:"quality_threshold,omitempty"`
	MaxIterations    int     `json:"max_iterations,omitempty"`
}

// DefaultConfig mirrors the original app defaults.
func DefaultConfig() Config {
	return Config{
		LLM: &LLMConfig{
			APIKeyEnv: "LLM_API_KEY",
			MaxTokens: 1024,
		},
		Pipeline: PipelineConfig{
			Length:           string(pipeline.LengthMedium),
			GenerationTokens: 300,
			CritiqueTokens:   400,
			Temperature:      0.7,
			TimeoutSeconds:   30,
			QualityThreshold: 8.0,
			MaxIterations:    5,
		},
	}
}

// LoadConfig reads JSON config from disk. A missing file is not an error:
// the defaults already support fallback-only operation.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

// ResolveAPIKey returns the credential from config or environment. Empty
// means fallback-only mode.
func (c Config) ResolveAPIKey() string {
	if c.LLM == nil {
		return ""
	}
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	env := c.LLM.APIKeyEnv
	if env == "" {
		env = "LLM_API_KEY"
	}
	return os.Getenv(env)
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.LLM == nil {
		c.LLM = def.LLM
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = def.LLM.MaxTokens
	}
	p, dp := &c.Pipeline, def.Pipeline
	if p.Length == "" {
		p.Length = dp.Length
	}
	if p.GenerationTokens <= 0 {
		p.GenerationTokens = dp.GenerationTokens
	}
	if p.CritiqueTokens <= 0 {
		p.CritiqueTokens = dp.CritiqueTokens
	}
	if p.Temperature <= 0 {
		p.Temperature = dp.Temperature
	}
	if p.TimeoutSeconds <= 0 {
		p.TimeoutSeconds = dp.TimeoutSeconds
	}
	if p.QualityThreshold <= 0 {
		p.QualityThreshold = dp.QualityThreshold
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = dp.MaxIterations
	}
}
