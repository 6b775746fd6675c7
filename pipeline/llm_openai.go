package pipeline

import (
	"context"

	"github.com/cockroachdb/errors"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIModel implements ModelClient using the official openai-go SDK (chat
// completions). Groq and other OpenAI-compatible endpoints work through
// BaseURL.
type OpenAIModel struct {
	Model   string
	Ceiling int
	Opts    []option.RequestOption
}

func NewOpenAIModel(cfg *ModelSettings) (*OpenAIModel, error) {
	if cfg == nil {
		return nil, errors.New("model config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key missing; set llm.api_key or the configured env var")
	}
	if cfg.Model == "" {
		return nil, errors.New("model id is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIModel{Model: cfg.Model, Ceiling: cfg.MaxTokensCeiling, Opts: opts}, nil
}

func (o *OpenAIModel) Complete(ctx context.Context, prompt Prompt, opts CallOptions) (string, error) {
	client := openai.NewClient(o.Opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt.System),
	}
	for _, h := range prompt.History {
		switch h.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(h.Content))
		default:
			msgs = append(msgs, openai.UserMessage(h.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(prompt.User))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.Model),
		Messages:    msgs,
		MaxTokens:   openai.Int(int64(clampTokens(opts.MaxTokens, o.Ceiling))),
		Temperature: openai.Float(clampTemperature(opts.Temperature)),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
