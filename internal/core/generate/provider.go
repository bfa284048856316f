package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// systemPrompt is sent ahead of every task prompt.
const systemPrompt = "You are a JSON API. Reply with exactly one JSON object and no other text."

// Provider turns a prompt into a raw model reply.
type Provider interface {
	Name() string
	Complete(ctx context.Context, task Task, prompt string) (string, error)
}

// ChatProvider implements Provider over an OpenAI-compatible chat completions API.
type ChatProvider struct {
	client openai.Client
	cfg    ProviderConfig
}

// NewChatProvider creates a provider for cfg. Extra request options (e.g. a
// custom HTTP client) are appended after the key and base URL.
func NewChatProvider(cfg ProviderConfig, opts ...option.RequestOption) *ChatProvider {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	clientOpts = append(clientOpts, opts...)

	return &ChatProvider{
		client: openai.NewClient(clientOpts...),
		cfg:    cfg,
	}
}

func (p *ChatProvider) Name() string {
	return p.cfg.Name
}

func (p *ChatProvider) model(task Task) string {
	if task == TaskPrompt {
		return p.cfg.PromptModel
	}
	return p.cfg.CaptionModel
}

// Complete sends one chat completion request and returns the first choice's text.
func (p *ChatProvider) Complete(ctx context.Context, task Task, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Model: p.model(task),
	}
	if p.cfg.Temperature > 0 {
		params.Temperature = openai.Float(p.cfg.Temperature)
	}
	if p.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(p.cfg.MaxTokens)
	}
	if p.cfg.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyProviderError(p.cfg.Name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s returned no choices", ErrProviderFailed, p.cfg.Name)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: %s returned an empty reply", ErrInvalidModelOutput, p.cfg.Name)
	}
	return content, nil
}

// classifyProviderError maps an SDK error onto the package sentinels by HTTP
// status. Gemini reports a bad key as 400 with API_KEY_INVALID in the message.
func classifyProviderError(provider string, err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusUnauthorized,
			apierr.StatusCode == http.StatusForbidden,
			strings.Contains(apierr.Error(), "API_KEY_INVALID"):
			return fmt.Errorf("%w: %s: %v", ErrProviderAuth, provider, err)
		case apierr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s: %v", ErrProviderQuota, provider, err)
		case apierr.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s: %v", ErrModelNotFound, provider, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrProviderFailed, provider, err)
}
