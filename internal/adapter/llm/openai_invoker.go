// Package llm adapts the domain.ModelInvoker port onto an
// OpenAI-compatible chat completion service via langchaingo.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flashgen/internal/config"
	"flashgen/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Deterministic-leaning sampling for extraction work.
const temperature = 0.3

// minTokenBudget is the floor for the response token budget. The
// budget is computed as maxTokens minus both prompt lengths, which can
// go non-positive for large chunks; the floor keeps the request valid.
const minTokenBudget = 256

// OpenAIInvoker implements domain.ModelInvoker against any
// OpenAI-compatible endpoint.
type OpenAIInvoker struct {
	client    *openai.LLM
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewOpenAIInvoker creates the invoker. The API key is passed in
// explicitly; there is no process-wide credential state.
func NewOpenAIInvoker(llmCfg config.LLMConfig, logger *zap.Logger) (*OpenAIInvoker, error) {
	if llmCfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key cannot be empty")
	}
	if llmCfg.Model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}

	timeout := llmCfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	opts := []openai.Option{
		openai.WithToken(llmCfg.APIKey),
		openai.WithModel(llmCfg.Model),
		openai.WithHTTPClient(httpClient),
	}
	if llmCfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmCfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	logger.Info("Initialized OpenAI invoker",
		zap.String("model", llmCfg.Model),
		zap.Int("max_tokens", llmCfg.MaxTokens),
	)

	return &OpenAIInvoker{
		client:    client,
		model:     llmCfg.Model,
		maxTokens: llmCfg.MaxTokens,
		logger:    logger,
	}, nil
}

// Invoke sends the system/user prompt pair as a two-message chat
// completion and returns the raw response text. Any transport or
// service failure surfaces as a CodeInvocation domain error.
func (i *OpenAIInvoker) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	budget := i.maxTokens - len(systemPrompt) - len(userPrompt)
	if budget < minTokenBudget {
		budget = minTokenBudget
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := i.client.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(budget),
	)
	if err != nil {
		i.logger.Error("LLM request failed", zap.Error(err))
		return "", domain.NewInvocationError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewInvocationError(fmt.Errorf("model returned no choices"))
	}

	return resp.Choices[0].Content, nil
}

// Model returns the configured model name, used for cache keying.
func (i *OpenAIInvoker) Model() string {
	return i.model
}

var _ domain.ModelInvoker = (*OpenAIInvoker)(nil)
