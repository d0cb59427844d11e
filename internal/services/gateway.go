package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/inference-gateway/sdk"
	"go.uber.org/zap"

	config "github.com/promptlift/cli/config"
	domain "github.com/promptlift/cli/internal/domain"
	logger "github.com/promptlift/cli/internal/logger"
)

// GatewayProvider implements domain.CompletionProvider against an
// inference-gateway deployment. Model identifiers use the
// "provider/model" form the gateway expects.
type GatewayProvider struct {
	client         sdk.Client
	timeoutSeconds int
}

// NewGatewayProvider creates a completion provider from gateway settings
func NewGatewayProvider(cfg config.GatewayConfig) *GatewayProvider {
	baseURL := cfg.URL
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
	}

	client := sdk.NewClient(&sdk.ClientOptions{
		BaseURL: baseURL,
		APIKey:  cfg.APIKey,
	})

	return &GatewayProvider{
		client:         client,
		timeoutSeconds: cfg.Timeout,
	}
}

// Name identifies this provider in usage events and wrapped errors
func (p *GatewayProvider) Name() string {
	return "inference-gateway"
}

// Complete sends the system+user prompt pair to the gateway and returns
// the generated text with the provider-reported usage when available.
func (p *GatewayProvider) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResult, error) {
	slashIndex := strings.Index(req.Model, "/")
	if slashIndex == -1 {
		return nil, domain.WrapProviderError(p.Name(),
			fmt.Errorf("invalid model format %q, expected 'provider/model'", req.Model))
	}
	providerName := req.Model[:slashIndex]
	modelName := req.Model[slashIndex+1:]

	messages := make([]sdk.Message, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, sdk.Message{
			Role:    sdk.System,
			Content: sdk.NewMessageContent(req.SystemPrompt),
		})
	}
	messages = append(messages, sdk.Message{
		Role:    sdk.User,
		Content: sdk.NewMessageContent(req.Prompt),
	})

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	options := &sdk.CreateChatCompletionRequest{
		MaxTokens: &maxTokens,
	}

	if p.timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(p.timeoutSeconds)*time.Second)
		defer cancel()
	}

	logger.L(ctx).Debug("sending completion request",
		zap.String("provider", providerName),
		zap.String("model", modelName),
		zap.Int("max_tokens", maxTokens))

	response, err := p.client.
		WithOptions(options).
		GenerateContent(ctx, sdk.Provider(providerName), modelName, messages)
	if err != nil {
		return nil, domain.WrapProviderError(p.Name(), err)
	}

	if len(response.Choices) == 0 {
		return nil, domain.WrapProviderError(p.Name(),
			fmt.Errorf("server returned no completion choices"))
	}

	contentStr, err := completionText(response.Choices[0])
	if err != nil {
		return nil, domain.WrapProviderError(p.Name(),
			fmt.Errorf("failed to extract completion content: %w", err))
	}

	result := &domain.CompletionResult{
		Content: contentStr,
	}

	if response.Usage != nil {
		result.Usage = &domain.ProviderUsage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		}
	}

	return result, nil
}

// completionText extracts the plain-text body of a completion choice.
// The SDK models content as a union of plain text and content parts;
// chat completions from the gateway always carry the plain-text form.
func completionText(choice sdk.ChatCompletionChoice) (string, error) {
	return choice.Message.Content.AsMessageContent0()
}
