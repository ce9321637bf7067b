package ai

import (
	"context"
	"encoding/json"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
	"go.uber.org/zap"
)

const (
	deepSeekBaseURL = "https://api.deepseek.com"
	deepSeekModel   = "deepseek-chat"

	maxCompletionTokens   = 600
	completionTemperature = 0.3

	defaultRequestTimeout = 30 * time.Second
)

const systemPromptBody = `You are a professional financial analyst. Analyze the provided stock metrics and generate a concise report.
Respond with a valid JSON object containing exactly these 6 keys with 1-2 sentence values:
1. "trend_analysis": Comment on short/medium-term trend and moving average position.
2. "volatility_insight": Note the volatility level and what it suggests.
3. "pattern_recognition": Identify any notable patterns or context (e.g., earnings season).
4. "summary": A natural language summary of the stock's current situation.
5. "risk_commentary": Note any overbought/oversold conditions or risk factors.
6. "general_observation": A neutral, non-personalized technical observation.

Base your analysis strictly on the provided data. Be objective and avoid speculation.`

// DeepSeekAnalyst talks to DeepSeek's OpenAI-compatible chat endpoint and
// decodes the model's JSON answer. The response schema is reflected from
// the AIAnalysis type and appended to the system prompt at construction.
type DeepSeekAnalyst struct {
	client       *openai.Client
	logger       *logger.Logger
	systemPrompt string
	timeout      time.Duration
}

// NewDeepSeekAnalyst builds an analyst for the given key. An empty
// baseURL falls back to the public DeepSeek endpoint; a non-positive
// timeout falls back to the default.
func NewDeepSeekAnalyst(apiKey, baseURL string, timeout time.Duration, l *logger.Logger) (*DeepSeekAnalyst, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeAINotConfigured, "deepseek api key is required")
	}

	if baseURL == "" {
		baseURL = deepSeekBaseURL
	}

	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	schema, err := schemaFor[types.AIAnalysis]()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to build analysis schema", err)
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &DeepSeekAnalyst{
		client:       openai.NewClientWithConfig(config),
		logger:       l,
		systemPrompt: systemPromptBody + "\n\nThe response must validate against this JSON schema:\n" + schema,
		timeout:      timeout,
	}, nil
}

func (a *DeepSeekAnalyst) Name() string { return "deepseek" }

// Analyze sends the indicator context to the model and decodes its JSON
// reply. A reply that is not valid JSON is preserved verbatim inside the
// returned error so the caller can expose it for debugging.
func (a *DeepSeekAnalyst) Analyze(ctx context.Context, analysisContext types.AnalysisContext) (types.AIAnalysis, error) {
	payload, err := json.MarshalIndent(analysisContext, "", "  ")
	if err != nil {
		return types.AIAnalysis{}, errors.Wrap(errors.ErrCodeAIRequestFailed, "failed to encode analysis context", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	//nolint:exhaustruct // third-party struct with many optional fields
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: deepSeekModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Please analyze this stock data: " + string(payload)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   maxCompletionTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return types.AIAnalysis{}, errors.Wrap(errors.ErrCodeAIRequestFailed, "AI analysis failed", err)
	}

	if len(resp.Choices) == 0 {
		return types.AIAnalysis{}, errors.New(errors.ErrCodeAIResponseInvalid, "AI returned an empty completion")
	}

	content := resp.Choices[0].Message.Content

	var analysis types.AIAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		invalid := errors.NewInvalidAIResponseError(content, err)

		return types.AIAnalysis{}, errors.Wrap(errors.ErrCodeAIResponseInvalid, "AI returned invalid JSON format", invalid)
	}

	a.logger.Debug("ai analysis completed",
		zap.String("symbol", analysisContext.Symbol),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return analysis, nil
}
