package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName = "openai"

	// DefaultModel is the primary explanation model.
	// DefaultFallbackModel is the lighter capability selected when no
	// primary is configured.
	DefaultModel         = "gpt-4o"
	DefaultFallbackModel = "gpt-4o-mini"

	defaultTemperature = 0.7
	defaultMaxTokens   = 512
)

// OpenAIConfig holds configuration for the OpenAI-backed generator.
type OpenAIConfig struct {
	APIKey        string
	Model         string        // primary model; empty selects the fallback capability
	FallbackModel string        // overrides the built-in fallback model name
	BaseURL       string        // optional, for compatible endpoints and tests
	RateLimit     int           // requests per minute
	MaxRetries    int           // attempts for transient failures
	RetryDelay    time.Duration // base delay between attempts
	Timeout       time.Duration // per-request timeout
}

// OpenAIClient implements Generator using the official OpenAI SDK.
type OpenAIClient struct {
	client     openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
	limiter    *RateLimiter
}

var _ Generator = (*OpenAIClient)(nil)

// NewOpenAIClient creates a generator bound to a single model. The
// model is fixed here: primary-vs-fallback is a construction-time
// capability decision, not a per-call branch.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	model := cfg.Model
	if model == "" {
		model = cfg.FallbackModel
	}
	if model == "" {
		model = DefaultFallbackModel
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		client:     openai.NewClient(opts...),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    cfg.Timeout,
		limiter:    NewRateLimiter(cfg.RateLimit),
	}
}

// Name returns the backend identifier.
func (c *OpenAIClient) Name() string { return OpenAIName }

// Model returns the model this client was constructed with.
func (c *OpenAIClient) Model() string { return c.model }

// Generate sends a chat completion request, rate limited and retried
// on transient failure.
func (c *OpenAIClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.model),
		Messages:            messages,
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
	}

	attempts := 0
	var completion *openai.ChatCompletion
	err := retry.Do(
		func() error {
			attempts++
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			callCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			resp, err := c.client.Chat.Completions.New(callCtx, params)
			if err != nil {
				return err
			}
			completion = resp
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("generation failed after %d attempts: %w", attempts, err)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("generation returned no choices")
	}

	return &GenerateResult{
		Content:          completion.Choices[0].Message.Content,
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:      int(completion.Usage.TotalTokens),
		Provider:         OpenAIName,
		ModelUsed:        c.model,
		RequestID:        requestID,
		Attempts:         attempts,
		TotalTime:        time.Since(start),
	}, nil
}
