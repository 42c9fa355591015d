package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/example/dme-recommend-service/internal/domain"
)

// Config holds Gemini oracle settings.
type Config struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// GeminiOracle asks Gemini to pick DME partners for an order. It is
// constructed explicitly and injected where needed; there is no package
// level client.
type GeminiOracle struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	log        zerolog.Logger
}

func NewGeminiOracle(ctx context.Context, cfg Config, log zerolog.Logger) (*GeminiOracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiOracle{
		client:     client,
		model:      model,
		timeout:    timeout,
		maxRetries: maxRetries,
		log:        log,
	}, nil
}

// Propose sends the order and candidate partners to the model and returns
// its raw output. The caller parses and verifies; a well-formed answer is
// not assumed here.
func (o *GeminiOracle) Propose(ctx context.Context, order domain.Order, candidates []domain.Partner) ([]byte, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	prompt, err := BuildPrompt(order, candidates)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.3),
		ResponseMIMEType: "application/json",
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := o.client.Models.GenerateContent(ctx, o.model, genai.Text(prompt), cfg)
		if err != nil {
			lastErr = err
			o.log.Warn().Err(err).Int("attempt", attempt).Msg("gemini request failed")
			continue
		}
		text := resp.Text()
		if text == "" {
			lastErr = fmt.Errorf("empty completion")
			continue
		}
		o.log.Debug().
			Str("order_uid", order.OrderUID).
			Int("candidates", len(candidates)).
			Dur("latency", time.Since(start)).
			Int("response_len", len(text)).
			Msg("gemini proposal")
		return []byte(text), nil
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

var _ domain.RecommendationOracle = (*GeminiOracle)(nil)
