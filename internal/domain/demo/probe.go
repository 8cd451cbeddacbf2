package demo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"

	"freemodels-server/services/catalog-api/internal/infrastructure/metrics"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

const probePrompt = "Reply with a single short sentence confirming you are reachable."

// Result is one completion probe outcome.
type Result struct {
	Model     string    `json:"model"`
	Reply     string    `json:"reply,omitempty"`
	LatencyMS int64     `json:"latencyMs"`
	ProbedAt  time.Time `json:"probedAt"`
	FromCache bool      `json:"fromCache"`
	Err       string    `json:"error,omitempty"`
}

// CompletionClient is the slice of the OpenAI-compatible client the probe
// needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service sends a tiny real completion through the aggregator to show a model
// actually answers. Results are cached per model so the endpoint cannot be
// used to relay traffic.
type Service struct {
	client       CompletionClient
	defaultModel string
	cacheTTL     time.Duration

	mu    sync.Mutex
	cache map[string]*Result
	now   func() time.Time
}

// NewClient builds an OpenAI-compatible client pointed at the aggregator.
func NewClient(baseURL, apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return openai.NewClientWithConfig(cfg)
}

func NewService(client CompletionClient, defaultModel string, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		client:       client,
		defaultModel: defaultModel,
		cacheTTL:     cacheTTL,
		cache:        map[string]*Result{},
		now:          time.Now,
	}
}

// Probe runs one demo completion against model, serving a cached result when
// the last probe is younger than the TTL.
func (s *Service) Probe(ctx context.Context, model string) (*Result, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = s.defaultModel
	}
	if model == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "model is required", nil, "3a6f1b2c-8e94-4d07-b5c3-92e7a40f1d68")
	}

	s.mu.Lock()
	if cached, ok := s.cache[model]; ok && s.now().Sub(cached.ProbedAt) < s.cacheTTL {
		out := *cached
		out.FromCache = true
		s.mu.Unlock()
		return &out, nil
	}
	s.mu.Unlock()

	started := s.now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: 64,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: probePrompt},
		},
	})

	result := &Result{
		Model:     model,
		LatencyMS: s.now().Sub(started).Milliseconds(),
		ProbedAt:  s.now().UTC(),
	}
	if err != nil {
		result.Err = err.Error()
		metrics.RecordDemoProbe("error")
	} else {
		if len(resp.Choices) > 0 {
			result.Reply = strings.TrimSpace(resp.Choices[0].Message.Content)
		}
		metrics.RecordDemoProbe("ok")
	}

	// failures are cached too; a broken model should not be hammered
	s.mu.Lock()
	s.cache[model] = result
	s.mu.Unlock()

	out := *result
	return &out, nil
}
