package openrouter

import (
	"context"
	"fmt"
	"strings"

	"freemodels-server/services/catalog-api/internal/utils/platformerrors"

	"github.com/shopspring/decimal"
	"resty.dev/v3"
)

// Client talks to the OpenRouter model listing API (or any mirror exposing the
// same shape).
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	headers map[string]string
}

type ModelsResponse struct {
	Data []Model `json:"data"`
}

type Architecture struct {
	Modality         string   `json:"modality"`
	InputModalities  []string `json:"input_modalities"`
	OutputModalities []string `json:"output_modalities"`
	Tokenizer        string   `json:"tokenizer"`
}

type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

type TopProvider struct {
	ContextLength       int  `json:"context_length"`
	MaxCompletionTokens *int `json:"max_completion_tokens"`
}

type Model struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	Created             int64        `json:"created"`
	ContextLength       int          `json:"context_length"`
	Architecture        Architecture `json:"architecture"`
	Pricing             Pricing      `json:"pricing"`
	TopProvider         TopProvider  `json:"top_provider"`
	SupportedParameters []string     `json:"supported_parameters"`
}

// IsFree reports whether both prompt and completion prices parse to exactly
// zero. A missing or unparseable price counts as non-free.
func (m Model) IsFree() bool {
	return priceIsZero(m.Pricing.Prompt) && priceIsZero(m.Pricing.Completion)
}

func priceIsZero(raw string) bool {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return price.IsZero()
}

// EffectiveContextLength prefers the top provider's context window when set.
func (m Model) EffectiveContextLength() int {
	if m.TopProvider.ContextLength > 0 {
		return m.TopProvider.ContextLength
	}
	return m.ContextLength
}

func NewClient(client *resty.Client, baseURL, apiKey string, headers map[string]string) *Client {
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		headers: headers,
	}
}

// ListModels fetches the upstream model list in a single call.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var respBody ModelsResponse
	req := c.client.R().
		SetContext(ctx).
		SetResult(&respBody)
	if c.apiKey != "" {
		req.SetHeader("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range c.headers {
		req.SetHeader(k, v)
	}

	resp, err := req.Get(c.baseURL + "/models")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "fetch upstream models", err, "c4f7b8de-9f0d-4a6e-9d55-2c63a40f81c2")
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, fmt.Sprintf("upstream models request failed with status %d", resp.StatusCode()), nil, "8f2a1e0b-6c34-47d9-8f11-5e9ad7c3b6a4")
	}
	return respBody.Data, nil
}

// FreeModels filters the upstream list down to free-tier entries.
func FreeModels(models []Model) []Model {
	free := make([]Model, 0, len(models))
	for _, m := range models {
		if m.IsFree() {
			free = append(free, m)
		}
	}
	return free
}
