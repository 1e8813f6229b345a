package narrative

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// Client talks to an Ollama-compatible text-generation endpoint. Each call
// is a stateless single-turn request; no streaming, no conversation memory.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient builds a client for the given base URL (e.g.
// http://localhost:11434).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate submits a prompt to the endpoint and returns the raw response
// text unmodified. No retries; a failure surfaces to the caller.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if !models.ValidLLMModel(model) {
		return "", models.GenerationError("unsupported model %q, expected one of %v", model, models.LLMModels)
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		Post(c.baseURL + "/api/generate")
	if err != nil {
		log.Printf("text-generation request failed: %v", err)
		return "", models.GenerationError("text-generation endpoint unreachable: %v", err)
	}
	if resp.IsError() {
		log.Printf("text-generation endpoint returned %d: %s", resp.StatusCode(), resp.String())
		return "", models.GenerationError("text-generation endpoint returned status %d", resp.StatusCode())
	}
	return out.Response, nil
}
