package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"skillup/api/internal/config"
)

const finishMaxTokens = "MAX_TOKENS"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// GeminiClient calls the generateContent endpoint of the Gemini API.
type GeminiClient struct {
	client *resty.Client
	cfg    config.AIConfig
}

func NewGeminiClient(cfg config.AIConfig) *GeminiClient {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &GeminiClient{client: cli, cfg: cfg}
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: api key not configured", ErrUpstream)
	}

	var out generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", g.cfg.APIKey).
		SetBody(generateRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
			GenerationConfig: generationConfig{
				Temperature:     g.cfg.Temperature,
				MaxOutputTokens: g.cfg.MaxOutputTokens,
			},
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.cfg.Model))
	if err != nil {
		return "", fmt.Errorf("%w: generate request: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		body := strings.TrimSpace(resp.String())
		if len(body) > 300 {
			body = body[:300]
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode(), body)
	}

	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", ErrUpstream, out.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates", ErrUpstream)
	}

	candidate := out.Candidates[0]
	if candidate.FinishReason == finishMaxTokens {
		return "", ErrTruncated
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: no content", ErrUpstream)
	}
	return text.String(), nil
}
