package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/logging"
)

const promptTemplate = `You are an assistant that analyzes password strength and usage patterns to suggest an optimal expiry date.

Given the following information, determine a suitable expiry date for the password. Consider factors such as password complexity, length, and how frequently it is used.
If the password is weak or the usage is high, suggest a sooner expiry date. If the password is strong and usage is low, suggest a later expiry date.

Password: %s
Last Changed Date: %s
Usage Frequency: %g logins per week

Respond with a JSON object that includes the suggested expiry date (expiryDate) in ISO format (YYYY-MM-DD) and a brief reason (reason) for the suggestion.`

// GeminiAdvisor calls the Generative Language generateContent REST endpoint.
// Transient failures (429, 5xx, network errors) are retried with fibonacci
// backoff; everything that cannot be turned into a valid Suggestion comes
// back wrapped in common.ErrorAdvisoryUnavailable.
type GeminiAdvisor struct {
	client   *http.Client
	endpoint string
	apiKey   string
	model    string
	logger   logging.Logger
}

func NewGeminiAdvisor(endpoint, apiKey, model string, timeout time.Duration, logger logging.Logger) *GeminiAdvisor {
	return &GeminiAdvisor{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		logger:   logger.With("module", "advisor"),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAdvisor) SuggestExpiry(ctx context.Context, req Request) (*Suggestion, error) {
	prompt := fmt.Sprintf(promptTemplate, req.Password, req.LastChangedDate, req.UsageFrequency)

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %v", common.ErrorAdvisoryUnavailable, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.endpoint, g.model)

	var raw []byte
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", g.apiKey)

		resp, err := g.client.Do(httpReq)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("provider status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("provider status %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		g.logger.Error(ctx, "advisory call failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrorAdvisoryUnavailable, err)
	}

	suggestion, err := parseSuggestion(raw)
	if err != nil {
		g.logger.Error(ctx, "advisory output rejected", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrorAdvisoryUnavailable, err)
	}
	return suggestion, nil
}

// parseSuggestion extracts the JSON suggestion from the model response and
// enforces the output schema.
func parseSuggestion(raw []byte) (*Suggestion, error) {
	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("malformed provider response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("provider returned no candidates")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &s); err != nil {
		return nil, fmt.Errorf("malformed suggestion payload: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var _ Advisor = (*GeminiAdvisor)(nil)
