package llmHandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tvbank-assistant-backend/internal/models"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// OpenAIClient implements Client for the chat-completion style API.
type OpenAIClient struct {
	BaseURL    string
	HTTPClient *http.Client

	MaxRetries     int
	RetryBaseDelay time.Duration
	QuotaCooldown  time.Duration

	sleep func(time.Duration)
}

func NewOpenAIClient() *OpenAIClient {
	return &OpenAIClient{
		BaseURL:        defaultOpenAIBaseURL,
		HTTPClient:     &http.Client{Timeout: 60 * time.Second},
		MaxRetries:     2,
		RetryBaseDelay: 3 * time.Second,
		QuotaCooldown:  30 * time.Second,
		sleep:          time.Sleep,
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func buildOpenAIMessages(req ChatRequest) []openAIMessage {
	msgs := make([]openAIMessage, 0, len(req.History)+2)
	if req.Config.SystemPrompt != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: req.Config.SystemPrompt})
	}
	for _, m := range req.History {
		msgs = append(msgs, openAIMessage{Role: string(m.Role), Content: m.Content})
	}
	msgs = append(msgs, openAIMessage{Role: "user", Content: frameUserMessage(req.Role, req.Message)})
	return msgs
}

func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	body := openAIRequest{
		Model:       req.Config.Model,
		Messages:    buildOpenAIMessages(req),
		Temperature: req.Config.Temperature,
		MaxTokens:   req.Config.MaxTokens,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}

	url := c.BaseURL + "/v1/chat/completions"

	for attempt := 0; ; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("new request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+req.Config.APIKey)

		resp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			return "", &ProviderError{Kind: ErrNetwork, Provider: ProviderOpenAI, Body: err.Error()}
		}

		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return "", &ProviderError{Kind: ErrNetwork, Provider: ProviderOpenAI, Body: readErr.Error()}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt < c.MaxRetries {
				c.sleep(retryDelay(c.RetryBaseDelay, c.QuotaCooldown, attempt+1, isQuotaExhausted(string(raw))))
				continue
			}
			return "", newStatusError(ProviderOpenAI, resp.StatusCode, string(raw))
		}
		if resp.StatusCode != http.StatusOK {
			return "", newStatusError(ProviderOpenAI, resp.StatusCode, string(raw))
		}

		var parsed openAIResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", &ProviderError{Kind: ErrUpstream, Provider: ProviderOpenAI, Status: resp.StatusCode, Body: "decode response: " + err.Error()}
		}
		return extractOpenAIText(parsed, req.Role), nil
	}
}

// extractOpenAIText maps the vendor's finish markers onto the non-fatal
// substitute sentences. These branches succeed; only transport and status
// failures are errors.
func extractOpenAIText(parsed openAIResponse, role models.UserRole) string {
	if len(parsed.Choices) == 0 {
		return capabilityGreeting(role)
	}
	choice := parsed.Choices[0]
	if choice.Message.Content != "" {
		return choice.Message.Content
	}
	switch choice.FinishReason {
	case "content_filter":
		return safetyRedirect(role)
	case "length":
		return truncationNotice(role)
	default:
		return capabilityGreeting(role)
	}
}

// ChatStream satisfies the streaming contract; the chat-completion path has
// no incremental variant here, so the complete reply arrives as one chunk.
func (c *OpenAIClient) ChatStream(ctx context.Context, req ChatRequest) (*Stream, error) {
	text, err := c.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	return RunStream(ctx, func(ctx context.Context, emit func(string) bool) error {
		emit(text)
		return nil
	}), nil
}
