package llmHandlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tvbank-assistant-backend/internal/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient implements Client for the generative turn-based API.
type GeminiClient struct {
	BaseURL    string
	HTTPClient *http.Client

	TopP float64
	TopK int

	MaxRetries     int
	RetryBaseDelay time.Duration
	QuotaCooldown  time.Duration

	sleep func(time.Duration)
}

func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		BaseURL:        defaultGeminiBaseURL,
		HTTPClient:     &http.Client{Timeout: 60 * time.Second},
		TopP:           0.9,
		TopK:           40,
		MaxRetries:     2,
		RetryBaseDelay: 3 * time.Second,
		QuotaCooldown:  30 * time.Second,
		sleep:          time.Sleep,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	SafetySettings    []geminiSafetySetting  `json:"safetySettings"`
}

type geminiCandidate struct {
	Content struct {
		Parts []geminiPart `json:"parts"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// Built-in content blocking is disabled across all categories. The assistant
// answers everything and redirects banking-adjacent topics itself.
func allSafetyOff() []geminiSafetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]geminiSafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, geminiSafetySetting{Category: c, Threshold: "BLOCK_NONE"})
	}
	return settings
}

func buildGeminiRequest(req ChatRequest, topP float64, topK int) geminiRequest {
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, m := range req.History {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: frameUserMessage(req.Role, req.Message)}},
	})

	out := geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Config.Temperature,
			MaxOutputTokens: req.Config.MaxTokens,
			TopP:            topP,
			TopK:            topK,
		},
		SafetySettings: allSafetyOff(),
	}
	if req.Config.SystemPrompt != "" {
		out.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.Config.SystemPrompt}}}
	}
	return out
}

// doWithRetry posts the payload and retries on HTTP 429 with backoff. The
// caller owns the returned body.
func (c *GeminiClient) doWithRetry(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("new request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			return nil, &ProviderError{Kind: ErrNetwork, Provider: ProviderGemini, Body: err.Error()}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if attempt < c.MaxRetries {
				c.sleep(retryDelay(c.RetryBaseDelay, c.QuotaCooldown, attempt+1, isQuotaExhausted(string(raw))))
				continue
			}
			return nil, newStatusError(ProviderGemini, resp.StatusCode, string(raw))
		}
		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, newStatusError(ProviderGemini, resp.StatusCode, string(raw))
		}
		return resp, nil
	}
}

func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	payload, err := json.Marshal(buildGeminiRequest(req, c.TopP, c.TopK))
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, req.Config.Model, req.Config.APIKey)

	resp, err := c.doWithRetry(ctx, url, payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ProviderError{Kind: ErrUpstream, Provider: ProviderGemini, Status: resp.StatusCode, Body: "decode response: " + err.Error()}
	}
	return extractGeminiText(parsed, req.Role), nil
}

// extractGeminiText concatenates candidate parts, falling back to the
// finish-reason substitutes when no text came back.
func extractGeminiText(parsed geminiResponse, role models.UserRole) string {
	if len(parsed.Candidates) == 0 {
		return capabilityGreeting(role)
	}

	var sb strings.Builder
	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if text := sb.String(); strings.TrimSpace(text) != "" {
		return text
	}

	switch parsed.Candidates[0].FinishReason {
	case "SAFETY":
		return safetyRedirect(role)
	case "MAX_TOKENS":
		return truncationNotice(role)
	default:
		return capabilityGreeting(role)
	}
}

// ChatStream uses the SSE endpoint and delivers text chunks as they arrive.
func (c *GeminiClient) ChatStream(ctx context.Context, req ChatRequest) (*Stream, error) {
	payload, err := json.Marshal(buildGeminiRequest(req, c.TopP, c.TopK))
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse&key=%s", c.BaseURL, req.Config.Model, req.Config.APIKey)

	resp, err := c.doWithRetry(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	return RunStream(ctx, func(ctx context.Context, emit func(string) bool) error {
		defer resp.Body.Close()

		emitted := false
		finishReason := ""

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")
			if data == "" || data == "[DONE]" {
				break
			}

			var chunk geminiResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				// A single malformed chunk is not fatal.
				continue
			}
			for _, cand := range chunk.Candidates {
				if cand.FinishReason != "" {
					finishReason = cand.FinishReason
				}
				for _, part := range cand.Content.Parts {
					if part.Text == "" {
						continue
					}
					emitted = true
					if !emit(part.Text) {
						return nil
					}
				}
			}
		}
		if err := scanner.Err(); err != nil {
			if emitted {
				return nil
			}
			return &ProviderError{Kind: ErrNetwork, Provider: ProviderGemini, Body: err.Error()}
		}

		if !emitted {
			switch finishReason {
			case "SAFETY":
				emit(safetyRedirect(req.Role))
			case "MAX_TOKENS":
				emit(truncationNotice(req.Role))
			default:
				emit(capabilityGreeting(req.Role))
			}
		}
		return nil
	}), nil
}
