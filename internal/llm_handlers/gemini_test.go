package llmHandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tvbank-assistant-backend/internal/models"
)

func newTestGeminiClient(baseURL string) (*GeminiClient, *[]time.Duration) {
	var slept []time.Duration
	c := NewGeminiClient()
	c.BaseURL = baseURL
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &slept
}

func geminiChatRequest() ChatRequest {
	config := DefaultConfig(ProviderGemini)
	config.APIKey = "test-key"
	return ChatRequest{
		Message: "Xin chào",
		Role:    models.RoleCustomer,
		History: []Message{
			{Role: models.RoleUser, Content: "Lãi suất tiết kiệm?"},
			{Role: models.RoleAssistant, Content: "Lên đến 6.8%/năm."},
		},
		Config: config,
	}
}

func TestGeminiChatSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Xin chào!"}]}}]}`))
	}))
	defer srv.Close()

	c, _ := newTestGeminiClient(srv.URL)
	text, err := c.Chat(context.Background(), geminiChatRequest())
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if text != "Xin chào!" {
		t.Errorf("expected verbatim reply, got %q", text)
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key not passed as query param, got %q", gotKey)
	}
	if gotBody.SystemInstruction == nil {
		t.Error("systemInstruction missing")
	}
	if len(gotBody.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(gotBody.Contents))
	}
	if gotBody.Contents[1].Role != "model" {
		t.Errorf("assistant turn not mapped to model role, got %q", gotBody.Contents[1].Role)
	}
	if gotBody.GenerationConfig.TopP != 0.9 || gotBody.GenerationConfig.TopK != 40 {
		t.Errorf("unexpected generation config %+v", gotBody.GenerationConfig)
	}
	if len(gotBody.SafetySettings) != 4 {
		t.Fatalf("expected 4 safety settings, got %d", len(gotBody.SafetySettings))
	}
	for _, s := range gotBody.SafetySettings {
		if s.Threshold != "BLOCK_NONE" {
			t.Errorf("category %s threshold %q", s.Category, s.Threshold)
		}
	}
}

func TestGeminiChatSafetyFinish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"finishReason":"SAFETY"}]}`))
	}))
	defer srv.Close()

	c, _ := newTestGeminiClient(srv.URL)
	text, err := c.Chat(context.Background(), geminiChatRequest())
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if !strings.Contains(text, "không thể hỗ trợ nội dung này") {
		t.Errorf("expected safety redirect, got %q", text)
	}
}

func TestGeminiChatMaxTokensFinish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"MAX_TOKENS"}]}`))
	}))
	defer srv.Close()

	c, _ := newTestGeminiClient(srv.URL)
	text, err := c.Chat(context.Background(), geminiChatRequest())
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if !strings.Contains(text, "bị cắt bớt") {
		t.Errorf("expected truncation notice, got %q", text)
	}
}

func TestGeminiChatRetriesThenFails(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"status":"UNAVAILABLE","message":"rate limited"}}`))
	}))
	defer srv.Close()

	c, slept := newTestGeminiClient(srv.URL)
	_, err := c.Chat(context.Background(), geminiChatRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsKind(err, ErrRateLimited) {
		t.Errorf("expected rate-limited kind, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	for i := 1; i < len(*slept); i++ {
		if (*slept)[i] < (*slept)[i-1] {
			t.Errorf("delays decreased: %v", *slept)
		}
	}
}

func TestGeminiChatQuotaExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"status":"RESOURCE_EXHAUSTED","message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c, slept := newTestGeminiClient(srv.URL)
	_, err := c.Chat(context.Background(), geminiChatRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	for _, d := range *slept {
		if d != 30*time.Second {
			t.Errorf("expected 30s cooldown, got %v", d)
		}
	}
}

func TestGeminiChatModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"model not found"}}`))
	}))
	defer srv.Close()

	c, _ := newTestGeminiClient(srv.URL)
	_, err := c.Chat(context.Background(), geminiChatRequest())
	if !IsKind(err, ErrModelNotFound) {
		t.Errorf("expected model-not-found kind, got %v", err)
	}
}

func TestGeminiChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":streamGenerateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("alt") != "sse" {
			t.Errorf("expected alt=sse, got %q", r.URL.Query().Get("alt"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Chào \"}]}}]}\n\n"))
		w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"bạn!\"}]}}]}\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer srv.Close()

	c, _ := newTestGeminiClient(srv.URL)
	stream, err := c.ChatStream(context.Background(), geminiChatRequest())
	if err != nil {
		t.Fatalf("ChatStream returned error: %v", err)
	}
	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if text != "Chào bạn!" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestGeminiChatStreamSafetyOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"candidates\":[{\"finishReason\":\"SAFETY\"}]}\n\n"))
	}))
	defer srv.Close()

	c, _ := newTestGeminiClient(srv.URL)
	stream, err := c.ChatStream(context.Background(), geminiChatRequest())
	if err != nil {
		t.Fatalf("ChatStream returned error: %v", err)
	}
	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if !strings.Contains(text, "không thể hỗ trợ nội dung này") {
		t.Errorf("expected safety redirect, got %q", text)
	}
}
