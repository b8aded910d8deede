package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tvbank-assistant-backend/internal/assistant"
	llmHandlers "tvbank-assistant-backend/internal/llm_handlers"
	"tvbank-assistant-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func newProviderApp() (*fiber.App, *store.MemoryCredentialStore) {
	credStore := store.NewMemoryCredentialStore()
	h := NewProviderHandler(credStore, assistant.NewOrchestrator(credStore))

	app := fiber.New()
	app.Get("/providers/:provider", h.GetConfig)
	app.Put("/providers/:provider", h.PutConfig)
	app.Post("/providers/:provider/test", h.TestConnection)
	return app, credStore
}

func TestGetConfigDefaults(t *testing.T) {
	app, _ := newProviderApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/openai", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body struct {
		Config     llmHandlers.ProviderConfig `json:"config"`
		HasKey     bool                       `json:"has_key"`
		Configured bool                       `json:"configured"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Configured || body.HasKey {
		t.Errorf("fresh provider should be unconfigured: %+v", body)
	}
	if body.Config.Model != "gpt-4" {
		t.Errorf("expected default model, got %q", body.Config.Model)
	}
}

func TestGetConfigUnknownProvider(t *testing.T) {
	app, _ := newProviderApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/claude", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPutConfigRejectsEmptyKey(t *testing.T) {
	app, credStore := newProviderApp()

	req := httptest.NewRequest(http.MethodPut, "/providers/gemini",
		strings.NewReader(`{"apiKey":"  ","model":"gemini-1.5-flash"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	if _, ok, _ := credStore.Get(llmHandlers.ProviderGemini); ok {
		t.Error("empty key must not be persisted")
	}
}

func TestPutConfigSavesAndMasksKey(t *testing.T) {
	app, credStore := newProviderApp()

	req := httptest.NewRequest(http.MethodPut, "/providers/gemini",
		strings.NewReader(`{"apiKey":"AIzaSyTest1234","temperature":0.5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	saved, ok, _ := credStore.Get(llmHandlers.ProviderGemini)
	if !ok {
		t.Fatal("config not persisted")
	}
	if saved.APIKey != "AIzaSyTest1234" {
		t.Errorf("stored key %q", saved.APIKey)
	}
	if saved.Model != "gemini-1.5-flash" || saved.MaxTokens != 2048 {
		t.Errorf("defaults not filled in: %+v", saved)
	}
	if saved.Temperature != 0.5 {
		t.Errorf("submitted temperature lost: %v", saved.Temperature)
	}

	// Re-read over HTTP: the key must come back masked.
	getResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/providers/gemini", nil))
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Config llmHandlers.ProviderConfig `json:"config"`
		HasKey bool                       `json:"has_key"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.HasKey {
		t.Error("has_key should be true")
	}
	if body.Config.APIKey == "AIzaSyTest1234" {
		t.Error("key echoed back in full")
	}
	if !strings.HasSuffix(body.Config.APIKey, "1234") {
		t.Errorf("masked key should keep the tail, got %q", body.Config.APIKey)
	}
}

// Temperature 0 is a deliberate deterministic setting, not "unset".
func TestPutConfigKeepsZeroTemperature(t *testing.T) {
	app, credStore := newProviderApp()

	req := httptest.NewRequest(http.MethodPut, "/providers/openai",
		strings.NewReader(`{"apiKey":"sk-zero","temperature":0}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	saved, ok, _ := credStore.Get(llmHandlers.ProviderOpenAI)
	if !ok {
		t.Fatal("config not persisted")
	}
	if saved.Temperature != 0 {
		t.Errorf("explicit zero temperature replaced with %v", saved.Temperature)
	}

	// Omitting the field still fills the default.
	req = httptest.NewRequest(http.MethodPut, "/providers/openai",
		strings.NewReader(`{"apiKey":"sk-zero"}`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	saved, _, _ = credStore.Get(llmHandlers.ProviderOpenAI)
	if saved.Temperature != 0.7 {
		t.Errorf("omitted temperature should default to 0.7, got %v", saved.Temperature)
	}
}

func TestTestConnectionWithoutAnyKey(t *testing.T) {
	app, _ := newProviderApp()

	req := httptest.NewRequest(http.MethodPost, "/providers/openai/test", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if !strings.Contains(body.Error, "API Key") {
		t.Errorf("unexpected error text %q", body.Error)
	}
}
