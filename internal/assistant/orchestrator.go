package assistant

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	llmHandlers "tvbank-assistant-backend/internal/llm_handlers"
	"tvbank-assistant-backend/internal/models"
	"tvbank-assistant-backend/internal/responder"
	"tvbank-assistant-backend/internal/store"
)

const simulatedChunkDelay = 50 * time.Millisecond

// Orchestrator routes a chat turn to the configured provider and falls back
// to the canned responder whenever the provider cannot answer. Respond and
// RespondStream never fail: the caller always gets usable text.
type Orchestrator struct {
	store   store.CredentialStore
	clients map[llmHandlers.Provider]llmHandlers.Client

	// chunk pacing for simulated streams, shortened in tests
	streamDelay time.Duration
}

func NewOrchestrator(credStore store.CredentialStore) *Orchestrator {
	return &Orchestrator{
		store: credStore,
		clients: map[llmHandlers.Provider]llmHandlers.Client{
			llmHandlers.ProviderOpenAI: llmHandlers.NewOpenAIClient(),
			llmHandlers.ProviderGemini: llmHandlers.NewGeminiClient(),
		},
		streamDelay: simulatedChunkDelay,
	}
}

// activeConfig loads the stored config for the provider, if it is usable.
// A missing row, a store error or an empty API key all mean "no provider":
// the turn is served from canned text without touching the network.
func (o *Orchestrator) activeConfig(provider llmHandlers.Provider) (llmHandlers.ProviderConfig, bool) {
	config, ok, err := o.store.Get(provider)
	if err != nil {
		log.Printf("[assistant] credential lookup failed for %s: %v", provider, err)
		return llmHandlers.ProviderConfig{}, false
	}
	if !ok || strings.TrimSpace(config.APIKey) == "" {
		return llmHandlers.ProviderConfig{}, false
	}
	if config.Model == "" {
		defaults := llmHandlers.DefaultConfig(provider)
		config.Model = defaults.Model
	}
	return config, true
}

// Respond produces the assistant's reply for one turn. Provider errors are
// logged and absorbed; the reply is then the canned fallback for the message.
func (o *Orchestrator) Respond(ctx context.Context, message string, role models.UserRole, provider llmHandlers.Provider, history []llmHandlers.Message) string {
	config, ok := o.activeConfig(provider)
	if !ok {
		return responder.Fallback(message, role)
	}

	client, ok := o.clients[provider]
	if !ok {
		return responder.Fallback(message, role)
	}

	text, err := client.Chat(ctx, llmHandlers.ChatRequest{
		Message: message,
		Role:    role,
		History: history,
		Config:  config,
	})
	if err != nil {
		log.Printf("[assistant] %s chat failed: %v", provider, err)
		return responder.Fallback(message, role)
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("[assistant] %s returned empty reply", provider)
		return responder.Fallback(message, role)
	}
	return text
}

// RespondStream is the streaming variant of Respond. When the provider path
// is unavailable the canned fallback is replayed as a simulated stream, so
// consumers see one contract either way.
func (o *Orchestrator) RespondStream(ctx context.Context, message string, role models.UserRole, provider llmHandlers.Provider, history []llmHandlers.Message) *llmHandlers.Stream {
	config, ok := o.activeConfig(provider)
	if !ok {
		return o.fallbackStream(ctx, message, role)
	}

	client, ok := o.clients[provider]
	if !ok {
		return o.fallbackStream(ctx, message, role)
	}

	stream, err := client.ChatStream(ctx, llmHandlers.ChatRequest{
		Message: message,
		Role:    role,
		History: history,
		Config:  config,
	})
	if err != nil {
		log.Printf("[assistant] %s stream failed: %v", provider, err)
		return o.fallbackStream(ctx, message, role)
	}

	// Absorb mid-stream failures too. If the provider stream dies before
	// emitting anything the canned fallback is substituted; a partial reply
	// is kept as-is.
	delay := o.streamDelay
	return llmHandlers.RunStream(ctx, func(ctx context.Context, emit func(string) bool) error {
		defer stream.Close()
		emitted := false
		for {
			chunk, err := stream.Recv()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				log.Printf("[assistant] %s stream failed: %v", provider, err)
				if !emitted {
					fallback := llmHandlers.SimulateStream(ctx, responder.Fallback(message, role), delay)
					for {
						word, err := fallback.Recv()
						if err != nil {
							return nil
						}
						if !emit(word) {
							return nil
						}
					}
				}
				return nil
			}
			emitted = true
			if !emit(chunk) {
				return nil
			}
		}
	})
}

func (o *Orchestrator) fallbackStream(ctx context.Context, message string, role models.UserRole) *llmHandlers.Stream {
	return llmHandlers.SimulateStream(ctx, responder.Fallback(message, role), o.streamDelay)
}

// TestConnection sends a minimal probe with the candidate config. This is
// the one path where provider errors reach the caller instead of being
// swallowed into a fallback.
func (o *Orchestrator) TestConnection(ctx context.Context, provider llmHandlers.Provider, config llmHandlers.ProviderConfig) error {
	client, ok := o.clients[provider]
	if !ok {
		return fmt.Errorf("unknown provider %q", provider)
	}
	probe := config
	probe.MaxTokens = 10
	_, err := client.Chat(ctx, llmHandlers.ChatRequest{
		Message: "Test connection",
		Role:    models.RoleCustomer,
		Config:  probe,
	})
	return err
}
