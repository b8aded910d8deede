package assistant

import (
	"context"
	"errors"
	"testing"

	llmHandlers "tvbank-assistant-backend/internal/llm_handlers"
	"tvbank-assistant-backend/internal/models"
	"tvbank-assistant-backend/internal/responder"
	"tvbank-assistant-backend/internal/store"
)

type stubClient struct {
	calls int
	reply string
	err   error
}

func (s *stubClient) Chat(ctx context.Context, req llmHandlers.ChatRequest) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) ChatStream(ctx context.Context, req llmHandlers.ChatRequest) (*llmHandlers.Stream, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	reply := s.reply
	return llmHandlers.RunStream(ctx, func(ctx context.Context, emit func(string) bool) error {
		emit(reply)
		return nil
	}), nil
}

func newTestOrchestrator(client llmHandlers.Client) (*Orchestrator, *store.MemoryCredentialStore) {
	credStore := store.NewMemoryCredentialStore()
	o := NewOrchestrator(credStore)
	o.streamDelay = 0
	if client != nil {
		o.clients[llmHandlers.ProviderGemini] = client
	}
	return o, credStore
}

func configuredGemini(credStore *store.MemoryCredentialStore, apiKey string) {
	config := llmHandlers.DefaultConfig(llmHandlers.ProviderGemini)
	config.APIKey = apiKey
	credStore.Put(llmHandlers.ProviderGemini, config)
}

func TestRespondWithoutKeySkipsProvider(t *testing.T) {
	stub := &stubClient{reply: "provider reply"}
	o, _ := newTestOrchestrator(stub)

	got := o.Respond(context.Background(), "Tôi muốn vay vốn", models.RoleCustomer, llmHandlers.ProviderGemini, nil)

	if stub.calls != 0 {
		t.Errorf("provider was called %d times without a key", stub.calls)
	}
	want := responder.Fallback("Tôi muốn vay vốn", models.RoleCustomer)
	if got != want {
		t.Error("expected canned fallback text")
	}
}

func TestRespondEmptyKeySkipsProvider(t *testing.T) {
	stub := &stubClient{reply: "provider reply"}
	o, credStore := newTestOrchestrator(stub)
	configuredGemini(credStore, "   ")

	o.Respond(context.Background(), "xin chào", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	if stub.calls != 0 {
		t.Errorf("blank key should disable the provider, got %d calls", stub.calls)
	}
}

func TestRespondSuccessVerbatim(t *testing.T) {
	stub := &stubClient{reply: "Chào bạn, đây là câu trả lời từ mô hình."}
	o, credStore := newTestOrchestrator(stub)
	configuredGemini(credStore, "key")

	got := o.Respond(context.Background(), "xin chào", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	if got != stub.reply {
		t.Errorf("reply altered: %q", got)
	}
	if stub.calls != 1 {
		t.Errorf("expected 1 call, got %d", stub.calls)
	}
}

func TestRespondAbsorbsProviderError(t *testing.T) {
	stub := &stubClient{err: errors.New("upstream exploded")}
	o, credStore := newTestOrchestrator(stub)
	configuredGemini(credStore, "key")

	got := o.Respond(context.Background(), "Tôi muốn vay vốn", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	want := responder.Fallback("Tôi muốn vay vốn", models.RoleCustomer)
	if got != want {
		t.Error("provider error should fall back to canned text")
	}
}

func TestRespondAbsorbsEmptyReply(t *testing.T) {
	stub := &stubClient{reply: "   "}
	o, credStore := newTestOrchestrator(stub)
	configuredGemini(credStore, "key")

	got := o.Respond(context.Background(), "xin chào", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	if got != responder.Fallback("xin chào", models.RoleCustomer) {
		t.Error("blank provider reply should fall back to canned text")
	}
}

func TestRespondStreamFallbackReassembles(t *testing.T) {
	o, _ := newTestOrchestrator(nil)

	stream := o.RespondStream(context.Background(), "Tôi muốn vay vốn", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	want := responder.Fallback("Tôi muốn vay vốn", models.RoleCustomer)
	if text != want {
		t.Error("fallback stream should reassemble to the canned text")
	}
}

func TestRespondStreamPassesProviderChunks(t *testing.T) {
	stub := &stubClient{reply: "từ mô hình"}
	o, credStore := newTestOrchestrator(stub)
	configuredGemini(credStore, "key")

	stream := o.RespondStream(context.Background(), "xin chào", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if text != "từ mô hình" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestRespondStreamErrorBeforeFirstChunk(t *testing.T) {
	stub := &stubClient{err: errors.New("connection refused")}
	o, credStore := newTestOrchestrator(stub)
	configuredGemini(credStore, "key")

	stream := o.RespondStream(context.Background(), "xin chào", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if text != responder.Fallback("xin chào", models.RoleCustomer) {
		t.Error("failed stream should be replaced by the canned fallback")
	}
}

type midStreamClient struct {
	emitFirst bool
}

func (m *midStreamClient) Chat(ctx context.Context, req llmHandlers.ChatRequest) (string, error) {
	return "", errors.New("not implemented")
}

func (m *midStreamClient) ChatStream(ctx context.Context, req llmHandlers.ChatRequest) (*llmHandlers.Stream, error) {
	emitFirst := m.emitFirst
	return llmHandlers.RunStream(ctx, func(ctx context.Context, emit func(string) bool) error {
		if emitFirst {
			emit("một phần ")
		}
		return errors.New("stream died")
	}), nil
}

// A stream that dies before its first chunk gets replaced by the fallback;
// one that dies after emitting keeps the partial reply.
func TestRespondStreamMidStreamFailure(t *testing.T) {
	o, credStore := newTestOrchestrator(&midStreamClient{emitFirst: false})
	configuredGemini(credStore, "key")

	stream := o.RespondStream(context.Background(), "xin chào", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if text != responder.Fallback("xin chào", models.RoleCustomer) {
		t.Error("empty dead stream should be replaced by the canned fallback")
	}

	o2, credStore2 := newTestOrchestrator(&midStreamClient{emitFirst: true})
	configuredGemini(credStore2, "key")

	stream = o2.RespondStream(context.Background(), "xin chào", models.RoleCustomer, llmHandlers.ProviderGemini, nil)
	text, err = stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if text != "một phần " {
		t.Errorf("partial reply should be kept, got %q", text)
	}
}

func TestTestConnectionSurfacesError(t *testing.T) {
	stub := &stubClient{err: &llmHandlers.ProviderError{Kind: llmHandlers.ErrUnauthorized, Provider: llmHandlers.ProviderGemini, Status: 401}}
	o, _ := newTestOrchestrator(stub)

	config := llmHandlers.DefaultConfig(llmHandlers.ProviderGemini)
	config.APIKey = "bad-key"
	err := o.TestConnection(context.Background(), llmHandlers.ProviderGemini, config)
	if err == nil {
		t.Fatal("expected error from test connection")
	}
	if !llmHandlers.IsKind(err, llmHandlers.ErrUnauthorized) {
		t.Errorf("expected unauthorized kind, got %v", err)
	}
}

func TestTestConnectionProbeIsMinimal(t *testing.T) {
	var gotReq llmHandlers.ChatRequest
	probe := &probeClient{onChat: func(req llmHandlers.ChatRequest) { gotReq = req }}
	o, _ := newTestOrchestrator(probe)

	config := llmHandlers.DefaultConfig(llmHandlers.ProviderGemini)
	config.APIKey = "key"
	if err := o.TestConnection(context.Background(), llmHandlers.ProviderGemini, config); err != nil {
		t.Fatalf("TestConnection returned error: %v", err)
	}
	if gotReq.Message != "Test connection" {
		t.Errorf("unexpected probe message %q", gotReq.Message)
	}
	if gotReq.Config.MaxTokens != 10 {
		t.Errorf("probe should cap max tokens at 10, got %d", gotReq.Config.MaxTokens)
	}
}

type probeClient struct {
	onChat func(llmHandlers.ChatRequest)
}

func (p *probeClient) Chat(ctx context.Context, req llmHandlers.ChatRequest) (string, error) {
	p.onChat(req)
	return "ok", nil
}

func (p *probeClient) ChatStream(ctx context.Context, req llmHandlers.ChatRequest) (*llmHandlers.Stream, error) {
	return nil, errors.New("not implemented")
}
