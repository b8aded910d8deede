package llmHandlers

import (
	"context"
	"strings"
	"time"

	"tvbank-assistant-backend/internal/models"
)

// Message is a single turn of the conversation history sent to a provider.
type Message struct {
	Role    models.Role `json:"role"`
	Content string      `json:"content"`
}

// ChatRequest carries everything an adapter needs for one provider call.
// The configuration is read at call time, not cached, so a config edit
// mid-flight never affects an in-flight request.
type ChatRequest struct {
	Message string
	Role    models.UserRole
	History []Message
	Config  ProviderConfig
}

// Client is the uniform interface over the provider adapters.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
	ChatStream(ctx context.Context, req ChatRequest) (*Stream, error)
}

// frameUserMessage prefixes the user's text with the audience label so the
// model knows who it is talking to.
func frameUserMessage(role models.UserRole, message string) string {
	return "[" + role.Label() + "] " + message
}

// retryDelay returns the cooperative wait before retry attempt n (1-based).
// Plain rate limiting backs off linearly from the base delay; quota
// exhaustion uses a single longer cooldown.
func retryDelay(base, quotaCooldown time.Duration, attempt int, quota bool) time.Duration {
	if quota {
		return quotaCooldown
	}
	return base * time.Duration(attempt)
}

func isQuotaExhausted(body string) bool {
	return strings.Contains(body, "RESOURCE_EXHAUSTED") || strings.Contains(strings.ToLower(body), "quota")
}

// The three non-fatal reply substitutes. These are successful-path branches:
// the provider answered, just not with usable text.

func safetyRedirect(role models.UserRole) string {
	if role == models.RoleConsultant || role == models.RoleBranchManager {
		return "Nội dung này nằm ngoài phạm vi hỗ trợ của trợ lý. Vui lòng tham khảo quy trình nội bộ hoặc liên hệ bộ phận tuân thủ của TV Bank."
	}
	return "Xin lỗi, tôi không thể hỗ trợ nội dung này. Bạn có thể hỏi tôi về các dịch vụ ngân hàng của TV Bank nhé! 😊"
}

func truncationNotice(role models.UserRole) string {
	if role == models.RoleConsultant || role == models.RoleBranchManager {
		return "Câu trả lời vượt quá giới hạn độ dài cấu hình. Vui lòng tăng max tokens hoặc chia nhỏ câu hỏi."
	}
	return "Câu trả lời hơi dài nên bị cắt bớt. Bạn có thể hỏi lại ngắn gọn hơn để tôi hỗ trợ tốt nhất nhé! 😊"
}

func capabilityGreeting(role models.UserRole) string {
	return "Chào bạn! 👋 Tôi là AI Assistant của TV Bank. Tôi có thể hỗ trợ bạn về vay vốn, tiết kiệm, chuyển khoản, thẻ ATM và nhiều dịch vụ khác. Bạn cần tôi giúp gì hôm nay?"
}
