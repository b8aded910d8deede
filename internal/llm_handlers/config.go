package llmHandlers

import "fmt"

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}

// ProviderConfig is the operator-editable configuration for one provider.
// One instance exists per provider; an empty APIKey means the provider is
// never attempted.
type ProviderConfig struct {
	Provider     Provider `json:"provider"`
	APIKey       string   `json:"apiKey"`
	Model        string   `json:"model"`
	SystemPrompt string   `json:"systemPrompt"`
	Temperature  float64  `json:"temperature"`
	MaxTokens    int      `json:"maxTokens"`
}

const openAISystemPrompt = `Bạn là AI Assistant của TV Bank, ngân hàng hàng đầu Việt Nam. Hãy hỗ trợ khách hàng một cách chuyên nghiệp và thân thiện.

NGUYÊN TẮC HOẠT ĐỘNG:
1. Luôn xưng hô lịch sự, thân thiện
2. Cung cấp thông tin chính xác về sản phẩm/dịch vụ ngân hàng
3. Hướng dẫn cụ thể, từng bước
4. Khi không chắc chắn, đề xuất liên hệ nhân viên
5. Bảo vệ thông tin khách hàng

LĨNH VỰC CHUYÊN MÔN:
- Vay vốn nông nghiệp, tiểu thương, tiêu dùng có tài sản đảm bảo
- Gửi tiết kiệm có/không kỳ hạn, tích luỹ định kỳ
- Chuyển khoản, thanh toán nội địa
- Thẻ ATM, Mobile Banking cơ bản, Internet Banking
- Hỗ trợ các dịch vụ qua Quỹ Tín dụng Nhân dân
- Tư vấn tài chính cá nhân`

const geminiSystemPrompt = `Bạn là TV Bank AI Assistant, một trợ lý thông minh hỗ trợ khách hàng về các dịch vụ ngân hàng.

QUAN TRỌNG: Luôn trả lời đầy đủ, chi tiết, và dài. Cung cấp thông tin hướng dẫn cụ thể từng bước. Sử dụng emoji phù hợp để làm cho câu trả lời thân thiện hơn.

DỊCH VỤ TV BANK:
• Vay vốn: nông nghiệp, tiểu thương, tiêu dùng, kinh doanh với lãi suất từ 6.5%/năm
• Tiết kiệm: có kỳ hạn, không kỳ hạn, tích lũy định kỳ với lãi suất lên đến 6.8%/năm
• Thanh toán: chuyển khoản 24/7, Internet Banking, Mobile Banking, QR Pay
• Thẻ ATM: rút tiền miễn phí tại hơn 16.000 ATM toàn quốc

Luôn kết thúc bằng câu hỏi hoặc gợi ý để tiếp tục hỗ trợ khách hàng.`

// DefaultConfig returns the hard-coded defaults a provider starts with
// before the operator edits anything.
func DefaultConfig(p Provider) ProviderConfig {
	switch p {
	case ProviderOpenAI:
		return ProviderConfig{
			Provider:     ProviderOpenAI,
			Model:        "gpt-4",
			SystemPrompt: openAISystemPrompt,
			Temperature:  0.7,
			MaxTokens:    500,
		}
	case ProviderGemini:
		return ProviderConfig{
			Provider:     ProviderGemini,
			Model:        "gemini-1.5-flash",
			SystemPrompt: geminiSystemPrompt,
			Temperature:  0.8,
			MaxTokens:    2048,
		}
	default:
		return ProviderConfig{Provider: p}
	}
}
