package responder

import (
	"strings"
	"testing"

	"tvbank-assistant-backend/internal/models"
)

func TestFallbackTopics(t *testing.T) {
	tests := []struct {
		name    string
		message string
		role    models.UserRole
		want    string
	}{
		{"loan", "Tôi muốn vay vốn", models.RoleCustomer, loanText},
		{"loan english keyword", "cho tôi biết về tín dụng", models.RoleCustomer, loanText},
		{"savings", "Lãi suất tiết kiệm hiện tại?", models.RoleCustomer, savingsText},
		{"transfers", "Hướng dẫn chuyển khoản qua Internet Banking", models.RoleCustomer, transfersText},
		{"cards", "Thẻ ATM rút tiền ở đâu?", models.RoleCustomer, cardsText},
		{"insurance", "Tôi quan tâm bảo hiểm", models.RoleCustomer, insuranceText},
		{"greeting", "Xin chào", models.RoleCustomer, greetingText},
		{"greeting hello", "hello", models.RoleCustomer, greetingText},
		{"default", "thời tiết hôm nay thế nào", models.RoleCustomer, defaultText},
		{"credit risk", "Rủi ro tín dụng là gì?", models.RoleCustomer, creditRiskText},
		{"general risk", "Các loại rủi ro ngân hàng", models.RoleCustomer, generalRiskText},
		{"manager risk", "Báo cáo rủi ro chi nhánh", models.RoleBranchManager, managerRiskText},
		{"officer advice", "Lưu ý khi thẩm định hồ sơ vay", models.RoleConsultant, officerAdviceText},
		{"customer advice", "Tư vấn giúp tôi", models.RoleCustomer, adviceText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.message, tt.role)
			if got != tt.want {
				t.Errorf("Fallback(%q, %s) picked the wrong block", tt.message, tt.role)
			}
		})
	}
}

// Risk outranks loan even when both keyword sets match.
func TestFallbackPriorityOrder(t *testing.T) {
	got := Fallback("rủi ro khi vay vốn", models.RoleCustomer)
	if got != generalRiskText {
		t.Error("risk should outrank loan")
	}

	// advice outranks greeting
	got = Fallback("xin chào, tư vấn giúp tôi", models.RoleCustomer)
	if got != adviceText {
		t.Error("advice should outrank greeting")
	}
}

func TestFallbackDeterministic(t *testing.T) {
	first := Fallback("Tôi muốn vay vốn", models.RoleCustomer)
	for i := 0; i < 5; i++ {
		if Fallback("Tôi muốn vay vốn", models.RoleCustomer) != first {
			t.Fatal("same input produced different output")
		}
	}
}

// "hi" greets only as a standalone word; inside Vietnamese syllables it must
// not shadow later rules.
func TestGreetingHiIsWordBounded(t *testing.T) {
	if Fallback("hi", models.RoleCustomer) != greetingText {
		t.Error("bare hi should greet")
	}
	if Fallback("hi, tôi cần giúp đỡ", models.RoleCustomer) != greetingText {
		t.Error("hi followed by punctuation should greet")
	}
	if Fallback("Lãi suất tiết kiệm hiện tại?", models.RoleCustomer) == greetingText {
		t.Error(`"hiện" must not trigger the greeting rule`)
	}
	if Fallback("Tôi quan tâm bảo hiểm", models.RoleCustomer) != insuranceText {
		t.Error(`"hiểm" must not shadow the insurance rule`)
	}
	if Fallback("chi phí mở thẻ", models.RoleCustomer) != cardsText {
		t.Error(`"chi" must not trigger the greeting rule`)
	}
}

func TestFallbackCaseInsensitive(t *testing.T) {
	if Fallback("TÔI MUỐN VAY VỐN", models.RoleCustomer) != loanText {
		t.Error("uppercase input should still match the loan topic")
	}
}

func TestLoanTextEndsWithContinuation(t *testing.T) {
	if !strings.HasSuffix(loanText, "Tôi sẽ tư vấn chi tiết! 🤝") {
		t.Errorf("loan block lost its closing line: %q", loanText[len(loanText)-50:])
	}
}

func TestConsultantAdviceOutranksEverything(t *testing.T) {
	// "tư vấn" also matches the advice rule, but the consultant variant wins.
	got := Fallback("tư vấn khoản vay", models.RoleConsultant)
	if got != officerAdviceText {
		t.Error("consultant should get the officer advice block")
	}
	// Same message as customer hits the generic advice rule.
	got = Fallback("tư vấn khoản vay", models.RoleCustomer)
	if got != adviceText {
		t.Error("customer should get the generic advice block")
	}
}
