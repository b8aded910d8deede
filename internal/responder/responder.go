// Package responder is the terminal fallback of the response pipeline: a
// deterministic, keyword-matched lookup of pre-authored answer blocks. It
// never touches the network and never fails.
package responder

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tvbank-assistant-backend/internal/models"
)

type topic string

const (
	topicRisk      topic = "risk"
	topicAdvice    topic = "advice"
	topicGreeting  topic = "greeting"
	topicLoan      topic = "loan"
	topicSavings   topic = "savings"
	topicTransfers topic = "transfers"
	topicCards     topic = "cards"
	topicInsurance topic = "insurance"
)

type rule struct {
	topic    topic
	keywords []string
	// words match only on word boundaries. "hi" must not fire inside
	// Vietnamese syllables like "hiện" or "hiểm".
	words []string
}

// Matching is substring-based and ordering-dependent; the first rule whose
// keyword set hits wins.
var rules = []rule{
	{topic: topicRisk, keywords: []string{"rủi ro", "risk"}},
	{topic: topicAdvice, keywords: []string{"tư vấn", "tu van"}},
	{topic: topicGreeting, keywords: []string{"xin chào", "hello"}, words: []string{"hi"}},
	{topic: topicLoan, keywords: []string{"vay", "vốn", "tín dụng"}},
	{topic: topicSavings, keywords: []string{"tiết kiệm", "gửi", "lãi suất"}},
	{topic: topicTransfers, keywords: []string{"chuyển khoản", "internet banking", "mobile banking"}},
	{topic: topicCards, keywords: []string{"thẻ", "atm"}},
	{topic: topicInsurance, keywords: []string{"bảo hiểm", "insurance"}},
}

func (r rule) match(s string) bool {
	if containsAny(s, r.keywords) {
		return true
	}
	for _, w := range r.words {
		if containsWord(s, w) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// containsWord reports whether w occurs in s with no letter on either side.
func containsWord(s, w string) bool {
	for i := 0; i <= len(s)-len(w); {
		j := strings.Index(s[i:], w)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(w)

		beforeOK := start == 0
		if !beforeOK {
			r, _ := utf8.DecodeLastRuneInString(s[:start])
			beforeOK = !unicode.IsLetter(r)
		}
		afterOK := end == len(s)
		if !afterOK {
			r, _ := utf8.DecodeRuneInString(s[end:])
			afterOK = !unicode.IsLetter(r)
		}
		if beforeOK && afterOK {
			return true
		}
		i = start + 1
	}
	return false
}

// Fallback returns the canned answer for the message's detected topic,
// parameterized only by the audience role. Same input, same bytes.
func Fallback(message string, role models.UserRole) string {
	lower := strings.ToLower(message)

	// Consultant-specific advice guidance outranks topic matching, as the
	// original demo script did for its credit-officer persona.
	if role == models.RoleConsultant && containsAny(lower, []string{"tư vấn", "lưu ý"}) {
		return officerAdviceText
	}

	for _, r := range rules {
		if !r.match(lower) {
			continue
		}
		switch r.topic {
		case topicRisk:
			if role == models.RoleBranchManager {
				return managerRiskText
			}
			if containsAny(lower, []string{"tín dụng", "credit"}) {
				return creditRiskText
			}
			return generalRiskText
		case topicAdvice:
			return adviceText
		case topicGreeting:
			return greetingText
		case topicLoan:
			return loanText
		case topicSavings:
			return savingsText
		case topicTransfers:
			return transfersText
		case topicCards:
			return cardsText
		case topicInsurance:
			return insuranceText
		}
	}
	return defaultText
}
