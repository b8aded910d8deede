package auth

import "strings"

// Login identifiers depend on the audience: customers sign in with their
// phone number, consultants with their employee code (CVxxxx) and branch
// managers with their manager code (QLxxxx). Everything is mapped onto the
// canonical email identifier before the account lookup, so the users table
// only ever keys on email.

const (
	customerDomain = "customer.tvbank.vn"
	staffDomain    = "staff.tvbank.vn"
	managerDomain  = "manager.tvbank.vn"
)

// CanonicalEmail maps a role-specific login identifier to the canonical
// email form. An identifier that already looks like an email passes through
// lowercased.
func CanonicalEmail(identifier string) string {
	id := strings.TrimSpace(identifier)
	if strings.Contains(id, "@") {
		return strings.ToLower(id)
	}

	lower := strings.ToLower(id)
	switch {
	case strings.HasPrefix(lower, "cv"):
		return lower + "@" + staffDomain
	case strings.HasPrefix(lower, "ql"):
		return lower + "@" + managerDomain
	}

	if phone := normalizePhone(id); phone != "" {
		return phone + "@" + customerDomain
	}
	return lower
}

// normalizePhone strips separators and rewrites the +84 country prefix to
// the domestic 0 prefix. Returns "" when the input is not a phone number.
func normalizePhone(s string) string {
	var digits strings.Builder
	rest := s
	if strings.HasPrefix(rest, "+84") {
		digits.WriteString("0")
		rest = rest[3:]
	}
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '.' || r == '-':
			// separator, skip
		default:
			return ""
		}
	}
	phone := digits.String()
	if len(phone) < 9 || len(phone) > 11 {
		return ""
	}
	return phone
}
