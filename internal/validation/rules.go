package validation

import (
	"regexp"
	"strings"

	"github.com/calltrack/dnc-registry/internal/apperr"
)

// PhoneRule is the single source of truth for phone format checking. The two
// historical entry points disagreed (strict 10-digit capture vs a looser
// telephony charset on the admin form), so the rule is selected once in
// config instead of being duplicated per endpoint.
type PhoneRule string

const (
	PhoneRuleStrict     PhoneRule = "strict"
	PhoneRulePermissive PhoneRule = "permissive"
)

var (
	strictPhoneRegex     = regexp.MustCompile(`^[0-9]{10}$`)
	permissivePhoneRegex = regexp.MustCompile(`^[0-9\-\+\(\)\s]+$`)
	usernameRegex        = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ParsePhoneRule maps a config string to a rule, defaulting to strict.
func ParsePhoneRule(s string) PhoneRule {
	if PhoneRule(strings.ToLower(s)) == PhoneRulePermissive {
		return PhoneRulePermissive
	}
	return PhoneRuleStrict
}

// Phone validates a phone value under the given rule.
func Phone(phone string, rule PhoneRule) *apperr.FieldError {
	switch rule {
	case PhoneRulePermissive:
		if phone == "" || !permissivePhoneRegex.MatchString(phone) {
			return &apperr.FieldError{Field: "phone", Message: "phone may only contain digits and telephony characters"}
		}
	default:
		if !strictPhoneRegex.MatchString(phone) {
			return &apperr.FieldError{Field: "phone", Message: "phone must be exactly 10 numeric digits"}
		}
	}
	return nil
}

// Username checks length and charset (letters, digits, '.', '_', '-').
func Username(username string) *apperr.FieldError {
	if len(username) < 3 {
		return &apperr.FieldError{Field: "username", Message: "username must be at least 3 characters"}
	}
	if len(username) > 50 {
		return &apperr.FieldError{Field: "username", Message: "username must be at most 50 characters"}
	}
	if !usernameRegex.MatchString(username) {
		return &apperr.FieldError{Field: "username", Message: "username may only contain letters, digits, dots, hyphens and underscores"}
	}
	return nil
}

// Password enforces the minimum length for new accounts.
func Password(password string) *apperr.FieldError {
	if len(password) < 6 {
		return &apperr.FieldError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if len(password) > 128 {
		return &apperr.FieldError{Field: "password", Message: "password too long"}
	}
	return nil
}

// ReasonName validates and normalizes a reason name. Names are stored
// upper-cased; uniqueness is checked against the normalized form.
func ReasonName(name string) (string, *apperr.FieldError) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &apperr.FieldError{Field: "name", Message: "name is required"}
	}
	if len(trimmed) > 50 {
		return "", &apperr.FieldError{Field: "name", Message: "name must be at most 50 characters"}
	}
	return strings.ToUpper(trimmed), nil
}
