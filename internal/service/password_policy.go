package service

import (
	"unicode"

	"github.com/pianao-store/internal/config"
)

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 返回 i18n key
func (e passwordPolicyError) Key() string {
	return e.key
}

// Args 返回 i18n 参数
func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

type passwordClassRule struct {
	required bool
	key      string
	match    func(r rune) bool
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	rules := []passwordClassRule{
		{policy.RequireUpper, "error.password_require_upper", unicode.IsUpper},
		{policy.RequireLower, "error.password_require_lower", unicode.IsLower},
		{policy.RequireNumber, "error.password_require_number", unicode.IsDigit},
		{policy.RequireSpecial, "error.password_require_special", func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}},
	}
	for _, rule := range rules {
		if !rule.required {
			continue
		}
		if !containsRune(password, rule.match) {
			return passwordPolicyError{key: rule.key}
		}
	}
	return nil
}

func containsRune(s string, match func(r rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}
	return false
}
