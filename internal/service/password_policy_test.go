package service

import (
	"errors"
	"testing"

	"github.com/pianao-store/internal/config"
)

func TestValidatePasswordMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 6}
	err := validatePassword(policy, "12345")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}
	var policyErr passwordPolicyError
	if !errors.As(err, &policyErr) || policyErr.Key() != "error.password_min_length" {
		t.Fatalf("unexpected error key: %v", err)
	}
	if err := validatePassword(policy, "123456"); err != nil {
		t.Fatalf("six characters should pass: %v", err)
	}
	// 多字节字符按 rune 计数
	if err := validatePassword(policy, "ピアノ教室です"); err != nil {
		t.Fatalf("rune length should be used: %v", err)
	}
}

func TestValidatePasswordCharacterClasses(t *testing.T) {
	policy := config.PasswordPolicyConfig{RequireUpper: true, RequireNumber: true}
	if err := validatePassword(policy, "password1"); err == nil {
		t.Fatalf("missing upper should fail")
	}
	if err := validatePassword(policy, "Password"); err == nil {
		t.Fatalf("missing number should fail")
	}
	if err := validatePassword(policy, "Password1"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
}
