// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"
)

//go:embed common_passwords.txt
var commonPasswordsFile []byte

var commonPasswords = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(commonPasswordsFile))
	for scanner.Scan() {
		if password := strings.ToLower(strings.TrimSpace(scanner.Text())); password != "" {
			set[password] = struct{}{}
		}
	}
	return set
})

// Codes of password rule violations. Handlers use them as translation keys.
const (
	CodeMinLength       = "min_length"
	CodeMaxLength       = "max_length"
	CodeNoUppercase     = "no_uppercase"
	CodeNoLowercase     = "no_lowercase"
	CodeNoDigit         = "no_digit"
	CodeNoSpecial       = "no_special"
	CodeEntirelyNumeric = "entirely_numeric"
	CodeCommonPassword  = "common_password"
	CodeTooSimilar      = "too_similar"
)

// PasswordValidator validates passwords against various criteria
type PasswordValidator struct {
	MinLength            int
	MaxBytes             int // bcrypt rejects input longer than 72 bytes
	RequireUppercase     bool
	RequireLowercase     bool
	RequireDigit         bool
	RequireSpecial       bool
	CheckCommonPasswords bool
	CheckUserSimilarity  bool
}

// DefaultPasswordValidator favours long passphrases over character classes.
func DefaultPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		MinLength:            12,
		MaxBytes:             72,
		CheckCommonPasswords: true,
		CheckUserSimilarity:  true,
	}
}

// ValidationError represents a single password validation error
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// PasswordValidationError wraps multiple validation errors
type PasswordValidationError struct {
	Errors []ValidationError
}

func (e *PasswordValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "password validation failed"
	}
	return e.Errors[0].Message
}

// Messages returns all error messages
func (e *PasswordValidationError) Messages() []string {
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = err.Message
	}
	return messages
}

// ValidationResult holds all validation errors
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate checks a password against all configured rules. userAttributes
// (name, email) must not be contained in or close to the password.
func (v *PasswordValidator) Validate(password string, userAttributes ...string) ValidationResult {
	var errs []ValidationError
	fail := func(code, message string) {
		errs = append(errs, ValidationError{Code: code, Message: message})
	}

	if len(password) < v.MinLength {
		fail(CodeMinLength, fmt.Sprintf("Password must be at least %d characters long.", v.MinLength))
	}

	if v.MaxBytes > 0 && len(password) > v.MaxBytes {
		fail(CodeMaxLength, fmt.Sprintf("Password must be at most %d bytes long.", v.MaxBytes))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if v.RequireUppercase && !hasUpper {
		fail(CodeNoUppercase, "Password must contain at least one uppercase letter.")
	}
	if v.RequireLowercase && !hasLower {
		fail(CodeNoLowercase, "Password must contain at least one lowercase letter.")
	}
	if v.RequireDigit && !hasDigit {
		fail(CodeNoDigit, "Password must contain at least one digit.")
	}
	if v.RequireSpecial && !hasSpecial {
		fail(CodeNoSpecial, "Password must contain at least one special character.")
	}

	if isEntirelyNumeric(password) {
		fail(CodeEntirelyNumeric, "Password cannot be entirely numeric.")
	}

	if v.CheckCommonPasswords && isCommonPassword(password) {
		fail(CodeCommonPassword, "This password is too common. Please choose a more secure password.")
	}

	if v.CheckUserSimilarity && isSimilarToUserAttributes(password, userAttributes) {
		fail(CodeTooSimilar, "Password is too similar to your personal information.")
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func isEntirelyNumeric(password string) bool {
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(password) > 0
}

func isCommonPassword(password string) bool {
	_, exists := commonPasswords()[strings.ToLower(password)]
	return exists
}

func isSimilarToUserAttributes(password string, attributes []string) bool {
	passwordLower := strings.ToLower(password)

	for _, attr := range attributes {
		if attr == "" {
			continue
		}
		attrLower := strings.ToLower(attr)

		if strings.Contains(passwordLower, attrLower) || strings.Contains(attrLower, passwordLower) {
			return true
		}

		// For emails the local part is what people tend to reuse.
		if local, _, ok := strings.Cut(attrLower, "@"); ok && len(local) >= 3 && strings.Contains(passwordLower, local) {
			return true
		}

		if similarity(passwordLower, attrLower) > 0.7 {
			return true
		}
	}

	return false
}

// similarity is the longest common subsequence relative to the longer string.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	return float64(longestCommonSubsequence(a, b)) / float64(max(len(a), len(b)))
}

func longestCommonSubsequence(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
