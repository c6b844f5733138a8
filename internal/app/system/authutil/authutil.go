// Package authutil provides password hashing, password policy checks,
// and credential validation shared by the registration and sign-in
// handlers.
package authutil

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password policy limits. bcrypt itself truncates at 72 bytes, so the
// max guards against silently ignored tail characters.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordCommon   = errors.New("password is too common")
	ErrPhoneInvalid     = errors.New("phone number is not valid")
)

// commonPasswords is a short deny-list of passwords seen in every
// breach corpus. Checked case-insensitively.
var commonPasswords = map[string]bool{
	"12345678":  true,
	"123456789": true,
	"password":  true,
	"password1": true,
	"qwerty123": true,
	"iloveyou":  true,
	"letmein1":  true,
	"welcome1":  true,
	"aaaaaaaa":  true,
}

// ValidatePassword checks a candidate password against the policy.
func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(pw) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if commonPasswords[strings.ToLower(pw)] {
		return ErrPasswordCommon
	}
	return nil
}

// PasswordRules returns a human-readable description of the password
// policy, suitable for form hints.
func PasswordRules() string {
	return "Password must be at least 8 characters and not a commonly used password."
}

// HashPassword hashes a plain password with bcrypt at default cost.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the bcrypt hash.
// Invalid hashes simply fail the check.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidateEmail checks that an address looks deliverable: one @, a
// non-empty local part, and a dotted domain. Full RFC validation is
// deliberately out of scope; the confirmation email is the real test.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}

// ValidatePhone accepts digits with an optional leading +, between 8
// and 15 digits. Spaces and dashes are tolerated and ignored.
func ValidatePhone(phone string) error {
	s := strings.TrimSpace(phone)
	if s == "" {
		return nil // phone is optional
	}
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	s = strings.TrimPrefix(s, "+")
	if len(s) < 8 || len(s) > 15 {
		return ErrPhoneInvalid
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ErrPhoneInvalid
		}
	}
	return nil
}
