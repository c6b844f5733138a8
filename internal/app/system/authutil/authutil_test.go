package authutil

import (
	"strings"
	"testing"
)

// Test password validation

func TestValidatePassword_Valid(t *testing.T) {
	validPasswords := []string{
		"secure123",
		"MyP@ssw0rd",
		"abcdefg1", // 8 chars, exactly minimum
	}

	for _, pw := range validPasswords {
		if err := ValidatePassword(pw); err != nil {
			t.Errorf("expected %q to be valid, got error: %v", pw, err)
		}
	}
}

func TestValidatePassword_TooShort(t *testing.T) {
	shortPasswords := []string{
		"",
		"a",
		"abc",
		"abcdefg", // 7 chars, below minimum of 8
	}

	for _, pw := range shortPasswords {
		err := ValidatePassword(pw)
		if err != ErrPasswordTooShort {
			t.Errorf("expected ErrPasswordTooShort for %q, got %v", pw, err)
		}
	}
}

func TestValidatePassword_TooLong(t *testing.T) {
	longPassword := strings.Repeat("a", MaxPasswordLength+1)

	err := ValidatePassword(longPassword)
	if err != ErrPasswordTooLong {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestValidatePassword_AtMaxLength(t *testing.T) {
	maxPassword := strings.Repeat("a", MaxPasswordLength)

	if err := ValidatePassword(maxPassword); err != nil {
		t.Errorf("expected password at max length to be valid, got %v", err)
	}
}

func TestValidatePassword_Common(t *testing.T) {
	commonPwds := []string{
		"12345678",
		"password",
		"iloveyou",
		"welcome1",
	}

	for _, pw := range commonPwds {
		err := ValidatePassword(pw)
		if err != ErrPasswordCommon {
			t.Errorf("expected ErrPasswordCommon for %q, got %v", pw, err)
		}
	}
}

func TestValidatePassword_CommonCaseInsensitive(t *testing.T) {
	caseVariants := []string{
		"PASSWORD",
		"Password",
		"ILOVEYOU",
		"ILoveYou",
	}

	for _, pw := range caseVariants {
		err := ValidatePassword(pw)
		if err != ErrPasswordCommon {
			t.Errorf("expected ErrPasswordCommon for %q (case variant), got %v", pw, err)
		}
	}
}

// Test password hashing

func TestHashPassword_Valid(t *testing.T) {
	password := "SecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "" {
		t.Error("expected hash to be non-empty")
	}
	if hash == password {
		t.Error("hash should not equal plain password")
	}
	// bcrypt hashes start with $2a$ or $2b$
	if hash[0] != '$' {
		t.Error("expected bcrypt hash to start with $")
	}
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	password := "SecurePassword123"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// bcrypt uses random salt, so hashes should be different
	if hash1 == hash2 {
		t.Error("expected different hashes for same password (random salt)")
	}
}

// Test password checking

func TestCheckPassword_Correct(t *testing.T) {
	password := "SecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !CheckPassword(password, hash) {
		t.Error("expected CheckPassword to return true for correct password")
	}
}

func TestCheckPassword_Incorrect(t *testing.T) {
	hash, err := HashPassword("SecurePassword123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if CheckPassword("WrongPassword456", hash) {
		t.Error("expected CheckPassword to return false for wrong password")
	}
}

func TestCheckPassword_EmptyPassword(t *testing.T) {
	hash, err := HashPassword("SecurePassword123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if CheckPassword("", hash) {
		t.Error("expected CheckPassword to return false for empty password")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if CheckPassword("password", "not-a-valid-hash") {
		t.Error("expected CheckPassword to return false for invalid hash")
	}
}

// Test email validation

func TestValidateEmail_Valid(t *testing.T) {
	validEmails := []string{
		"test@example.com",
		"user@domain.org",
		"name.surname@company.co.uk",
		"a@b.co",
	}

	for _, email := range validEmails {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected %q to be valid, got %v", email, err)
		}
	}
}

func TestValidateEmail_Empty(t *testing.T) {
	if err := ValidateEmail("  "); err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	invalid := []string{
		"testexample.com",  // missing @
		"test@@example.com", // multiple @
		"@example.com",      // empty local part
		"test@example",      // no domain dot
		"test@example.",     // dot at end
		"test@.com",         // dot at start of domain
	}

	for _, email := range invalid {
		if err := ValidateEmail(email); err != ErrInvalidEmail {
			t.Errorf("expected ErrInvalidEmail for %q, got %v", email, err)
		}
	}
}

// Test phone validation

func TestValidatePhone_Valid(t *testing.T) {
	valid := []string{
		"",
		"0501234567",
		"+962791234567",
		"079-123-4567",
		"079 123 4567",
	}

	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("expected %q to be valid, got %v", phone, err)
		}
	}
}

func TestValidatePhone_Invalid(t *testing.T) {
	invalid := []string{
		"1234567",          // too short
		"1234567890123456", // too long
		"phone-number",     // letters
		"+9627912345678a",  // trailing letter
	}

	for _, phone := range invalid {
		if err := ValidatePhone(phone); err != ErrPhoneInvalid {
			t.Errorf("expected ErrPhoneInvalid for %q, got %v", phone, err)
		}
	}
}
