package auth

import (
	"fmt"
	"log/slog"
	"strings"

	authservice "journal-api/internal/service/auth"
)

// weakPasswordList contains common weak passwords that must be rejected.
// This list includes the most commonly used passwords and their variations.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"monkey",
	"1234567890",
	"password1",
	"admin1",
	"test",
	"test123",
	"default",
	"root",
}

const (
	// minPasswordLength is the minimum required password length for admin credentials
	minPasswordLength = 12
)

// ValidateAdmin checks the admin account at startup. A missing or weak
// admin password is fatal.
func ValidateAdmin(u User) error {
	if u.Name == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER must not be empty")
	}
	if err := checkPassword(u.Password); err != nil {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD %w", err)
	}
	return nil
}

// checkPassword returns a "must ..." error describing the first rule pass breaks.
func checkPassword(pass string) error {
	if pass == "" {
		return fmt.Errorf("must not be empty")
	}
	if len(pass) < minPasswordLength {
		return fmt.Errorf("must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}
	if isSimpleNumericPattern(pass) {
		return fmt.Errorf("must not be a simple numeric pattern")
	}
	if isKeyboardPattern(pass) {
		return fmt.Errorf("must not be a keyboard pattern")
	}
	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak {
			return fmt.Errorf("must not be a weak password")
		}
		if strings.HasPrefix(lowerPass, weak) && len(pass) < minPasswordLength+5 {
			return fmt.Errorf("must not be based on common weak passwords")
		}
	}
	return nil
}

func isSimpleNumericPattern(pass string) bool {
	if len(pass) < minPasswordLength {
		return false
	}

	// Check for repeated digits
	if isRepeatedChar(pass) {
		return true
	}

	// Check for simple sequences like "123456789012"
	hasOnlyDigits := true
	for _, ch := range pass {
		if ch < '0' || ch > '9' {
			hasOnlyDigits = false
			break
		}
	}

	if !hasOnlyDigits {
		return false
	}

	// Check for ascending or descending sequences
	isAscending := true
	isDescending := true
	for i := 1; i < len(pass); i++ {
		diff := int(pass[i]) - int(pass[i-1])
		// Ascending: diff is 1 or -9 (wraps 9->0)
		if diff != 1 && diff != -9 {
			isAscending = false
		}
		// Descending: diff is -1 or 9 (wraps 0->9)
		if diff != -1 && diff != 9 {
			isDescending = false
		}
	}

	return isAscending || isDescending
}

// isRepeatedChar checks if the password consists of a single repeated character.
// Example: "aaaaaaaaaaaa"
func isRepeatedChar(pass string) bool {
	if len(pass) == 0 {
		return false
	}

	first := pass[0]
	for i := 1; i < len(pass); i++ {
		if pass[i] != first {
			return false
		}
	}
	return true
}

// isKeyboardPattern checks if the password is a keyboard pattern.
// Examples: "qwertyuiop", "asdfghjkl"
var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"qwerty",
	"asdfgh",
	"zxcvb",
}

func isKeyboardPattern(pass string) bool {
	lowerPass := strings.ToLower(pass)

	for _, pattern := range keyboardPatterns {
		if strings.Contains(lowerPass, pattern) {
			return true
		}
		// Check reverse pattern
		if strings.Contains(lowerPass, reverse(pattern)) {
			return true
		}
	}

	return false
}

// reverse returns the reversed string
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ValidateViewer checks the optional read-only account. Problems never stop
// startup: the viewer is disabled with a warning and ok is false.
func ValidateViewer(admin, viewer User, logger *slog.Logger) (ok bool) {
	if viewer.Name == "" {
		logger.Info("viewer role not configured - running in admin-only mode")
		return false
	}
	if viewer.Name == admin.Name {
		logger.Warn("DEMO_USER cannot be the same as ADMIN_USER - disabling viewer role")
		return false
	}
	if err := checkPassword(viewer.Password); err != nil {
		logger.Warn("DEMO_USER_PASSWORD "+err.Error()+" - disabling viewer role")
		return false
	}
	logger.Info("viewer role configured successfully", slog.String("user", viewer.Name))
	return true
}

// DefaultRequirements is the password policy applied at login.
func DefaultRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: minPasswordLength,
		WeakPasswords:     append([]string(nil), weakPasswordList...),
	}
}
