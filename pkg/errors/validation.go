package errors

import (
	"strings"
	"unicode"
)

// MaxKeyLength is the longest storage key accepted by [ValidateKey].
const MaxKeyLength = 256

// ValidateKey validates a storage key for safety.
// Keys end up as file paths, Redis keys and database primary keys, so the
// rules are the strictest of the three:
//   - No empty keys
//   - Maximum length of 256 characters
//   - No control characters or null bytes
//   - No absolute paths (must not start with /)
//   - No path traversal sequences (..) or empty segments (//)
//   - No backslashes (Windows-style paths)
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > MaxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d characters)", MaxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}

	if strings.HasPrefix(key, "/") {
		return New(ErrCodeInvalidKey, "key must be relative (cannot start with /)")
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"//", // Empty segment
		"\\", // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "key contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// validRankdirs lists the graph directions accepted by Graphviz.
var validRankdirs = map[string]bool{"TB": true, "LR": true, "BT": true, "RL": true}

// ValidateRankdir checks that dir is one of TB, LR, BT or RL.
func ValidateRankdir(dir string) error {
	if !validRankdirs[dir] {
		return New(ErrCodeInvalidConfig, "invalid rankdir: %q (must be TB, LR, BT or RL)", dir)
	}
	return nil
}
