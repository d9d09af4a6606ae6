package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds graph names accepted from untrusted sources.
const maxNameLength = 256

// ValidateGraphName validates a graph name received over the network.
// Names key results and optimal-table lookups, so they must be plain
// basenames: non-empty, no control characters, no path components.
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "graph name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "graph name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "graph name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "graph name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidInput, "graph name cannot be %q", name)
	}

	return nil
}

// ValidateTrials checks a requested trial count against an upper bound.
// A limit of zero disables the upper bound.
func ValidateTrials(trials, limit int) error {
	if trials <= 0 {
		return New(ErrCodeInvalidInput, "trials must be positive, got %d", trials)
	}
	if limit > 0 && trials > limit {
		return New(ErrCodeInvalidInput, "trials must be at most %d, got %d", limit, trials)
	}
	return nil
}
