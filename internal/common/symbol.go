// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// MaxSymbolLength is the longest ticker symbol NEPSE publishes.
const MaxSymbolLength = 10

// NormalizeSymbol trims and uppercases a raw ticker symbol.
// Format: 1-10 alphanumeric characters (e.g., "NABIL", "SHINE", "SWBBL")
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// IsValidSymbol reports whether a normalized symbol is a plausible NEPSE
// ticker: non-empty, alphanumeric, at most MaxSymbolLength characters.
func IsValidSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > MaxSymbolLength {
		return false
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
