package common

import (
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"nabil", "NABIL"},
		{"  shine  ", "SHINE"},
		{"SwBbL", "SWBBL"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSymbol(tt.input); got != tt.want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   bool
	}{
		{"NABIL", true},
		{"SHINE", true},
		{"H8020", true},
		{"N", true},
		{"", false},
		{"TOOLONGSYMBOL", false},
		{"NA BIL", false},
		{"NABIL!", false},
		{"नबिल", false},
	}

	for _, tt := range tests {
		if got := IsValidSymbol(tt.symbol); got != tt.want {
			t.Errorf("IsValidSymbol(%q) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}
