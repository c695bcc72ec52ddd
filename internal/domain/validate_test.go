package domain

import "testing"

func TestValidNationalID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain eight digits", "12345678", true},
		{"plain seven digits", "1234567", true},
		{"dotted", "12.345.678", true},
		{"spaced", "12 345 678", true},
		{"too short", "123456", false},
		{"too long", "123456789", false},
		{"letters", "1234567a", false},
		{"empty", "", false},
		{"only separators", ".. ..", false},
		{"hyphen not stripped", "12-345-678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidNationalID(tt.input); got != tt.want {
				t.Errorf("ValidNationalID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain", "1144445555", true},
		{"minimum length", "12345678", true},
		{"maximum length", "123456789012345", true},
		{"formatted", "(011) 4444-5555", true},
		{"hyphenated", "11-4444-5555", true},
		{"too short", "1234567", false},
		{"too long", "1234567890123456", false},
		{"letters", "11four4455", false},
		{"empty", "", false},
		{"dot not stripped", "11.4444.5555", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPhone(tt.input); got != tt.want {
				t.Errorf("ValidPhone(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
