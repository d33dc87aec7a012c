package middleware

import (
	"strings"
	"testing"
)

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid canonical", "UCuAXFkgsw1L7xaCfnd5JJOw", "UCuAXFkgsw1L7xaCfnd5JJOw", false},
		{"trims whitespace", "  UCuAXFkgsw1L7xaCfnd5JJOw  ", "UCuAXFkgsw1L7xaCfnd5JJOw", false},
		{"empty", "", "", true},
		{"too long 33", "123456789012345678901234567890123", "", true},
		{"exactly 32", "12345678901234567890123456789012", "12345678901234567890123456789012", false},
		{"invalid chars", "UC test!", "", true},
		{"sql injection", "UC'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateChannelInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"raw id", "UCuAXFkgsw1L7xaCfnd5JJOw", "UCuAXFkgsw1L7xaCfnd5JJOw", false},
		{"handle", "@creatorX", "@creatorX", false},
		{"url", "https://www.youtube.com/@creatorX", "https://www.youtube.com/@creatorX", false},
		{"trims whitespace", "  @creatorX  ", "@creatorX", false},
		{"blank", "   ", "", true},
		{"too long", strings.Repeat("x", 257), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelInput(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid sha256", strings.Repeat("a1b2", 16), strings.Repeat("a1b2", 16), false},
		{"uppercase normalized", "ABCD1234", "abcd1234", false},
		{"empty", "", "", true},
		{"too long 65", strings.Repeat("a", 65), "", true},
		{"non-hex chars", "xyz123", "", true},
		{"sql injection", "abc'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateUserID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
