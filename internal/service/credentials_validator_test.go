package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "alice", false},
		{"valid with underscore and hyphen", "alice_b-2", false},
		{"minimum length", "abc", false},
		{"maximum length", strings.Repeat("a", 50), false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 51), true},
		{"contains space", "alice smith", true},
		{"contains punctuation", "alice!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Secret123", false},
		{"minimum viable", "abcdefg1", false},
		{"too short", "Abc1", true},
		{"no digits", "abcdefgh", true},
		{"no letters", "12345678", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
