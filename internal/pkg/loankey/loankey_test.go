package loankey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"display form", "BIZLN-1234", "1234"},
		{"bare numeric", "1234", "1234"},
		{"slash separator", "LN/5678", "5678"},
		{"underscore separator", "LOAN_0042", "0042"},
		{"non-numeric suffix", "BIZLN-12A4", "BIZLN-12A4"},
		{"no suffix after separator", "BIZLN-", "BIZLN-"},
		{"whitespace trimmed", "  1234  ", "1234"},
		{"empty", "", ""},
		{"alphanumeric without separator", "ABC123", "ABC123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestEquivalent(t *testing.T) {
	assert.True(t, Equivalent("BIZLN-1234", "1234"))
	assert.True(t, Equivalent("1234", "BIZLN-1234"))
	assert.True(t, Equivalent("1234", "1234"))
	assert.True(t, Equivalent("BIZLN-1234", "LN-1234"))
	assert.False(t, Equivalent("1234", "9999"))
	assert.False(t, Equivalent("", "1234"))
	assert.False(t, Equivalent("", ""))
}
