package tts

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", nil},
		{"punctuation only", " ... !? ", nil},
		{"single sentence", "You have acne", []string{"You have acne"}},
		{"sentences", "You have acne. Wash your face! Ok?", []string{"You have acne", "Wash your face", "Ok"}},
		{"newlines", "first line\nsecond line", []string{"first line", "second line"}},
		{"decimals and abbreviations", "Take 2.5 mg, e.g.in the morning", []string{"Take 2.5 mg", "e.g.in the morning"}},
		{"time", "See me at 10:30 tomorrow", []string{"See me at 10:30 tomorrow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.text, 100))
		})
	}
}

func TestTokenize_LongToken(t *testing.T) {
	text := strings.Repeat("word ", 60)
	chunks := Tokenize(text, 100)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 100)
		assert.False(t, strings.HasPrefix(c, " "))
		assert.False(t, strings.HasSuffix(c, " "))
	}
	assert.Equal(t, strings.TrimSpace(text), strings.Join(chunks, " "))
}

func TestTokenize_NoWhitespace(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := Tokenize(text, 100)

	assert.Equal(t, []string{strings.Repeat("x", 100), strings.Repeat("x", 100), strings.Repeat("x", 50)}, chunks)
}
