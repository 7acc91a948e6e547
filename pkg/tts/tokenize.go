package tts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text at sentence punctuation and line breaks and breaks every
// token longer than maxLen runes at the last whitespace that fits.
// Tokens without any letter or digit are dropped.
func Tokenize(text string, maxLen int) []string {
	var tokens []string
	var cur strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		if isDelimiter(runes, i) {
			tokens = appendToken(tokens, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	tokens = appendToken(tokens, cur.String())

	var chunks []string
	for _, token := range tokens {
		chunks = append(chunks, minimize(token, maxLen)...)
	}
	return chunks
}

func isDelimiter(runes []rune, i int) bool {
	switch runes[i] {
	case '?', '!', '？', '！', ';', '…', '\n', '¡', '¿', '—':
		return true
	case '.', ',', ':':
		// "3.5", "e.g." and "10:30" stay in one token
		return i+1 >= len(runes) || unicode.IsSpace(runes[i+1])
	}
	return false
}

func appendToken(tokens []string, token string) []string {
	token = strings.TrimSpace(token)
	if strings.IndexFunc(token, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) < 0 {
		return tokens
	}
	return append(tokens, token)
}

func minimize(s string, maxLen int) []string {
	var out []string
	for utf8.RuneCountInString(s) > maxLen {
		runes := []rune(s)
		cut := maxLen
		for i := maxLen; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimSpace(string(runes[:cut])))
		s = strings.TrimSpace(string(runes[cut:]))
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
