package tokenizer

import (
	"regexp"
	"strings"
)

// separatorRegex matches digits and every character that is not a word character.
// Word characters are letters, combining marks and the underscore.
var separatorRegex = regexp.MustCompile(`[^\p{L}\p{M}_]+`)

// Tokenize converts a string into a slice of tokens.
// Digits and non-word characters become separators, the text is lowercased and
// split on whitespace. Empty tokens are discarded.
func Tokenize(text string) []string {
	// 1. Replace digits and non-word characters
	processedText := separatorRegex.ReplaceAllString(text, " ")

	// 2. Lowercase
	lowerText := strings.ToLower(processedText)

	// 3. Split on whitespace runs
	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range strings.Fields(lowerText) {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// RemoveStopWords drops every token present in stopWords.
// Order and duplicates of the remaining tokens are preserved.
func RemoveStopWords(tokens []string, stopWords StopWords) []string {
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if stopWords.Contains(token) {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}
