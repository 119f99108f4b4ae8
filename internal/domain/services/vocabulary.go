package services

import (
	"strings"
	"unicode"
)

// Vocabulary maps tokens to dense indices. Built once from the training
// corpus and read-only afterwards; concurrent lookups need no locking.
type Vocabulary struct {
	index  map[string]int
	tokens []string
}

// Tokenize splits a message into lower-cased tokens on any run of
// non-letter, non-digit runes. The same function is used at training and
// inference time so representations stay consistent.
func Tokenize(message string) []string {
	return strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// BuildVocabulary collects the distinct tokens across the given messages
func BuildVocabulary(messages []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, msg := range messages {
		for _, tok := range Tokenize(msg) {
			if _, ok := v.index[tok]; !ok {
				v.index[tok] = len(v.tokens)
				v.tokens = append(v.tokens, tok)
			}
		}
	}
	return v
}

// Size returns the number of distinct tokens
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// Vectorize converts a message into a token-count vector over the fixed
// vocabulary. Out-of-vocabulary tokens contribute no evidence and are
// silently dropped.
func (v *Vocabulary) Vectorize(message string) []int {
	counts := make([]int, len(v.tokens))
	for _, tok := range Tokenize(message) {
		if i, ok := v.index[tok]; ok {
			counts[i]++
		}
	}
	return counts
}
