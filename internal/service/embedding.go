package service

import (
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a small deterministic embedding for the given
// text, enough to rank free-text recipe search by `embedding <-> query`
// without calling out to an external model. Recipes store the embedding
// of their name only, so a query matching a name exactly is that
// recipe's nearest neighbor.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var letters, vowels, words float32
	inWord := false
	for _, r := range text {
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
			letters++
		case unicode.IsLetter(r):
			letters++
		}
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			words++
		}
	}
	return pgvector.NewVector([]float32{letters, vowels, words})
}
