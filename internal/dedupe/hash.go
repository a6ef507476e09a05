// Package dedupe fingerprints card content so the importer can tell whether
// an incoming card already exists in the store.
package dedupe

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
)

// Normalize concatenates the card's content after cleaning each part.
// It trims whitespace, lowercases, and normalizes line endings for each
// field before joining them.
func Normalize(card domain.Card) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	q := normalizePart(card.Question)
	c := normalizePart(card.Code)
	e := normalizePart(card.Explanation)

	// Joined with a newline so fields cannot run together and collide
	// ("question"+"answer" vs "questiona"+"nswer").
	return strings.Join([]string{q, c, e}, "\n")
}

// Hash normalizes a card's content and returns its SHA-256 hash as a hex
// string. Language and chapter are excluded; the importer scopes the
// comparison to a (language, chapter) pair itself.
func Hash(card domain.Card) string {
	normalized := Normalize(card)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}
