// Package filter derives read views over the stored collections. Everything
// here is a pure function of its inputs and preserves insertion order; with
// the dataset sizes involved there is nothing worth caching.
package filter

import "github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"

// All is the sentinel filter value meaning "no constraint on this field".
const All = "all"

// Cards returns the cards passing both filters, in original order.
func Cards(cards []domain.Card, languageFilter, chapterFilter string) []domain.Card {
	out := []domain.Card{}
	for _, card := range cards {
		languageMatch := languageFilter == All || card.Language == languageFilter
		chapterMatch := chapterFilter == All || card.Chapter == chapterFilter
		if languageMatch && chapterMatch {
			out = append(out, card)
		}
	}
	return out
}

// ChaptersForLanguage returns the raw bucket for a language, or an empty
// slice if absent. Cascade logic must use this view so that corrupted
// entries still participate in lookups.
func ChaptersForLanguage(chapters domain.ChapterMap, language string) []domain.Chapter {
	bucket, ok := chapters[language]
	if !ok {
		return []domain.Chapter{}
	}
	return bucket
}

// ValidChaptersForLanguage returns the display view of a language bucket:
// entries failing the validity predicate are hidden, not deleted.
func ValidChaptersForLanguage(chapters domain.ChapterMap, language string) []domain.Chapter {
	out := []domain.Chapter{}
	for _, ch := range ChaptersForLanguage(chapters, language) {
		if ch.Valid() {
			out = append(out, ch)
		}
	}
	return out
}

// CardCount counts cards matching both fields exactly. No sentinel here:
// the count feeds display stats and the pre-delete confirmation message.
func CardCount(cards []domain.Card, language, chapterName string) int {
	n := 0
	for _, card := range cards {
		if card.Language == language && card.Chapter == chapterName {
			n++
		}
	}
	return n
}
