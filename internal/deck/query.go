package deck

import (
	"fmt"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/filter"
)

// Read views. The presentation layer re-queries after every mutation (pull
// model); these recompute from the store on every call.

// FilteredCards returns the cards passing both filters, in insertion order.
// Either filter may be the sentinel filter.All.
func (m *Manager) FilteredCards(languageFilter, chapterFilter string) ([]domain.Card, error) {
	cards, err := m.store.LoadCards()
	if err != nil {
		return nil, err
	}
	return filter.Cards(cards, languageFilter, chapterFilter), nil
}

// ChaptersForLanguage returns the display view of a language bucket, with
// corrupted entries hidden.
func (m *Manager) ChaptersForLanguage(language string) ([]domain.Chapter, error) {
	chapters, err := m.store.LoadChapters()
	if err != nil {
		return nil, err
	}
	return filter.ValidChaptersForLanguage(chapters, language), nil
}

// CardCountForChapter counts cards matching both fields exactly.
func (m *Manager) CardCountForChapter(language, chapterName string) (int, error) {
	cards, err := m.store.LoadCards()
	if err != nil {
		return 0, err
	}
	return filter.CardCount(cards, language, chapterName), nil
}

// GetCard returns the card with the given id, or ErrNotFound.
func (m *Manager) GetCard(id string) (domain.Card, error) {
	cards, err := m.store.LoadCards()
	if err != nil {
		return domain.Card{}, err
	}
	for _, card := range cards {
		if card.ID == id {
			return card, nil
		}
	}
	return domain.Card{}, fmt.Errorf("%w: card %s", domain.ErrNotFound, id)
}

// GetChapter returns the chapter with the given id, or ErrNotFound.
func (m *Manager) GetChapter(id string) (domain.Chapter, error) {
	chapters, err := m.store.LoadChapters()
	if err != nil {
		return domain.Chapter{}, err
	}
	language, idx := locateChapter(chapters, id)
	if idx == -1 {
		return domain.Chapter{}, fmt.Errorf("%w: chapter %s", domain.ErrNotFound, id)
	}
	return chapters[language][idx], nil
}
