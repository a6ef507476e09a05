// Package deck is the referential-integrity layer: every chapter-affecting
// mutation goes through here so that the denormalized chapter name on each
// card stays consistent with the chapter records across create, rename, move
// and delete. Each operation is a load-mutate-save round trip over the
// injected store; the caller model is single-threaded, so no two operations
// ever interleave.
package deck

import (
	"fmt"
	"time"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Manager owns all mutations of the card and chapter collections.
type Manager struct {
	store    *storage.Store
	validate *validator.Validate
}

// NewManager creates a manager over the given store.
func NewManager(store *storage.Store) *Manager {
	return &Manager{
		store:    store,
		validate: validator.New(),
	}
}

// AddCard appends a new card and persists the list. Field validation is the
// caller's responsibility; the input is stored as given.
func (m *Manager) AddCard(input domain.CardInput) (domain.Card, error) {
	cards, err := m.store.LoadCards()
	if err != nil {
		return domain.Card{}, err
	}

	card := domain.Card{
		ID:          uuid.NewString(),
		Language:    input.Language,
		Chapter:     input.Chapter,
		Question:    input.Question,
		Code:        input.Code,
		Explanation: input.Explanation,
		CreatedAt:   time.Now(),
	}

	cards = append(cards, card)
	if err := m.store.SaveCards(cards); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

// UpdateCard merges the patch into the card with the given id, stamps
// UpdatedAt and persists. Returns ErrNotFound if no card has that id.
func (m *Manager) UpdateCard(id string, patch domain.CardPatch) (domain.Card, error) {
	cards, err := m.store.LoadCards()
	if err != nil {
		return domain.Card{}, err
	}

	idx := -1
	for i := range cards {
		if cards[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Card{}, fmt.Errorf("%w: card %s", domain.ErrNotFound, id)
	}

	card := &cards[idx]
	if patch.Language != nil {
		card.Language = *patch.Language
	}
	if patch.Chapter != nil {
		card.Chapter = *patch.Chapter
	}
	if patch.Question != nil {
		card.Question = *patch.Question
	}
	if patch.Code != nil {
		card.Code = *patch.Code
	}
	if patch.Explanation != nil {
		card.Explanation = *patch.Explanation
	}
	now := time.Now()
	card.UpdatedAt = &now

	if err := m.store.SaveCards(cards); err != nil {
		return domain.Card{}, err
	}
	return *card, nil
}

// DeleteCard removes the card with the given id. Deleting an id that does
// not exist is a no-op, not an error.
func (m *Manager) DeleteCard(id string) error {
	cards, err := m.store.LoadCards()
	if err != nil {
		return err
	}

	kept := cards[:0]
	removed := false
	for _, card := range cards {
		if card.ID == id {
			removed = true
			continue
		}
		kept = append(kept, card)
	}
	if !removed {
		return nil
	}
	return m.store.SaveCards(kept)
}
