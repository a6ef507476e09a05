package deck

import (
	"fmt"
	"strings"
	"time"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/filter"
	"github.com/google/uuid"
)

// AddChapter creates a chapter in the given language bucket. Adding a name
// that already exists in that language (case-insensitively) returns the
// existing chapter unchanged instead of creating a duplicate.
func (m *Manager) AddChapter(input domain.ChapterInput) (domain.Chapter, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	chapters, err := m.store.LoadChapters()
	if err != nil {
		return domain.Chapter{}, err
	}

	for _, existing := range filter.ChaptersForLanguage(chapters, input.Language) {
		if strings.EqualFold(existing.Name, input.Name) && input.Name != "" {
			return existing, nil
		}
	}

	if err := m.validate.Struct(input); err != nil {
		return domain.Chapter{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	chapter := domain.Chapter{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Language:    input.Language,
		CreatedAt:   time.Now(),
	}

	chapters[input.Language] = append(chapters[input.Language], chapter)
	if err := m.store.SaveChapters(chapters); err != nil {
		return domain.Chapter{}, err
	}
	return chapter, nil
}

// UpdateChapter merges the patch into the chapter with the given id. A
// changed language moves the record to the other bucket. This does NOT
// rewrite the chapter name stored on existing cards; renames must go through
// RenameChapter (or UpdateChapter plus an explicit RenameCascade).
func (m *Manager) UpdateChapter(id string, patch domain.ChapterPatch) (domain.Chapter, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Chapter{}, fmt.Errorf("%w: chapter name must not be empty", domain.ErrValidation)
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return domain.Chapter{}, fmt.Errorf("%w: chapter description must not be empty", domain.ErrValidation)
	}

	chapters, err := m.store.LoadChapters()
	if err != nil {
		return domain.Chapter{}, err
	}

	language, idx := locateChapter(chapters, id)
	if idx == -1 {
		return domain.Chapter{}, fmt.Errorf("%w: chapter %s", domain.ErrNotFound, id)
	}

	chapter := chapters[language][idx]
	if patch.Name != nil {
		chapter.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		chapter.Description = strings.TrimSpace(*patch.Description)
	}
	now := time.Now()
	chapter.UpdatedAt = &now

	if patch.Language != nil && *patch.Language != language {
		chapter.Language = *patch.Language
		chapters[language] = append(chapters[language][:idx], chapters[language][idx+1:]...)
		chapters[*patch.Language] = append(chapters[*patch.Language], chapter)
	} else {
		chapters[language][idx] = chapter
	}

	if err := m.store.SaveChapters(chapters); err != nil {
		return domain.Chapter{}, err
	}
	return chapter, nil
}

// RenameCascade rewrites the chapter field on every card that still carries
// oldName in the chapter's language, pointing them at the chapter's current
// stored name. It must run right after an UpdateChapter that changed the
// name; the old name has to be passed in because the chapter record no
// longer holds it by then. There is no transaction spanning the two steps: a
// crash in between leaves the chapter renamed and the cards stale, which is
// consistent-but-orphaned rather than corrupt.
func (m *Manager) RenameCascade(chapterID, oldName string) error {
	chapters, err := m.store.LoadChapters()
	if err != nil {
		return err
	}

	language, idx := locateChapter(chapters, chapterID)
	if idx == -1 {
		return fmt.Errorf("%w: chapter %s", domain.ErrNotFound, chapterID)
	}
	newName := chapters[language][idx].Name
	if newName == oldName {
		return nil
	}

	cards, err := m.store.LoadCards()
	if err != nil {
		return err
	}

	for _, card := range cards {
		if card.Language == language && card.Chapter == oldName {
			if _, err := m.UpdateCard(card.ID, domain.CardPatch{Chapter: &newName}); err != nil {
				return fmt.Errorf("cascading rename to card %s: %w", card.ID, err)
			}
		}
	}
	return nil
}

// RenameChapter applies the patch and then cascades the rename into the card
// list, in that order. This is the call the presentation layer should use;
// it closes the window in which a caller could forget the cascade.
func (m *Manager) RenameChapter(id string, patch domain.ChapterPatch) (domain.Chapter, error) {
	chapters, err := m.store.LoadChapters()
	if err != nil {
		return domain.Chapter{}, err
	}
	language, idx := locateChapter(chapters, id)
	if idx == -1 {
		return domain.Chapter{}, fmt.Errorf("%w: chapter %s", domain.ErrNotFound, id)
	}
	oldName := chapters[language][idx].Name

	chapter, err := m.UpdateChapter(id, patch)
	if err != nil {
		return domain.Chapter{}, err
	}
	if err := m.RenameCascade(id, oldName); err != nil {
		return domain.Chapter{}, err
	}
	return chapter, nil
}

// DeleteChapter removes the chapter and then cascade-deletes every card
// matching its (language, name). The chapter is removed first; a write
// failure during the card cascade leaves orphaned cards behind, matching
// the documented behavior of the original.
func (m *Manager) DeleteChapter(id string) (domain.Chapter, error) {
	chapters, err := m.store.LoadChapters()
	if err != nil {
		return domain.Chapter{}, err
	}

	language, idx := locateChapter(chapters, id)
	if idx == -1 {
		return domain.Chapter{}, fmt.Errorf("%w: chapter %s", domain.ErrNotFound, id)
	}

	deleted := chapters[language][idx]
	chapters[language] = append(chapters[language][:idx], chapters[language][idx+1:]...)
	if err := m.store.SaveChapters(chapters); err != nil {
		return domain.Chapter{}, err
	}

	cards, err := m.store.LoadCards()
	if err != nil {
		return domain.Chapter{}, err
	}
	kept := cards[:0]
	for _, card := range cards {
		if card.Language == deleted.Language && card.Chapter == deleted.Name {
			continue
		}
		kept = append(kept, card)
	}
	if len(kept) != len(cards) {
		if err := m.store.SaveCards(kept); err != nil {
			return domain.Chapter{}, err
		}
	}
	return deleted, nil
}

// RepairCorruption scans every chapter and self-heals: missing names and
// descriptions get fixed placeholder text, and entries still missing an id
// or language after substitution are dropped from the mapping. The repaired
// mapping is persisted only when something changed, so running it twice in a
// row is a fixpoint. Call once at startup, before the first render.
func (m *Manager) RepairCorruption() (domain.ChapterMap, error) {
	chapters, err := m.store.LoadChapters()
	if err != nil {
		return nil, err
	}

	changed := false
	repaired := domain.ChapterMap{}
	for language, bucket := range chapters {
		out := make([]domain.Chapter, 0, len(bucket))
		for _, ch := range bucket {
			if ch.Name == "" {
				ch.Name = domain.PlaceholderName
				changed = true
			}
			if ch.Description == "" {
				ch.Description = domain.PlaceholderDescription
				changed = true
			}
			if ch.ID == "" || ch.Language == "" {
				changed = true
				continue
			}
			out = append(out, ch)
		}
		repaired[language] = out
	}

	if changed {
		if err := m.store.SaveChapters(repaired); err != nil {
			return nil, err
		}
	}
	return repaired, nil
}

// locateChapter finds a chapter by id across all language buckets and
// returns its bucket key and index, or -1 if absent.
func locateChapter(chapters domain.ChapterMap, id string) (string, int) {
	for language, bucket := range chapters {
		for i, ch := range bucket {
			if ch.ID == id {
				return language, i
			}
		}
	}
	return "", -1
}
