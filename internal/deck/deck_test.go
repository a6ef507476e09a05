package deck

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/filter"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *storage.Store) {
	t.Helper()
	// A file per test: the sqlite ":memory:" dsn gives every pooled
	// connection its own database.
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewManager(store), store
}

func TestAddCard(t *testing.T) {
	m, _ := newTestManager(t)

	card, err := m.AddCard(domain.CardInput{
		Language: "javascript", Chapter: "Loops", Question: "Q", Code: "C", Explanation: "E",
	})
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	if card.ID == "" {
		t.Error("Expected a generated id")
	}
	if card.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be stamped")
	}
	if card.UpdatedAt != nil {
		t.Error("Expected UpdatedAt to be unset on creation")
	}

	stored, err := m.FilteredCards(filter.All, filter.All)
	if err != nil {
		t.Fatalf("FilteredCards failed: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != card.ID {
		t.Errorf("Expected the new card to be persisted, got %v", stored)
	}
}

func TestUpdateCard(t *testing.T) {
	m, _ := newTestManager(t)

	card, _ := m.AddCard(domain.CardInput{Language: "css", Chapter: "Flexbox", Question: "old"})

	t.Run("merges patch and stamps UpdatedAt", func(t *testing.T) {
		q := "new question"
		updated, err := m.UpdateCard(card.ID, domain.CardPatch{Question: &q})
		if err != nil {
			t.Fatalf("UpdateCard failed: %v", err)
		}
		if updated.Question != "new question" {
			t.Errorf("Expected patched question, got %q", updated.Question)
		}
		if updated.Chapter != "Flexbox" {
			t.Errorf("Expected untouched fields to survive, got chapter %q", updated.Chapter)
		}
		if updated.UpdatedAt == nil {
			t.Error("Expected UpdatedAt to be stamped")
		}
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		_, err := m.UpdateCard("missing", domain.CardPatch{})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteCard(t *testing.T) {
	m, _ := newTestManager(t)
	card, _ := m.AddCard(domain.CardInput{Language: "php", Chapter: "Sintaks Dasar"})

	if err := m.DeleteCard(card.ID); err != nil {
		t.Fatalf("DeleteCard failed: %v", err)
	}
	if err := m.DeleteCard(card.ID); err != nil {
		t.Errorf("Expected deleting an absent card to be a no-op, got %v", err)
	}

	stored, _ := m.FilteredCards(filter.All, filter.All)
	if len(stored) != 0 {
		t.Errorf("Expected no cards left, got %d", len(stored))
	}
}

func TestAddChapterIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	first, err := m.AddChapter(domain.ChapterInput{Language: "javascript", Name: "Loops", Description: "x"})
	if err != nil {
		t.Fatalf("AddChapter failed: %v", err)
	}

	second, err := m.AddChapter(domain.ChapterInput{Language: "javascript", Name: "lOoPs", Description: "different"})
	if err != nil {
		t.Fatalf("Second AddChapter failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected the existing chapter back, got a new one (%s vs %s)", second.ID, first.ID)
	}
	if second.Description != "x" {
		t.Errorf("Expected the existing chapter unchanged, got description %q", second.Description)
	}

	chapters, _ := m.ChaptersForLanguage("javascript")
	count := 0
	for _, ch := range chapters {
		if ch.Name == "Loops" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one 'Loops' chapter, found %d", count)
	}
}

func TestAddChapterValidation(t *testing.T) {
	m, _ := newTestManager(t)

	t.Run("empty name", func(t *testing.T) {
		_, err := m.AddChapter(domain.ChapterInput{Language: "css", Name: "   ", Description: "x"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("empty description", func(t *testing.T) {
		_, err := m.AddChapter(domain.ChapterInput{Language: "css", Name: "Grid", Description: " "})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("no partial write on rejection", func(t *testing.T) {
		chapters, _ := m.ChaptersForLanguage("css")
		for _, ch := range chapters {
			if ch.Name == "Grid" {
				t.Error("Expected rejected chapter not to be persisted")
			}
		}
	})
}

func TestUpdateChapter(t *testing.T) {
	m, _ := newTestManager(t)
	chapter, _ := m.AddChapter(domain.ChapterInput{Language: "html", Name: "Form", Description: "x"})

	t.Run("rejects empty patched name", func(t *testing.T) {
		empty := "  "
		_, err := m.UpdateChapter(chapter.ID, domain.ChapterPatch{Name: &empty})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("updates in place", func(t *testing.T) {
		desc := "about forms"
		updated, err := m.UpdateChapter(chapter.ID, domain.ChapterPatch{Description: &desc})
		if err != nil {
			t.Fatalf("UpdateChapter failed: %v", err)
		}
		if updated.Description != "about forms" {
			t.Errorf("Expected patched description, got %q", updated.Description)
		}
		if updated.UpdatedAt == nil {
			t.Error("Expected UpdatedAt to be stamped")
		}
	})

	t.Run("moves between language buckets", func(t *testing.T) {
		lang := "css"
		moved, err := m.UpdateChapter(chapter.ID, domain.ChapterPatch{Language: &lang})
		if err != nil {
			t.Fatalf("UpdateChapter failed: %v", err)
		}
		if moved.Language != "css" {
			t.Errorf("Expected language to change, got %q", moved.Language)
		}

		old, _ := m.ChaptersForLanguage("html")
		for _, ch := range old {
			if ch.ID == chapter.ID {
				t.Error("Expected chapter removed from old bucket")
			}
		}
		now, _ := m.ChaptersForLanguage("css")
		found := false
		for _, ch := range now {
			if ch.ID == chapter.ID {
				found = true
			}
		}
		if !found {
			t.Error("Expected chapter present in new bucket")
		}
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		_, err := m.UpdateChapter("missing", domain.ChapterPatch{})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestRenameCascade(t *testing.T) {
	m, _ := newTestManager(t)

	chapter, _ := m.AddChapter(domain.ChapterInput{Language: "javascript", Name: "Loops", Description: "x"})
	for i := 0; i < 3; i++ {
		m.AddCard(domain.CardInput{Language: "javascript", Chapter: "Loops", Question: "Q"})
	}
	// A card in another language with the same chapter name must not be touched.
	bystander, _ := m.AddCard(domain.CardInput{Language: "php", Chapter: "Loops", Question: "Q"})

	newName := "Iteration"
	if _, err := m.UpdateChapter(chapter.ID, domain.ChapterPatch{Name: &newName}); err != nil {
		t.Fatalf("UpdateChapter failed: %v", err)
	}

	t.Run("cards are stale between the two steps", func(t *testing.T) {
		count, _ := m.CardCountForChapter("javascript", "Loops")
		if count != 3 {
			t.Errorf("Expected cards to still hold the old name before the cascade, got %d", count)
		}
	})

	if err := m.RenameCascade(chapter.ID, "Loops"); err != nil {
		t.Fatalf("RenameCascade failed: %v", err)
	}

	t.Run("every matching card is rewritten", func(t *testing.T) {
		count, _ := m.CardCountForChapter("javascript", "Iteration")
		if count != 3 {
			t.Errorf("Expected 3 cards under the new name, got %d", count)
		}
	})

	t.Run("no card keeps the stale name", func(t *testing.T) {
		count, _ := m.CardCountForChapter("javascript", "Loops")
		if count != 0 {
			t.Errorf("Expected no cards under the old name, got %d", count)
		}
	})

	t.Run("other languages are untouched", func(t *testing.T) {
		card, _ := m.GetCard(bystander.ID)
		if card.Chapter != "Loops" {
			t.Errorf("Expected php card to keep its chapter, got %q", card.Chapter)
		}
	})
}

func TestRenameChapterCombined(t *testing.T) {
	m, _ := newTestManager(t)

	chapter, _ := m.AddChapter(domain.ChapterInput{Language: "css", Name: "Grid", Description: "x"})
	m.AddCard(domain.CardInput{Language: "css", Chapter: "Grid", Question: "Q"})

	newName := "Grid Layout"
	if _, err := m.RenameChapter(chapter.ID, domain.ChapterPatch{Name: &newName}); err != nil {
		t.Fatalf("RenameChapter failed: %v", err)
	}

	count, _ := m.CardCountForChapter("css", "Grid Layout")
	if count != 1 {
		t.Errorf("Expected the card to follow the rename, got %d under the new name", count)
	}
	stale, _ := m.CardCountForChapter("css", "Grid")
	if stale != 0 {
		t.Errorf("Expected no stale cards, got %d", stale)
	}
}

func TestDeleteChapterCascade(t *testing.T) {
	m, _ := newTestManager(t)

	chapter, _ := m.AddChapter(domain.ChapterInput{Language: "javascript", Name: "Loops", Description: "x"})
	for i := 0; i < 4; i++ {
		m.AddCard(domain.CardInput{Language: "javascript", Chapter: "Loops", Question: "Q"})
	}
	survivor, _ := m.AddCard(domain.CardInput{Language: "javascript", Chapter: "Variabel", Question: "Q"})

	deleted, err := m.DeleteChapter(chapter.ID)
	if err != nil {
		t.Fatalf("DeleteChapter failed: %v", err)
	}
	if deleted.ID != chapter.ID {
		t.Errorf("Expected the deleted chapter back, got %s", deleted.ID)
	}

	t.Run("cascade removes every matching card", func(t *testing.T) {
		count, _ := m.CardCountForChapter("javascript", "Loops")
		if count != 0 {
			t.Errorf("Expected 0 cards after cascade, got %d", count)
		}
	})

	t.Run("chapter is gone from the language view", func(t *testing.T) {
		chapters, _ := m.ChaptersForLanguage("javascript")
		for _, ch := range chapters {
			if ch.ID == chapter.ID {
				t.Error("Expected chapter to be gone")
			}
		}
	})

	t.Run("unrelated cards survive", func(t *testing.T) {
		if _, err := m.GetCard(survivor.ID); err != nil {
			t.Errorf("Expected unrelated card to survive, got %v", err)
		}
	})

	t.Run("deleting again reports not found", func(t *testing.T) {
		_, err := m.DeleteChapter(chapter.ID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepairCorruption(t *testing.T) {
	m, store := newTestManager(t)

	corrupted := domain.ChapterMap{
		"javascript": {
			{ID: "ok", Name: "Loops", Description: "d", Language: "javascript"},
			{ID: "noname", Name: "", Description: "d", Language: "javascript"},
			{ID: "nodesc", Name: "N", Description: "", Language: "javascript"},
			{ID: "", Name: "", Description: "", Language: "javascript"},
		},
		"css": {
			{ID: "nolang", Name: "N", Description: "d", Language: ""},
		},
	}
	if err := store.SaveChapters(corrupted); err != nil {
		t.Fatalf("SaveChapters failed: %v", err)
	}

	repaired, err := m.RepairCorruption()
	if err != nil {
		t.Fatalf("RepairCorruption failed: %v", err)
	}

	t.Run("placeholders substituted", func(t *testing.T) {
		for _, ch := range repaired["javascript"] {
			if ch.ID == "noname" && ch.Name != domain.PlaceholderName {
				t.Errorf("Expected placeholder name, got %q", ch.Name)
			}
			if ch.ID == "nodesc" && ch.Description != domain.PlaceholderDescription {
				t.Errorf("Expected placeholder description, got %q", ch.Description)
			}
		}
	})

	t.Run("entries missing id or language dropped", func(t *testing.T) {
		if len(repaired["javascript"]) != 3 {
			t.Errorf("Expected 3 javascript chapters after repair, got %d", len(repaired["javascript"]))
		}
		if len(repaired["css"]) != 0 {
			t.Errorf("Expected the language-less chapter dropped, got %v", repaired["css"])
		}
	})

	t.Run("every surviving chapter is valid", func(t *testing.T) {
		for _, bucket := range repaired {
			for _, ch := range bucket {
				if !ch.Valid() {
					t.Errorf("Expected repaired chapter to be valid: %+v", ch)
				}
			}
		}
	})

	t.Run("repair is a fixpoint", func(t *testing.T) {
		again, err := m.RepairCorruption()
		if err != nil {
			t.Fatalf("Second RepairCorruption failed: %v", err)
		}
		if len(again) != len(repaired) {
			t.Fatalf("Expected identical mappings, got %d vs %d languages", len(again), len(repaired))
		}
		for language, bucket := range repaired {
			other := again[language]
			if len(other) != len(bucket) {
				t.Fatalf("Bucket %s changed on second repair", language)
			}
			for i := range bucket {
				if other[i].ID != bucket[i].ID ||
					other[i].Name != bucket[i].Name ||
					other[i].Description != bucket[i].Description ||
					other[i].Language != bucket[i].Language {
					t.Errorf("Chapter %d in %s changed on second repair", i, language)
				}
			}
		}
	})
}

// TestScenario walks the end-to-end flow: empty store, one chapter, one
// card, count check, cascade delete, empty again.
func TestScenario(t *testing.T) {
	m, _ := newTestManager(t)

	k1, err := m.AddChapter(domain.ChapterInput{Language: "javascript", Name: "Loops", Description: "x"})
	if err != nil {
		t.Fatalf("AddChapter failed: %v", err)
	}

	card, err := m.AddCard(domain.CardInput{
		Language: "javascript", Chapter: "Loops", Question: "Q", Code: "C", Explanation: "E",
	})
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	if card.Chapter != "Loops" {
		t.Errorf("Expected chapter 'Loops', got %q", card.Chapter)
	}

	count, _ := m.CardCountForChapter("javascript", "Loops")
	if count != 1 {
		t.Errorf("Expected 1 card, got %d", count)
	}

	if _, err := m.DeleteChapter(k1.ID); err != nil {
		t.Fatalf("DeleteChapter failed: %v", err)
	}

	remaining, _ := m.FilteredCards(filter.All, filter.All)
	if len(remaining) != 0 {
		t.Errorf("Expected no cards after cascade delete, got %d", len(remaining))
	}
}
