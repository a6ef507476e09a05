package storage

import (
	"time"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/google/uuid"
)

// defaultChapters builds the convenience seed written on the first-ever
// chapter load: one or two starter chapters per known language, so a fresh
// install renders something instead of an empty screen.
func defaultChapters() domain.ChapterMap {
	now := time.Now()

	mk := func(language, name, description string) domain.Chapter {
		return domain.Chapter{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Language:    language,
			CreatedAt:   now,
		}
	}

	return domain.ChapterMap{
		"javascript": {
			mk("javascript", "Variabel", "Deklarasi dan scope variabel di JavaScript"),
			mk("javascript", "Function", "Function declaration, expression, dan arrow function"),
		},
		"html": {
			mk("html", "Struktur Dasar", "Struktur dasar dokumen HTML5"),
		},
		"css": {
			mk("css", "Flexbox", "Layout satu dimensi dengan flexbox"),
		},
		"php": {
			mk("php", "Sintaks Dasar", "Sintaks dasar dan variabel PHP"),
		},
	}
}
