// Package seed inserts the original sample deck on an empty installation.
package seed

import (
	"log/slog"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/deck"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/filter"
)

// The sample cards shipped with the original build, verbatim.
var sampleCards = []domain.CardInput{
	{
		Language: "javascript",
		Chapter:  "Variabel",
		Question: "Apa perbedaan antara let, const, dan var?",
		Code: `// let bisa diubah nilainya
let name = "John";
name = "Doe";

// const nilai tetap
const pi = 3.14;

// var (hindari penggunaannya)
var old = "old way";`,
		Explanation: "let untuk variabel yang bisa diubah, const untuk nilai tetap, dan var adalah cara lama dengan function scope.",
	},
	{
		Language: "html",
		Chapter:  "Struktur Dasar",
		Question: "Bagaimana struktur dasar HTML5?",
		Code: `<!DOCTYPE html>
<html lang="id">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Document</title>
</head>
<body>
    <h1>Hello World!</h1>
</body>
</html>`,
		Explanation: "Struktur dasar HTML5 terdiri dari doctype, html, head (metadata), dan body (konten).",
	},
	{
		Language: "css",
		Chapter:  "Flexbox",
		Question: "Bagaimana cara membuat layout flexbox yang responsif?",
		Code: `.container {
    display: flex;
    flex-direction: row;
    justify-content: center;
    align-items: center;
    flex-wrap: wrap;
    gap: 10px;
}

.item {
    flex: 1 1 200px;
    min-width: 150px;
}`,
		Explanation: "Flexbox memungkinkan layout yang fleksibel dengan properti seperti justify-content, align-items, dan flex-wrap.",
	},
}

// sampleDescriptions gives the seeded chapters a description, since chapter
// creation requires one.
var sampleDescriptions = map[string]string{
	"Variabel":       "Deklarasi dan scope variabel di JavaScript",
	"Struktur Dasar": "Struktur dasar dokumen HTML5",
	"Flexbox":        "Layout satu dimensi dengan flexbox",
}

// Run inserts the sample cards and their chapters when the card list is
// empty. A non-empty list means the user already has data; nothing happens.
func Run(mgr *deck.Manager) error {
	cards, err := mgr.FilteredCards(filter.All, filter.All)
	if err != nil {
		return err
	}
	if len(cards) > 0 {
		return nil
	}

	for _, input := range sampleCards {
		if _, err := mgr.AddCard(input); err != nil {
			return err
		}
		if _, err := mgr.AddChapter(domain.ChapterInput{
			Language:    input.Language,
			Name:        input.Chapter,
			Description: sampleDescriptions[input.Chapter],
		}); err != nil {
			return err
		}
	}

	slog.Info("seeded sample deck", "cards", len(sampleCards))
	return nil
}
