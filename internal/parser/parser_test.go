package parser

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("single card with header", func(t *testing.T) {
		input := `L: javascript
B: Loops

Q: What does for...of iterate?
C: for (const x of xs) {}
E: The values of an iterable.
---`
		cards, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(cards) != 1 {
			t.Fatalf("Expected 1 card, got %d", len(cards))
		}
		card := cards[0]
		if card.Language != "javascript" || card.Chapter != "Loops" {
			t.Errorf("Expected header values on the card, got %q/%q", card.Language, card.Chapter)
		}
		if card.Question != "What does for...of iterate?" {
			t.Errorf("Unexpected question: %q", card.Question)
		}
		if card.Code != "for (const x of xs) {}" {
			t.Errorf("Unexpected code: %q", card.Code)
		}
		if card.Explanation != "The values of an iterable." {
			t.Errorf("Unexpected explanation: %q", card.Explanation)
		}
	})

	t.Run("multi-line blocks", func(t *testing.T) {
		input := `Q: First line
second line
C: line one
line two
`
		cards, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(cards) != 1 {
			t.Fatalf("Expected 1 card, got %d", len(cards))
		}
		if cards[0].Question != "First line\nsecond line" {
			t.Errorf("Unexpected question: %q", cards[0].Question)
		}
		if cards[0].Code != "line one\nline two" {
			t.Errorf("Unexpected code: %q", cards[0].Code)
		}
	})

	t.Run("new question starts a new card", func(t *testing.T) {
		input := `Q: one
E: first
Q: two
E: second`
		cards, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(cards) != 2 {
			t.Fatalf("Expected 2 cards, got %d", len(cards))
		}
		if cards[0].Question != "one" || cards[1].Question != "two" {
			t.Errorf("Unexpected questions: %q, %q", cards[0].Question, cards[1].Question)
		}
		if cards[0].Explanation != "first" || cards[1].Explanation != "second" {
			t.Errorf("Unexpected explanations: %q, %q", cards[0].Explanation, cards[1].Explanation)
		}
	})

	t.Run("separator between cards", func(t *testing.T) {
		input := `Q: one
---
Q: two
---`
		cards, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(cards) != 2 {
			t.Fatalf("Expected 2 cards, got %d", len(cards))
		}
	})

	t.Run("blocks without a question are dropped", func(t *testing.T) {
		input := `C: stray code
E: stray explanation
---`
		cards, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(cards) != 0 {
			t.Errorf("Expected no cards, got %d", len(cards))
		}
	})

	t.Run("header applies to every card in the file", func(t *testing.T) {
		input := `L: css
B: Flexbox
Q: one
---
Q: two
---`
		cards, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(cards) != 2 {
			t.Fatalf("Expected 2 cards, got %d", len(cards))
		}
		for _, card := range cards {
			if card.Language != "css" || card.Chapter != "Flexbox" {
				t.Errorf("Expected header on every card, got %q/%q", card.Language, card.Chapter)
			}
		}
	})

	t.Run("empty input yields no cards", func(t *testing.T) {
		cards, err := Parse(strings.NewReader(""))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(cards) != 0 {
			t.Errorf("Expected no cards, got %d", len(cards))
		}
	})
}
