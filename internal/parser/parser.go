// Package parser reads the markdown deck format used for bulk import.
//
// A deck file starts with optional header lines naming the language and
// chapter the file's cards belong to, followed by cards made of prefixed
// blocks:
//
//	L: javascript
//	B: Loops
//
//	Q: What does a for...of loop iterate over?
//	C: for (const x of xs) { ... }
//	E: Iterates the values of any iterable.
//	---
//
// Blocks may span multiple lines; "---" ends a card, and a new "Q:" line
// always starts one. Cards without a question are skipped.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	languagePrefix    = "L:"
	chapterPrefix     = "B:"
	questionPrefix    = "Q:"
	codePrefix        = "C:"
	explanationPrefix = "E:"
)

type state int

const (
	seeking state = iota
	readingQuestion
	readingCode
	readingExplanation
)

// ParsedCard is one card extracted from a deck file, tagged with the file's
// header values.
type ParsedCard struct {
	Language    string
	Chapter     string
	Question    string
	Code        string
	Explanation string
}

// ParseFile reads a deck file from the given path and extracts all cards.
func ParseFile(path string) ([]ParsedCard, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all cards.
func Parse(r io.Reader) ([]ParsedCard, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cards []ParsedCard
	var language, chapter string
	var currentCard ParsedCard
	var currentBlock []string
	currentState := seeking

	closeBlock := func() {
		if len(currentBlock) == 0 {
			return
		}
		content := strings.Join(currentBlock, "\n")
		switch currentState {
		case readingQuestion:
			currentCard.Question = content
		case readingCode:
			currentCard.Code = content
		case readingExplanation:
			currentCard.Explanation = content
		}
		currentBlock = nil
	}

	finishCard := func() {
		closeBlock()
		if currentCard.Question != "" {
			currentCard.Language = language
			currentCard.Chapter = chapter
			cards = append(cards, currentCard)
		}
		currentCard = ParsedCard{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == "---" {
			finishCard()
			continue
		}

		if rest, ok := cutPrefix(line, languagePrefix); ok && currentState == seeking {
			language = strings.TrimSpace(rest)
			continue
		}
		if rest, ok := cutPrefix(line, chapterPrefix); ok && currentState == seeking {
			chapter = strings.TrimSpace(rest)
			continue
		}

		if rest, ok := cutPrefix(line, questionPrefix); ok {
			// A new question always starts a new card.
			if currentState != seeking {
				finishCard()
			}
			currentState = readingQuestion
			currentBlock = append(currentBlock, rest)
			continue
		}
		if rest, ok := cutPrefix(line, codePrefix); ok {
			closeBlock()
			currentState = readingCode
			currentBlock = append(currentBlock, rest)
			continue
		}
		if rest, ok := cutPrefix(line, explanationPrefix); ok {
			closeBlock()
			currentState = readingExplanation
			currentBlock = append(currentBlock, rest)
			continue
		}

		if currentState != seeking {
			currentBlock = append(currentBlock, line)
		}
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// cutPrefix strips a block prefix and the single space conventionally
// following it.
func cutPrefix(line, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return "", false
	}
	rest = strings.TrimPrefix(rest, " ")
	return rest, true
}
