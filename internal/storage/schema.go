package storage

// The store is a plain key-value table. Each row holds one top-level JSON
// document: the flat card list and the language-to-chapters mapping live
// under two fixed keys and are always written whole.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Fixed document keys. These match the keys the original browser build used
// in localStorage, so a migrated dump drops straight in.
const (
	cardsKey    = "codecards_flashcards"
	chaptersKey = "codecards_chapters"
)
