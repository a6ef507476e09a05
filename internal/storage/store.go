package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SaptaAjiSadewo/flashcard-rpg/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// Store wraps the key-value medium holding the two persisted documents.
// Every mutation in the layers above is a whole-document read-modify-write;
// that is safe because the expected dataset is small and nothing else writes
// to the file.
type Store struct {
	conn *sql.DB
}

// Open creates a new store and ensures the schema is up to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{conn: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// LoadCards returns the stored card list. An absent key loads as an empty
// list; so does a value that fails to parse, which is logged because it
// means stored data is being discarded.
func (s *Store) LoadCards() ([]domain.Card, error) {
	raw, ok, err := s.get(cardsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Card{}, nil
	}

	var cards []domain.Card
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		slog.Warn("discarding malformed card document", "key", cardsKey, "error", err)
		return []domain.Card{}, nil
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	return cards, nil
}

// SaveCards overwrites the stored card list entirely.
func (s *Store) SaveCards(cards []domain.Card) error {
	return s.put(cardsKey, cards)
}

// LoadChapters returns the stored language-to-chapters mapping. On first
// access with nothing stored it persists and returns the default chapter
// seed. Malformed values load as empty, with a warning.
func (s *Store) LoadChapters() (domain.ChapterMap, error) {
	raw, ok, err := s.get(chaptersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		seed := defaultChapters()
		if err := s.SaveChapters(seed); err != nil {
			return nil, fmt.Errorf("failed to persist default chapters: %w", err)
		}
		return seed, nil
	}

	var chapters domain.ChapterMap
	if err := json.Unmarshal([]byte(raw), &chapters); err != nil {
		slog.Warn("discarding malformed chapter document", "key", chaptersKey, "error", err)
		return domain.ChapterMap{}, nil
	}
	if chapters == nil {
		chapters = domain.ChapterMap{}
	}
	return chapters, nil
}

// SaveChapters overwrites the stored chapter mapping entirely.
func (s *Store) SaveChapters(chapters domain.ChapterMap) error {
	return s.put(chaptersKey, chapters)
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	row := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key)
	err := row.Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: reading %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return value, true, nil
}

func (s *Store) put(key string, doc any) error {
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", classifyWriteError(err), key, err)
	}
	return nil
}

// classifyWriteError maps a driver error to the storage failure taxonomy.
// The sqlite driver has no typed error for a full disk, so the message is
// inspected.
func classifyWriteError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "disk is full") || strings.Contains(msg, "database or disk is full") {
		return domain.ErrStorageFull
	}
	return domain.ErrStorageUnavailable
}
