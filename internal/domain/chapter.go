package domain

import "time"

// Placeholder values written by the corruption repair pass. These exact
// strings already exist in data persisted by earlier versions, so they must
// not change.
const (
	PlaceholderName        = "Bab Tanpa Nama"
	PlaceholderDescription = "Deskripsi tidak tersedia"
)

// Chapter is a named, described grouping of cards within one language.
// Within a language bucket no two chapters may share a case-insensitive name.
type Chapter struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Language    string     `json:"language"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Valid reports whether the chapter carries every required field. Chapters
// failing this predicate are hidden from display views and handled by the
// repair pass.
func (c Chapter) Valid() bool {
	return c.ID != "" && c.Language != "" && c.Name != "" && c.Description != ""
}

// ChapterMap groups chapters by language, preserving insertion order within
// each bucket. This is the shape persisted under the chapters key.
type ChapterMap map[string][]Chapter

// ChapterInput carries the caller-supplied fields for a new chapter.
type ChapterInput struct {
	Language    string `validate:"required"`
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

// ChapterPatch is a partial update for a chapter. Nil fields are left
// unchanged. A non-nil Language moves the chapter to another bucket.
type ChapterPatch struct {
	Language    *string
	Name        *string
	Description *string
}
