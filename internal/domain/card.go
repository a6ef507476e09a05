package domain

import "time"

// Card represents a single question-code-explanation study unit.
// Chapter holds the chapter's name, not its id: the persisted format
// denormalizes the relationship, so chapter renames must cascade into the
// card list (see the deck package).
type Card struct {
	ID          string     `json:"id"`
	Language    string     `json:"language"`
	Chapter     string     `json:"chapter"`
	Question    string     `json:"question"`
	Code        string     `json:"code"`
	Explanation string     `json:"explanation"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CardInput carries the caller-supplied fields for a new card. The deck
// layer accepts whatever it is given; field validation is the caller's job.
type CardInput struct {
	Language    string
	Chapter     string
	Question    string
	Code        string
	Explanation string
}

// CardPatch is a partial update for a card. Nil fields are left unchanged.
type CardPatch struct {
	Language    *string
	Chapter     *string
	Question    *string
	Code        *string
	Explanation *string
}
