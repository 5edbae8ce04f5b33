package model

import (
	"time"

	"pinboard-cli/internal/board"
)

// Board is the persistence record for one pin board. State is the full
// serializable document; everything else is dashboard metadata.
type Board struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TagIDs      []string    `json:"tag_ids"`
	CategoryIDs []string    `json:"category_ids"`
	State       board.State `json:"state"`
	IsPrimary   bool        `json:"is_primary"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Snapshot is a named point-in-time copy of a board's state.
type Snapshot struct {
	ID        string      `json:"id"`
	BoardID   string      `json:"board_id"`
	Name      string      `json:"name"`
	Note      string      `json:"note,omitempty"`
	State     board.State `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
}

// SnapshotSummary is the listing shape: no state payload.
type SnapshotSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Label is a board-scoped label pins reference through LabelIDs.
type Label struct {
	ID      string `json:"id"`
	BoardID string `json:"-"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// Group is the board-scoped group record; the in-document membership list
// lives on the board state's group entries.
type Group struct {
	ID      string `json:"id"`
	BoardID string `json:"-"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// Category is a user-level category, referenced by boards and pins.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// Tag is a user-level tag attached to boards.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}
