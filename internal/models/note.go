package models

import "time"

// Note types. Unknown values coming from stored files are preserved
// verbatim rather than rejected.
const (
	NoteTypeText = "text"
	NoteTypeTodo = "todo"
)

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // Notes are never edited in place, so this stays equal to CreatedAt
}
