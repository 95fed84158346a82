package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kn-labs/keepnotes-backend/internal/models"
	"github.com/kn-labs/keepnotes-backend/pkg/utils"
)

// NoteStore keeps one directory per user under root, with one JSON file per
// note named <id>.json. Ids are generated UUIDs, so note files are never
// overwritten by a title collision. Every operation is scoped to a single
// owner's directory.
type NoteStore struct {
	root string
}

func NewNoteStore(root string) (*NoteStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create notes root: %w", err)
	}
	return &NoteStore{root: root}, nil
}

// partition returns the owner's directory. The owner name passes through
// the filename sanitizer so it can never contain a path separator.
func (s *NoteStore) partition(owner string) string {
	return filepath.Join(s.root, utils.SanitizeFilename(owner))
}

// Create persists a new note in the owner's partition and returns it.
// The partition directory is created on first use.
func (s *NoteStore) Create(owner, title, content, noteType string) (*models.Note, error) {
	if noteType == "" {
		noteType = models.NoteTypeText
	}

	dir := s.partition(owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create note partition: %w", err)
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Type:      noteType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.MarshalIndent(note, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode note: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, note.ID+".json"), data, 0o644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}
	return &note, nil
}

// List returns every parseable note in the owner's partition plus the
// number of files that failed to parse. Unparseable files are skipped and
// logged, never fatal. A missing partition is an empty list. Order follows
// the directory listing; callers must not rely on it.
func (s *NoteStore) List(owner string) ([]models.Note, int, error) {
	dir := s.partition(owner)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Note{}, 0, nil
		}
		return nil, 0, fmt.Errorf("read note partition: %w", err)
	}

	notes := make([]models.Note, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			skipped++
			log.Printf("Skipping unreadable note file %s: %v", path, err)
			continue
		}
		var note models.Note
		if err := json.Unmarshal(data, &note); err != nil {
			skipped++
			log.Printf("Skipping malformed note file %s: %v", path, err)
			continue
		}
		notes = append(notes, note)
	}
	return notes, skipped, nil
}

// Delete removes the note with the given id from the owner's partition.
// Returns ErrNotFound when no such note exists. The id is sanitized before
// path construction so it cannot reference anything outside the partition.
func (s *NoteStore) Delete(owner, id string) error {
	path := filepath.Join(s.partition(owner), utils.SanitizeFilename(id)+".json")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
