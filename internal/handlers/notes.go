package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kn-labs/keepnotes-backend/internal/models"
	"github.com/kn-labs/keepnotes-backend/internal/storage"
	"github.com/kn-labs/keepnotes-backend/pkg/utils"
)

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
}

type DeleteNoteRequest struct {
	NoteID string `json:"note_id"`
}

type NoteResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Note    *models.Note `json:"note,omitempty"`
}

type NotesListResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Notes   []models.Note `json:"notes"`
	Skipped int           `json:"skipped,omitempty"` // malformed note files ignored while listing
}

// CreateNote stores a new note for the authenticated user.
func CreateNote(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NoteResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NoteResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Title == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, NoteResponse{Success: false, Message: "Title and content are required"})
		return
	}

	note, err := notes.Create(sess.Username, req.Title, req.Content, req.Type)
	if err != nil {
		log.Printf("ERROR: failed to create note for %s: %v", sess.Username, err)
		writeJSON(w, http.StatusInternalServerError, NoteResponse{Success: false, Message: "Failed to create note"})
		return
	}

	writeJSON(w, http.StatusCreated, NoteResponse{
		Success: true,
		Message: "Note created successfully",
		Note:    note,
	})
}

// DeleteNote removes one of the authenticated user's notes by id.
func DeleteNote(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NoteResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req DeleteNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NoteResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.NoteID == "" {
		writeJSON(w, http.StatusBadRequest, NoteResponse{Success: false, Message: "Note ID is required"})
		return
	}

	if err := notes.Delete(sess.Username, req.NoteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, NoteResponse{Success: false, Message: "Note not found"})
			return
		}
		log.Printf("ERROR: failed to delete note for %s: %v", sess.Username, err)
		writeJSON(w, http.StatusInternalServerError, NoteResponse{Success: false, Message: "Error deleting note"})
		return
	}

	writeJSON(w, http.StatusOK, NoteResponse{Success: true, Message: "Note deleted successfully"})
}

// GetNotes lists the notes of the user named in the path. The path username
// must match the session user; nobody can read another user's partition.
func GetNotes(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NotesListResponse{Success: false, Message: "Authentication required", Notes: []models.Note{}})
		return
	}

	username := utils.NormalizeUsername(chi.URLParam(r, "username"))
	if username != sess.Username {
		writeJSON(w, http.StatusForbidden, NotesListResponse{Success: false, Message: "You can only access your own notes", Notes: []models.Note{}})
		return
	}

	userNotes, skipped, err := notes.List(username)
	if err != nil {
		log.Printf("ERROR: failed to list notes for %s: %v", username, err)
		writeJSON(w, http.StatusInternalServerError, NotesListResponse{Success: false, Message: "Failed to load notes", Notes: []models.Note{}})
		return
	}
	if skipped > 0 {
		log.Printf("Skipped %d malformed note file(s) for %s", skipped, username)
	}

	writeJSON(w, http.StatusOK, NotesListResponse{
		Success: true,
		Notes:   userNotes,
		Skipped: skipped,
	})
}
