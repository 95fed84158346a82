// Package handlers implements the HTTP JSON boundary. Every response is an
// envelope with a success flag and a short human-readable message; storage
// errors never cross the boundary as-is.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kn-labs/keepnotes-backend/internal/config"
	"github.com/kn-labs/keepnotes-backend/internal/services"
	"github.com/kn-labs/keepnotes-backend/internal/storage"
)

var (
	users    *storage.CredentialStore
	notes    *storage.NoteStore
	sessions *services.SessionStore
	cfg      *config.Config
)

// Init wires the handlers to their stores. Must be called before the router
// starts serving.
func Init(u *storage.CredentialStore, n *storage.NoteStore, s *services.SessionStore, c *config.Config) {
	users = u
	notes = n
	sessions = s
	cfg = c
}

// extractBearerToken pulls the token out of an Authorization header.
// Returns "" when the header is missing or not a Bearer scheme.
func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth validates the request's session token. Returns the session
// and false when the caller is not authenticated.
func requireAuth(r *http.Request) (services.Session, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return services.Session{}, false
	}
	return sessions.Validate(token)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
