package handlers

import (
	"log"
	"net/http"

	"github.com/kn-labs/keepnotes-backend/internal/models"
)

type AdminUsersResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Users   []models.AdminUserView `json:"users"`
	Count   int                    `json:"count"`
}

// GetUsers returns every user record including password hashes.
// Requires an admin session.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireAuth(r)
	if !ok || !sess.Admin {
		writeJSON(w, http.StatusUnauthorized, AdminUsersResponse{Success: false, Message: "Admin authentication required", Users: []models.AdminUserView{}})
		return
	}

	all, err := users.ListUsers()
	if err != nil {
		log.Printf("ERROR: failed to read user table: %v", err)
		writeJSON(w, http.StatusInternalServerError, AdminUsersResponse{Success: false, Message: "Failed to load users", Users: []models.AdminUserView{}})
		return
	}

	views := make([]models.AdminUserView, 0, len(all))
	for _, u := range all {
		views = append(views, u.AdminView())
	}

	writeJSON(w, http.StatusOK, AdminUsersResponse{
		Success: true,
		Users:   views,
		Count:   len(views),
	})
}
