package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/kn-labs/keepnotes-backend/internal/models"
	"github.com/kn-labs/keepnotes-backend/internal/storage"
	"github.com/kn-labs/keepnotes-backend/pkg/utils"
)

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FavoriteItem string `json:"favorite_item"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the envelope for /register, /login, and /logout.
type AuthResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	UserType  string                 `json:"user_type,omitempty"`
	Token     string                 `json:"token,omitempty"`
	User      map[string]interface{} `json:"user,omitempty"`
	Notes     []models.Note          `json:"notes,omitempty"`
	UsersData []models.AdminUserView `json:"users_data,omitempty"`
}

// Register handles user registration. A successful registration also logs
// the user in and returns a session token.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" || req.FavoriteItem == "" {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "All fields are required"})
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
		return
	}

	username := utils.NormalizeUsername(req.Username)
	if cfg.AdminEnabled() && username == utils.NormalizeUsername(cfg.AdminUsername) {
		// The admin login name can never become a regular account.
		writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "Username already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		FavoriteItem: req.FavoriteItem,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.AddUser(user); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "Username already exists"})
			return
		}
		log.Printf("ERROR: failed to persist user %s: %v", username, err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create user"})
		return
	}

	token, err := sessions.Create(username, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create session"})
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success:  true,
		Message:  "Registration successful",
		UserType: "user",
		Token:    token,
		User: map[string]interface{}{
			"username":      user.Username,
			"favorite_item": user.FavoriteItem,
			"created_at":    user.CreatedAt,
		},
	})
}

// Login verifies credentials and returns a session token plus the user's
// notes. When the configured admin credentials are supplied it returns all
// user records including hashes instead.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Username and password are required"})
		return
	}

	if isAdminLogin(req.Username, req.Password) {
		adminLogin(w)
		return
	}

	username := utils.NormalizeUsername(req.Username)
	user, err := users.FindUser(username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("ERROR: failed to read user table: %v", err)
		}
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := sessions.Create(username, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create session"})
		return
	}

	userNotes, skipped, err := notes.List(username)
	if err != nil {
		log.Printf("ERROR: failed to list notes for %s: %v", username, err)
		userNotes = []models.Note{}
	}
	if skipped > 0 {
		log.Printf("Skipped %d malformed note file(s) for %s during login", skipped, username)
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success:  true,
		Message:  "Login successful",
		UserType: "user",
		Token:    token,
		Notes:    userNotes,
	})
}

// Logout invalidates the caller's session token. Always succeeds for an
// authenticated caller; an unknown token is already logged out.
func Logout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Authentication required"})
		return
	}
	sessions.Invalidate(token)
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Logged out"})
}

// isAdminLogin checks the supplied credentials against the configured admin
// pair in constant time. Admin access is disabled entirely when the pair is
// not configured.
func isAdminLogin(username, password string) bool {
	if !cfg.AdminEnabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(utils.NormalizeUsername(username)), []byte(utils.NormalizeUsername(cfg.AdminUsername))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
	return userOK && passOK
}

func adminLogin(w http.ResponseWriter) {
	all, err := users.ListUsers()
	if err != nil {
		log.Printf("ERROR: failed to read user table: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to load users"})
		return
	}

	token, err := sessions.Create(utils.NormalizeUsername(cfg.AdminUsername), true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create session"})
		return
	}

	views := make([]models.AdminUserView, 0, len(all))
	for _, u := range all {
		views = append(views, u.AdminView())
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "Admin login successful",
		UserType:  "admin",
		Token:     token,
		UsersData: views,
	})
}
