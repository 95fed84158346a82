package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kn-labs/keepnotes-backend/internal/models"
	"github.com/kn-labs/keepnotes-backend/pkg/utils"
)

// userTableHeader is the first row of the credentials table.
var userTableHeader = []string{"username", "password_hash", "favorite_item", "created_at"}

// CredentialStore holds all user records in one CSV file. Every mutation
// rewrites the whole table through a temp file + rename, so a crashed write
// never leaves a truncated table behind. Mutations are serialized behind a
// single-writer lock; two concurrent registrations cannot both pass the
// uniqueness check.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// FindUser returns the record for username, or ErrNotFound.
// Lookup is case-insensitive: usernames are normalized before storage.
func (s *CredentialStore) FindUser(username string) (*models.User, error) {
	users, err := s.load()
	if err != nil {
		return nil, err
	}
	username = utils.NormalizeUsername(username)
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddUser appends a new record and persists the table. Returns
// ErrUsernameTaken when a record already exists for the username.
func (s *CredentialStore) AddUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	user.Username = utils.NormalizeUsername(user.Username)
	for i := range users {
		if users[i].Username == user.Username {
			return ErrUsernameTaken
		}
	}

	users = append(users, user)
	return s.writeAll(users)
}

// ListUsers returns every record including password hashes. Privileged
// path: only the admin inspection endpoint may expose the result.
func (s *CredentialStore) ListUsers() ([]models.User, error) {
	return s.load()
}

// load reads the whole table. A missing file is an empty table, not an
// error; the file is created on first mutation.
func (s *CredentialStore) load() ([]models.User, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open user table: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read user table: %w", err)
	}

	var users []models.User
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			// Header row, or a short row left by hand edits.
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339, row[3])
		users = append(users, models.User{
			Username:     row[0],
			PasswordHash: row[1],
			FavoriteItem: row[2],
			CreatedAt:    createdAt,
		})
	}
	return users, nil
}

// writeAll rewrites the full table atomically (temp file + rename).
func (s *CredentialStore) writeAll(users []models.User) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "users-*.csv")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(userTableHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write user table: %w", err)
	}
	for _, u := range users {
		row := []string{u.Username, u.PasswordHash, u.FavoriteItem, u.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write user table: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write user table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp table: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace user table: %w", err)
	}
	return nil
}
