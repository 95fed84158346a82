package models

import "time"

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Don't return password hash in JSON
	FavoriteItem string    `json:"favorite_item"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminUserView is the privileged representation returned by the admin
// users listing. It is the only place the stored hash leaves the server.
type AdminUserView struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	FavoriteItem string    `json:"favorite_item"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) AdminView() AdminUserView {
	return AdminUserView{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FavoriteItem: u.FavoriteItem,
		CreatedAt:    u.CreatedAt,
	}
}
