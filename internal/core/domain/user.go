package domain

import "time"

// User models a registered author. The password is stored only as a
// bcrypt hash and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
