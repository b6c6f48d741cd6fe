package types

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is the account behind a catalog session. PasswordHash is the
// persisted credential checked at login.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PhoneNumber  string    `db:"phone_number" json:"phoneNumber"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
