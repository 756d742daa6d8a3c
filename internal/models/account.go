// Package models holds the persisted row types shared by repositories and
// services.
package models

import (
	"database/sql"
	"time"
)

// Account is a stored identity with credentials and a role.
//
// PasswordHash is the hex-encoded PBKDF2 derivation of the password with
// PasswordSalt; neither the plaintext password nor the hash ever leave the
// auth service. Listing operations return accounts with both fields empty.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	PasswordSalt string
	Email        string
	Role         string
	CreatedAt    time.Time
	LastLogin    sql.NullTime
}
