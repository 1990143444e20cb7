package entity

import "time"

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in HashedPassword.
type User struct {
	ID             int64
	Email          string
	FullName       string
	HashedPassword string
	IsActive       bool
	IsSuperuser    bool
	IsConfirmed    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
