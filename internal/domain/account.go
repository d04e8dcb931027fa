package domain

import "time"

// Account represents an authenticated identity of the system.
type Account struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
}

// AuthToken is an opaque bearer credential bound one-to-one with an account.
type AuthToken struct {
	ID        int64
	AccountID int64
	Key       string
	CreatedAt time.Time
}
