package models

import "time"

// Account is a registered user of the tracker. PasswordHash holds the salted
// bcrypt digest from the password_hash_and_salt column and must never be
// exposed through the API layer.
type Account struct {
	ID           int64
	Username     string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// AccountUpdate carries a self-service profile change. Each field is
// independently optional; nil means "leave unchanged".
type AccountUpdate struct {
	Username     *string
	DisplayName  *string
	PasswordHash *string
}

// IsEmpty reports whether the update would change nothing.
func (u AccountUpdate) IsEmpty() bool {
	return u.Username == nil && u.DisplayName == nil && u.PasswordHash == nil
}
