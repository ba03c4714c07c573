package models

import "time"

// SessionData is the decoded payload stored under a session token.
// The zero value is an anonymous session.
type SessionData struct {
	AccountID *int64 `json:"account_id"`
}

// SessionRecord is a raw cookie_session row: an opaque token mapped to the
// serialized payload and an absolute expiry. Rows whose expiry has passed are
// equivalent to absent rows.
type SessionRecord struct {
	ID      string
	Content string
	Expiry  time.Time
}
