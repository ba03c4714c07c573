package models

// Project groups todos under one account. Shortcode is unique within the
// owning account.
type Project struct {
	ID        int64
	AccountID int64
	Shortcode string
	Name      string
}
