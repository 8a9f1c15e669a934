package models

import "time"

// RefreshToken is one redeemable credential in the rotation chain. Redeeming
// it deletes the row and issues a replacement, so a token works at most once.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
