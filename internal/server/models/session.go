package models

import "time"

// Session is one refresh session: the subject it belongs to, the refresh
// token value currently authoritative for it, and the expiry of that value.
// Rotation replaces Token and Expires on the same record; the record itself
// is never handed to callers, only the token values it stores.
type Session struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
