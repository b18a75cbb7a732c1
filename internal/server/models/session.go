package models

import "time"

// Session is a period of reading activity. EndedAt is nil while open.
type Session struct {
	ID           string
	UserID       string
	StartedAt    time.Time
	LastSeenAt   time.Time
	EndedAt      *time.Time
	ArticlesRead int
}

// RefreshToken is a single-use credential exchanged for a new token pair.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return t.Expires.Before(now)
}
