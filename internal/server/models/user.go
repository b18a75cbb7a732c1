// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/dmitrijs2005/readdaily/internal/reading"
)

// User is a row of the users table. The category set and the read log live
// in child tables and are loaded separately.
type User struct {
	ID         string
	Name       string
	Email      string
	Salt       []byte
	Verifier   []byte
	Role       string
	JoinDate   reading.Date
	LastActive reading.Date
	Streak     reading.StreakData
	CreatedAt  time.Time
}

// Profile assembles the reading aggregate from the user row and its children.
func (u *User) Profile(categories []string, reads []reading.ReadArticle) reading.Profile {
	return reading.Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         reading.Role(u.Role),
		JoinDate:     u.JoinDate,
		LastActive:   u.LastActive,
		Preferences:  reading.Preferences{Categories: reading.NormalizeCategories(categories)},
		ReadArticles: reads,
		Streak:       u.Streak,
	}
}
