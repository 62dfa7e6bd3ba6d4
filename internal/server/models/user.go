// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Name and Email are unique.
type User struct {
	ID           string
	Name         string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}
