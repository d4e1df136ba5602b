// Package models holds the persisted row types shared by repositories and
// services.
package models

import "time"

type Account struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
