package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user. Credentials are immutable once
// created: nothing in the system updates or deletes a user row.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null;collate:utf8mb4_bin"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the outward-facing projection of a user. The password hash is
// never part of any response payload.
type Profile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Profile returns the public view of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username}
}
