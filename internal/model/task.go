package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work owned by exactly one user. OwnerID is assigned
// once at creation from the authenticated principal and never accepted
// from client input.
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:char(36);index;not null"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description *string   `json:"description,omitempty" gorm:"size:1000"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
