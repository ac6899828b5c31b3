package models

import (
	"time"

	"github.com/google/uuid"
)

// Task belongs to exactly one user. OwnerID is set from the authenticated
// requester at creation and is not part of any update allow-list.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       User      `gorm:"foreignKey:OwnerID" json:"-"`
}
