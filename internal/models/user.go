package models

import (
	"time"

	"github.com/google/uuid"
)

// User holds the account record. Password is always a bcrypt hash by the time
// it reaches the database; the services layer hashes before every insert/update.
// Password and Avatar are never serialized.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Age       int       `gorm:"default:0" json:"age"`
	Avatar    []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
