package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is one row per active session. The row stores a sha256 of the
// signed token, never the token itself; a signed token whose hash has no row
// here is revoked even though its signature still verifies. Tokens carry no
// expiry, so deleting rows is the only way a session ends.
type SessionToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
