package models

import (
	"time"
)

// RefreshToken represents a JWT refresh token issued to a portal session.
// Tokens are rotated on every refresh and revoked on logout.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	// Relation to the owning user
	User User `gorm:"foreignKey:UserID" json:"-"`
}
