package models

import "time"

// RevokedToken is a bearer token that must never be accepted again.
// ExpiresAt is the token's own expiry; once it has passed the row is
// redundant and may be swept.
type RevokedToken struct {
	Token     string    `gorm:"primaryKey;size:1024" json:"token"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	RevokedAt time.Time `gorm:"not null;autoCreateTime" json:"revoked_at"`
}

// TableName overrides the table name
func (RevokedToken) TableName() string {
	return "token_blocklist"
}
