package models

import (
	"slices"
	"time"
)

// APIToken stores the sha256 hash of a bearer secret; the plaintext is never persisted.
type APIToken struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     int64      `gorm:"column:user_id;not null;index"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name       string     `gorm:"column:name;not null"`
	TokenHash  string     `gorm:"column:token_hash;size:64;not null;uniqueIndex"`
	Scopes     []string   `gorm:"column:scopes;serializer:json"`
	ExpiresAt  *time.Time `gorm:"column:expires_at"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
	IP         *string    `gorm:"column:ip;size:45"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (APIToken) TableName() string { return "api_tokens" }

// IsValid reports whether the token is inside its validity window at now.
// A nil expiry never expires.
func (t *APIToken) IsValid(now time.Time) bool {
	if t == nil {
		return false
	}
	return t.ExpiresAt == nil || now.Before(*t.ExpiresAt)
}

// HasScope reports whether the token carries scope. An empty scope is always satisfied.
func (t *APIToken) HasScope(scope string) bool {
	if scope == "" {
		return true
	}
	return t != nil && slices.Contains(t.Scopes, scope)
}
