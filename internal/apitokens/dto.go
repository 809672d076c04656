package apitokens

import (
	"time"

	"github.com/angelmondragon/shopadmin-backend/pkg/db/models"
)

// TokenDTO is the public view of a token; the hash never leaves the service.
type TokenDTO struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Scopes     []string   `json:"scopes"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	IP         *string    `json:"ip"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IssuedTokenDTO carries the plaintext secret, returned only at issue time.
type IssuedTokenDTO struct {
	TokenDTO
	PlainTextToken string `json:"plain_text_token"`
}

func NewTokenDTO(t *models.APIToken) TokenDTO {
	scopes := t.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return TokenDTO{
		ID:         t.ID,
		UserID:     t.UserID,
		Name:       t.Name,
		Scopes:     scopes,
		ExpiresAt:  t.ExpiresAt,
		LastUsedAt: t.LastUsedAt,
		IP:         t.IP,
		CreatedAt:  t.CreatedAt,
	}
}
