package middleware

import (
	"context"

	"github.com/angelmondragon/shopadmin-backend/internal/apitokens"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the caller resolved by Auth, or nil.
func IdentityFromContext(ctx context.Context) *apitokens.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*apitokens.Identity); ok {
		return v
	}
	return nil
}

// UserIDFromContext returns the authenticated user's id, or 0.
func UserIDFromContext(ctx context.Context) int64 {
	return IdentityFromContext(ctx).UserID()
}

// WithIdentity injects the resolved identity into the context.
func WithIdentity(ctx context.Context, identity *apitokens.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
