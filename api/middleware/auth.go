package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/shopadmin-backend/api/responses"
	"github.com/angelmondragon/shopadmin-backend/api/validators"
	"github.com/angelmondragon/shopadmin-backend/internal/apitokens"
	"github.com/angelmondragon/shopadmin-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/shopadmin-backend/pkg/redis"
)

// AuthFailurePolicy throttles clients that keep presenting bad credentials.
type AuthFailurePolicy struct {
	window time.Duration
	limit  int64
}

// NewAuthFailurePolicy builds a policy from the rate limit config.
func NewAuthFailurePolicy(cfg config.AuthRateLimitConfig) AuthFailurePolicy {
	return AuthFailurePolicy{window: cfg.FailureWindow, limit: int64(cfg.FailureIPLimit)}
}

func (p AuthFailurePolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

// RouteScopes maps "METHOD /path" to the scope a token must carry for that request.
type RouteScopes map[string]string

// For returns the scope required by r, or "" when the route is open to any token.
func (s RouteScopes) For(r *http.Request) string {
	if len(s) == 0 || r == nil {
		return ""
	}
	return s[r.Method+" "+trimSlash(r.URL.Path)]
}

// Auth resolves the bearer token into an identity and stores it on the request context.
// A token lacking the scope required by scopes is rejected before its usage is stamped.
// A nil counter disables failure throttling.
func Auth(authenticator apitokens.Authenticator, counter pkgredis.FailureCounter, policy AuthFailurePolicy, scopes RouteScopes, logg *logger.Logger) func(http.Handler) http.Handler {
	throttled := counter != nil && policy.enabled()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := clientIP(r)

			if throttled {
				count, err := counter.Failures(ctx, ip)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count >= policy.limit {
					respondRateLimited(ctx, logg, w, policy, ip, count)
					return
				}
			}

			plain, _ := validators.BearerToken(r.Header.Get("Authorization"))
			identity, err := authenticator.Authenticate(ctx, plain, ip, scopes.For(r))
			if err != nil {
				if throttled && pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
					if _, recErr := counter.RecordFailure(ctx, ip, policy.window); recErr != nil && logg != nil {
						logg.Error(ctx, "auth.failure_record_failed", recErr)
					}
				}
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithIdentity(ctx, identity)
			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.UserID())
				ctx = logg.WithTokenID(ctx, identity.Token.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects identities whose token lacks scope. It must run after Auth.
func RequireScope(scope string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil || identity.Token == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, apitokens.MsgTokenMissing))
				return
			}
			if !identity.Token.HasScope(scope) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, apitokens.MsgScopeForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthFailurePolicy, ip string, count int64) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"ip":             ip,
			"failures":       count,
			"limit":          policy.limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many failed authentication attempts"))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
