package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sushanthnayak-eng/FashionCart/internal/auth"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

type contextKey string

const (
	identityContextKey  contextKey = "identity"
	requestIDContextKey contextKey = "request_id"
)

// Identity is the authenticated caller attached to the request context.
// Requests without a valid token carry the anonymous identity.
type Identity struct {
	UserID string
	Email  string
	Role   domain.Role
}

var anonymous = Identity{Role: domain.RoleAnonymous}

// AuthMiddleware resolves the Bearer token into an Identity. A missing or
// invalid token downgrades the request to anonymous rather than failing;
// RequireRole decides per route whether that is acceptable.
func AuthMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := anonymous

			header := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(header, "Bearer "); ok {
				if claims, err := tokens.Validate(after); err == nil {
					if role, err := domain.ParseRole(claims.Role); err == nil {
						identity = Identity{UserID: claims.UserID, Email: claims.Email, Role: role}
					}
				}
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route group on the caller's role.
func RequireRole(required domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromContext(r.Context())

			if identity.Role == domain.RoleAnonymous {
				respondError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			if !identity.Role.Allows(required) {
				respondError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromContext(ctx context.Context) Identity {
	if identity, ok := ctx.Value(identityContextKey).(Identity); ok {
		return identity
	}
	return anonymous
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}
