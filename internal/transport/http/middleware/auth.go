package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/security"
	"github.com/baechuer/vidshare/internal/transport/http/response"
)

type ctxKey string

const (
	ctxActorID ctxKey = "actor_id"
	ctxRole    ctxKey = "role"
)

var errMissingBearer = errors.New("missing bearer token")

type AuthMiddleware struct {
	verifier security.TokenVerifier
}

func NewAuth(v security.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: v}
}

// Require rejects requests without a valid bearer token.
func (a *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.parse(r)
		if err != nil {
			zlog.Debug().Err(err).Str("path", r.URL.Path).Msg("auth rejected")
			reason := "invalid token"
			switch {
			case errors.Is(err, errMissingBearer):
				reason = "missing bearer token"
			case errors.Is(err, security.ErrTokenExpired):
				reason = "token expired"
			}
			response.Fail(w, http.StatusUnauthorized, response.CodeUnauthenticated, "unauthenticated",
				map[string]string{"reason": reason}, response.RequestID(r))
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// Optional resolves the viewer when a valid token is present. A missing or
// unusable token continues anonymously.
func (a *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.parse(r)
		if err != nil {
			if !errors.Is(err, errMissingBearer) {
				zlog.Debug().Err(err).Str("path", r.URL.Path).Msg("ignoring unusable token")
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (a *AuthMiddleware) parse(r *http.Request) (security.Claims, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, raw, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
		return security.Claims{}, errMissingBearer
	}
	return a.verifier.VerifyAccessToken(strings.TrimSpace(raw))
}

func withClaims(ctx context.Context, c security.Claims) context.Context {
	ctx = context.WithValue(ctx, ctxActorID, c.ActorID)
	return context.WithValue(ctx, ctxRole, c.Role)
}

// WithActor is used by tests and internal callers to impersonate an actor.
func WithActor(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxActorID, id)
}

// ActorID is uuid.Nil outside Require/Optional or for anonymous requests.
func ActorID(r *http.Request) uuid.UUID {
	if v, ok := r.Context().Value(ctxActorID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// Viewer is the optional actor as seen by the aggregation queries.
func Viewer(r *http.Request) uuid.NullUUID {
	return domain.Viewer(ActorID(r))
}

func Role(r *http.Request) string {
	if v, ok := r.Context().Value(ctxRole).(string); ok {
		return v
	}
	return ""
}
