package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/vidshare/internal/security"
)

const (
	testSecret = "test-secret"
	testIssuer = "test-issuer"
)

func signToken(t *testing.T, uid string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"uid":  uid,
		"role": "user",
		"iss":  testIssuer,
		"exp":  exp.Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware_Require(t *testing.T) {
	auth := NewAuth(security.NewHS256Verifier(testSecret, testIssuer))
	actor := uuid.New()

	t.Run("valid_token_sets_actor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, actor.String(), time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()

		auth.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, actor, ActorID(r))
			assert.True(t, Viewer(r).Valid)
			assert.Equal(t, "user", Role(r))
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	cases := []struct {
		name   string
		header string
		reason string
	}{
		{"missing_header", "", "missing bearer token"},
		{"wrong_scheme", "Basic abc", "missing bearer token"},
		{"expired", "Bearer " + signToken(t, actor.String(), time.Now().Add(-time.Hour)), "token expired"},
		{"garbage", "Bearer not-a-jwt", "invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			called := false

			auth.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).ServeHTTP(rr, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "unauthenticated", body["code"])
			assert.Equal(t, tc.reason, body["meta"].(map[string]any)["reason"])
		})
	}
}

func TestAuthMiddleware_Optional(t *testing.T) {
	auth := NewAuth(security.NewHS256Verifier(testSecret, testIssuer))
	actor := uuid.New()

	run := func(header string) (uuid.NullUUID, int) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		var got uuid.NullUUID
		auth.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = Viewer(r)
		})).ServeHTTP(rr, req)
		return got, rr.Code
	}

	v, code := run("")
	assert.False(t, v.Valid)
	assert.Equal(t, http.StatusOK, code)

	v, _ = run("Bearer " + signToken(t, actor.String(), time.Now().Add(time.Hour)))
	assert.True(t, v.Valid)
	assert.Equal(t, actor, v.UUID)

	v, code = run("Bearer garbage")
	assert.False(t, v.Valid)
	assert.Equal(t, http.StatusOK, code)
}
