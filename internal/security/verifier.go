package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is what the HTTP layer needs from an access token: the actor identity.
type Claims struct {
	ActorID uuid.UUID
	Role    string
	Exp     time.Time
	Issuer  string
}

type TokenVerifier interface {
	VerifyAccessToken(token string) (Claims, error)
}

// HS256Verifier checks tokens issued by the external identity provider with a shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewHS256Verifier verifies against secret. A non-empty issuer must match the iss claim.
func NewHS256Verifier(secret, issuer string) *HS256Verifier {
	return &HS256Verifier{secret: []byte(secret), issuer: issuer}
}

type accessClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (v *HS256Verifier) VerifyAccessToken(token string) (Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	// uid wins over sub; providers differ on which one they fill
	raw := strings.TrimSpace(claims.UserID)
	if raw == "" {
		raw = strings.TrimSpace(claims.Subject)
	}
	actor, err := uuid.Parse(raw)
	if err != nil || actor == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return Claims{
		ActorID: actor,
		Role:    claims.Role,
		Exp:     exp,
		Issuer:  claims.Issuer,
	}, nil
}
