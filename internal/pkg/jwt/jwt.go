package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// OwnerClaim carries the identity-provider user id. Sites, workers, attendance
// and payments are all owned by the uid that created the site.
const OwnerClaim = "uid"

var ErrOwnerClaimMissing = errors.New("uid claim is missing or invalid")

type Service interface {
	GenerateAccessToken(uid string, email string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken is used by tests and local tooling; production tokens
// come from the identity provider and are only verified here.
func (j *JWTService) GenerateAccessToken(uid string, email string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		OwnerClaim: uid,
		"email":    email,
		"type":     "access",
		"exp":      expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// OwnerFromContext extracts the tenant owner uid set by jwtauth.Verifier.
func OwnerFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	uid, ok := claims[OwnerClaim].(string)
	if !ok || uid == "" {
		return "", ErrOwnerClaimMissing
	}
	return uid, nil
}
