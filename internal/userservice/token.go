package userservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/common"
)

var (
	ErrInvalidToken = errors.New("invalid or expired authentication token")
	ErrTokenRevoked = errors.New("authentication token has been revoked")
)

// Claims is the payload of an access token. The subject is the username.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role.Implies(RoleAdmin)
}

// IsAuthor is true for authors and admins.
func (c *Claims) IsAuthor() bool {
	return c.Role.Implies(RoleAuthor)
}

type TokenManager struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoked *common.Cache
}

func NewTokenManager(secret, issuer string, ttl time.Duration, revoked *common.Cache) *TokenManager {
	return &TokenManager{
		secret:  []byte(secret),
		issuer:  issuer,
		ttl:     ttl,
		revoked: revoked,
	}
}

// Generate signs a HS256 token for u.
func (tm *TokenManager) Generate(u *User) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.Username,
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return token, nil
}

// Parse verifies the signature, algorithm, issuer and expiry of a token and
// rejects tokens that have been revoked.
func (tm *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	if tm.revoked.Has(common.CacheKeyRevokedToken(claims.ID)) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke denies the token until it would have expired anyway.
func (tm *TokenManager) Revoke(claims *Claims) {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return
	}

	tm.revoked.Put(common.CacheKeyRevokedToken(claims.ID), ttl)
}
