package userservice

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/pressroom/internal/common"
)

const testSecret = "test-secret-with-enough-entropy"

func newTestTokenManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(testSecret, "pressroom-test", ttl, common.NewCache(0, 0))
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := newTestTokenManager(time.Hour)

	token, err := tm.Generate(&User{Username: "alice", Role: RoleAuthor})
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, RoleAuthor, claims.Role)
	assert.Equal(t, "pressroom-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.IsAuthor())
	assert.False(t, claims.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_Parse(t *testing.T) {
	tm := newTestTokenManager(time.Hour)
	u := &User{Username: "bob", Role: RoleUser}

	valid, err := tm.Generate(u)
	require.NoError(t, err)

	expired, err := newTestTokenManager(-time.Minute).Generate(u)
	require.NoError(t, err)

	otherIssuer, err := NewTokenManager(testSecret, "someone-else", time.Hour, common.NewCache(0, 0)).Generate(u)
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("another-secret", "pressroom-test", time.Hour, common.NewCache(0, 0)).Generate(u)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Subject:   "bob",
			Issuer:    "pressroom-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid", token: valid},
		{name: "expired", token: expired, wantErr: ErrInvalidToken},
		{name: "wrong issuer", token: otherIssuer, wantErr: ErrInvalidToken},
		{name: "wrong secret", token: otherSecret, wantErr: ErrInvalidToken},
		{name: "alg none", token: noneAlg, wantErr: ErrInvalidToken},
		{name: "garbage", token: "not.a.token", wantErr: ErrInvalidToken},
		{name: "empty", token: "", wantErr: ErrInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tm.Parse(tc.token)
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestTokenManager_Revoke(t *testing.T) {
	tm := newTestTokenManager(time.Hour)

	first, err := tm.Generate(&User{Username: "carol", Role: RoleUser})
	require.NoError(t, err)
	second, err := tm.Generate(&User{Username: "carol", Role: RoleUser})
	require.NoError(t, err)

	claims, err := tm.Parse(first)
	require.NoError(t, err)

	tm.Revoke(claims)

	_, err = tm.Parse(first)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// other sessions of the same user stay valid
	_, err = tm.Parse(second)
	assert.NoError(t, err)
}
