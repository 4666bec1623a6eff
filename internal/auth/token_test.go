package auth

import (
	"context"
	"testing"
	"time"

	"flightontime/backend/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, "caller-1", constants.RoleClient, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)

	require.NoError(t, err)
	assert.Equal(t, "caller-1", claims.UserID())
	assert.Equal(t, "client", claims.Role())
	assert.Equal(t, "JWT", claims.Source())
	assert.NotEmpty(t, claims.TokenID)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := IssueToken(testSecret, "caller-1", constants.RoleAdmin, time.Hour)
	require.NoError(t, err)

	expired, err := IssueToken(testSecret, "caller-1", constants.RoleClient, -time.Minute)
	require.NoError(t, err)

	noneAlg := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "caller-1", "role": "admin", "iss": "flightontime",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := noneAlg.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]struct {
		secret []byte
		token  string
	}{
		"wrong secret": {[]byte("other"), valid},
		"expired":      {testSecret, expired},
		"none alg":     {testSecret, unsigned},
		"garbage":      {testSecret, "not-a-token"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(tt.secret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIssueToken_UnknownRole(t *testing.T) {
	_, err := IssueToken(testSecret, "caller-1", constants.CallerRole("pilot"), time.Hour)
	assert.Error(t, err)
}

func TestJWTClaims_HasPermission(t *testing.T) {
	client := &JWTClaims{Subject: "c", RoleValue: constants.RoleClient}
	admin := &JWTClaims{Subject: "a", RoleValue: constants.RoleAdmin}

	assert.True(t, client.HasPermission(ActionPredict))
	assert.True(t, client.HasPermission(ActionReadStats))
	assert.False(t, client.HasPermission("purge_predictions"))
	assert.True(t, admin.HasPermission("purge_predictions"))
}

func TestUserClaimsContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetUserClaims(ctx))

	ctx = SetUserClaims(ctx, &JWTClaims{Subject: "caller-1", RoleValue: constants.RoleClient})
	require.NotNil(t, GetUserClaims(ctx))
	assert.Equal(t, "caller-1", GetUserClaims(ctx).UserID())
}
