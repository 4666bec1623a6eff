package auth

import (
	"errors"
	"fmt"
	"time"

	"flightontime/backend/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "flightontime"

var ErrInvalidToken = errors.New("invalid token")

type callerTokenClaims struct {
	Role constants.CallerRole `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 caller token for subject
func IssueToken(secret []byte, subject string, role constants.CallerRole, ttl time.Duration) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	now := time.Now()
	claims := callerTokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates signature, issuer and expiry and returns the caller claims
func ParseToken(secret []byte, raw string) (*JWTClaims, error) {
	var claims callerTokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" || !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: missing subject or role", ErrInvalidToken)
	}

	return &JWTClaims{
		Subject:   claims.Subject,
		RoleValue: claims.Role,
		TokenID:   claims.ID,
	}, nil
}
