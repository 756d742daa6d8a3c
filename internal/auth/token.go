package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/webdevreplits/azure-01/internal/common"
)

// Claims carried by a web session token. Permissions are intentionally not
// serialized: they are re-resolved from the role on every request, so a
// role change takes effect without re-issuing tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// GenerateToken signs a session token for the identity with an absolute
// expiry of validityDuration from now.
func GenerateToken(identity *SessionIdentity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Username: identity.Username,
		Email:    identity.Email,
		Role:     identity.Role,
	})

	return token.SignedString(secretKey)
}

// IdentityFromToken validates a session token and rebuilds the
// SessionIdentity from its claims. Expired, malformed or badly signed
// tokens all map to common.ErrInvalidToken.
func IdentityFromToken(tokenString string, secretKey []byte) (*SessionIdentity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	identity, err := NewSessionIdentity(claims.Username, claims.Email, claims.Role)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	return identity, nil
}
