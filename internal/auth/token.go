// internal/auth/token.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"userbase/internal/util"
)

// Claims includes the registered claims plus the authenticated user's ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// GenerateToken issues a signed HS256 token bound to userID, valid for ttl.
func GenerateToken(userID int64, secretKey []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the token's signature and expiry and returns the
// embedded user ID. Bad signature, expiry, a non-HMAC signing method, or a
// malformed token all yield util.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, util.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return 0, util.ErrInvalidToken
	}

	if !token.Valid {
		return 0, util.ErrInvalidToken
	}

	return claims.UserID, nil
}
