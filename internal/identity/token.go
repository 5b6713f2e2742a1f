package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"feednbounce-backend/internal/apperr"
	"feednbounce-backend/internal/models"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

// IssueToken signs an HS256 JWT carrying the user's internal id, external
// id and role.
func IssueToken(secret string, user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      user.ID.Hex(),
		"user_id": user.ExternalUserID,
		"role":    user.Role,
		"exp":     time.Now().Add(TokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a raw JWT and returns the identity it asserts. The
// claims are trusted as-is; no storage lookup happens here.
func ParseToken(secret, raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apperr.Wrap(apperr.CodeUnauthorized, err, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperr.New(apperr.CodeUnauthorized, "Invalid token")
	}

	ident := Identity{
		InternalID:     stringClaim(claims, "id"),
		ExternalUserID: stringClaim(claims, "user_id"),
		Role:           stringClaim(claims, "role"),
	}
	if ident.ExternalUserID == "" {
		return Identity{}, apperr.New(apperr.CodeUnauthorized, "Invalid token")
	}
	return ident, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
