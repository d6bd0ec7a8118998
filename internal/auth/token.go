package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the 30-day sessions the SPA client expects.
const TokenTTL = 30 * 24 * time.Hour

// GenerateToken mints an HS256 bearer token carrying the user's id and
// admin flag.
func GenerateToken(userID uint, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET_KEY")))
}
