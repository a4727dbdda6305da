package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskio-app/taskio/internal/config"
)

// ErrInvalidToken covers every verification failure: malformed, expired and
// tampered tokens are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// Claims is the identity encoded into every issued token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// IssueToken signs a token carrying the user's identity and role.
func IssueToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(config.App.JWTExp).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.App.JWTSecret)
}

// VerifyToken checks signature and expiry and returns the decoded claims.
func VerifyToken(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return config.App.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, _ := mapClaims["user_id"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" || role == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: userID, Email: email, Role: role}, nil
}

// ExtractTokenFromHeader accepts only a "Bearer <token>" Authorization value.
func ExtractTokenFromHeader(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return header[len(prefix):]
}
