package token

import "github.com/golang-jwt/jwt/v5"

// Claims is the verified payload of an access token. Subject carries the username.
type Claims struct {
	UserID  *int64 `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
