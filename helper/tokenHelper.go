package helper

import (
	"fmt"
	"net/http"
	"strings"

	database "github.com/MateAKD/Carta_Menu_Backend/config"
	"github.com/golang-jwt/jwt/v5"
)

// SignedDetails are the claims the external auth service puts in admin
// tokens. This backend only validates them; issuing tokens is not its job.
type SignedDetails struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Uid       string `json:"uid"`
	jwt.RegisteredClaims
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return value is a human-readable problem, empty on
// success.
func BearerToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "No Authorization header provided"
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Invalid Authorization format"
	}
	return parts[1], ""
}

// ValidateToken checks that a JWT is well-formed, signed with our secret and
// not expired.
func ValidateToken(signedToken string) (*SignedDetails, string) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(database.Load().SecretKey), nil
		},
	)

	if err != nil {
		return nil, fmt.Sprintf("token parsing error: %v", err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, "the token is invalid"
	}

	return claims, ""
}
