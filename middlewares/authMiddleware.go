package middleware

import (
	"context"
	"net/http"

	helper "github.com/MateAKD/Carta_Menu_Backend/helper"
)

// Context keys to store admin identity
type contextKey string

const (
	EmailKey     contextKey = "email"
	FirstNameKey contextKey = "first_name"
	LastNameKey  contextKey = "last_name"
	UidKey       contextKey = "uid"
)

// Authentication guards the admin surface: it rejects requests without a
// valid bearer token before anything touches the store.
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, problem := helper.BearerToken(r)
		if problem != "" {
			http.Error(w, problem, http.StatusUnauthorized)
			return
		}

		claims, problem := helper.ValidateToken(tokenString)
		if problem != "" {
			http.Error(w, problem, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
		ctx = context.WithValue(ctx, FirstNameKey, claims.FirstName)
		ctx = context.WithValue(ctx, LastNameKey, claims.LastName)
		ctx = context.WithValue(ctx, UidKey, claims.Uid)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext retrieves the authenticated admin from the request
// context.
func GetUserFromContext(r *http.Request) (email, firstName, lastName, uid string) {
	email, _ = r.Context().Value(EmailKey).(string)
	firstName, _ = r.Context().Value(FirstNameKey).(string)
	lastName, _ = r.Context().Value(LastNameKey).(string)
	uid, _ = r.Context().Value(UidKey).(string)
	return
}

// Actor returns the best identity we have for audit records: uid, then
// email, then a generic marker for unauthenticated internal callers.
func Actor(r *http.Request) string {
	_, _, _, uid := GetUserFromContext(r)
	if uid != "" {
		return uid
	}
	email, _, _, _ := GetUserFromContext(r)
	if email != "" {
		return email
	}
	return "system"
}
