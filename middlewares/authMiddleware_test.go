package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/helper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := &helper.SignedDetails{
		Email: "ana@example.com",
		Uid:   "admin-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedEcho(t *testing.T) http.Handler {
	return Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, _, _, uid := GetUserFromContext(r)
		assert.Equal(t, "ana@example.com", email)
		assert.Equal(t, "admin-1", uid)
		assert.Equal(t, "admin-1", Actor(r))
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthentication_ValidToken(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret)

	req := httptest.NewRequest(http.MethodGet, "/admin/subcategories", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Hour))
	w := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthentication_MissingHeader(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret)

	req := httptest.NewRequest(http.MethodGet, "/admin/subcategories", nil)
	w := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthentication_MalformedHeader(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret)

	req := httptest.NewRequest(http.MethodGet, "/admin/subcategories", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthentication_WrongSignature(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret)

	req := httptest.NewRequest(http.MethodGet, "/admin/subcategories", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "some-other-secret", time.Hour))
	w := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthentication_ExpiredToken(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret)

	req := httptest.NewRequest(http.MethodGet, "/admin/subcategories", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, -time.Hour))
	w := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestActor_FallsBackToSystem(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "system", Actor(req))
}
