package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManoharMakarla0412/coworking/internal/app"
)

func authRouter(jwtSecret string, staticTokens []string) *gin.Engine {
	router := gin.New()
	router.GET("/protected", app.AuthMiddleware(jwtSecret, staticTokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w := get(authRouter("", []string{"tok"}), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	w := get(authRouter("", []string{"tok"}), "tok")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_StaticToken(t *testing.T) {
	router := authRouter("", []string{"tok-a", "tok-b"})

	assert.Equal(t, http.StatusOK, get(router, "Bearer tok-b").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer nope").Code)
}

func TestAuthMiddleware_JWT(t *testing.T) {
	secret := "hmac-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	router := authRouter(secret, nil)
	assert.Equal(t, http.StatusOK, get(router, "Bearer "+signed).Code)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signedExpired, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer "+signedExpired).Code)
}
