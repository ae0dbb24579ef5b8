package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"knowledgehub/internal/pkg/jwtutil"
)

const testSecret = "test-secret"

func newGuardedRouter(t *testing.T, guard gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", guard, func(c *gin.Context) {
		if id, ok := CurrentUserID(c); ok {
			c.String(http.StatusOK, fmt.Sprintf("user:%d", id))
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := jwtutil.GenerateToken(testSecret, time.Hour, 7, "alice", "alice@example.com")
	require.NoError(t, err)
	return tok
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	router := newGuardedRouter(t, AuthJWT(testSecret))
	rec := doRequest(router, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadScheme(t *testing.T) {
	router := newGuardedRouter(t, AuthJWT(testSecret))
	rec := doRequest(router, "Basic abc")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_InvalidToken(t *testing.T) {
	router := newGuardedRouter(t, AuthJWT(testSecret))
	rec := doRequest(router, "Bearer not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	tok, err := jwtutil.GenerateToken(testSecret, -time.Minute, 7, "alice", "alice@example.com")
	require.NoError(t, err)

	router := newGuardedRouter(t, AuthJWT(testSecret))
	rec := doRequest(router, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	router := newGuardedRouter(t, AuthJWT(testSecret))
	rec := doRequest(router, "Bearer "+validToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user:7", rec.Body.String())
}

func TestOptionalAuthJWT_AnonymousPasses(t *testing.T) {
	router := newGuardedRouter(t, OptionalAuthJWT(testSecret))
	rec := doRequest(router, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "anonymous", rec.Body.String())
}

// A token that is present must still validate even on public routes.
func TestOptionalAuthJWT_InvalidTokenRejected(t *testing.T) {
	router := newGuardedRouter(t, OptionalAuthJWT(testSecret))
	rec := doRequest(router, "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthJWT_ValidTokenResolved(t *testing.T) {
	router := newGuardedRouter(t, OptionalAuthJWT(testSecret))
	rec := doRequest(router, "Bearer "+validToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user:7", rec.Body.String())
}
