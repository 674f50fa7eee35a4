package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"empdir/inner/common"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupTestConfig() common.Config {
	return common.Config{
		DbDriverName:   "postgres",
		Dsn:            "localhost port=5432 user=wronguser password=wrongpass dbname=postgres sslmode=disable",
		AppName:        "test_app",
		AppVersion:     "1.0.0",
		LogLevel:       "DEBUG",
		LogDevelopMode: true,
		JwtSecret:      testSecret,
	}
}

func setupTestServer() *Server {
	cfg := setupTestConfig()
	return NewServer(cfg, common.NewLogger(cfg))
}

func signTestToken(t *testing.T, claims AuthClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestRecoverMiddleware(t *testing.T) {
	server := setupTestServer()
	server.App.Get("/panic", func(c *fiber.Ctx) error {
		panic("test panic")
	})

	req := httptest.NewRequest("GET", "/panic", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRequestIDMiddleware(t *testing.T) {
	server := setupTestServer()
	server.App.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/id", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestInternalGroupMiddleware(t *testing.T) {
	server := setupTestServer()
	server.GroupInternal.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("internal ok")
	})

	req := httptest.NewRequest("GET", "/internal/test", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Internal-API"))
}

func TestApiV1GroupMiddleware(t *testing.T) {
	server := setupTestServer()
	server.GroupApiV1.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("api v1 ok")
	})

	req := httptest.NewRequest("GET", "/api/v1/test", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "v1", resp.Header.Get("X-API-Version"))
}

func TestAuthMiddleware(t *testing.T) {
	validClaims := AuthClaims{
		UserId:   7,
		Username: "ada",
		Email:    "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   "ada",
		},
	}

	t.Run("Valid token passes and claims are available", func(t *testing.T) {
		server := setupTestServer()
		server.GroupApiV1Protected.Get("/whoami", func(c *fiber.Ctx) error {
			return c.SendString(CurrentUser(c).Username)
		})

		req := httptest.NewRequest("GET", "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, validClaims))

		resp, err := server.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing token", func(t *testing.T) {
		server := setupTestServer()
		server.GroupApiV1Protected.Get("/whoami", func(c *fiber.Ctx) error {
			return c.SendString("never")
		})

		req := httptest.NewRequest("GET", "/api/v1/whoami", nil)

		resp, err := server.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var envelope common.Response[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.False(t, envelope.Success)
	})

	t.Run("Expired token", func(t *testing.T) {
		server := setupTestServer()
		server.GroupApiV1Protected.Get("/whoami", func(c *fiber.Ctx) error {
			return c.SendString("never")
		})

		expired := validClaims
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

		req := httptest.NewRequest("GET", "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, expired))

		resp, err := server.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		server := setupTestServer()
		server.GroupApiV1Protected.Get("/whoami", func(c *fiber.Ctx) error {
			return c.SendString("never")
		})

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims)
		signed, err := token.SignedString([]byte("another-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, err := server.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
