package middleware

import (
	"net/http/httptest"
	"testing"

	"edumart/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userId").(uint)
		role, _ := c.Locals("role").(string)
		return c.JSON(fiber.Map{"user_id": userID, "role": role})
	})
	return app
}

func TestJWTRoundtripBearerHeader(t *testing.T) {
	app := setupAuthApp(t)

	token, err := GenerateJWT(42, RoleTeacher)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTRoundtripCookie(t *testing.T) {
	app := setupAuthApp(t)

	token, err := GenerateJWT(42, RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", AuthCookieName+"="+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMissingToken(t *testing.T) {
	app := setupAuthApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTTamperedToken(t *testing.T) {
	app := setupAuthApp(t)

	token, err := GenerateJWT(42, RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTWrongKeyRejected(t *testing.T) {
	app := setupAuthApp(t)

	token, err := GenerateJWT(42, RoleStudent)
	require.NoError(t, err)

	config.AppConfig.JWTKey = "rotated-secret"

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
