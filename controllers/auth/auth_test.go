package authController

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"edumart/config"
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	authValidators "edumart/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/register", authValidators.Register(), Register)
	app.Post("/auth/login", Login)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body fiber.Map) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	parsed := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func TestRegisterAndLogin(t *testing.T) {
	app, db := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Ada Lovelace",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.Equal(t, middleware.RoleStudent, user.Role)
	assert.NotEqual(t, "supersecret", user.Password)

	status, body := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ada@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusOK, status)

	data, _ := body["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.NotEmpty(t, data["token"])

	var trackings int64
	db.Model(&models.LoginTracking{}).Count(&trackings)
	assert.Equal(t, int64(1), trackings)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := setupTestApp(t)

	payload := fiber.Map{
		"name":     "Ada Lovelace",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "supersecret",
	}
	status, _ := postJSON(t, app, "/auth/register", payload)
	require.Equal(t, fiber.StatusCreated, status)

	payload["username"] = "ada2"
	status, _ = postJSON(t, app, "/auth/register", payload)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "A",
		"username": "ab",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Sneaky",
		"username": "sneaky",
		"email":    "sneaky@example.com",
		"password": "supersecret",
		"role":     "ADMIN",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Ada Lovelace",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ada@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginBlockedUser(t *testing.T) {
	app, db := setupTestApp(t)

	status, _ := postJSON(t, app, "/auth/register", fiber.Map{
		"name":     "Ada Lovelace",
		"username": "ada",
		"email":    "ada@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, status)

	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "ada@example.com").
		Update("is_blocked", true).Error)

	status, _ = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "ada@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}
