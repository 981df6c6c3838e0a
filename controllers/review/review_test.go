package reviewController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"edumart/config"
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"

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
	app.Post("/course/:courseId/review", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), SubmitReview)
	app.Get("/course/:courseId/reviews", GetCourseReviews)
	return app, db
}

func seedEnrolledStudent(t *testing.T, db *gorm.DB) (models.User, courseModels.Course, string) {
	user := models.User{Name: "Reviewer", Username: "reviewer", Email: "reviewer@example.com", Password: "x", Role: middleware.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Title: "Reviewed Course", Price: 10, CategoryID: 1, TeacherID: 99, Status: "ACTIVE", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	enrollment := courseModels.Enrollment{UserID: user.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)
	return user, course, token
}

func postReview(t *testing.T, app *fiber.App, token string, courseID uint, rating int, comment string) int {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(fiber.Map{"rating": rating, "comment": comment}))
	req := httptest.NewRequest("POST", fmt.Sprintf("/course/%d/review", courseID), &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSubmitReview(t *testing.T) {
	app, db := setupTestApp(t)
	user, course, token := seedEnrolledStudent(t, db)

	assert.Equal(t, fiber.StatusCreated, postReview(t, app, token, course.ID, 4, "solid course"))

	var review models.Review
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&review).Error)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, course.ID, review.CourseID)
}

func TestSubmitReviewDuplicateConflict(t *testing.T) {
	app, db := setupTestApp(t)
	_, course, token := seedEnrolledStudent(t, db)

	require.Equal(t, fiber.StatusCreated, postReview(t, app, token, course.ID, 5, "great"))
	assert.Equal(t, fiber.StatusConflict, postReview(t, app, token, course.ID, 1, "changed my mind"))

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubmitReviewRequiresEnrollment(t *testing.T) {
	app, db := setupTestApp(t)
	_, course, _ := seedEnrolledStudent(t, db)

	outsider := models.User{Name: "Outsider", Username: "outsider", Email: "outsider@example.com", Password: "x", Role: middleware.RoleStudent}
	require.NoError(t, db.Create(&outsider).Error)
	token, err := middleware.GenerateJWT(outsider.ID, outsider.Role)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, postReview(t, app, token, course.ID, 3, "never took it"))
}

func TestSubmitReviewRatingOutOfRange(t *testing.T) {
	app, db := setupTestApp(t)
	_, course, token := seedEnrolledStudent(t, db)

	assert.Equal(t, fiber.StatusBadRequest, postReview(t, app, token, course.ID, 0, ""))
	assert.Equal(t, fiber.StatusBadRequest, postReview(t, app, token, course.ID, 6, ""))
}

func TestGetCourseReviewsStats(t *testing.T) {
	app, db := setupTestApp(t)
	_, course, token := seedEnrolledStudent(t, db)

	require.Equal(t, fiber.StatusCreated, postReview(t, app, token, course.ID, 4, "good"))

	req := httptest.NewRequest("GET", fmt.Sprintf("/course/%d/reviews", course.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			AverageRating float64 `json:"average_rating"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4.0, body.Data.AverageRating)
}
