package enrollmentController

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"edumart/config"
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"edumart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		SaltRound:         4,
		MidtransServerKey: "test-server-key",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/course/:courseId/checkout", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), Checkout)
	app.Post("/payment/webhook", PaymentWebhook)
	return app, db
}

func seedStudent(t *testing.T, db *gorm.DB) (models.User, string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), 4)
	require.NoError(t, err)

	user := models.User{
		Name:     "Test Student",
		Username: "student1",
		Email:    "student1@example.com",
		Password: string(hashed),
		Role:     middleware.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

func seedActiveCourse(t *testing.T, db *gorm.DB, price float64) courseModels.Course {
	course := courseModels.Course{
		Title:       "Test Course",
		Price:       price,
		CategoryID:  1,
		TeacherID:   99,
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func checkoutRequest(t *testing.T, app *fiber.App, token string, courseID uint, body interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest("POST", fmt.Sprintf("/course/%d/checkout", courseID), &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func webhookSignature(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + config.AppConfig.MidtransServerKey))
	return hex.EncodeToString(sum[:])
}

func webhookRequest(t *testing.T, app *fiber.App, payload map[string]string) int {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	req := httptest.NewRequest("POST", "/payment/webhook", &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func stubGateway(t *testing.T) *int {
	calls := new(int)
	original := utils.CreatePaymentSession
	utils.CreatePaymentSession = func(orderID string, amount float64, customerName, customerEmail string) (*utils.PaymentSession, error) {
		*calls++
		return &utils.PaymentSession{Token: "session-token", RedirectURL: "https://gateway.example/pay"}, nil
	}
	t.Cleanup(func() { utils.CreatePaymentSession = original })
	return calls
}

func TestCheckoutFreeCourseSkipsGateway(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 0)
	calls := stubGateway(t)

	status := checkoutRequest(t, app, token, course.ID, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, *calls)

	var payment courseModels.Payment
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&payment).Error)
	assert.Equal(t, courseModels.PaymentSuccessful, payment.Status)
	assert.NotNil(t, payment.PaidAt)
	assert.Equal(t, 0.00, payment.Amount)
}

func TestCheckoutPaidCourseOpensSession(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 49.99)
	calls := stubGateway(t)

	status := checkoutRequest(t, app, token, course.ID, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, *calls)

	var payment courseModels.Payment
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&payment).Error)
	assert.Equal(t, courseModels.PaymentPending, payment.Status)
	assert.Equal(t, "session-token", payment.SessionID)
	assert.Equal(t, 49.99, payment.Amount)
}

func TestCheckoutDuplicateEnrollment(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 49.99)
	stubGateway(t)

	require.Equal(t, fiber.StatusOK, checkoutRequest(t, app, token, course.ID, nil))
	assert.Equal(t, fiber.StatusConflict, checkoutRequest(t, app, token, course.ID, nil))

	var enrollments int64
	db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)
}

func TestCheckoutUnpublishedCourse(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)

	course := courseModels.Course{Title: "Draft", Price: 10, CategoryID: 1, TeacherID: 99, Status: "DRAFT"}
	require.NoError(t, db.Create(&course).Error)

	assert.Equal(t, fiber.StatusNotFound, checkoutRequest(t, app, token, course.ID, nil))
}

func TestCheckoutWithPromotion(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 100)
	stubGateway(t)

	promo := models.Promotion{
		Code:          "HALFOFF",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 50,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
		IsActive:      true,
	}
	require.NoError(t, db.Create(&promo).Error)

	status := checkoutRequest(t, app, token, course.ID, fiber.Map{"promotion_code": "halfoff"})
	assert.Equal(t, fiber.StatusOK, status)

	var payment courseModels.Payment
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&payment).Error)
	assert.Equal(t, 50.00, payment.Amount)
	assert.Equal(t, 50.00, payment.DiscountAmount)
	require.NotNil(t, payment.PromotionID)
	assert.Equal(t, promo.ID, *payment.PromotionID)

	// Usage is not counted until the payment settles
	var stored models.Promotion
	require.NoError(t, db.First(&stored, promo.ID).Error)
	assert.Equal(t, 0, stored.UsedCount)
}

func TestCheckoutInvalidPromotion(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 100)
	stubGateway(t)

	status := checkoutRequest(t, app, token, course.ID, fiber.Map{"promotion_code": "NOSUCH"})
	assert.Equal(t, fiber.StatusNotFound, status)

	var enrollments int64
	db.Model(&courseModels.Enrollment{}).Count(&enrollments)
	assert.Equal(t, int64(0), enrollments)
}

func TestWebhookSettlesPaymentOnce(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 100)
	stubGateway(t)

	promo := models.Promotion{
		Code:          "SETTLE10",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 10,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
		IsActive:      true,
	}
	require.NoError(t, db.Create(&promo).Error)

	require.Equal(t, fiber.StatusOK, checkoutRequest(t, app, token, course.ID, fiber.Map{"promotion_code": "SETTLE10"}))

	var payment courseModels.Payment
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&payment).Error)

	payload := map[string]string{
		"order_id":           payment.OrderID,
		"status_code":        "200",
		"gross_amount":       "90.00",
		"transaction_status": "settlement",
		"signature_key":      webhookSignature(payment.OrderID, "200", "90.00"),
	}
	assert.Equal(t, fiber.StatusOK, webhookRequest(t, app, payload))

	require.NoError(t, db.Where("id = ?", payment.ID).First(&payment).Error)
	assert.Equal(t, courseModels.PaymentSuccessful, payment.Status)
	assert.NotNil(t, payment.PaidAt)

	var stored models.Promotion
	require.NoError(t, db.First(&stored, promo.ID).Error)
	assert.Equal(t, 1, stored.UsedCount)

	// Replay must not double-count promotion usage
	assert.Equal(t, fiber.StatusOK, webhookRequest(t, app, payload))
	require.NoError(t, db.First(&stored, promo.ID).Error)
	assert.Equal(t, 1, stored.UsedCount)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 100)
	stubGateway(t)

	require.Equal(t, fiber.StatusOK, checkoutRequest(t, app, token, course.ID, nil))

	var payment courseModels.Payment
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&payment).Error)

	status := webhookRequest(t, app, map[string]string{
		"order_id":           payment.OrderID,
		"status_code":        "200",
		"gross_amount":       "100.00",
		"transaction_status": "settlement",
		"signature_key":      "forged",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	require.NoError(t, db.Where("id = ?", payment.ID).First(&payment).Error)
	assert.Equal(t, courseModels.PaymentPending, payment.Status)
}

func TestWebhookUnknownOrder(t *testing.T) {
	app, _ := setupTestApp(t)

	status := webhookRequest(t, app, map[string]string{
		"order_id":           "ENR-missing",
		"status_code":        "200",
		"gross_amount":       "10.00",
		"transaction_status": "settlement",
		"signature_key":      webhookSignature("ENR-missing", "200", "10.00"),
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestWebhookExpireLeavesPaymentPending(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := seedStudent(t, db)
	course := seedActiveCourse(t, db, 100)
	stubGateway(t)

	require.Equal(t, fiber.StatusOK, checkoutRequest(t, app, token, course.ID, nil))

	var payment courseModels.Payment
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&payment).Error)

	status := webhookRequest(t, app, map[string]string{
		"order_id":           payment.OrderID,
		"status_code":        "202",
		"gross_amount":       "100.00",
		"transaction_status": "expire",
		"signature_key":      webhookSignature(payment.OrderID, "202", "100.00"),
	})
	assert.Equal(t, fiber.StatusOK, status)

	require.NoError(t, db.Where("id = ?", payment.ID).First(&payment).Error)
	assert.Equal(t, courseModels.PaymentPending, payment.Status)
}
