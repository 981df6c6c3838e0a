package enrollmentController

import (
	"edumart/database"
	"edumart/middleware"
	courseModels "edumart/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetUserEnrollments lists the caller's enrollments with course and
// payment info
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).Preload("Course")

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithPayment struct {
		courseModels.Enrollment
		PaymentStatus string `json:"payment_status"`
	}

	result := make([]EnrollmentWithPayment, len(enrollments))
	for i, e := range enrollments {
		result[i] = EnrollmentWithPayment{Enrollment: e}
		var payment courseModels.Payment
		if err := database.Database.Db.Where("enrollment_id = ? AND is_deleted = ?", e.ID, false).
			Order("created_at desc").First(&payment).Error; err == nil {
			result[i].PaymentStatus = payment.Status
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
