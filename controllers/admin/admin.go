package adminController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns platform-wide counters and revenue
func GetDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalStudents, totalTeachers int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", middleware.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", middleware.RoleTeacher, false).Count(&totalTeachers)

	var totalCourses, publishedCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&publishedCourses)

	var totalEnrollments, completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("completed_at IS NOT NULL AND is_deleted = ?", false).Count(&completedEnrollments)

	var totalRevenue float64
	db.Model(&courseModels.Payment{}).Where("status = ? AND is_deleted = ?", courseModels.PaymentSuccessful, false).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	var pendingCertificates int64
	db.Model(&courseModels.CertificateRequest{}).Where("status = ?", courseModels.CertificatePending).Count(&pendingCertificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":    totalUsers,
			"students": totalStudents,
			"teachers": totalTeachers,
		},
		"courses": fiber.Map{
			"total":     totalCourses,
			"published": publishedCourses,
		},
		"enrollments": fiber.Map{
			"total":     totalEnrollments,
			"completed": completedEnrollments,
		},
		"total_revenue":                totalRevenue,
		"pending_certificate_requests": pendingCertificates,
	})
}

// GetUsers lists users with optional role filter
func GetUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// BlockUser toggles a user's blocked flag
func BlockUser(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)

	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil || userID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	if uint(userID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot block yourself!", nil)
	}

	reqData := new(struct {
		IsBlocked bool `json:"is_blocked"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("is_blocked", reqData.IsBlocked).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User unblocked successfully!"
	if reqData.IsBlocked {
		message = "User blocked successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}

// GetPayments lists payments with optional status filter
func GetPayments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.Database.Db.Model(&courseModels.Payment{}).Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var payments []courseModels.Payment
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseEnrollments lists everyone enrolled in a course
func GetCourseEnrollments(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
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

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	query := db.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false)

	var total int64
	query.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, enrollment := range enrollments {
		result[i] = EnrollmentWithUser{Enrollment: enrollment}
		var user models.User
		if err := db.Where("id = ?", enrollment.UserID).First(&user).Error; err == nil {
			result[i].UserName = user.Name
			result[i].UserEmail = user.Email
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"course_title": course.Title,
		"enrollments":  result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
