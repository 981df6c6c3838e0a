package reviewController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// SubmitReview creates the one review allowed per enrollment
func SubmitReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	reqData := new(struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Rating < 1 || reqData.Rating > 5 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Only enrolled students can review
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to review this course!", nil)
	}

	var existing models.Review
	if err := db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		EnrollmentID: enrollment.ID,
		UserID:       userID,
		CourseID:     uint(courseID),
		Rating:       reqData.Rating,
		Comment:      reqData.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

// GetCourseReviews returns reviews with aggregated stats (public)
func GetCourseReviews(c *fiber.Ctx) error {
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

	query := db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	type ReviewWithUser struct {
		models.Review
		UserName string `json:"user_name"`
	}

	result := make([]ReviewWithUser, len(reviews))
	for i, review := range reviews {
		result[i] = ReviewWithUser{Review: review}
		var user models.User
		if err := db.Where("id = ?", review.UserID).First(&user).Error; err == nil {
			result[i].UserName = user.Name
		}
	}

	// Aggregate stats
	var average float64
	if total > 0 {
		db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("AVG(rating)").Scan(&average)
	}

	starCounts := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		var count int64
		db.Model(&models.Review{}).Where("course_id = ? AND rating = ? AND is_deleted = ?", courseID, star, false).Count(&count)
		starCounts[star] = count
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews":        result,
		"average_rating": average,
		"star_counts":    starCounts,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateReview edits the caller's own review
func UpdateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil || reviewID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review ID!", nil)
	}

	var review models.Review
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reviewID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own review!", nil)
	}

	reqData := new(struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Rating != nil {
		if *reqData.Rating < 1 || *reqData.Rating > 5 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
		}
		updates["rating"] = *reqData.Rating
	}
	if reqData.Comment != nil {
		updates["comment"] = *reqData.Comment
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(&review).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", review)
}

// DeleteReview removes the caller's own review (or any, for admins)
func DeleteReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil || reviewID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review ID!", nil)
	}

	var review models.Review
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reviewID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != userID && role != middleware.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own review!", nil)
	}

	if err := database.Database.Db.Model(&review).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}
