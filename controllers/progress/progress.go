package progressController

import (
	"edumart/database"
	"edumart/middleware"
	courseModels "edumart/models/course"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ComputeProgress derives the percentage from completion rows against
// live published-content counts. ContentProgress existence is the only
// source of truth; the stored percentage is never trusted as input.
func ComputeProgress(db *gorm.DB, enrollmentID uint, courseID uint) int {
	var totalContent int64
	var completedContent int64

	db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalContent)
	// Completion rows only count while their content is still live;
	// stale rows from unpublished or deleted content would otherwise
	// push the percentage past 100.
	db.Model(&courseModels.ContentProgress{}).
		Joins("JOIN course_contents ON course_contents.id = content_progresses.content_id").
		Where("content_progresses.enrollment_id = ? AND course_contents.is_deleted = ? AND course_contents.is_published = ?",
			enrollmentID, false, true).
		Count(&completedContent)

	if totalContent == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completedContent) / float64(totalContent)))
}

// RecomputeEnrollmentProgress refreshes the stored percentage and keeps
// the completion timestamp in sync: set exactly when the value reaches
// 100, cleared whenever it drops below.
func RecomputeEnrollmentProgress(db *gorm.DB, enrollment *courseModels.Enrollment) error {
	progress := ComputeProgress(db, enrollment.ID, enrollment.CourseID)

	updates := map[string]interface{}{"progress": progress}
	if progress >= 100 {
		if enrollment.CompletedAt == nil {
			now := time.Now()
			updates["completed_at"] = now
			enrollment.CompletedAt = &now
		}
	} else if enrollment.CompletedAt != nil {
		updates["completed_at"] = nil
		enrollment.CompletedAt = nil
	}
	enrollment.Progress = progress

	return db.Model(&courseModels.Enrollment{}).Where("id = ?", enrollment.ID).Updates(updates).Error
}

// requireEnrollment loads the caller's enrollment or writes a 403
func requireEnrollment(c *fiber.Ctx, userID uint, courseID int) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}
	return &enrollment, nil
}

// MarkContentComplete records completion of a content item and
// recomputes the enrollment progress
func MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}
	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	enrollment, errResp := requireEnrollment(c, userID, courseID)
	if enrollment == nil {
		return errResp
	}

	db := database.Database.Db

	var content courseModels.CourseContent
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?",
		contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	// Already marked is a no-op, not an error
	var existing courseModels.ContentProgress
	if err := db.Where("enrollment_id = ? AND content_id = ?", enrollment.ID, contentID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content already marked complete!", fiber.Map{
			"progress": enrollment.Progress,
		})
	}

	progress := courseModels.ContentProgress{
		EnrollmentID: enrollment.ID,
		ContentID:    uint(contentID),
		UserID:       userID,
		CourseID:     uint(courseID),
	}
	if err := db.Create(&progress).Error; err != nil {
		log.Printf("Error marking content %d complete for enrollment %d: %v", contentID, enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark content complete!", nil)
	}

	if err := RecomputeEnrollmentProgress(db, enrollment); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked complete!", fiber.Map{
		"progress":     enrollment.Progress,
		"completed_at": enrollment.CompletedAt,
	})
}

// UnmarkContentComplete removes a completion mark and recomputes; the
// completion timestamp is cleared if progress drops below 100
func UnmarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}
	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	enrollment, errResp := requireEnrollment(c, userID, courseID)
	if enrollment == nil {
		return errResp
	}

	db := database.Database.Db

	var progress courseModels.ContentProgress
	if err := db.Where("enrollment_id = ? AND content_id = ?", enrollment.ID, contentID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content is not marked complete!", nil)
	}

	if err := db.Unscoped().Delete(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unmark content!", nil)
	}

	if err := RecomputeEnrollmentProgress(db, enrollment); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content unmarked!", fiber.Map{
		"progress":     enrollment.Progress,
		"completed_at": enrollment.CompletedAt,
	})
}

// GetUserProgress returns overall progress plus a per-module breakdown
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	enrollment, errResp := requireEnrollment(c, userID, courseID)
	if enrollment == nil {
		return errResp
	}

	db := database.Database.Db

	var completed []courseModels.ContentProgress
	db.Where("enrollment_id = ?", enrollment.ID).Find(&completed)

	completedIDs := make([]uint, len(completed))
	for i, cp := range completed {
		completedIDs[i] = cp.ContentID
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	type ModuleProgress struct {
		ModuleID          uint    `json:"module_id"`
		ModuleTitle       string  `json:"module_title"`
		TotalContents     int64   `json:"total_contents"`
		CompletedContents int64   `json:"completed_contents"`
		Progress          float64 `json:"progress"`
	}

	moduleProgress := make([]ModuleProgress, len(modules))
	for i, mod := range modules {
		var totalContent int64
		var completedContent int64

		db.Model(&courseModels.CourseContent{}).
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
			Count(&totalContent)
		db.Model(&courseModels.ContentProgress{}).
			Joins("JOIN course_contents ON content_progresses.content_id = course_contents.id").
			Where("content_progresses.enrollment_id = ? AND course_contents.module_id = ? AND course_contents.is_deleted = ? AND course_contents.is_published = ?",
				enrollment.ID, mod.ID, false, true).
			Count(&completedContent)

		progress := float64(0)
		if totalContent > 0 {
			progress = float64(completedContent) / float64(totalContent) * 100
		}

		moduleProgress[i] = ModuleProgress{
			ModuleID:          mod.ID,
			ModuleTitle:       mod.Title,
			TotalContents:     totalContent,
			CompletedContents: completedContent,
			Progress:          progress,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"completed_ids":   completedIDs,
		"module_progress": moduleProgress,
	})
}
