package controllers

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// courseOwnedBy reports whether the user may manage the course. Admins
// get owner privileges on every course.
func courseOwnedBy(course *courseModels.Course, userID uint, role string) bool {
	if role == middleware.RoleAdmin {
		return true
	}
	return course.TeacherID == userID
}

// fetchOwnedCourse loads a course and enforces the ownership rule in one
// place for all authoring endpoints.
func fetchOwnedCourse(c *fiber.Ctx, courseID int) (*courseModels.Course, error) {
	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !courseOwnedBy(&course, userID, role) {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return &course, nil
}

// GetAllCourses lists published courses with optional filters (public)
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		if categoryID, err := strconv.Atoi(categoryStr); err == nil && categoryID > 0 {
			db = db.Where("category_id = ?", categoryID)
		}
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CourseDetail is the public course view with outline and review stats
type CourseDetail struct {
	courseModels.Course
	TeacherName   string                  `json:"teacher_name"`
	CategoryName  string                  `json:"category_name"`
	Modules       []ModuleWithContents    `json:"modules"`
	AverageRating float64                 `json:"average_rating"`
	ReviewCount   int64                   `json:"review_count"`
	StudentCount  int64                   `json:"student_count"`
}

// ModuleWithContents carries the content outline of one module
type ModuleWithContents struct {
	courseModels.Module
	Contents []courseModels.CourseContent `json:"contents"`
}

// GetCourseDetails returns one course with its module/content outline
func GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	detail := CourseDetail{Course: course}

	var teacher models.User
	if err := db.Where("id = ?", course.TeacherID).First(&teacher).Error; err == nil {
		detail.TeacherName = teacher.Name
	}
	var category models.Category
	if err := db.Where("id = ?", course.CategoryID).First(&category).Error; err == nil {
		detail.CategoryName = category.Name
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	detail.Modules = make([]ModuleWithContents, len(modules))
	for i, mod := range modules {
		var contents []courseModels.CourseContent
		db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
			Order("order_index asc").Find(&contents)
		detail.Modules[i] = ModuleWithContents{Module: mod, Contents: contents}
	}

	db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&detail.ReviewCount)
	if detail.ReviewCount > 0 {
		db.Model(&models.Review{}).Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("AVG(rating)").Scan(&detail.AverageRating)
	}
	db.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&detail.StudentCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", detail)
}

// CreateCourse creates a new course owned by the calling teacher
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		CategoryID   uint    `json:"category_id"`
		ThumbnailURL string  `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        reqData.Price,
		CategoryID:   reqData.CategoryID,
		TeacherID:    userID,
		ThumbnailURL: reqData.ThumbnailURL,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates an owned course
func UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	course, errResp := fetchOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	reqData := new(struct {
		Title        *string  `json:"title"`
		Description  *string  `json:"description"`
		Price        *float64 `json:"price"`
		CategoryID   *uint    `json:"category_id"`
		ThumbnailURL *string  `json:"thumbnail_url"`
		Status       *string  `json:"status"`
		IsPublished  *bool    `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Price != nil {
		if *reqData.Price < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Price cannot be negative!", nil)
		}
		updates["price"] = *reqData.Price
	}
	if reqData.CategoryID != nil {
		var category models.Category
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CategoryID, false).First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		updates["category_id"] = *reqData.CategoryID
	}
	if reqData.ThumbnailURL != nil {
		updates["thumbnail_url"] = *reqData.ThumbnailURL
	}
	if reqData.Status != nil {
		switch *reqData.Status {
		case "DRAFT", "ACTIVE", "INACTIVE":
			updates["status"] = *reqData.Status
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course status!", nil)
		}
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(course).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes an owned course
func DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	course, errResp := fetchOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	if err := database.Database.Db.Model(course).Updates(map[string]interface{}{
		"is_deleted":   true,
		"is_published": false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetTeacherCourses lists the caller's own courses, drafts included
func GetTeacherCourses(c *fiber.Ctx) error {
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

	db := database.Database.Db.Model(&courseModels.Course{}).Where("teacher_id = ? AND is_deleted = ?", userID, false)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
