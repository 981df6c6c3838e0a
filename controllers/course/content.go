package controllers

import (
	"edumart/database"
	"edumart/middleware"
	courseModels "edumart/models/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CreateContent adds a content item to an owned module
func CreateContent(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil || moduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
	}

	module, errResp := fetchOwnedModule(c, moduleID)
	if module == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedContent").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ContentType string `json:"content_type"`
		VideoURL    string `json:"video_url"`
		DocumentURL string `json:"document_url"`
		Duration    int    `json:"duration"`
		TimeLimit   int    `json:"time_limit"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content := courseModels.CourseContent{
		CourseID:    module.CourseID,
		ModuleID:    module.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		VideoURL:    reqData.VideoURL,
		DocumentURL: reqData.DocumentURL,
		Duration:    reqData.Duration,
		TimeLimit:   reqData.TimeLimit,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// fetchOwnedContent resolves a content item through its course's ownership rule
func fetchOwnedContent(c *fiber.Ctx, contentID int) (*courseModels.CourseContent, error) {
	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	course, errResp := fetchOwnedCourse(c, int(content.CourseID))
	if course == nil {
		return nil, errResp
	}

	return &content, nil
}

// UpdateContent updates an owned content item
func UpdateContent(c *fiber.Ctx) error {
	contentID, err := strconv.Atoi(c.Params("id"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	content, errResp := fetchOwnedContent(c, contentID)
	if content == nil {
		return errResp
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		VideoURL    *string `json:"video_url"`
		DocumentURL *string `json:"document_url"`
		Duration    *int    `json:"duration"`
		TimeLimit   *int    `json:"time_limit"`
		OrderIndex  *int    `json:"order_index"`
		IsPublished *bool   `json:"is_published"`
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
	if reqData.VideoURL != nil {
		updates["video_url"] = *reqData.VideoURL
	}
	if reqData.DocumentURL != nil {
		updates["document_url"] = *reqData.DocumentURL
	}
	if reqData.Duration != nil {
		updates["duration"] = *reqData.Duration
	}
	if reqData.TimeLimit != nil {
		updates["time_limit"] = *reqData.TimeLimit
	}
	if reqData.OrderIndex != nil {
		updates["order_index"] = *reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(content).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", content)
}

// DeleteContent soft-deletes an owned content item
func DeleteContent(c *fiber.Ctx) error {
	contentID, err := strconv.Atoi(c.Params("id"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	content, errResp := fetchOwnedContent(c, contentID)
	if content == nil {
		return errResp
	}

	if err := database.Database.Db.Model(content).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// GetCourseContents lists published contents of a course for an enrolled
// student, with per-item completion flags
func GetCourseContents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var contents []courseModels.CourseContent
	if err := db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("module_id asc, order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	var completed []courseModels.ContentProgress
	db.Where("enrollment_id = ?", enrollment.ID).Find(&completed)
	completedSet := make(map[uint]bool, len(completed))
	for _, cp := range completed {
		completedSet[cp.ContentID] = true
	}

	type ContentWithCompletion struct {
		courseModels.CourseContent
		IsCompleted bool `json:"is_completed"`
	}

	result := make([]ContentWithCompletion, len(contents))
	for i, content := range contents {
		result[i] = ContentWithCompletion{
			CourseContent: content,
			IsCompleted:   completedSet[content.ID],
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents fetched successfully!", result)
}
