package commentController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CreateComment posts a comment (or reply) under a content item
func CreateComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	reqData := new(struct {
		Text     string `json:"text"`
		ParentID *uint  `json:"parent_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Text == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Comment text is required!", nil)
	}

	db := database.Database.Db

	var content courseModels.CourseContent
	if err := db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	// Students need an enrollment; teachers and admins comment on anything
	role, _ := c.Locals("role").(string)
	if role == middleware.RoleStudent {
		var enrollment courseModels.Enrollment
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, content.CourseID, false).First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to comment!", nil)
		}
	}

	if reqData.ParentID != nil {
		var parent models.Comment
		if err := db.Where("id = ? AND content_id = ? AND is_deleted = ?", *reqData.ParentID, contentID, false).First(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent comment not found!", nil)
		}
	}

	comment := models.Comment{
		ContentID: uint(contentID),
		UserID:    userID,
		ParentID:  reqData.ParentID,
		Text:      reqData.Text,
	}

	if err := db.Create(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment posted successfully!", comment)
}

// GetContentComments returns the full reply tree for a content item
func GetContentComments(c *fiber.Ctx) error {
	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	db := database.Database.Db

	var content courseModels.CourseContent
	if err := db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	var comments []models.Comment
	if err := db.Where("content_id = ? AND is_deleted = ?", contentID, false).Order("created_at asc").Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	userIDs := make([]uint, 0, len(comments))
	seen := make(map[uint]bool, len(comments))
	for _, comment := range comments {
		if !seen[comment.UserID] {
			seen[comment.UserID] = true
			userIDs = append(userIDs, comment.UserID)
		}
	}

	userNames := make(map[uint]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		db.Where("id IN ?", userIDs).Find(&users)
		for _, user := range users {
			userNames[user.ID] = user.Name
		}
	}

	tree := BuildCommentTree(comments, userNames)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully!", fiber.Map{
		"comments": tree,
		"total":    len(comments),
	})
}

// DeleteComment removes a comment by its author or an admin
func DeleteComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil || commentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid comment ID!", nil)
	}

	var comment models.Comment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", commentID, false).First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	if comment.UserID != userID && role != middleware.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own comment!", nil)
	}

	if err := database.Database.Db.Model(&comment).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment deleted successfully!", nil)
}
