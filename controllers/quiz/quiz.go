package quizController

import (
	"edumart/database"
	"edumart/middleware"
	courseModels "edumart/models/course"
	"encoding/json"
	"log"
	"strconv"

	progressController "edumart/controllers/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// loadQuizContent fetches a QUIZ content item or writes the error response
func loadQuizContent(c *fiber.Ctx, contentID int) (*courseModels.CourseContent, error) {
	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}
	if content.ContentType != courseModels.ContentQuiz {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not a quiz!", nil)
	}
	return &content, nil
}

// loadQuestions returns the quiz's questions with options, ordered
func loadQuestions(contentID uint) []courseModels.Question {
	var questions []courseModels.Question
	database.Database.Db.Where("content_id = ? AND is_deleted = ?", contentID, false).
		Order("order_index asc").Find(&questions)
	for i := range questions {
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", questions[i].ID, false).
			Order("order_index asc").Find(&questions[i].Options)
	}
	return questions
}

// isQuizOwner reports whether the caller owns the quiz's course (or is admin)
func isQuizOwner(c *fiber.Ctx, content *courseModels.CourseContent) bool {
	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)
	if role == middleware.RoleAdmin {
		return true
	}
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", content.CourseID).First(&course).Error; err != nil {
		return false
	}
	return course.TeacherID == userID
}

// GetQuiz returns questions and options. Correctness flags are zeroed
// unless the caller owns the course.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	content, errResp := loadQuizContent(c, contentID)
	if content == nil {
		return errResp
	}

	owner := isQuizOwner(c, content)
	if !owner {
		// Students must be enrolled
		var enrollment courseModels.Enrollment
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
			userID, content.CourseID, false).First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
	}

	questions := loadQuestions(content.ID)

	if !owner {
		// Never leak the answer key before grading
		for i := range questions {
			for j := range questions[i].Options {
				questions[i].Options[j].IsCorrect = false
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"content":    content,
		"questions":  questions,
		"time_limit": content.TimeLimit,
	})
}

// CreateQuestion adds a question with options to an owned quiz
func CreateQuestion(c *fiber.Ctx) error {
	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	content, errResp := loadQuizContent(c, contentID)
	if content == nil {
		return errResp
	}

	if !isQuizOwner(c, content) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text       string `json:"text"`
		OrderIndex int    `json:"order_index"`
		Options    []struct {
			Text      string `json:"text"`
			IsCorrect bool   `json:"is_correct"`
		} `json:"options"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question := courseModels.Question{
		ContentID:  content.ID,
		Text:       reqData.Text,
		OrderIndex: reqData.OrderIndex,
	}

	db := database.Database.Db
	tx := db.Begin()

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}
	for i, opt := range reqData.Options {
		option := courseModels.AnswerOption{
			QuestionID: question.ID,
			Text:       opt.Text,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: i,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create answer options!", nil)
		}
		question.Options = append(question.Options, option)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// DeleteQuestion soft-deletes a question and its options
func DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("questionId"))
	if err != nil || questionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question ID!", nil)
	}

	db := database.Database.Db

	var question courseModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	content, errResp := loadQuizContent(c, int(question.ContentID))
	if content == nil {
		return errResp
	}
	if !isQuizOwner(c, content) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	tx := db.Begin()
	if err := tx.Model(&question).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}
	if err := tx.Model(&courseModels.AnswerOption{}).Where("question_id = ?", question.ID).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete answer options!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// SubmitQuiz grades a submission and records an immutable attempt
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	content, errResp := loadQuizContent(c, contentID)
	if content == nil {
		return errResp
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, content.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	reqData := new(struct {
		Answers []SubmittedAnswer `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	questions := loadQuestions(content.ID)

	result, err := GradeQuiz(questions, reqData.Answers)
	if err != nil {
		// No partial grading, no attempt row
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	answersJSON, err := json.Marshal(result.Accepted)
	if err != nil {
		log.Printf("Error marshaling quiz answers: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	attempt := courseModels.QuizAttempt{
		UserID:         userID,
		EnrollmentID:   enrollment.ID,
		ContentID:      content.ID,
		Answers:        datatypes.JSON(answersJSON),
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Score:          result.Score,
	}

	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	// A perfect score counts the quiz as completed content
	if result.Score >= 100 {
		var existing courseModels.ContentProgress
		if err := db.Where("enrollment_id = ? AND content_id = ?", enrollment.ID, content.ID).First(&existing).Error; err != nil {
			progress := courseModels.ContentProgress{
				EnrollmentID: enrollment.ID,
				ContentID:    content.ID,
				UserID:       userID,
				CourseID:     content.CourseID,
			}
			if err := db.Create(&progress).Error; err == nil {
				if err := progressController.RecomputeEnrollmentProgress(db, &enrollment); err != nil {
					log.Printf("Error recomputing progress for enrollment %d: %v", enrollment.ID, err)
				}
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"attempt":         attempt,
		"score":           result.Score,
		"correct_count":   result.CorrectCount,
		"total_questions": result.TotalQuestions,
	})
}

// GetQuizAttempts lists the caller's attempts on a quiz, newest first
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID, err := strconv.Atoi(c.Params("contentId"))
	if err != nil || contentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.Where("user_id = ? AND content_id = ?", userID, contentID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}
