package courseValidator

import (
	"edumart/middleware"
	courseModels "edumart/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateContent validator middleware
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ContentType string `json:"content_type"`
			VideoURL    string `json:"video_url"`
			DocumentURL string `json:"document_url"`
			Duration    int    `json:"duration"`
			TimeLimit   int    `json:"time_limit"`
			OrderIndex  int    `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Content title is required!"
		}

		reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))
		switch reqData.ContentType {
		case courseModels.ContentVideo:
			if reqData.VideoURL == "" {
				errors["video_url"] = "Video URL is required for video content!"
			}
			if reqData.Duration < 0 {
				errors["duration"] = "Duration cannot be negative!"
			}
		case courseModels.ContentDocument:
			if reqData.DocumentURL == "" {
				errors["document_url"] = "Document URL is required for document content!"
			}
		case courseModels.ContentQuiz:
			if reqData.TimeLimit < 0 {
				errors["time_limit"] = "Time limit cannot be negative!"
			}
		default:
			errors["content_type"] = "Content type must be VIDEO, DOCUMENT or QUIZ!"
		}

		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}
