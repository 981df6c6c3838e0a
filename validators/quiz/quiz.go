package quizValidator

import (
	"edumart/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateQuestion validator middleware
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text       string `json:"text"`
			OrderIndex int    `json:"order_index"`
			Options    []struct {
				Text      string `json:"text"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"options"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Text = strings.TrimSpace(reqData.Text)
		if reqData.Text == "" {
			errors["text"] = "Question text is required!"
		}

		if len(reqData.Options) < 2 {
			errors["options"] = "A question needs at least 2 answer options!"
		} else {
			correctCount := 0
			for _, option := range reqData.Options {
				if strings.TrimSpace(option.Text) == "" {
					errors["options"] = "Answer options cannot be empty!"
					break
				}
				if option.IsCorrect {
					correctCount++
				}
			}
			if errors["options"] == "" && correctCount != 1 {
				errors["options"] = "Exactly one answer option must be marked correct!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
