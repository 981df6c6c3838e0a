package promotionValidator

import (
	"edumart/middleware"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreatePromotion validator middleware
func CreatePromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code              string   `json:"code" validate:"required,min=3,max=30"`
			Description       string   `json:"description"`
			DiscountType      string   `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED"`
			DiscountValue     float64  `json:"discount_value" validate:"required,gt=0"`
			MaxDiscountAmount *float64 `json:"max_discount_amount" validate:"omitempty,gt=0"`
			MinPurchaseAmount float64  `json:"min_purchase_amount" validate:"gte=0"`
			StartDate         string   `json:"start_date" validate:"required"`
			EndDate           string   `json:"end_date" validate:"required"`
			UsageLimit        *int     `json:"usage_limit" validate:"omitempty,gt=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		reqData.DiscountType = strings.ToUpper(strings.TrimSpace(reqData.DiscountType))

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Code":
					errors["code"] = "Code must be between 3 and 30 characters!"
				case "DiscountType":
					errors["discount_type"] = "Discount type must be PERCENTAGE or FIXED!"
				case "DiscountValue":
					errors["discount_value"] = "Discount value must be greater than zero!"
				case "MaxDiscountAmount":
					errors["max_discount_amount"] = "Max discount amount must be greater than zero!"
				case "MinPurchaseAmount":
					errors["min_purchase_amount"] = "Min purchase amount cannot be negative!"
				case "StartDate":
					errors["start_date"] = "Start date is required!"
				case "EndDate":
					errors["end_date"] = "End date is required!"
				case "UsageLimit":
					errors["usage_limit"] = "Usage limit must be greater than zero!"
				}
			}
		}

		// Dates must parse and form a valid window
		if errors["start_date"] == "" && errors["end_date"] == "" {
			startDate, startErr := time.Parse(time.RFC3339, reqData.StartDate)
			endDate, endErr := time.Parse(time.RFC3339, reqData.EndDate)
			if startErr != nil {
				errors["start_date"] = "Start date must be a valid RFC3339 timestamp!"
			}
			if endErr != nil {
				errors["end_date"] = "End date must be a valid RFC3339 timestamp!"
			}
			if startErr == nil && endErr == nil && !endDate.After(startDate) {
				errors["end_date"] = "End date must be after start date!"
			}
		}

		if reqData.DiscountType == "PERCENTAGE" && reqData.DiscountValue > 100 {
			errors["discount_value"] = "Percentage discount cannot exceed 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPromotion", reqData)
		return c.Next()
	}
}
