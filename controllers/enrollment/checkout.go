package enrollmentController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"edumart/utils"
	"log"
	"strconv"
	"time"

	promotionController "edumart/controllers/promotion"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Checkout enrolls the student and opens a payment. The enrollment and
// payment rows are created atomically before any gateway round-trip; the
// (user, course) unique index is the real guard against double purchase.
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ? AND status = ?",
		courseID, false, true, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	reqData := new(struct {
		PromotionCode string `json:"promotion_code"`
	})
	// Body is optional for checkout
	_ = c.BodyParser(reqData)

	finalPrice := course.Price
	discountAmount := float64(0)
	var promotionID *uint

	if reqData.PromotionCode != "" {
		promo, err := promotionController.FindValidPromotion(db, reqData.PromotionCode)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promotion code not found or no longer valid!", nil)
		}
		finalPrice, discountAmount = promotionController.ApplyPromotion(course.Price, *promo)
		if discountAmount > 0 {
			promotionID = &promo.ID
		}
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: uint(courseID),
	}
	payment := courseModels.Payment{
		UserID:         userID,
		CourseID:       uint(courseID),
		OrderID:        utils.GenerateOrderID(),
		SessionID:      courseModels.PlaceholderSession,
		Amount:         finalPrice,
		DiscountAmount: discountAmount,
		PromotionID:    promotionID,
		Status:         courseModels.PaymentPending,
	}

	free := finalPrice <= 0

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		payment.EnrollmentID = enrollment.ID
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if free {
			// No gateway round-trip for free courses; the payment row
			// exists for bookkeeping symmetry.
			return markPaymentSuccessful(tx, &payment)
		}
		return nil
	})
	if err != nil {
		log.Printf("Checkout failed for user %d course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Failed to enroll in course!", nil)
	}

	if free {
		go sendEnrollmentEmail(user, course)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", fiber.Map{
			"enrollment": enrollment,
			"payment":    payment,
		})
	}

	session, err := utils.CreatePaymentSession(payment.OrderID, finalPrice, user.Name, user.Email)
	if err != nil {
		log.Printf("Error creating payment session for order %s: %v", payment.OrderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment session!", nil)
	}

	// Replace the placeholder with the real gateway session
	if err := db.Model(&payment).Updates(map[string]interface{}{
		"session_id":   session.Token,
		"redirect_url": session.RedirectURL,
	}).Error; err != nil {
		log.Printf("Error saving payment session for order %s: %v", payment.OrderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save payment session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"enrollment":   enrollment,
		"order_id":     payment.OrderID,
		"session_id":   session.Token,
		"redirect_url": session.RedirectURL,
		"amount":       finalPrice,
		"discount":     discountAmount,
	})
}

// markPaymentSuccessful performs the single PENDING -> SUCCESSFUL
// transition: sets the status and paid timestamp and counts promotion
// usage. Callers must ensure the payment is still PENDING.
func markPaymentSuccessful(tx *gorm.DB, payment *courseModels.Payment) error {
	now := time.Now()
	if err := tx.Model(payment).Updates(map[string]interface{}{
		"status":  courseModels.PaymentSuccessful,
		"paid_at": now,
	}).Error; err != nil {
		return err
	}
	payment.Status = courseModels.PaymentSuccessful
	payment.PaidAt = &now

	if payment.PromotionID != nil {
		if err := tx.Model(&models.Promotion{}).Where("id = ?", *payment.PromotionID).
			Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
			return err
		}
	}
	return nil
}

func sendEnrollmentEmail(user models.User, course courseModels.Course) {
	if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
		log.Printf("Error sending enrollment email to %s: %v", user.Email, err)
	}
}
