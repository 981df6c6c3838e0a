package enrollmentController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"edumart/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// gatewayNotification is the Midtrans payment notification payload
type gatewayNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// PaymentWebhook handles gateway notifications. Unknown order ids are
// rejected without touching state; a replay of an already-successful
// notification is a no-op.
func PaymentWebhook(c *fiber.Ctx) error {
	notif := new(gatewayNotification)
	if err := c.BodyParser(notif); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification body!", nil)
	}

	if notif.OrderID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing order id!", nil)
	}

	if !utils.VerifyWebhookSignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		log.Printf("Webhook signature mismatch for order %s", notif.OrderID)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid signature!", nil)
	}

	db := database.Database.Db

	var payment courseModels.Payment
	if err := db.Where("order_id = ? AND is_deleted = ?", notif.OrderID, false).First(&payment).Error; err != nil {
		log.Printf("Webhook for unknown order %s", notif.OrderID)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	switch notif.TransactionStatus {
	case "capture", "settlement":
		if notif.FraudStatus == "challenge" || notif.FraudStatus == "deny" {
			log.Printf("Webhook order %s flagged by fraud status %s, not settling", notif.OrderID, notif.FraudStatus)
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification acknowledged.", nil)
		}
		if payment.Status == courseModels.PaymentSuccessful {
			// Replay: the transition already happened
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already processed.", nil)
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			return markPaymentSuccessful(tx, &payment)
		})
		if err != nil {
			log.Printf("Error settling order %s: %v", notif.OrderID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
		}

		go notifyPaymentSuccess(payment)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment processed successfully!", nil)

	case "expire", "cancel", "deny":
		// No failed state is modeled; the stale-checkout scheduler
		// reaps these rows.
		log.Printf("Webhook order %s reported %s, leaving payment pending", notif.OrderID, notif.TransactionStatus)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification acknowledged.", nil)

	default:
		log.Printf("Webhook order %s has unhandled status %s", notif.OrderID, notif.TransactionStatus)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification acknowledged.", nil)
	}
}

func notifyPaymentSuccess(payment courseModels.Payment) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", payment.UserID).First(&user).Error; err != nil {
		return
	}
	var course courseModels.Course
	if err := db.Where("id = ?", payment.CourseID).First(&course).Error; err != nil {
		return
	}
	sendEnrollmentEmail(user, course)
}
