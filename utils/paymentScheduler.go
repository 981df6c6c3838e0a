package utils

import (
	"edumart/config"
	"edumart/database"
	courseModels "edumart/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializePaymentScheduler sets up the stale-checkout cleanup job
func InitializePaymentScheduler() *cron.Cron {
	log.Println("[PAYMENT-SCHEDULER] Initializing payment scheduler...")

	c := cron.New()

	// Run daily at 3 AM to reap abandoned checkouts
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PAYMENT-SCHEDULER] Running daily stale checkout cleanup...")
		CleanupStaleCheckouts()
	})

	c.Start()
	log.Println("[PAYMENT-SCHEDULER] Payment scheduler started - runs daily at 3 AM")
	return c
}

// CleanupStaleCheckouts soft-deletes payments (and their enrollments)
// stuck PENDING beyond the configured window so the student can retry
// checkout.
func CleanupStaleCheckouts() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.CheckoutExpiryDays)

	var stale []courseModels.Payment
	if err := db.
		Where("status = ? AND is_deleted = false AND created_at < ?", courseModels.PaymentPending, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("[PAYMENT-SCHEDULER] Error fetching stale payments: %v", err)
		return
	}

	log.Printf("[PAYMENT-SCHEDULER] Found %d stale pending checkouts", len(stale))

	for _, payment := range stale {
		if err := db.Model(&courseModels.Payment{}).Where("id = ?", payment.ID).
			Update("is_deleted", true).Error; err != nil {
			log.Printf("[PAYMENT-SCHEDULER] Error expiring payment %d: %v", payment.ID, err)
			continue
		}
		// The enrollment row must go away for real: the (user, course)
		// unique index would otherwise block a retried checkout.
		if err := db.Unscoped().Where("id = ?", payment.EnrollmentID).
			Delete(&courseModels.Enrollment{}).Error; err != nil {
			log.Printf("[PAYMENT-SCHEDULER] Error removing enrollment %d: %v", payment.EnrollmentID, err)
		}
		log.Printf("[PAYMENT-SCHEDULER] Expired checkout order %s", payment.OrderID)
	}
}
