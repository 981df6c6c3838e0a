package utils

import (
	"edumart/database"
	"edumart/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializePromotionScheduler sets up the promotion expiry sweep
func InitializePromotionScheduler() *cron.Cron {
	log.Println("[PROMO-SCHEDULER] Initializing promotion scheduler...")

	c := cron.New()

	// Run daily at 4 AM to deactivate expired promotions
	c.AddFunc("0 4 * * *", func() {
		log.Println("[PROMO-SCHEDULER] Running daily promotion expiry sweep...")
		DeactivateExpiredPromotions()
	})

	c.Start()
	log.Println("[PROMO-SCHEDULER] Promotion scheduler started - runs daily at 4 AM")
	return c
}

// DeactivateExpiredPromotions flags promotions past their end date as
// inactive. Validation already rejects them by window; the flag keeps
// admin listings honest.
func DeactivateExpiredPromotions() {
	db := database.Database.Db

	result := db.Model(&models.Promotion{}).
		Where("is_active = true AND is_deleted = false AND end_date <= ?", time.Now()).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("[PROMO-SCHEDULER] Error deactivating promotions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[PROMO-SCHEDULER] Deactivated %d expired promotions", result.RowsAffected)
	}
}
