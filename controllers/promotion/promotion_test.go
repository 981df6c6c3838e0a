package promotionController

import (
	"testing"
	"time"

	"edumart/database"
	"edumart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func intPtr(v int) *int { return &v }

func seedPromotion(t *testing.T, db *gorm.DB, promo models.Promotion) models.Promotion {
	require.NoError(t, db.Create(&promo).Error)
	return promo
}

func TestFindValidPromotionNormalizesCode(t *testing.T) {
	db := setupTestDB(t)
	seedPromotion(t, db, models.Promotion{
		Code:          "SUMMER25",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 25,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
		IsActive:      true,
	})

	promo, err := FindValidPromotion(db, "  summer25 ")

	assert.NoError(t, err)
	assert.Equal(t, "SUMMER25", promo.Code)
}

func TestFindValidPromotionOutsideWindow(t *testing.T) {
	db := setupTestDB(t)
	seedPromotion(t, db, models.Promotion{
		Code:          "EXPIRED",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 10,
		StartDate:     time.Now().Add(-48 * time.Hour),
		EndDate:       time.Now().Add(-24 * time.Hour),
		IsActive:      true,
	})

	_, err := FindValidPromotion(db, "EXPIRED")
	assert.ErrorIs(t, err, ErrPromotionNotValid)
}

func TestFindValidPromotionUsageCapReached(t *testing.T) {
	db := setupTestDB(t)
	seedPromotion(t, db, models.Promotion{
		Code:          "CAPPED",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 10,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
		UsageLimit:    intPtr(3),
		UsedCount:     3,
		IsActive:      true,
	})

	// Exhausted cap must look exactly like a missing code
	_, err := FindValidPromotion(db, "CAPPED")
	assert.ErrorIs(t, err, ErrPromotionNotValid)

	_, err = FindValidPromotion(db, "NOSUCHCODE")
	assert.ErrorIs(t, err, ErrPromotionNotValid)
}

func TestFindValidPromotionInactive(t *testing.T) {
	db := setupTestDB(t)
	seedPromotion(t, db, models.Promotion{
		Code:          "DISABLED",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 10,
		StartDate:     time.Now().Add(-time.Hour),
		EndDate:       time.Now().Add(time.Hour),
		IsActive:      false,
	})

	_, err := FindValidPromotion(db, "DISABLED")
	assert.ErrorIs(t, err, ErrPromotionNotValid)
}
