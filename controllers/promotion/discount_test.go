package promotionController

import (
	"testing"

	"edumart/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestApplyPromotionPercentage(t *testing.T) {
	promo := models.Promotion{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 25,
	}

	price, discount := ApplyPromotion(200, promo)

	assert.Equal(t, 150.00, price)
	assert.Equal(t, 50.00, discount)
}

func TestApplyPromotionPercentageClampedToMax(t *testing.T) {
	promo := models.Promotion{
		DiscountType:      models.DiscountPercentage,
		DiscountValue:     20,
		MaxDiscountAmount: floatPtr(10),
	}

	price, discount := ApplyPromotion(100, promo)

	assert.Equal(t, 90.00, price)
	assert.Equal(t, 10.00, discount)
}

func TestApplyPromotionFixedClampedToPrice(t *testing.T) {
	promo := models.Promotion{
		DiscountType:  models.DiscountFixed,
		DiscountValue: 80,
	}

	price, discount := ApplyPromotion(50, promo)

	assert.Equal(t, 0.00, price)
	assert.Equal(t, 50.00, discount)
}

func TestApplyPromotionBelowMinPurchase(t *testing.T) {
	promo := models.Promotion{
		DiscountType:      models.DiscountFixed,
		DiscountValue:     10,
		MinPurchaseAmount: 100,
	}

	price, discount := ApplyPromotion(99.99, promo)

	assert.Equal(t, 99.99, price)
	assert.Equal(t, 0.00, discount)
}

func TestApplyPromotionRoundsToCents(t *testing.T) {
	promo := models.Promotion{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 33,
	}

	price, discount := ApplyPromotion(9.99, promo)

	assert.Equal(t, 3.30, discount)
	assert.Equal(t, 6.69, price)
}

func TestApplyPromotionUnknownTypeNoDiscount(t *testing.T) {
	promo := models.Promotion{
		DiscountType:  "BOGOF",
		DiscountValue: 10,
	}

	price, discount := ApplyPromotion(100, promo)

	assert.Equal(t, 100.00, price)
	assert.Equal(t, 0.00, discount)
}
