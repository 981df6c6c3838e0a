package promotionController

import (
	"edumart/models"
	"edumart/utils"
)

// ApplyPromotion computes the discounted price for an original price.
// Pure: never touches usage counters. Rules: a price below the minimum
// purchase gets no discount; percentage discounts are clamped to the
// optional max-discount ceiling; no discount ever exceeds the price.
func ApplyPromotion(price float64, promo models.Promotion) (discountedPrice, discountAmount float64) {
	if price < promo.MinPurchaseAmount {
		return price, 0
	}

	switch promo.DiscountType {
	case models.DiscountPercentage:
		discountAmount = price * promo.DiscountValue / 100
		if promo.MaxDiscountAmount != nil && discountAmount > *promo.MaxDiscountAmount {
			discountAmount = *promo.MaxDiscountAmount
		}
	case models.DiscountFixed:
		discountAmount = promo.DiscountValue
	default:
		return price, 0
	}

	if discountAmount > price {
		discountAmount = price
	}
	if discountAmount < 0 {
		discountAmount = 0
	}

	discountAmount = utils.Round2(discountAmount)
	return utils.Round2(price - discountAmount), discountAmount
}
