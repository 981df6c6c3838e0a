package promotionController

import (
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrPromotionNotValid covers every rejection reason: missing code,
// inactive, outside the validity window, usage cap reached. Callers must
// not be able to distinguish them.
var ErrPromotionNotValid = errors.New("promotion not found or not valid")

// FindValidPromotion looks up a usable promotion by case-insensitive
// code. The validity window is [startDate, endDate).
func FindValidPromotion(db *gorm.DB, code string) (*models.Promotion, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrPromotionNotValid
	}

	var promo models.Promotion
	if err := db.Where("code = ? AND is_active = ? AND is_deleted = ?", normalized, true, false).First(&promo).Error; err != nil {
		return nil, ErrPromotionNotValid
	}

	now := time.Now()
	if now.Before(promo.StartDate) || !now.Before(promo.EndDate) {
		return nil, ErrPromotionNotValid
	}
	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		return nil, ErrPromotionNotValid
	}

	return &promo, nil
}

// ValidatePromotion checks a code against a course price and returns the
// would-be discount. Never mutates usage counters.
func ValidatePromotion(c *fiber.Ctx) error {
	reqData := new(struct {
		Code     string `json:"code"`
		CourseID uint   `json:"course_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Code == "" || reqData.CourseID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Code and course_id are required!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.CourseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	promo, err := FindValidPromotion(db, reqData.Code)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promotion code not found or no longer valid!", nil)
	}

	discountedPrice, discountAmount := ApplyPromotion(course.Price, *promo)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotion is valid!", fiber.Map{
		"code":             promo.Code,
		"discount_type":    promo.DiscountType,
		"original_price":   course.Price,
		"discounted_price": discountedPrice,
		"discount_amount":  discountAmount,
	})
}

// CreatePromotion creates a discount code (ADMIN)
func CreatePromotion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPromotion").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	startDate, err := time.Parse(time.RFC3339, reqData.StartDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid start_date, expected RFC3339!", nil)
	}
	endDate, err := time.Parse(time.RFC3339, reqData.EndDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid end_date, expected RFC3339!", nil)
	}
	if !endDate.After(startDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "end_date must be after start_date!", nil)
	}

	if reqData.DiscountType == models.DiscountPercentage && reqData.DiscountValue > 100 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Percentage discount cannot exceed 100!", nil)
	}

	code := strings.ToUpper(strings.TrimSpace(reqData.Code))

	db := database.Database.Db

	var existing models.Promotion
	if err := db.Where("code = ?", code).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Promotion code already exists!", nil)
	}

	promo := models.Promotion{
		Code:              code,
		Description:       reqData.Description,
		DiscountType:      reqData.DiscountType,
		DiscountValue:     reqData.DiscountValue,
		MaxDiscountAmount: reqData.MaxDiscountAmount,
		MinPurchaseAmount: reqData.MinPurchaseAmount,
		StartDate:         startDate,
		EndDate:           endDate,
		UsageLimit:        reqData.UsageLimit,
	}

	if err := db.Create(&promo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create promotion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Promotion created successfully!", promo)
}

// GetPromotions lists promotions (ADMIN)
func GetPromotions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Promotion{}).Where("is_deleted = ?", false)

	var total int64
	db.Count(&total)

	var promotions []models.Promotion
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&promotions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch promotions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotions fetched successfully!", fiber.Map{
		"promotions": promotions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdatePromotion edits window/limits/active flag (ADMIN)
func UpdatePromotion(c *fiber.Ctx) error {
	promoID, err := strconv.Atoi(c.Params("id"))
	if err != nil || promoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid promotion ID!", nil)
	}

	var promo models.Promotion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", promoID, false).First(&promo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promotion not found!", nil)
	}

	reqData := new(struct {
		Description *string `json:"description"`
		EndDate     *string `json:"end_date"`
		UsageLimit  *int    `json:"usage_limit"`
		IsActive    *bool   `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *reqData.EndDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid end_date, expected RFC3339!", nil)
		}
		if !endDate.After(promo.StartDate) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "end_date must be after start_date!", nil)
		}
		updates["end_date"] = endDate
	}
	if reqData.UsageLimit != nil {
		if *reqData.UsageLimit < promo.UsedCount {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Usage limit cannot be below the current usage count!", nil)
		}
		updates["usage_limit"] = *reqData.UsageLimit
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(&promo).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update promotion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotion updated successfully!", promo)
}

// DeletePromotion soft-deletes a promotion (ADMIN)
func DeletePromotion(c *fiber.Ctx) error {
	promoID, err := strconv.Atoi(c.Params("id"))
	if err != nil || promoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid promotion ID!", nil)
	}

	var promo models.Promotion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", promoID, false).First(&promo).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Promotion not found!", nil)
	}

	if err := database.Database.Db.Model(&promo).Updates(map[string]interface{}{
		"is_deleted": true,
		"is_active":  false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete promotion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotion deleted successfully!", nil)
}
