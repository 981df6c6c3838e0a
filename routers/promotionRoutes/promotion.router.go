package promotionRoutes

import (
	promotionControllers "edumart/controllers/promotion"
	"edumart/middleware"
	promotionValidators "edumart/validators/promotion"

	"github.com/gofiber/fiber/v2"
)

func SetupPromotionRoutes(app *fiber.App) {
	promotionGroup := app.Group("/promotion")

	promotionGroup.Post("/validate", middleware.JWTMiddleware, promotionControllers.ValidatePromotion)

	promotionGroup.Post("/create", promotionValidators.CreatePromotion(), middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin), promotionControllers.CreatePromotion)
	promotionGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin), promotionControllers.GetPromotions)
	promotionGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin), promotionControllers.UpdatePromotion)
	promotionGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin), promotionControllers.DeletePromotion)
}
