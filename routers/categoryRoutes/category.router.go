package categoryRoutes

import (
	categoryControllers "edumart/controllers/category"
	"edumart/middleware"
	categoryValidators "edumart/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/category")

	categoryGroup.Get("/list", categoryControllers.GetCategories)
	categoryGroup.Post("/create", categoryValidators.Create(), middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin), categoryControllers.CreateCategory)
	categoryGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin), categoryControllers.UpdateCategory)
	categoryGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin), categoryControllers.DeleteCategory)
}
