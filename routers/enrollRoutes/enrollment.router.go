package enrollRoutes

import (
	enrollmentControllers "edumart/controllers/enrollment"
	progressControllers "edumart/controllers/progress"
	"edumart/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	// Checkout and gateway callback
	app.Post("/course/:courseId/checkout", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), enrollmentControllers.Checkout)
	app.Post("/payment/webhook", enrollmentControllers.PaymentWebhook)

	app.Get("/user/enrollments", middleware.JWTMiddleware, enrollmentControllers.GetUserEnrollments)

	// Progress tracking
	app.Post("/course/:courseId/content/:contentId/complete", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), progressControllers.MarkContentComplete)
	app.Delete("/course/:courseId/content/:contentId/complete", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), progressControllers.UnmarkContentComplete)
	app.Get("/course/:courseId/progress", middleware.JWTMiddleware, progressControllers.GetUserProgress)
}
