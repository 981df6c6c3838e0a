package adminRoutes

import (
	adminControllers "edumart/controllers/admin"
	courseControllers "edumart/controllers/course"
	uploadControllers "edumart/controllers/upload"
	"edumart/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin))

	adminGroup.Get("/dashboard", adminControllers.GetDashboard)
	adminGroup.Get("/users", adminControllers.GetUsers)
	adminGroup.Patch("/user/:id/block", adminControllers.BlockUser)
	adminGroup.Get("/payments", adminControllers.GetPayments)
	adminGroup.Get("/course/:courseId/enrollments", adminControllers.GetCourseEnrollments)

	// Certificate review
	adminGroup.Get("/certificate/requests", courseControllers.GetPendingCertificateRequests)
	adminGroup.Post("/certificate/request/:id/approve", courseControllers.ApproveCertificateRequest)

	// File uploads for course material
	app.Post("/upload", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), uploadControllers.UploadFile)
}
