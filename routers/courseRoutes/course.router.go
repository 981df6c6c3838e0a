package courseRoutes

import (
	controllers "edumart/controllers/course"
	"edumart/middleware"
	validators "edumart/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog
	courseGroup.Get("/list", controllers.GetAllCourses)

	// Teacher authoring
	courseGroup.Post("/create", validators.CreateCourse(), middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.CreateCourse)
	courseGroup.Get("/my/list", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.GetTeacherCourses)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.DeleteCourse)

	// Modules
	courseGroup.Post("/:id/module", validators.CreateModule(), middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.CreateModule)

	moduleGroup := app.Group("/module")
	moduleGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.UpdateModule)
	moduleGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.DeleteModule)

	// Content
	moduleGroup.Post("/:id/content", validators.CreateContent(), middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.CreateContent)

	contentGroup := app.Group("/content")
	contentGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.UpdateContent)
	contentGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), controllers.DeleteContent)

	// Enrolled students
	courseGroup.Get("/:id/contents", middleware.JWTMiddleware, controllers.GetCourseContents)

	// Certificates
	courseGroup.Post("/:id/certificate/request", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), controllers.RequestCertificate)
	app.Get("/user/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Public detail goes last so static segments above win
	courseGroup.Get("/:id", controllers.GetCourseDetails)
}
