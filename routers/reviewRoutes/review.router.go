package reviewRoutes

import (
	commentControllers "edumart/controllers/comment"
	reviewControllers "edumart/controllers/review"
	"edumart/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	// Reviews
	app.Post("/course/:courseId/review", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), reviewControllers.SubmitReview)
	app.Get("/course/:courseId/reviews", reviewControllers.GetCourseReviews)
	app.Put("/review/:id", middleware.JWTMiddleware, reviewControllers.UpdateReview)
	app.Delete("/review/:id", middleware.JWTMiddleware, reviewControllers.DeleteReview)

	// Threaded comments on content
	app.Post("/content/:contentId/comment", middleware.JWTMiddleware, commentControllers.CreateComment)
	app.Get("/content/:contentId/comments", middleware.JWTMiddleware, commentControllers.GetContentComments)
	app.Delete("/comment/:id", middleware.JWTMiddleware, commentControllers.DeleteComment)
}
