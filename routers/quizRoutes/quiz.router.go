package quizRoutes

import (
	quizControllers "edumart/controllers/quiz"
	"edumart/middleware"
	quizValidators "edumart/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quiz")

	quizGroup.Get("/:contentId", middleware.JWTMiddleware, quizControllers.GetQuiz)
	quizGroup.Post("/:contentId/question", quizValidators.CreateQuestion(), middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), quizControllers.CreateQuestion)
	quizGroup.Delete("/question/:questionId", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleTeacher, middleware.RoleAdmin), quizControllers.DeleteQuestion)
	quizGroup.Post("/:contentId/submit", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleStudent), quizControllers.SubmitQuiz)
	quizGroup.Get("/:contentId/attempts", middleware.JWTMiddleware, quizControllers.GetQuizAttempts)
}
