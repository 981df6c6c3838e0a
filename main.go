package main

import (
	"edumart/config"
	"edumart/database"
	adminRoutes "edumart/routers/adminRoutes"
	authRoutes "edumart/routers/authRoutes"
	categoryRoutes "edumart/routers/categoryRoutes"
	courseRoutes "edumart/routers/courseRoutes"
	enrollRoutes "edumart/routers/enrollRoutes"
	promotionRoutes "edumart/routers/promotionRoutes"
	quizRoutes "edumart/routers/quizRoutes"
	reviewRoutes "edumart/routers/reviewRoutes"
	"edumart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitPaymentGateway()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	enrollRoutes.SetupEnrollmentRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	promotionRoutes.SetupPromotionRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializePaymentScheduler()
	utils.InitializePromotionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
