package main

import (
	"log"

	"courseplatform/config"
	"courseplatform/database"
	authRoutes "courseplatform/routers/authRoutes"
	courseRoutes "courseplatform/routers/courseRoutes"
	searchRoutes "courseplatform/routers/searchRoutes"
	"courseplatform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.ConnectDb(cfg)

	if err := database.Seed(database.Database.Db, cfg); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, cfg)
	courseRoutes.SetupCourseRoutes(app, cfg)
	searchRoutes.SetupSearchRoutes(app)

	utils.StartProgressScheduler()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
