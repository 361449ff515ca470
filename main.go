package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/JalilAbdallah/hrm-backend/auth"
	"github.com/JalilAbdallah/hrm-backend/config"
	"github.com/JalilAbdallah/hrm-backend/controllers"
	"github.com/JalilAbdallah/hrm-backend/database"
	"github.com/JalilAbdallah/hrm-backend/repository"
	"github.com/JalilAbdallah/hrm-backend/routes"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(context.Background(), cfg.Mongo)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Printf("mongo: disconnect: %v", err)
		}
	}()

	caseRepo := repository.NewCaseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	victimRepo := repository.NewVictimRepository(db)
	userRepo := repository.NewUserRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	authSvc := auth.NewService(userRepo, cfg.Auth)

	app := fiber.New()
	app.Use(recover.New())

	// Log concise request lines
	app.Use(logger.New(logger.Config{
		TimeFormat: "15:04:05",
	}))

	// CORS (dev-friendly)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "*",
		AllowCredentials: false,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))

	// Static preview for uploaded evidence
	app.Static("/uploads", "./"+cfg.Server.UploadDir)

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.Register(app, routes.Deps{
		Auth:      authSvc,
		AuthCtl:   controllers.NewAuthController(authSvc),
		Cases:     controllers.NewCaseController(caseRepo),
		Reports:   controllers.NewReportController(reportRepo, cfg.Server.UploadDir),
		Victims:   controllers.NewVictimController(victimRepo),
		Analytics: controllers.NewAnalyticsController(analyticsRepo),
	})

	log.Printf("API listening on :%s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
