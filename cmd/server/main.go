package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/config"
	"github.com/example/playmart/internal/database"
	"github.com/example/playmart/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	cat, err := catalog.Load(cfg.CatalogDir, time.Now())
	if err != nil {
		log.Fatalf("failed to load catalogs: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Playmart Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, cat)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
