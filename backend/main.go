package main

import (
	"log"

	"netquest/backend/coach"
	"netquest/backend/config"
	"netquest/backend/game"
	"netquest/backend/middleware"
	"netquest/backend/models"
	"netquest/backend/routes"
	"netquest/backend/storage"
	"netquest/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Account{},
		&models.LoginHistory{},
		&models.PlayerState{},
		&models.PlayerTask{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Build the progression engine and restore saved players
	engine := game.New(game.Config{})
	store := storage.NewSnapshotStore(db)
	snaps, err := store.LoadAll()
	if err != nil {
		log.Fatalf("Error loading player states: %v", err)
	}
	for _, snap := range snaps {
		if _, err := engine.RestoreUser(snap); err != nil {
			logger.Printf("restore player %s: %v", snap.Username, err)
		}
	}
	logger.Printf("restored %d players", len(snaps))

	// Cortex client for quests and coaching
	client := coach.NewClient(cfg.CortexBase, cfg.CortexToken, cfg.CortexModel)
	if !client.Configured() {
		logger.Printf("cortex not configured, quest scoring falls back to local heuristics")
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, engine, client, cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
