package routes

import (
	"log"
	"sync"

	"netquest/backend/coach"
	"netquest/backend/config"
	"netquest/backend/controllers"
	"netquest/backend/game"
	"netquest/backend/middleware"
	"netquest/backend/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, engine *game.Game, client *coach.Client, cfg *config.Config, logger *log.Logger) {
	var store *storage.SnapshotStore
	if db != nil {
		store = storage.NewSnapshotStore(db)
	}

	// One lock serializes all engine access; the engine itself is
	// single-threaded.
	mu := &sync.Mutex{}

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Game routes
	gameController := controllers.NewGameController(engine, store, cfg, logger, mu)
	gameGroup := app.Group("/api/game", authMiddleware)
	gameGroup.Get("/state", gameController.GetState)
	gameGroup.Post("/tasks/daily", gameController.AssignDaily)
	gameGroup.Post("/tasks/weekly", gameController.AssignWeekly)
	gameGroup.Post("/tasks/module", gameController.AssignModuleTasks)
	gameGroup.Post("/tasks/hint", gameController.RevealHint)
	gameGroup.Post("/tasks/complete", gameController.CompleteTask)
	gameGroup.Get("/modules/available", gameController.AvailableModules)
	gameGroup.Get("/modules/progress", gameController.ModuleProgress)
	gameGroup.Get("/leaderboard", gameController.Leaderboard)

	// Coach routes
	coachController := controllers.NewCoachController(engine, store, client, cfg, logger, mu)
	app.Post("/api/quest/start", authMiddleware, coachController.QuestStart)
	app.Post("/api/quest/score", authMiddleware, coachController.QuestScore)
	app.Post("/api/quest/rewrite", authMiddleware, coachController.QuestRewrite)
	app.Post("/api/coach/chat", authMiddleware, coachController.Chat)
	app.Get("/api/coach/health", authMiddleware, coachController.Health)
}
