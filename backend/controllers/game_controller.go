package controllers

import (
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"netquest/backend/config"
	"netquest/backend/game"
	"netquest/backend/storage"
	"netquest/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// Demo competitors seeded into the leaderboard so a fresh install isn't an
// empty podium.
var demoCompetitors = []struct {
	Username string
	Points   int
}{
	{"Nova-A12", 220},
	{"Lyra-K5", 180},
	{"Orion-M3", 160},
}

// GameController exposes the progression engine over HTTP. The engine
// itself is single-threaded, so every handler takes Mu before touching it.
type GameController struct {
	Engine *game.Game
	Store  *storage.SnapshotStore
	Cfg    *config.Config
	Logger *log.Logger
	Mu     *sync.Mutex
}

func NewGameController(engine *game.Game, store *storage.SnapshotStore, cfg *config.Config, logger *log.Logger, mu *sync.Mutex) *GameController {
	return &GameController{Engine: engine, Store: store, Cfg: cfg, Logger: logger, Mu: mu}
}

// currentUser resolves the authenticated player, registering them in the
// engine on first sight. Caller must hold Mu.
func (gc *GameController) currentUser(c *fiber.Ctx) *game.User {
	username, _ := c.Locals("username").(string)
	return gc.Engine.RegisterUser(username)
}

// persist writes the player's snapshot through the store, best effort. A
// failed save is logged but never fails the request; the in-memory state is
// authoritative until the next successful write.
func (gc *GameController) persist(u *game.User) {
	if gc.Store == nil {
		return
	}
	if err := gc.Store.SaveUser(u.Snapshot()); err != nil {
		gc.Logger.Printf("save player %s: %v", u.Username, err)
	}
}

// GetState godoc
// @Summary Current player state
// @Description Returns the full progression snapshot for the authenticated player
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /game/state [get]
func (gc *GameController) GetState(c *fiber.Ctx) error {
	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	return c.JSON(u.Snapshot())
}

// AssignDaily godoc
// @Summary Assign daily tasks
// @Description Tops the player's pending daily tasks up to count (default 2)
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /game/tasks/daily [post]
func (gc *GameController) AssignDaily(c *fiber.Ctx) error {
	var input struct {
		Count int `json:"count"`
	}
	c.BodyParser(&input)
	if input.Count <= 0 {
		input.Count = 2
	}

	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	gc.Engine.AssignDailyTasks(u, time.Now(), input.Count)
	gc.persist(u)
	return c.JSON(u.Snapshot())
}

// AssignWeekly godoc
// @Summary Assign weekly tasks
// @Description Tops the player's pending weekly tasks up to count (default 1)
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /game/tasks/weekly [post]
func (gc *GameController) AssignWeekly(c *fiber.Ctx) error {
	var input struct {
		Count int `json:"count"`
	}
	c.BodyParser(&input)
	if input.Count <= 0 {
		input.Count = 1
	}

	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	gc.Engine.AssignWeeklyTasks(u, time.Now(), input.Count)
	gc.persist(u)
	return c.JSON(u.Snapshot())
}

// AssignModuleTasks godoc
// @Summary Assign module tasks
// @Description Tops the player's pending tasks for a module up to count (default 2)
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Module name and count"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /game/tasks/module [post]
func (gc *GameController) AssignModuleTasks(c *fiber.Ctx) error {
	var input struct {
		Module string `json:"module"`
		Count  int    `json:"count"`
	}
	if err := c.BodyParser(&input); err != nil || input.Module == "" {
		return utils.BadRequest(c, "module name is required")
	}
	if input.Count <= 0 {
		input.Count = 2
	}

	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	if err := gc.Engine.AssignModuleTasks(u, input.Module, time.Now(), input.Count); err != nil {
		if errors.Is(err, game.ErrUnknownModule) {
			return utils.NotFound(c, "unknown module")
		}
		return utils.InternalServerError(c, "could not assign module tasks")
	}
	gc.persist(u)
	return c.JSON(u.Snapshot())
}

// RevealHint godoc
// @Summary Reveal a task hint
// @Description Reveals the hint for a pending task; a hint can only be revealed once
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Task id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /game/tasks/hint [post]
func (gc *GameController) RevealHint(c *fiber.Ctx) error {
	var input struct {
		TaskID string `json:"taskId"`
	}
	if err := c.BodyParser(&input); err != nil || input.TaskID == "" {
		return utils.BadRequest(c, "task id is required")
	}

	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	hint, ok := gc.Engine.UseTaskHint(u, input.TaskID)
	if !ok {
		return utils.NotFound(c, "no hint available for this task")
	}
	gc.persist(u)
	return c.JSON(fiber.Map{
		"hint": hint,
	})
}

// CompleteTask godoc
// @Summary Complete a task
// @Description Marks a pending task completed and awards its points
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string]interface{} true "Task id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /game/tasks/complete [post]
func (gc *GameController) CompleteTask(c *fiber.Ctx) error {
	var input struct {
		TaskID string `json:"taskId"`
	}
	if err := c.BodyParser(&input); err != nil || input.TaskID == "" {
		return utils.BadRequest(c, "task id is required")
	}

	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	ok := gc.Engine.CompleteTask(u, input.TaskID, time.Now())
	if ok {
		gc.persist(u)
	}
	return c.JSON(fiber.Map{
		"ok":     ok,
		"points": u.Points,
		"level":  u.Level.Name,
		"streak": u.Streak,
	})
}

// AvailableModules godoc
// @Summary Modules open to the player
// @Description Lists modules whose prerequisites the player has mastered
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /game/modules/available [get]
func (gc *GameController) AvailableModules(c *fiber.Ctx) error {
	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	return c.JSON(fiber.Map{
		"modules": gc.Engine.AvailableModules(u),
	})
}

// ModuleProgress godoc
// @Summary Per-module mastery progress
// @Description Returns each module's mastery fraction for the player
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /game/modules/progress [get]
func (gc *GameController) ModuleProgress(c *fiber.Ctx) error {
	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	u := gc.currentUser(c)
	return c.JSON(fiber.Map{
		"progress": gc.Engine.ModuleProgress(u),
	})
}

// Leaderboard godoc
// @Summary Leaderboard
// @Description Top players by points, then streak, then username
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {object} map[string]interface{}
// @Router /game/leaderboard [get]
func (gc *GameController) Leaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	gc.Mu.Lock()
	defer gc.Mu.Unlock()

	gc.seedCompetitors()
	return c.JSON(fiber.Map{
		"leaderboard": gc.Engine.Leaderboard(limit),
	})
}

// seedCompetitors registers the demo rivals once. Caller must hold Mu.
func (gc *GameController) seedCompetitors() {
	for _, comp := range demoCompetitors {
		if _, ok := gc.Engine.GetUser(comp.Username); ok {
			continue
		}
		u := gc.Engine.RegisterUser(comp.Username)
		gc.Engine.AwardBonusPoints(u, comp.Points)
	}
}
