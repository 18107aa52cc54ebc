// Package game implements the mastery-based progression engine behind the
// networking-skills trainer: task assignment and completion, the module
// prerequisite graph, streaks, levels, badges and the leaderboard. The
// package is synchronous and framework-free; every date-sensitive operation
// takes a caller-supplied "today", so nothing in here reads the clock.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Config carries the static catalogs and the injectable sources of
// randomness and identity. Zero fields fall back to the stock content and
// a time-seeded generator.
type Config struct {
	Levels          *LevelTable
	Modules         *ModuleCatalog
	Badges          *BadgeCatalog
	DailyTemplates  []TaskTemplate
	WeeklyTemplates []TaskTemplate
	Rand            *rand.Rand
	NewID           func(category TaskCategory) string
}

// Game is the engine facade. It owns the user registry and orchestrates the
// catalogs. Not safe for concurrent use; the embedding host serializes
// access.
type Game struct {
	levels  *LevelTable
	modules *ModuleCatalog
	badges  *BadgeCatalog
	daily   []TaskTemplate
	weekly  []TaskTemplate
	rng     *rand.Rand
	newID   func(TaskCategory) string
	users   map[string]*User
}

// New assembles an engine instance. Catalogs are injected explicitly; there
// is no package-level mutable state.
func New(cfg Config) *Game {
	if cfg.Levels == nil {
		cfg.Levels = DefaultLevels()
	}
	if cfg.Modules == nil {
		cfg.Modules = DefaultModules()
	}
	if cfg.Badges == nil {
		cfg.Badges = NewBadgeCatalog(cfg.Levels, cfg.Modules)
	}
	if cfg.DailyTemplates == nil {
		cfg.DailyTemplates = DefaultDailyTemplates()
	}
	if cfg.WeeklyTemplates == nil {
		cfg.WeeklyTemplates = DefaultWeeklyTemplates()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.NewID == nil {
		cfg.NewID = defaultTaskID
	}
	return &Game{
		levels:  cfg.Levels,
		modules: cfg.Modules,
		badges:  cfg.Badges,
		daily:   cfg.DailyTemplates,
		weekly:  cfg.WeeklyTemplates,
		rng:     cfg.Rand,
		newID:   cfg.NewID,
		users:   make(map[string]*User),
	}
}

// defaultTaskID prefixes a UUID with the category initial ("d"/"w"/"m").
// Timestamp-based ids collide under rapid-fire creation; UUIDs don't.
func defaultTaskID(category TaskCategory) string {
	return string(category[:1]) + uuid.NewString()
}

// Levels exposes the level table for read access.
func (g *Game) Levels() *LevelTable { return g.levels }

// Modules exposes the module catalog for read access.
func (g *Game) Modules() *ModuleCatalog { return g.modules }

// Badges exposes the badge catalog for read access.
func (g *Game) Badges() *BadgeCatalog { return g.badges }

// RegisterUser creates a user or returns the existing one. Usernames are
// case-sensitive.
func (g *Game) RegisterUser(username string) *User {
	if u, ok := g.users[username]; ok {
		return u
	}
	u := newUser(username, g.levels)
	g.users[username] = u
	return u
}

// GetUser looks a registered user up by username.
func (g *Game) GetUser(username string) (*User, bool) {
	u, ok := g.users[username]
	return u, ok
}

// AssignDailyTasks tops the user's pending daily tasks up to count, each
// due at the end of today. Expired tasks are purged first; existing pending
// dailies are kept, never duplicated or replaced.
func (g *Game) AssignDailyTasks(u *User, today time.Time, count int) {
	g.purgeExpired(u, today)
	pending := u.pendingCount(TaskDaily, "")
	for pending < count {
		tpl := g.daily[g.rng.Intn(len(g.daily))]
		due := DateOnly(today)
		u.Tasks = append(u.Tasks, &Task{
			ID:          g.newID(TaskDaily),
			Description: tpl.Description,
			Points:      tpl.Points,
			Category:    TaskDaily,
			DueDate:     &due,
		})
		pending++
	}
}

// AssignWeeklyTasks tops the user's pending weekly tasks up to count, each
// due at the Sunday ending the current ISO week.
func (g *Game) AssignWeeklyTasks(u *User, today time.Time, count int) {
	g.purgeExpired(u, today)
	pending := u.pendingCount(TaskWeekly, "")
	for pending < count {
		tpl := g.weekly[g.rng.Intn(len(g.weekly))]
		due := endOfISOWeek(today)
		u.Tasks = append(u.Tasks, &Task{
			ID:          g.newID(TaskWeekly),
			Description: tpl.Description,
			Points:      tpl.Points,
			Category:    TaskWeekly,
			DueDate:     &due,
		})
		pending++
	}
}

// AssignModuleTasks tops the user's pending tasks for the named module up
// to count. It fails on an unregistered module, and silently assigns
// nothing when a prerequisite is unmet or the module is already mastered.
// Module tasks have no due date and never expire.
func (g *Game) AssignModuleTasks(u *User, moduleName string, today time.Time, count int) error {
	module, ok := g.modules.Get(moduleName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModule, moduleName)
	}
	for _, prereq := range module.Prerequisites {
		if !g.modules.IsMastered(u, prereq) {
			return nil
		}
	}
	if u.ModulePoints[moduleName] >= module.MasteryThreshold {
		return nil
	}
	g.purgeExpired(u, today)
	pending := u.pendingCount(TaskModule, moduleName)
	for pending < count {
		tpl := module.TaskTemplates[g.rng.Intn(len(module.TaskTemplates))]
		u.Tasks = append(u.Tasks, &Task{
			ID:          g.newID(TaskModule),
			Description: tpl.Description,
			Points:      tpl.Points,
			Category:    TaskModule,
			ModuleName:  moduleName,
			Hint:        tpl.Hint,
		})
		pending++
	}
	return nil
}

// UseTaskHint reveals the hint for a pending task. It returns false when
// the task doesn't exist, is already completed, or has no unrevealed hint.
func (g *Game) UseTaskHint(u *User, taskID string) (string, bool) {
	t := u.findPending(taskID)
	if t == nil {
		return "", false
	}
	return t.UseHint()
}

// CompleteTask marks a pending task completed, awards its full point value
// (hint usage never reduces it), accumulates module points for module
// tasks, updates the streak, recomputes the level and re-evaluates badges.
// It returns false when no matching pending task exists; not-found and
// already-completed are indistinguishable at this boundary.
func (g *Game) CompleteTask(u *User, taskID string, today time.Time) bool {
	t := u.findPending(taskID)
	if t == nil {
		return false
	}
	t.Completed = true
	u.Points += t.Points
	if t.Category == TaskModule && t.ModuleName != "" {
		u.ModulePoints[t.ModuleName] += t.Points
	}
	g.updateStreak(u, today)
	g.updateLevel(u)
	g.updateBadges(u)
	return true
}

// AvailableModules returns the modules the user can currently work on.
func (g *Game) AvailableModules(u *User) []string {
	return g.modules.AvailableFor(u)
}

// ModuleProgress returns each module's mastery fraction for the user.
func (g *Game) ModuleProgress(u *User) map[string]float64 {
	return g.modules.ProgressFor(u)
}

// AwardBonusPoints grants points earned outside the task ledger (practice
// scenario scoring) and recomputes the level. Negative amounts are ignored.
func (g *Game) AwardBonusPoints(u *User, points int) {
	if points <= 0 {
		return
	}
	u.Points += points
	g.updateLevel(u)
}

// RestoreUser rebuilds a user from a persisted snapshot and registers it,
// replacing any in-memory user with the same username.
func (g *Game) RestoreUser(snap UserSnapshot) (*User, error) {
	u, err := restoreUser(snap, g.levels, g.badges)
	if err != nil {
		return nil, err
	}
	g.users[u.Username] = u
	return u, nil
}

// purgeExpired drops overdue incomplete tasks. Runs lazily at the start of
// every assignment call rather than on a timer.
func (g *Game) purgeExpired(u *User, today time.Time) {
	kept := u.Tasks[:0]
	for _, t := range u.Tasks {
		if !t.IsOverdue(today) {
			kept = append(kept, t)
		}
	}
	u.Tasks = kept
}

// updateStreak increments the streak when the gap since the last active day
// is at most one day (a fresh user always starts at 1), otherwise resets to
// 1. Multiple completions on the same day each increment the streak; that
// matches the shipped behavior and is pinned by tests.
func (g *Game) updateStreak(u *User, today time.Time) {
	day := DateOnly(today)
	if u.LastActive == nil || daysBetween(*u.LastActive, day) <= 1 {
		u.Streak++
	} else {
		u.Streak = 1
	}
	u.LastActive = &day
}

func (g *Game) updateLevel(u *User) {
	u.Level = g.levels.LevelFor(u.Points)
}

// updateBadges appends every not-yet-held badge whose rule is now
// satisfied, in catalog order. Earned badges are never removed.
func (g *Game) updateBadges(u *User) {
	for _, b := range g.badges.Badges() {
		if u.HasBadge(b.ID) {
			continue
		}
		if b.Rule.Satisfied(u) {
			u.Badges = append(u.Badges, b)
		}
	}
}
