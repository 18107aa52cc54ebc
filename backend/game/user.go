package game

import (
	"fmt"
	"time"
)

// User holds all progress state for a single player: total points, derived
// level, earned badges (in earn order), owned tasks, streak and per-module
// point pools.
type User struct {
	Username     string
	Points       int
	Level        Level
	Badges       []Badge
	Tasks        []*Task
	Streak       int
	LastActive   *time.Time // date-only; nil until first completion
	ModulePoints map[string]int
}

func newUser(username string, levels *LevelTable) *User {
	return &User{
		Username:     username,
		Level:        levels.LevelFor(0),
		ModulePoints: make(map[string]int),
	}
}

// HasBadge reports whether the user already earned the badge with the
// given id.
func (u *User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (u *User) findPending(taskID string) *Task {
	for _, t := range u.Tasks {
		if t.ID == taskID && !t.Completed {
			return t
		}
	}
	return nil
}

// pendingCount counts incomplete tasks in a category; for module tasks the
// module name must match as well.
func (u *User) pendingCount(category TaskCategory, moduleName string) int {
	n := 0
	for _, t := range u.Tasks {
		if t.Completed || t.Category != category {
			continue
		}
		if category == TaskModule && t.ModuleName != moduleName {
			continue
		}
		n++
	}
	return n
}

const snapshotDateLayout = "2006-01-02"

// TaskSnapshot is the persistence record for one task.
type TaskSnapshot struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
	ModuleName  string `json:"module_name,omitempty"`
	Hint        string `json:"hint,omitempty"`
	Completed   bool   `json:"completed"`
	DueDate     string `json:"due_date,omitempty"` // ISO calendar date
	HintUsed    bool   `json:"hint_used"`
}

// UserSnapshot is the persistence record for a user's full state. Level and
// badges are stored by name/id and resolved against the live catalogs on
// restore.
type UserSnapshot struct {
	Username     string         `json:"username"`
	Points       int            `json:"points"`
	Level        string         `json:"level"`
	Badges       []string       `json:"badges"`
	Streak       int            `json:"streak"`
	LastActive   string         `json:"last_active,omitempty"` // ISO calendar date
	Tasks        []TaskSnapshot `json:"tasks"`
	ModulePoints map[string]int `json:"module_points"`
}

// Snapshot exports the user's full state to a persistence record.
func (u *User) Snapshot() UserSnapshot {
	snap := UserSnapshot{
		Username:     u.Username,
		Points:       u.Points,
		Level:        u.Level.Name,
		Badges:       make([]string, 0, len(u.Badges)),
		Streak:       u.Streak,
		Tasks:        make([]TaskSnapshot, 0, len(u.Tasks)),
		ModulePoints: make(map[string]int, len(u.ModulePoints)),
	}
	for _, b := range u.Badges {
		snap.Badges = append(snap.Badges, b.ID)
	}
	if u.LastActive != nil {
		snap.LastActive = u.LastActive.Format(snapshotDateLayout)
	}
	for _, t := range u.Tasks {
		ts := TaskSnapshot{
			ID:          t.ID,
			Description: t.Description,
			Points:      t.Points,
			Category:    string(t.Category),
			ModuleName:  t.ModuleName,
			Hint:        t.Hint,
			Completed:   t.Completed,
			HintUsed:    t.HintUsed,
		}
		if t.DueDate != nil {
			ts.DueDate = t.DueDate.Format(snapshotDateLayout)
		}
		snap.Tasks = append(snap.Tasks, ts)
	}
	for name, pts := range u.ModulePoints {
		snap.ModulePoints[name] = pts
	}
	return snap
}

// restoreUser rebuilds a user from a snapshot, resolving the level name and
// badge ids against the live catalogs.
func restoreUser(snap UserSnapshot, levels *LevelTable, badges *BadgeCatalog) (*User, error) {
	level, ok := levels.ByName(snap.Level)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, snap.Level)
	}

	u := newUser(snap.Username, levels)
	u.Points = snap.Points
	u.Level = level
	u.Streak = snap.Streak

	for _, id := range snap.Badges {
		b, ok := badges.ByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBadge, id)
		}
		u.Badges = append(u.Badges, b)
	}

	if snap.LastActive != "" {
		d, err := time.Parse(snapshotDateLayout, snap.LastActive)
		if err != nil {
			return nil, fmt.Errorf("parse last active date: %w", err)
		}
		d = DateOnly(d)
		u.LastActive = &d
	}

	for _, ts := range snap.Tasks {
		if !TaskCategory(ts.Category).IsValid() {
			return nil, fmt.Errorf("unknown task category %q for task %s", ts.Category, ts.ID)
		}
		t := &Task{
			ID:          ts.ID,
			Description: ts.Description,
			Points:      ts.Points,
			Category:    TaskCategory(ts.Category),
			ModuleName:  ts.ModuleName,
			Hint:        ts.Hint,
			Completed:   ts.Completed,
			HintUsed:    ts.HintUsed,
		}
		if ts.DueDate != "" {
			d, err := time.Parse(snapshotDateLayout, ts.DueDate)
			if err != nil {
				return nil, fmt.Errorf("parse due date for task %s: %w", ts.ID, err)
			}
			d = DateOnly(d)
			t.DueDate = &d
		}
		u.Tasks = append(u.Tasks, t)
	}

	for name, pts := range snap.ModulePoints {
		u.ModulePoints[name] = pts
	}
	return u, nil
}
