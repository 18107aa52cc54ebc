package game

import (
	"fmt"
	"strings"
)

// BadgeKind tags the condition a badge checks. Conditions are plain
// descriptors rather than closures so that building many module badges in a
// loop cannot capture the wrong variable.
type BadgeKind string

const (
	BadgeMinPoints     BadgeKind = "min_points"
	BadgeMinStreak     BadgeKind = "min_streak"
	BadgeLevelReached  BadgeKind = "level"
	BadgeModuleMastery BadgeKind = "module_mastery"
)

// BadgeRule is the declarative award condition for one badge. Only the
// fields relevant to Kind are set. Rules are pure functions of user state.
type BadgeRule struct {
	Kind       BadgeKind
	MinPoints  int
	MinStreak  int
	LevelName  string
	ModuleName string
	Threshold  int
}

// Satisfied evaluates the rule against the user's current state.
func (r BadgeRule) Satisfied(u *User) bool {
	switch r.Kind {
	case BadgeMinPoints:
		return u.Points >= r.MinPoints
	case BadgeMinStreak:
		return u.Streak >= r.MinStreak
	case BadgeLevelReached:
		return u.Level.Name == r.LevelName
	case BadgeModuleMastery:
		return u.ModulePoints[r.ModuleName] >= r.Threshold
	default:
		return false
	}
}

// Badge is a one-way achievement: once earned it is never removed, even if
// its condition later becomes false.
type Badge struct {
	ID          string
	Name        string
	Description string
	Rule        BadgeRule
}

// BadgeCatalog is the ordered, read-only set of badge definitions. Award
// order follows catalog order.
type BadgeCatalog struct {
	badges []Badge
	byID   map[string]Badge
}

// NewBadgeCatalog assembles the full catalog: the first-task badge, the
// 7-day streak badge, one badge per named level, and one mastery badge per
// registered module.
func NewBadgeCatalog(levels *LevelTable, modules *ModuleCatalog) *BadgeCatalog {
	badges := []Badge{
		{
			ID:          "badge_first_connection",
			Name:        "First Connection",
			Description: "Complete your first networking task.",
			Rule:        BadgeRule{Kind: BadgeMinPoints, MinPoints: 5},
		},
		{
			ID:          "badge_7_day_streak",
			Name:        "Consistency Star",
			Description: "Maintain a 7-day streak of daily activity.",
			Rule:        BadgeRule{Kind: BadgeMinStreak, MinStreak: 7},
		},
	}

	for _, lvl := range levels.Levels() {
		badges = append(badges, Badge{
			ID:          "badge_level_" + slug(lvl.Name),
			Name:        lvl.Name,
			Description: fmt.Sprintf("Reach the %s level.", lvl.Name),
			Rule:        BadgeRule{Kind: BadgeLevelReached, LevelName: lvl.Name},
		})
	}

	for _, name := range modules.Names() {
		m, _ := modules.Get(name)
		badges = append(badges, Badge{
			ID:          "badge_module_" + slug(m.Name),
			Name:        m.Name + " Master",
			Description: fmt.Sprintf("Achieve mastery in the %s module.", m.Name),
			Rule: BadgeRule{
				Kind:       BadgeModuleMastery,
				ModuleName: m.Name,
				Threshold:  m.MasteryThreshold,
			},
		})
	}

	byID := make(map[string]Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}
	return &BadgeCatalog{badges: badges, byID: byID}
}

// Badges returns the definitions in award-priority order.
func (bc *BadgeCatalog) Badges() []Badge {
	out := make([]Badge, len(bc.badges))
	copy(out, bc.badges)
	return out
}

// ByID looks a badge up by id.
func (bc *BadgeCatalog) ByID(id string) (Badge, bool) {
	b, ok := bc.byID[id]
	return b, ok
}

func slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}
