package game

// Level is a named progression tier over a range of total points.
// MaxPoints is nil for the open-ended top tier.
type Level struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
	MaxPoints *int   `json:"max_points,omitempty"`
}

// LevelTable is the ordered, read-only set of progression tiers. The ranges
// must partition the non-negative integers: no gaps, no overlaps, and the
// last tier open-ended. That is an assembly-time precondition, not a runtime
// check.
type LevelTable struct {
	levels []Level
	byName map[string]Level
}

func NewLevelTable(levels []Level) *LevelTable {
	byName := make(map[string]Level, len(levels))
	for _, lvl := range levels {
		byName[lvl.Name] = lvl
	}
	return &LevelTable{levels: levels, byName: byName}
}

// DefaultLevels returns the stock progression tiers.
func DefaultLevels() *LevelTable {
	return NewLevelTable([]Level{
		{Name: "Rookie Connector", MinPoints: 0, MaxPoints: intPtr(20)},
		{Name: "Engaged Networker", MinPoints: 21, MaxPoints: intPtr(50)},
		{Name: "Community Builder", MinPoints: 51, MaxPoints: intPtr(80)},
		{Name: "Industry Insider", MinPoints: 81, MaxPoints: nil},
	})
}

// LevelFor returns the tier matching the given point total, scanning from
// the highest tier down. A correctly assembled table always matches; the
// lowest tier is returned if the table has a hole.
func (lt *LevelTable) LevelFor(points int) Level {
	for i := len(lt.levels) - 1; i >= 0; i-- {
		lvl := lt.levels[i]
		if lvl.MaxPoints == nil {
			if points >= lvl.MinPoints {
				return lvl
			}
			continue
		}
		if points >= lvl.MinPoints && points <= *lvl.MaxPoints {
			return lvl
		}
	}
	return lt.levels[0]
}

// ByName looks a level up by its name.
func (lt *LevelTable) ByName(name string) (Level, bool) {
	lvl, ok := lt.byName[name]
	return lvl, ok
}

// Levels returns the tiers in ascending order.
func (lt *LevelTable) Levels() []Level {
	out := make([]Level, len(lt.levels))
	copy(out, lt.levels)
	return out
}

func intPtr(v int) *int {
	return &v
}
