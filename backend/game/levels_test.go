package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor_Boundaries(t *testing.T) {
	levels := DefaultLevels()

	cases := []struct {
		points int
		want   string
	}{
		{0, "Rookie Connector"},
		{20, "Rookie Connector"},
		{21, "Engaged Networker"},
		{50, "Engaged Networker"},
		{51, "Community Builder"},
		{80, "Community Builder"},
		{81, "Industry Insider"},
		{10000, "Industry Insider"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, levels.LevelFor(tc.points).Name, "points=%d", tc.points)
	}
}

func TestLevelFor_EveryTotalMapsToExactlyOneLevel(t *testing.T) {
	levels := DefaultLevels()

	for points := 0; points <= 200; points++ {
		matches := 0
		for _, lvl := range levels.Levels() {
			if lvl.MaxPoints == nil {
				if points >= lvl.MinPoints {
					matches++
				}
				continue
			}
			if points >= lvl.MinPoints && points <= *lvl.MaxPoints {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "points=%d", points)
	}
}

func TestLevelFor_MonotonicNonDecreasing(t *testing.T) {
	levels := DefaultLevels()

	prevMin := -1
	for points := 0; points <= 200; points++ {
		lvl := levels.LevelFor(points)
		assert.GreaterOrEqual(t, lvl.MinPoints, prevMin, "points=%d", points)
		prevMin = lvl.MinPoints
	}
}

func TestLevelFor_Idempotent(t *testing.T) {
	levels := DefaultLevels()
	assert.Equal(t, levels.LevelFor(42), levels.LevelFor(42))
}

func TestLevelTable_ByName(t *testing.T) {
	levels := DefaultLevels()

	lvl, ok := levels.ByName("Engaged Networker")
	assert.True(t, ok)
	assert.Equal(t, 21, lvl.MinPoints)

	_, ok = levels.ByName("Archmage")
	assert.False(t, ok)
}
