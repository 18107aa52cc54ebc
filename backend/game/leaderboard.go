package game

import "sort"

// LeaderboardEntry is one ranked row: rank is 1-based, badges are names in
// earn order.
type LeaderboardEntry struct {
	Rank     int      `json:"rank"`
	Username string   `json:"username"`
	Points   int      `json:"points"`
	Level    string   `json:"level"`
	Streak   int      `json:"streak"`
	Badges   []string `json:"badges"`
}

// Leaderboard ranks all users by points descending, then streak descending,
// then username ascending, and returns at most topN entries. The ordering
// is total, so equal inputs always produce the same board.
func (g *Game) Leaderboard(topN int) []LeaderboardEntry {
	users := make([]*User, 0, len(g.users))
	for _, u := range g.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Streak != b.Streak {
			return a.Streak > b.Streak
		}
		return a.Username < b.Username
	})
	if topN >= 0 && len(users) > topN {
		users = users[:topN]
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		badgeNames := make([]string, 0, len(u.Badges))
		for _, b := range u.Badges {
			badgeNames = append(badgeNames, b.Name)
		}
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			Username: u.Username,
			Points:   u.Points,
			Level:    u.Level.Name,
			Streak:   u.Streak,
			Badges:   badgeNames,
		})
	}
	return entries
}
