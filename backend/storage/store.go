// Package storage persists player snapshots produced by the progression
// engine. The engine never touches the database itself; it only speaks
// game.UserSnapshot at this boundary.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"netquest/backend/game"
	"netquest/backend/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no saved state exists for a username.
var ErrNotFound = errors.New("player state not found")

type SnapshotStore struct {
	DB *gorm.DB
}

func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{DB: db}
}

// SaveUser upserts the player's state row and replaces its task rows.
func (s *SnapshotStore) SaveUser(snap game.UserSnapshot) error {
	row, err := toRow(snap)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.PlayerState
		err := tx.Where("username = ?", snap.Username).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&row).Error
		case err != nil:
			return err
		}

		if err := tx.Where("player_state_id = ?", existing.ID).
			Delete(&models.PlayerTask{}).Error; err != nil {
			return err
		}
		row.Model = existing.Model
		for i := range row.Tasks {
			row.Tasks[i].PlayerStateID = existing.ID
		}
		return tx.Save(&row).Error
	})
}

// LoadUser fetches one saved snapshot by username.
func (s *SnapshotStore) LoadUser(username string) (game.UserSnapshot, error) {
	var row models.PlayerState
	err := s.DB.Preload("Tasks").Where("username = ?", username).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.UserSnapshot{}, fmt.Errorf("%w: %q", ErrNotFound, username)
	}
	if err != nil {
		return game.UserSnapshot{}, err
	}
	return fromRow(row)
}

// LoadAll fetches every saved snapshot, for restoring the registry on boot.
func (s *SnapshotStore) LoadAll() ([]game.UserSnapshot, error) {
	var rows []models.PlayerState
	if err := s.DB.Preload("Tasks").Find(&rows).Error; err != nil {
		return nil, err
	}

	snaps := make([]game.UserSnapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func toRow(snap game.UserSnapshot) (models.PlayerState, error) {
	modulePoints, err := json.Marshal(snap.ModulePoints)
	if err != nil {
		return models.PlayerState{}, fmt.Errorf("encode module points: %w", err)
	}

	row := models.PlayerState{
		Username:     snap.Username,
		Points:       snap.Points,
		LevelName:    snap.Level,
		Badges:       strings.Join(snap.Badges, ","),
		Streak:       snap.Streak,
		LastActive:   snap.LastActive,
		ModulePoints: string(modulePoints),
	}
	for _, ts := range snap.Tasks {
		row.Tasks = append(row.Tasks, models.PlayerTask{
			TaskID:      ts.ID,
			Description: ts.Description,
			Points:      ts.Points,
			Category:    ts.Category,
			ModuleName:  ts.ModuleName,
			Hint:        ts.Hint,
			Completed:   ts.Completed,
			DueDate:     ts.DueDate,
			HintUsed:    ts.HintUsed,
		})
	}
	return row, nil
}

func fromRow(row models.PlayerState) (game.UserSnapshot, error) {
	snap := game.UserSnapshot{
		Username:     row.Username,
		Points:       row.Points,
		Level:        row.LevelName,
		Streak:       row.Streak,
		LastActive:   row.LastActive,
		ModulePoints: make(map[string]int),
	}
	if row.Badges != "" {
		snap.Badges = strings.Split(row.Badges, ",")
	}
	if row.ModulePoints != "" {
		if err := json.Unmarshal([]byte(row.ModulePoints), &snap.ModulePoints); err != nil {
			return game.UserSnapshot{}, fmt.Errorf("decode module points for %s: %w", row.Username, err)
		}
	}
	for _, task := range row.Tasks {
		snap.Tasks = append(snap.Tasks, game.TaskSnapshot{
			ID:          task.TaskID,
			Description: task.Description,
			Points:      task.Points,
			Category:    task.Category,
			ModuleName:  task.ModuleName,
			Hint:        task.Hint,
			Completed:   task.Completed,
			DueDate:     task.DueDate,
			HintUsed:    task.HintUsed,
		})
	}
	return snap, nil
}
