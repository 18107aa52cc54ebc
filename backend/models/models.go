package models

import (
	"time"

	"gorm.io/gorm"
)

type Account struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}

type LoginHistory struct {
	gorm.Model
	AccountID uint
	LoginTime time.Time
}

// PlayerState is the persisted progression record for one player. Level and
// badges are stored by name/id and resolved against the live catalogs when
// the engine restores the player.
type PlayerState struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Points       int
	LevelName    string
	Badges       string // comma-separated badge ids, earn order
	Streak       int
	LastActive   string // ISO calendar date, empty when never active
	ModulePoints string // JSON object: module name -> accumulated points
	Tasks        []PlayerTask
}

type PlayerTask struct {
	gorm.Model
	PlayerStateID uint
	TaskID        string `gorm:"not null"`
	Description   string
	Points        int
	Category      string
	ModuleName    string
	Hint          string
	Completed     bool
	DueDate       string // ISO calendar date, empty when no deadline
	HintUsed      bool
}
