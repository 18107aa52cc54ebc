package game

import "time"

// TaskCategory classifies a task for scheduling: daily and weekly tasks
// carry a due date and expire, module tasks stay open until mastered.
type TaskCategory string

const (
	TaskDaily  TaskCategory = "daily"
	TaskWeekly TaskCategory = "weekly"
	TaskModule TaskCategory = "module"
)

func (c TaskCategory) IsValid() bool {
	switch c {
	case TaskDaily, TaskWeekly, TaskModule:
		return true
	default:
		return false
	}
}

// Task is a single assigned challenge owned by one user.
type Task struct {
	ID          string
	Description string
	Points      int
	Category    TaskCategory
	ModuleName  string // set only when Category == TaskModule
	Hint        string // empty means no hint available
	Completed   bool
	DueDate     *time.Time // date-only; nil means no deadline
	HintUsed    bool
}

// IsOverdue reports whether the task's due date has passed without
// completion. Completed tasks never expire.
func (t *Task) IsOverdue(today time.Time) bool {
	return !t.Completed && t.DueDate != nil && DateOnly(today).After(*t.DueDate)
}

// UseHint reveals the hint and marks it used. It can be revealed once.
// Revealing a hint never changes the task's point value: guidance without
// penalty.
func (t *Task) UseHint() (string, bool) {
	if t.Hint == "" || t.HintUsed {
		return "", false
	}
	t.HintUsed = true
	return t.Hint, true
}
