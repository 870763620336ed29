package models

import "time"

// GoalPriority represents how important a goal is
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusOnHold     GoalStatus = "on_hold"
)

// Goal represents a tracked personal or business goal
type Goal struct {
	Base
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	Category    string       `gorm:"not null" json:"category"`
	Priority    GoalPriority `gorm:"not null;default:medium" json:"priority"`
	Status      GoalStatus   `gorm:"not null;default:not_started" json:"status"`
	Progress    int          `gorm:"default:0" json:"progress"`
	TargetDate  *time.Time   `json:"target_date,omitempty"`
}

// ClampProgress bounds a progress value to [0, 100].
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// StatusForProgress derives a goal status from its progress value.
// Slider-driven updates persist progress and this derived status in a
// single write so no intermediate state is ever observable.
func StatusForProgress(progress int) GoalStatus {
	switch p := ClampProgress(progress); {
	case p == 100:
		return GoalStatusCompleted
	case p > 0:
		return GoalStatusInProgress
	default:
		return GoalStatusNotStarted
	}
}
