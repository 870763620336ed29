package models

// EventType represents the kind of planner entry
type EventType string

const (
	EventTypeTask     EventType = "task"
	EventTypeEvent    EventType = "event"
	EventTypeMeeting  EventType = "meeting"
	EventTypeReminder EventType = "reminder"
)

// PlannerEvent represents a scheduled entry on a specific day.
// Date is stored as YYYY-MM-DD and the times as HH:MM so day- and
// week-scoped queries compare plain strings.
type PlannerEvent struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Type        EventType `gorm:"not null;default:task" json:"type"`
	Priority    string    `gorm:"not null;default:medium" json:"priority"`
	Date        string    `gorm:"not null;index;type:date" json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Completed   bool      `gorm:"default:false" json:"completed"`
}
