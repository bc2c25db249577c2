package model

import "time"

type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusCompleted  TodoStatus = "completed"
	TodoStatusDeferred   TodoStatus = "deferred"
)

type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

type TodoItem struct {
	ID             int64        `gorm:"primaryKey;autoIncrement"`
	UserID         int64        `gorm:"not null;index"`
	Title          string       `gorm:"type:text;not null"`
	Description    *string      `gorm:"type:text"`
	DueDate        *time.Time   `gorm:"type:date"`
	Status         TodoStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	Priority       TodoPriority `gorm:"type:varchar(20);not null;default:'medium'"`
	IsCurrentFocus bool         `gorm:"not null;default:false"`
	CreatedAt      time.Time    `gorm:"not null;autoCreateTime"`
	UpdatedAt      time.Time    `gorm:"not null;autoUpdateTime"`
	CompletedAt    *time.Time
}
