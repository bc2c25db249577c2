package model

import "time"

type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusAchieved  PlanStatus = "achieved"
	PlanStatusDeferred  PlanStatus = "deferred"
	PlanStatusAbandoned PlanStatus = "abandoned"
)

type FuturePlan struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	UserID      int64      `gorm:"not null;index"`
	GoalType    *string    `gorm:"type:varchar(50)"`
	Title       string     `gorm:"type:text;not null"`
	Description string     `gorm:"type:text;not null"`
	TargetDate  *time.Time `gorm:"type:date"`
	Status      PlanStatus `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime"`
}
