package model

import "time"

type Achievement struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement"`
	UserID              int64      `gorm:"not null;index"`
	Title               string     `gorm:"type:text;not null"`
	Description         *string    `gorm:"type:text"`
	QuantifiableResults *string    `gorm:"type:text"`
	CoreSkills          []string   `gorm:"column:core_skills_json;serializer:json"`
	DateAchieved        *time.Time `gorm:"type:date"`
	CreatedAt           time.Time  `gorm:"not null;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"not null;autoUpdateTime"`
}
