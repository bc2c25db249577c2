package model

import "time"

// ProfileはUserと1:1。主キーがそのままusers.idへのFK。
type Profile struct {
	UserID            int64   `gorm:"primaryKey"`
	ProfessionalTitle *string `gorm:"type:varchar(255)"`
	OneLinerBio       *string `gorm:"type:text"`
	Skill             *string `gorm:"type:text"`
	Summary           *string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Profile) TableName() string {
	return "user_profiles"
}
