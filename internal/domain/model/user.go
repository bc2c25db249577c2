package model

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(80);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// 1:1。Userを消すとProfileも消える
	Profile *Profile `gorm:"constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
