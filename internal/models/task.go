package models

import "time"

// MaxContentLength bounds task content, matching the varchar(200) column.
const MaxContentLength = 200

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Content     string    `gorm:"type:varchar(200);not null" json:"content"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	DateCreated time.Time `gorm:"not null;index" json:"date_created"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
