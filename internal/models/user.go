package models

type User struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID" json:"-"`
}
