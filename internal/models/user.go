package models

import "time"

// MaxNameLength bounds usernames and task titles to their varchar(255) columns.
const MaxNameLength = 255

type User struct {
	Username     string    `gorm:"primarykey;type:varchar(255)" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
