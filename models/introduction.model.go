package models

import "time"

// Introduction is the single introduction video shown on the landing page.
type Introduction struct {
	ID          uint      `gorm:"primaryKey" json:"intro_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Introduction) TableName() string {
	return "introductions"
}
