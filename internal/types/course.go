package types

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	Description  string    `gorm:"column:description" json:"description"`
	Emoji        string    `gorm:"column:emoji" json:"emoji"`
	Language     string    `gorm:"column:language;not null;default:'en';index" json:"language"`
	Difficulty   string    `gorm:"column:difficulty;not null;default:'beginner'" json:"difficulty"`
	TotalLessons int       `gorm:"column:total_lessons;not null;default:0" json:"total_lessons"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Course) TableName() string { return "course" }
