package types

import (
	"time"

	"github.com/google/uuid"
)

type UserCardProgress struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_card,unique" json:"user_id"`
	User            *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CardID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_card,unique" json:"card_id"`
	Card            *Card      `gorm:"constraint:OnDelete:CASCADE;foreignKey:CardID;references:ID" json:"card,omitempty"`
	FlashcardViewed bool       `gorm:"column:flashcard_viewed;not null;default:false" json:"flashcard_viewed"`
	QuizCompleted   bool       `gorm:"column:quiz_completed;not null;default:false" json:"quiz_completed"`
	QuizCorrect     bool       `gorm:"column:quiz_correct;not null;default:false" json:"quiz_correct"`
	XPEarned        int        `gorm:"column:xp_earned;not null;default:0" json:"xp_earned"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserCardProgress) TableName() string { return "user_card_progress" }
