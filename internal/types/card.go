package types

import (
	"time"

	"github.com/google/uuid"
)

// CorrectAnswer is one of "A", "B", "C", "D".
type Card struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID          uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson            *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	CardNumber        int       `gorm:"column:card_number;not null" json:"card_number"`
	FlashcardQuestion string    `gorm:"column:flashcard_question;not null" json:"flashcard_question"`
	FlashcardAnswer   string    `gorm:"column:flashcard_answer;not null" json:"flashcard_answer"`
	QuizQuestion      string    `gorm:"column:quiz_question;not null" json:"quiz_question"`
	QuizOptionA       string    `gorm:"column:quiz_option_a;not null" json:"quiz_option_a"`
	QuizOptionB       string    `gorm:"column:quiz_option_b;not null" json:"quiz_option_b"`
	QuizOptionC       string    `gorm:"column:quiz_option_c;not null" json:"quiz_option_c"`
	QuizOptionD       string    `gorm:"column:quiz_option_d;not null" json:"quiz_option_d"`
	CorrectAnswer     string    `gorm:"column:quiz_correct_answer;not null" json:"quiz_correct_answer"`
	CreatedAt         time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Card) TableName() string { return "card" }
