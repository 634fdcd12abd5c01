package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseChainMapping translates database course UUIDs to the numeric
// identifiers the badge contract keys on. One row per mapped course.
type CourseChainMapping struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"course_id"`
	Course            *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	ChainCourseNumber uint64    `gorm:"column:chain_course_number;not null;uniqueIndex" json:"chain_course_number"`
	CreatedAt         time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (CourseChainMapping) TableName() string { return "course_chain_mapping" }
