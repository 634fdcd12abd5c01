package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MintedBadge is a local record of a submitted badge mint. The chain is
// authoritative; a row here may reference a transaction that never
// confirmed, and a badge may exist on-chain with no row here.
type MintedBadge struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course_badge,unique" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course_badge,unique" json:"course_id"`
	Course        *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	WalletAddress string    `gorm:"column:wallet_address;not null" json:"wallet_address"`
	TokenID       uint64    `gorm:"column:token_id;not null;default:0" json:"token_id"`
	TxHash        string    `gorm:"column:tx_hash;not null" json:"tx_hash"`
	// Metadata is the token metadata document as submitted, kept so the
	// record stays meaningful if the course is later edited.
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	MintedAt  time.Time      `gorm:"column:minted_at;not null" json:"minted_at"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (MintedBadge) TableName() string { return "minted_badge" }
