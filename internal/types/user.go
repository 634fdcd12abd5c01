package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FarcasterFID  int64     `gorm:"column:farcaster_fid;uniqueIndex" json:"farcaster_fid"`
	Username      string    `gorm:"column:username;not null" json:"username"`
	WalletAddress string    `gorm:"column:wallet_address;index" json:"wallet_address"`
	TotalXP       int       `gorm:"column:total_xp;not null;default:0" json:"total_xp"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
