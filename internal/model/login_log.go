package model

import (
	"time"
)

// LoginLog is an append-only record of a sign-in.
type LoginLog struct {
	ID          string    `gorm:"primaryKey;size:64"`
	UID         string    `gorm:"column:uid;size:128;not null;index"`
	Email       string    `gorm:"size:320"`
	DisplayName string    `gorm:"size:200"`
	LoginAt     time.Time `gorm:"autoCreateTime;index"`
}
