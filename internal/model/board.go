package model

import (
	"time"
)

type Board struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Title        string    `gorm:"size:200;not null"`
	PasswordHash *string   `gorm:"column:password_hash"`
	Theme        string    `gorm:"size:32;not null"`
	Font         string    `gorm:"size:32;not null"`
	MessageCount int       `gorm:"not null;check:message_count >= 0"`
	CreatorUID   *string   `gorm:"index"`
	CreatorEmail *string   `gorm:"size:320"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`

	Messages []Message `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// HasPassword reports whether the board is gated behind a password.
func (b *Board) HasPassword() bool {
	return b.PasswordHash != nil && *b.PasswordHash != ""
}

// IsCreator reports whether uid created the board.
func (b *Board) IsCreator(uid string) bool {
	return uid != "" && b.CreatorUID != nil && *b.CreatorUID == uid
}
