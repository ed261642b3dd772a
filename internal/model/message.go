package model

import (
	"time"
)

type Message struct {
	ID          string    `gorm:"primaryKey;size:64"`
	BoardID     string    `gorm:"size:64;not null;index:idx_messages_board_created,priority:1"`
	Author      string    `gorm:"size:80;not null"`
	Emoji       string    `gorm:"size:16"`
	Content     string    `gorm:"type:text;not null"`
	Hearts      int       `gorm:"not null;check:hearts >= 0"`
	AuthorUID   *string   `gorm:"index"`
	AuthorEmail *string   `gorm:"size:320"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_messages_board_created,priority:2,sort:desc"`
}

// IsAuthor reports whether uid wrote the message. Anonymous messages have no author.
func (m *Message) IsAuthor(uid string) bool {
	return uid != "" && m.AuthorUID != nil && *m.AuthorUID == uid
}
