package model

import "time"

type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"message_id"`
	ChatID    uint64    `gorm:"column:chat_id;index;not null" json:"chat_id"`
	SenderID  uint64    `gorm:"column:sender_id;index;not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageDetail is a message joined with the sender's display name, the
// shape broadcast to chat rooms and returned by the history endpoint.
type MessageDetail struct {
	Message
	SenderName string `json:"sender_name"`
}
