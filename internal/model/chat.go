package model

import "time"

type Chat struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"chat_id"`
	PostID    uint64    `gorm:"column:post_id;index:idx_post_buyer_seller,unique" json:"post_id"`
	BuyerID   uint64    `gorm:"column:buyer_id;index:idx_post_buyer_seller,unique" json:"buyer_id"`
	SellerID  uint64    `gorm:"column:seller_id;index:idx_post_buyer_seller,unique" json:"seller_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Chat) TableName() string {
	return "chats"
}

// ChatSummary is the read shape for a user's chat list: the chat row
// annotated with the material name, both display names, and the most recent
// message content.
type ChatSummary struct {
	Chat
	MaterialName string  `json:"material_name"`
	BuyerName    string  `json:"buyer_name"`
	SellerName   string  `json:"seller_name"`
	LastMessage  *string `json:"last_message"`
}
