package model

import "time"

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusApproved  TransactionStatus = "approved"
	TransactionStatusRejected  TransactionStatus = "rejected"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// CanTransition reports whether the seller-driven move from s to next is
// allowed. Only pending orders move; approved/rejected/cancelled are terminal.
func (s TransactionStatus) CanTransition(next TransactionStatus) bool {
	if s != TransactionStatusPending {
		return false
	}
	switch next {
	case TransactionStatusApproved, TransactionStatusRejected, TransactionStatusCancelled:
		return true
	}
	return false
}

type Transaction struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement" json:"transaction_id"`
	BuyerID         uint64            `gorm:"column:buyer_id;index;not null" json:"buyer_id"`
	SellerID        uint64            `gorm:"column:seller_id;index;not null" json:"seller_id"`
	PostID          uint64            `gorm:"column:post_id;index;not null" json:"post_id"`
	Quantity        float64           `gorm:"not null" json:"quantity"`
	Unit            string            `gorm:"size:32;not null" json:"unit"`
	TotalPrice      float64           `gorm:"column:total_price;not null" json:"total_price"`
	PaymentMethod   string            `gorm:"column:payment_method;size:64" json:"payment_method"`
	ShippingAddress string            `gorm:"column:shipping_address;size:255" json:"shipping_address"`
	Status          TransactionStatus `gorm:"column:order_status;size:32;not null" json:"order_status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionDetail is the read shape for transaction listings: the row
// joined with both parties, the post's material, and the chat for the same
// (post, buyer, seller) triple when one exists.
type TransactionDetail struct {
	Transaction
	BuyerName        string  `json:"buyer_name"`
	BuyerEmail       string  `json:"buyer_email"`
	BuyerPhone       string  `json:"buyer_phone"`
	SellerName       string  `json:"seller_name"`
	SellerEmail      string  `json:"seller_email"`
	SellerPhone      string  `json:"seller_phone"`
	MaterialID       uint64  `json:"material_id"`
	MaterialName     string  `json:"material_name"`
	MaterialCategory string  `json:"material_category"`
	ChatID           *uint64 `json:"chat_id,omitempty"`
}
