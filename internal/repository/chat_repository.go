package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ecotrade/marketplace/internal/model"
	"gorm.io/gorm"
)

type ChatRepository interface {
	FindOrCreate(ctx context.Context, postID, buyerID, sellerID uint64) (*model.Chat, bool, error)
	FindByID(ctx context.Context, id uint64) (*model.Chat, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.ChatSummary, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
	FindMessageDetail(ctx context.Context, msgID uint64) (*model.MessageDetail, error)
	ListMessages(ctx context.Context, chatID uint64) ([]model.MessageDetail, error)
	Touch(ctx context.Context, chatID uint64) error
	SetDB(db *gorm.DB)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) SetDB(db *gorm.DB) {
	r.db = db
}

// FindOrCreate returns the chat for the (post, buyer, seller) triple,
// creating it on first contact, and reports whether this call created it.
// A concurrent duplicate insert loses to the unique index and falls back to
// reading the winner's row, so both callers see the same chat id.
func (r *chatRepository) FindOrCreate(ctx context.Context, postID, buyerID, sellerID uint64) (*model.Chat, bool, error) {
	if r.db == nil {
		return nil, false, ErrDBNotReady
	}
	chat := model.Chat{PostID: postID, BuyerID: buyerID, SellerID: sellerID}
	tx := r.db.WithContext(ctx).
		Where("post_id = ? AND buyer_id = ? AND seller_id = ?", postID, buyerID, sellerID).
		FirstOrCreate(&chat)
	if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
		if err := r.db.WithContext(ctx).
			Where("post_id = ? AND buyer_id = ? AND seller_id = ?", postID, buyerID, sellerID).
			First(&chat).Error; err != nil {
			return nil, false, err
		}
		return &chat, false, nil
	}
	if tx.Error != nil {
		return nil, false, tx.Error
	}
	return &chat, tx.RowsAffected > 0, nil
}

func (r *chatRepository) FindByID(ctx context.Context, id uint64) (*model.Chat, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var chat model.Chat
	if err := r.db.WithContext(ctx).First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) ListByUser(ctx context.Context, userID uint64) ([]model.ChatSummary, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.ChatSummary
	if err := r.db.WithContext(ctx).
		Table("chats").
		Select(`chats.*, materials.material_name,
			buyers.name AS buyer_name, sellers.name AS seller_name,
			(SELECT content FROM messages
				WHERE messages.chat_id = chats.id
				ORDER BY messages.created_at DESC LIMIT 1) AS last_message`).
		Joins("JOIN posts ON chats.post_id = posts.id").
		Joins("JOIN materials ON posts.material_id = materials.id").
		Joins("JOIN users buyers ON chats.buyer_id = buyers.id").
		Joins("JOIN users sellers ON chats.seller_id = sellers.id").
		Where("chats.buyer_id = ? OR chats.seller_id = ?", userID, userID).
		Order("chats.updated_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) FindMessageDetail(ctx context.Context, msgID uint64) (*model.MessageDetail, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var detail model.MessageDetail
	if err := r.db.WithContext(ctx).
		Table("messages").
		Select("messages.*, users.name AS sender_name").
		Joins("JOIN users ON messages.sender_id = users.id").
		Where("messages.id = ?", msgID).
		Take(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID uint64) ([]model.MessageDetail, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.MessageDetail
	if err := r.db.WithContext(ctx).
		Table("messages").
		Select("messages.*, users.name AS sender_name").
		Joins("JOIN users ON messages.sender_id = users.id").
		Where("messages.chat_id = ?", chatID).
		Order("messages.created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *chatRepository) Touch(ctx context.Context, chatID uint64) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", time.Now()).Error
}
