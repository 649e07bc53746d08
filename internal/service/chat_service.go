package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/repository"
	"gorm.io/gorm"
)

type ChatService interface {
	GetOrCreate(ctx context.Context, postID, buyerID, sellerID uint64) (*model.Chat, bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.ChatSummary, error)
	ListMessages(ctx context.Context, chatID, callerID uint64) ([]model.MessageDetail, error)
	SendMessage(ctx context.Context, chatID, senderID uint64, content string) (*model.MessageDetail, error)
}

type chatService struct {
	chatRepo repository.ChatRepository
	postRepo repository.PostRepository
}

func NewChatService(chatRepo repository.ChatRepository, postRepo repository.PostRepository) ChatService {
	return &chatService{chatRepo: chatRepo, postRepo: postRepo}
}

// GetOrCreate returns the chat for the triple and whether the call opened a
// new one, so the handler can answer 201 on first contact and 200 after.
func (s *chatService) GetOrCreate(ctx context.Context, postID, buyerID, sellerID uint64) (*model.Chat, bool, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	if post.UserID != sellerID {
		return nil, false, errors.New("seller does not own this post")
	}
	if buyerID == sellerID {
		return nil, false, errors.New("cannot chat with yourself")
	}
	return s.chatRepo.FindOrCreate(ctx, postID, buyerID, sellerID)
}

func (s *chatService) ListByUser(ctx context.Context, userID uint64) ([]model.ChatSummary, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

func (s *chatService) ListMessages(ctx context.Context, chatID, callerID uint64) ([]model.MessageDetail, error) {
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if chat.BuyerID != callerID && chat.SellerID != callerID {
		return nil, ErrForbidden
	}
	return s.chatRepo.ListMessages(ctx, chatID)
}

// SendMessage persists a message, bumps the chat's updated_at so the chat
// list sorts it first, and returns the row joined with the sender name for
// broadcasting.
func (s *chatService) SendMessage(ctx context.Context, chatID, senderID uint64, content string) (*model.MessageDetail, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content is required")
	}
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if chat.BuyerID != senderID && chat.SellerID != senderID {
		return nil, ErrForbidden
	}

	msg := &model.Message{ChatID: chatID, SenderID: senderID, Content: content}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.chatRepo.Touch(ctx, chatID); err != nil {
		return nil, err
	}
	return s.chatRepo.FindMessageDetail(ctx, msg.ID)
}
