package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/ecotrade/marketplace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type chatKey struct {
	postID, buyerID, sellerID uint64
}

type fakeChatRepo struct {
	chats      map[uint64]*model.Chat
	byTriple   map[chatKey]uint64
	messages   map[uint64]*model.Message
	nextChatID uint64
	nextMsgID  uint64
	names      map[uint64]string
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:      make(map[uint64]*model.Chat),
		byTriple:   make(map[chatKey]uint64),
		messages:   make(map[uint64]*model.Message),
		nextChatID: 1,
		nextMsgID:  1,
		names:      make(map[uint64]string),
	}
}

func (f *fakeChatRepo) FindOrCreate(_ context.Context, postID, buyerID, sellerID uint64) (*model.Chat, bool, error) {
	key := chatKey{postID, buyerID, sellerID}
	if id, ok := f.byTriple[key]; ok {
		cp := *f.chats[id]
		return &cp, false, nil
	}
	chat := &model.Chat{ID: f.nextChatID, PostID: postID, BuyerID: buyerID, SellerID: sellerID, UpdatedAt: time.Now()}
	f.nextChatID++
	f.chats[chat.ID] = chat
	f.byTriple[key] = chat.ID
	cp := *chat
	return &cp, true, nil
}

func (f *fakeChatRepo) FindByID(_ context.Context, id uint64) (*model.Chat, error) {
	chat, ok := f.chats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *chat
	return &cp, nil
}

func (f *fakeChatRepo) ListByUser(_ context.Context, userID uint64) ([]model.ChatSummary, error) {
	var out []model.ChatSummary
	for _, chat := range f.chats {
		if chat.BuyerID != userID && chat.SellerID != userID {
			continue
		}
		summary := model.ChatSummary{Chat: *chat}
		var last *model.Message
		for _, msg := range f.messages {
			if msg.ChatID == chat.ID && (last == nil || msg.ID > last.ID) {
				last = msg
			}
		}
		if last != nil {
			summary.LastMessage = &last.Content
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeChatRepo) CreateMessage(_ context.Context, msg *model.Message) error {
	msg.ID = f.nextMsgID
	f.nextMsgID++
	cp := *msg
	f.messages[msg.ID] = &cp
	return nil
}

func (f *fakeChatRepo) FindMessageDetail(_ context.Context, msgID uint64) (*model.MessageDetail, error) {
	msg, ok := f.messages[msgID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.MessageDetail{Message: *msg, SenderName: f.names[msg.SenderID]}, nil
}

func (f *fakeChatRepo) ListMessages(_ context.Context, chatID uint64) ([]model.MessageDetail, error) {
	var out []model.MessageDetail
	for _, msg := range f.messages {
		if msg.ChatID == chatID {
			out = append(out, model.MessageDetail{Message: *msg, SenderName: f.names[msg.SenderID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeChatRepo) Touch(_ context.Context, chatID uint64) error {
	chat, ok := f.chats[chatID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	chat.UpdatedAt = time.Now()
	return nil
}

func (f *fakeChatRepo) SetDB(*gorm.DB) {}

func TestGetOrCreateChatIdempotent(t *testing.T) {
	postRepo := newFakePostRepo()
	chatRepo := newFakeChatRepo()
	svc := NewChatService(chatRepo, postRepo)
	ctx := context.Background()

	post := seedPost(t, postRepo, 1)

	first, created, err := svc.GetOrCreate(ctx, post.ID, 2, 1)
	require.NoError(t, err)
	assert.True(t, created)
	second, created, err := svc.GetOrCreate(ctx, post.ID, 2, 1)
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, chatRepo.chats, 1)
}

func TestGetOrCreateChatErrors(t *testing.T) {
	postRepo := newFakePostRepo()
	svc := NewChatService(newFakeChatRepo(), postRepo)
	ctx := context.Background()

	post := seedPost(t, postRepo, 1)

	t.Run("missing post", func(t *testing.T) {
		_, _, err := svc.GetOrCreate(ctx, 9999, 2, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("seller mismatch", func(t *testing.T) {
		_, _, err := svc.GetOrCreate(ctx, post.ID, 2, 3)
		assert.Error(t, err)
	})
	t.Run("self chat", func(t *testing.T) {
		_, _, err := svc.GetOrCreate(ctx, post.ID, 1, 1)
		assert.Error(t, err)
	})
}

func TestSendMessage(t *testing.T) {
	postRepo := newFakePostRepo()
	chatRepo := newFakeChatRepo()
	chatRepo.names[2] = "Bob"
	svc := NewChatService(chatRepo, postRepo)
	ctx := context.Background()

	post := seedPost(t, postRepo, 1)
	chat, _, err := svc.GetOrCreate(ctx, post.ID, 2, 1)
	require.NoError(t, err)
	before := chatRepo.chats[chat.ID].UpdatedAt

	msg, err := svc.SendMessage(ctx, chat.ID, 2, "is this still available?")
	require.NoError(t, err)
	assert.Equal(t, "is this still available?", msg.Content)
	assert.Equal(t, "Bob", msg.SenderName)
	assert.False(t, chatRepo.chats[chat.ID].UpdatedAt.Before(before))

	t.Run("appears as last_message", func(t *testing.T) {
		chats, err := svc.ListByUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, chats, 1)
		require.NotNil(t, chats[0].LastMessage)
		assert.Equal(t, "is this still available?", *chats[0].LastMessage)
	})

	t.Run("non-participant", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, chat.ID, 3, "let me in")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, chat.ID, 2, "  ")
		assert.Error(t, err)
	})

	t.Run("missing chat", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, 9999, 2, "hello")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListMessagesOrdered(t *testing.T) {
	postRepo := newFakePostRepo()
	chatRepo := newFakeChatRepo()
	svc := NewChatService(chatRepo, postRepo)
	ctx := context.Background()

	post := seedPost(t, postRepo, 1)
	chat, _, err := svc.GetOrCreate(ctx, post.ID, 2, 1)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, chat.ID, 2, "first")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, chat.ID, 1, "second")
	require.NoError(t, err)

	msgs, err := svc.ListMessages(ctx, chat.ID, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)

	t.Run("non-participant", func(t *testing.T) {
		_, err := svc.ListMessages(ctx, chat.ID, 3)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
