package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecotrade/marketplace/internal/middleware"
	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	created bool
}

func (s *stubChatService) GetOrCreate(_ context.Context, postID, buyerID, sellerID uint64) (*model.Chat, bool, error) {
	return &model.Chat{ID: 5, PostID: postID, BuyerID: buyerID, SellerID: sellerID}, s.created, nil
}

func (s *stubChatService) ListByUser(context.Context, uint64) ([]model.ChatSummary, error) {
	return nil, nil
}

func (s *stubChatService) ListMessages(_ context.Context, _ uint64, callerID uint64) ([]model.MessageDetail, error) {
	if callerID != 2 {
		return nil, service.ErrForbidden
	}
	return []model.MessageDetail{}, nil
}

func (s *stubChatService) SendMessage(context.Context, uint64, uint64, string) (*model.MessageDetail, error) {
	return nil, nil
}

func TestGetOrCreateChatStatusCodes(t *testing.T) {
	e := echo.New()

	do := func(svc *stubChatService) *httptest.ResponseRecorder {
		h := NewChatHandler(svc)
		req := httptest.NewRequest(http.MethodPost, "/api/chats",
			strings.NewReader(`{"post_id":1,"buyer_id":2,"seller_id":3}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(middleware.ContextUserID, uint64(2))
		require.NoError(t, h.GetOrCreate(c))
		return rec
	}

	assert.Equal(t, http.StatusCreated, do(&stubChatService{created: true}).Code)
	assert.Equal(t, http.StatusOK, do(&stubChatService{created: false}).Code)
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	e := echo.New()
	h := NewChatHandler(&stubChatService{})

	do := func(uid uint64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/chats/:chatId/messages")
		c.SetParamNames("chatId")
		c.SetParamValues("5")
		c.Set(middleware.ContextUserID, uid)
		require.NoError(t, h.ListMessages(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, do(2).Code)

	rec := do(9)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}
