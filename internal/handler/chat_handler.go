package handler

import (
	"net/http"
	"strconv"

	"github.com/ecotrade/marketplace/internal/service"
	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type CreateChatRequest struct {
	PostID   uint64 `json:"post_id"`
	BuyerID  uint64 `json:"buyer_id"`
	SellerID uint64 `json:"seller_id"`
	// legacy clients send the post reference under material_id
	MaterialID uint64 `json:"material_id"`
}

func (h *ChatHandler) GetOrCreate(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	var req CreateChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	postID := req.PostID
	if postID == 0 {
		postID = req.MaterialID
	}
	if uid != req.BuyerID && uid != req.SellerID {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not a participant"))
	}
	chat, created, err := h.svc.GetOrCreate(c.Request().Context(), postID, req.BuyerID, req.SellerID)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	if created {
		return c.JSON(http.StatusCreated, chat)
	}
	return c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	chatID, err := strconv.ParseUint(c.Param("chatId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid chat id"))
	}
	msgs, err := h.svc.ListMessages(c.Request().Context(), chatID, uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "chat not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not a participant"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch messages"))
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) ListByUser(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	if userID != uid {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your chats"))
	}
	chats, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch chats"))
	}
	return c.JSON(http.StatusOK, chats)
}
