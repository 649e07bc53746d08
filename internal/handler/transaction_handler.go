package handler

import (
	"net/http"
	"strconv"

	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/service"
	"github.com/labstack/echo/v4"
)

type TransactionHandler struct {
	svc service.TransactionService
}

func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type CreateTransactionRequest struct {
	PostID          uint64  `json:"post_id"`
	Quantity        float64 `json:"quantity"`
	PaymentMethod   string  `json:"payment_method"`
	ShippingAddress string  `json:"shipping_address"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *TransactionHandler) Create(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	tx, err := h.svc.Create(c.Request().Context(), uid, service.TransactionInput{
		PostID:          req.PostID,
		Quantity:        req.Quantity,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":        "Transaction created successfully",
		"transaction_id": tx.ID,
	})
}

func (h *TransactionHandler) ListBySeller(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	sellerID, err := strconv.ParseUint(c.Param("sellerId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid seller id"))
	}
	list, err := h.svc.ListBySeller(c.Request().Context(), sellerID, uid)
	if err != nil {
		if err == service.ErrForbidden {
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your transactions"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch transactions"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) ListByBuyer(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	buyerID, err := strconv.ParseUint(c.Param("buyerId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid buyer id"))
	}
	list, err := h.svc.ListByBuyer(c.Request().Context(), buyerID, uid)
	if err != nil {
		if err == service.ErrForbidden {
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your transactions"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch transactions"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) UpdateStatus(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	txID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid transaction id"))
	}
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	tx, err := h.svc.UpdateStatus(c.Request().Context(), txID, uid, model.TransactionStatus(req.Status))
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "transaction not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "only the seller can update the status"))
		case service.ErrInvalidTransition:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", "status transition not allowed"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update transaction"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Transaction status updated successfully",
		"order_status": tx.Status,
	})
}

func (h *TransactionHandler) Delete(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	txID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid transaction id"))
	}
	if err := h.svc.Delete(c.Request().Context(), txID, uid); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "transaction not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "only the buyer can cancel"))
		case service.ErrInvalidTransition:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", "only pending transactions can be cancelled"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete transaction"))
	}
	return c.JSON(http.StatusOK, NewMessageResponse("Transaction deleted successfully"))
}
