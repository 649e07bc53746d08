package handler

import (
	"log"
	"net/http"

	"github.com/ecotrade/marketplace/internal/mail"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	mailer mail.Mailer
}

func NewContactHandler(mailer mail.Mailer) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContactHandler) Send(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "name, email and message are required"))
	}
	if err := h.mailer.SendContact(req.Name, req.Email, req.Subject, req.Message); err != nil {
		log.Printf("contact: send failed: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("service_error", "failed to send message"))
	}
	return c.JSON(http.StatusOK, NewMessageResponse("Message sent successfully"))
}
