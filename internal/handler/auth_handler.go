package handler

import (
	"net/http"

	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"mobile_no"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	UserID  uint64 `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"mobile_no"`
	Address string `json:"address"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, token, err := h.svc.Signup(c.Request().Context(), req.Name, req.Email, req.Password, req.Phone, req.Address)
	if err != nil {
		if err == service.ErrEmailTaken {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "email already exists"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(user), Token: token})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
		case service.ErrBadCredentials:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_credentials", "invalid credentials"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "login failed"))
	}
	return c.JSON(http.StatusOK, AuthResponse{User: toUserResponse(user), Token: token})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, NewErrorResponse("not_implemented", "forgot password not implemented yet"))
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
	}
}
