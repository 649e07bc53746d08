package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecotrade/marketplace/internal/middleware"
	"github.com/ecotrade/marketplace/internal/service"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	svc service.PostService
}

func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func callerID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(middleware.ContextUserID).(uint64)
	return id, ok && id != 0
}

// bindPostInput reads the multipart form fields shared by create and update.
func bindPostInput(c echo.Context) (service.PostInput, error) {
	quantity, err := strconv.ParseFloat(c.FormValue("quantity"), 64)
	if err != nil {
		return service.PostInput{}, errors.New("invalid quantity")
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return service.PostInput{}, errors.New("invalid price")
	}
	return service.PostInput{
		MaterialName:     c.FormValue("material_name"),
		MaterialCategory: c.FormValue("material_category"),
		Quantity:         quantity,
		Unit:             c.FormValue("unit"),
		Condition:        c.FormValue("condition_status"),
		Description:      c.FormValue("description"),
		Price:            price,
		Location:         c.FormValue("location"),
		AvailableDate:    c.FormValue("available_date"),
	}, nil
}

// bindImage returns the uploaded image file, or nil when none was sent.
func bindImage(c echo.Context) (*service.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &service.ImageUpload{Filename: fh.Filename, Reader: f}, func() { f.Close() }, nil
}

func (h *PostHandler) Create(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	in, err := bindPostInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	image, cleanup, err := bindImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid image upload"))
	}
	defer cleanup()

	post, err := h.svc.Create(c.Request().Context(), uid, in, image)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post_id": post.ID,
	})
}

func (h *PostHandler) ListMine(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	posts, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch posts"))
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ListOthers(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	posts, err := h.svc.ListOthers(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch posts"))
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Get(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	post, err := h.svc.Get(c.Request().Context(), postID)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch post"))
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	in, err := bindPostInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	image, cleanup, err := bindImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid image upload"))
	}
	defer cleanup()

	if err := h.svc.Update(c.Request().Context(), postID, uid, in, image); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not your post"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, NewMessageResponse("Post updated successfully"))
}

func (h *PostHandler) Delete(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	if err := h.svc.Delete(c.Request().Context(), postID, uid); err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found or unauthorized"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete post"))
	}
	return c.JSON(http.StatusOK, NewMessageResponse("Post deleted successfully"))
}
