package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogworks/blog-api/internal/api/metrics"
	"github.com/blogworks/blog-api/internal/core/domain"
	"github.com/blogworks/blog-api/internal/core/ports"
)

// CommentHandler handles comment creation. Commenting is open to
// anonymous visitors; the author is a free-text name.
type CommentHandler struct {
	service ports.PostService
}

func NewCommentHandler(service ports.PostService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Add handles POST /post/:id/addcomment.
//
// @Summary      Add a comment to a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Post id"
// @Param        body  body      commentRequest  true  "Comment fields"
// @Success      201   {object}  addCommentResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /post/{id}/addcomment [post]
func (h *CommentHandler) Add(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return respondError(c, "errors with posting comment", err)
	}

	comment, err := h.service.AddComment(c.Request().Context(), c.Param("id"), ports.AddCommentInput{
		Title:  req.Title,
		Author: req.Author,
		Text:   req.Text,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			metrics.CommentAttachFailuresTotal.Inc()
		}
		return respondError(c, "error with adding comment", err)
	}

	metrics.CommentsAddedTotal.Inc()
	return c.JSON(http.StatusCreated, addCommentResponse{
		Comment: toCommentResponse(comment),
		Message: "Success!",
	})
}
