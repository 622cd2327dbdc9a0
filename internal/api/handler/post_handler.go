package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogworks/blog-api/internal/api/metrics"
	"github.com/blogworks/blog-api/internal/core/domain"
	"github.com/blogworks/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  listPostsResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	return h.list(c, nil)
}

// ListPublished handles GET /publishedPosts.
//
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  listPostsResponse
// @Router       /publishedPosts [get]
func (h *PostHandler) ListPublished(c echo.Context) error {
	status := domain.StatusPublished
	return h.list(c, &status)
}

// ListUnpublished handles GET /unpublishedPosts.
//
// @Summary      List unpublished posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  listPostsResponse
// @Router       /unpublishedPosts [get]
func (h *PostHandler) ListUnpublished(c echo.Context) error {
	status := domain.StatusUnpublished
	return h.list(c, &status)
}

func (h *PostHandler) list(c echo.Context, status *domain.PostStatus) error {
	summaries, err := h.service.List(c.Request().Context(), status)
	if err != nil {
		return respondError(c, "error listing posts", err)
	}

	results := make([]postResponse, len(summaries))
	for i, s := range summaries {
		results[i] = toPostResponse(s)
	}
	return c.JSON(http.StatusOK, listPostsResponse{Results: results, Message: "Success!"})
}

// Get handles GET /post/:id — the single-post view with the author
// resolved and the comment list populated.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  getPostResponse
// @Failure      404  {object}  errorBody
// @Router       /post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, "error finding post", err)
	}
	return c.JSON(http.StatusOK, getPostResponse{Results: toPostDetailResponse(detail), Message: "Success!"})
}

// Create handles POST /post. Requires authorization; the author is the
// verified identity.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post fields"
// @Success      201   {object}  createPostResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /post [post]
func (h *PostHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return respondError(c, "errors with posting", err)
	}

	post, err := h.service.Create(c.Request().Context(), identity, ports.CreatePostInput{
		Title:  req.Title,
		Text:   req.Text,
		Status: domain.PostStatus(req.Status),
	})
	if err != nil {
		return respondError(c, "error creating post", err)
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.Status)).Inc()
	return c.JSON(http.StatusCreated, createPostResponse{
		Post:    toCreatedPostResponse(post, identity),
		Message: "Success!",
	})
}

// Delete handles DELETE /post/:id/delete. Only the post's author may
// delete it; a mismatch is a 403, distinct from 404.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  deletePostResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /post/{id}/delete [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), identity, id); err != nil {
		return respondError(c, "error with removal", err)
	}

	metrics.PostsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deletePostResponse{
		Results: map[string]any{"id": id, "deleted": true},
		Message: "Success",
	})
}

// Edit handles PUT /post/:id/edit. Any authenticated caller may edit
// any post; ownership is deliberately not checked here (see the
// service for the rationale).
//
// @Summary      Edit a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "Replacement fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /post/{id}/edit [put]
func (h *PostHandler) Edit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return respondError(c, "errors with editing post", err)
	}

	err = h.service.Edit(c.Request().Context(), identity, c.Param("id"), ports.EditPostInput{
		Title:  req.Title,
		Text:   req.Text,
		Status: domain.PostStatus(req.Status),
	})
	if err != nil {
		return respondError(c, "error editing post", err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Success"})
}
