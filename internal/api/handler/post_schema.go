package handler

import (
	"strings"
	"time"

	"github.com/blogworks/blog-api/internal/core/domain"
	"github.com/blogworks/blog-api/internal/core/ports"
)

// --- Request types ---

// postRequest is shared by create and edit; both carry the same
// fields. The author is never part of the body.
type postRequest struct {
	Title  string `json:"title"  validate:"required"`
	Text   string `json:"text"   validate:"required"`
	Status string `json:"status" validate:"required,oneof=Published Unpublished"`
}

func (r *postRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Text = strings.TrimSpace(r.Text)
	r.Status = strings.TrimSpace(r.Status)
}

type commentRequest struct {
	Title  string `json:"title"  validate:"required"`
	Text   string `json:"text"   validate:"required"`
	Author string `json:"author" validate:"required"`
}

func (r *commentRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Text = strings.TrimSpace(r.Text)
	r.Author = strings.TrimSpace(r.Author)
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type postResponse struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Status     string         `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	Author     authorResponse `json:"author"`
	CommentIDs []string       `json:"comment_ids"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type postDetailResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Author    authorResponse    `json:"author"`
	Comments  []commentResponse `json:"comments"`
}

type listPostsResponse struct {
	Results []postResponse `json:"results"`
	Message string         `json:"message"`
}

type getPostResponse struct {
	Results postDetailResponse `json:"results"`
	Message string             `json:"message"`
}

type createPostResponse struct {
	Post    postResponse `json:"post"`
	Message string       `json:"message"`
}

type deletePostResponse struct {
	Results map[string]any `json:"results"`
	Message string         `json:"message"`
}

type addCommentResponse struct {
	Comment commentResponse `json:"comment"`
	Message string          `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Mappers ---

func toPostResponse(s ports.PostSummary) postResponse {
	ids := s.CommentIDs
	if ids == nil {
		ids = []string{}
	}
	return postResponse{
		ID:         s.ID,
		Title:      s.Title,
		Text:       s.Text,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt.UTC(),
		Author:     authorResponse{ID: s.Author.ID, Username: s.Author.Username},
		CommentIDs: ids,
	}
}

func toCreatedPostResponse(p *domain.Post, identity ports.Identity) postResponse {
	ids := p.CommentIDs
	if ids == nil {
		ids = []string{}
	}
	return postResponse{
		ID:         p.ID,
		Title:      p.Title,
		Text:       p.Text,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt.UTC(),
		Author:     authorResponse{ID: p.AuthorID, Username: identity.Username},
		CommentIDs: ids,
	}
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Title:     c.Title,
		Author:    c.Author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func toPostDetailResponse(d *ports.PostDetail) postDetailResponse {
	comments := make([]commentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = toCommentResponse(c)
	}
	return postDetailResponse{
		ID:        d.ID,
		Title:     d.Title,
		Text:      d.Text,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt.UTC(),
		Author:    authorResponse{ID: d.Author.ID, Username: d.Author.Username},
		Comments:  comments,
	}
}
