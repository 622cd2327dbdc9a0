package ports

import (
	"context"
	"time"

	"github.com/blogworks/blog-api/internal/core/domain"
)

// Identity is the verified acting identity attached by the auth
// middleware. It is the only identity source handlers trust.
type Identity struct {
	UserID   string
	Username string
}

// CreatePostInput carries the fields for a new post. The author always
// comes from the verified identity, never from the request body.
type CreatePostInput struct {
	Title  string
	Text   string
	Status domain.PostStatus
}

// EditPostInput carries the replacement fields for an existing post.
type EditPostInput struct {
	Title  string
	Text   string
	Status domain.PostStatus
}

// AddCommentInput carries the fields for a new comment. Author is a
// free-text visitor name.
type AddCommentInput struct {
	Title  string
	Author string
	Text   string
}

// AuthorRef is a resolved author reference in a post view.
type AuthorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PostSummary is the list view of a post: author resolved to a
// username, comments left as references.
type PostSummary struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Text       string            `json:"text"`
	Status     domain.PostStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	Author     AuthorRef         `json:"author"`
	CommentIDs []string          `json:"comment_ids"`
}

// PostDetail is the single-post view: author resolved and the full
// comment list populated in stored order.
type PostDetail struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	Status    domain.PostStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Author    AuthorRef         `json:"author"`
	Comments  []*domain.Comment `json:"comments"`
}

// PostService defines the use-case operations around posts and their
// comments.
type PostService interface {
	Create(ctx context.Context, identity Identity, input CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*PostDetail, error)
	List(ctx context.Context, status *domain.PostStatus) ([]PostSummary, error)
	// Edit updates title/text/status of a found post for any
	// authenticated caller; there is deliberately no author check.
	Edit(ctx context.Context, identity Identity, id string, input EditPostInput) error
	// Delete removes a post only when identity matches its author;
	// otherwise domain.ErrNotPostAuthor.
	Delete(ctx context.Context, identity Identity, id string) error
	// AddComment creates a comment and appends it to the post's list.
	// If the post is missing after the comment was created, the comment
	// is deleted again (compensating cleanup) and ErrPostNotFound is
	// returned.
	AddComment(ctx context.Context, postID string, input AddCommentInput) (*domain.Comment, error)
}
