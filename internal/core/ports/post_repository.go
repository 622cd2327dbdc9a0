package ports

import (
	"context"

	"github.com/blogworks/blog-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns posts, optionally filtered by status (nil = all).
	List(ctx context.Context, status *domain.PostStatus) ([]*domain.Post, error)
	// Update replaces title, text and status of an existing post.
	Update(ctx context.Context, id, title, text string, status domain.PostStatus) error
	Delete(ctx context.Context, id string) error
	// AppendComment pushes commentID onto the post's comment list.
	AppendComment(ctx context.Context, postID, commentID string) error
}

// CommentRepository defines persistence operations for comments.
// Delete exists for the compensating cleanup when attaching fails.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	// FindByIDs returns the comments for ids in the same order as ids;
	// ids with no matching document are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}
