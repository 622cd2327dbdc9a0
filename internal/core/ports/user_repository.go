package ports

import (
	"context"

	"github.com/blogworks/blog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user credentials.
// Username uniqueness is enforced by the store's unique index; Create
// surfaces a race as domain.ErrUserExists.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids, keyed by id. Missing
	// ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
