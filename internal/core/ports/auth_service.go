package ports

import (
	"context"

	"github.com/blogworks/blog-api/internal/core/domain"
)

// AuthService implements signup and login.
type AuthService interface {
	// Signup validates username availability, hashes the password and
	// creates the user. A taken username is a field-level validation
	// failure; a write-time race surfaces as domain.ErrUserExists.
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	// Unknown username and wrong password are both reported as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
