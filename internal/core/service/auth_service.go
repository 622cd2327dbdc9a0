package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogworks/blog-api/internal/core/domain"
	"github.com/blogworks/blog-api/internal/core/ports"
	"github.com/blogworks/blog-api/internal/token"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). A nil
// value disables throttling.
type LoginThrottle interface {
	// Allow reports whether username may attempt a login right now.
	Allow(ctx context.Context, username string) (bool, error)
	// RecordFailure bumps the failed-attempt counter for username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}

// AuthService implements signup and login on top of the user
// repository, the token service and an optional login throttle.
type AuthService struct {
	users    ports.UserRepository
	tokens   *token.Service
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *token.Service, throttle LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, log: log}
}

// Signup creates a new user. The username pre-check is best effort;
// the store's unique index is the backstop against a concurrent
// signup, surfacing as domain.ErrUserExists.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.NewValidationError("username", "user already exists")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user created")
	return created, nil
}

// Login verifies credentials and returns a signed session token. The
// caller cannot distinguish an unknown username from a wrong password;
// the distinction only survives in the debug log.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		if err != nil {
			// The throttle is a guard rail, not a gate: fail open.
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("login failed: unknown username")
			s.recordFailure(ctx, username)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("username", username).Msg("login failed: wrong password")
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	return s.tokens.Issue(user.ID, user.Username)
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}
