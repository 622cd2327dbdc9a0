package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogworks/blog-api/internal/core/domain"
	"github.com/blogworks/blog-api/internal/core/ports"
)

// PostService implements post CRUD and comment attachment.
type PostService struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewPostService(posts ports.PostRepository, comments ports.CommentRepository, users ports.UserRepository, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, comments: comments, users: users, log: log}
}

// Create stores a new post. The author is always the verified acting
// identity, never client-supplied input.
func (s *PostService) Create(ctx context.Context, identity ports.Identity, input ports.CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		Title:      input.Title,
		Text:       input.Text,
		AuthorID:   identity.UserID,
		Status:     input.Status,
		CreatedAt:  time.Now().UTC(),
		CommentIDs: []string{},
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	s.log.Info().Str("post_id", created.ID).Str("author", identity.Username).Msg("post created")
	return created, nil
}

// Get returns a single post with its author resolved to a username and
// its comment list fully populated, in stored order.
func (s *PostService) Get(ctx context.Context, id string) (*ports.PostDetail, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author := ports.AuthorRef{ID: post.AuthorID}
	if user, err := s.users.FindByID(ctx, post.AuthorID); err == nil {
		author.Username = user.Username
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	comments, err := s.comments.FindByIDs(ctx, post.CommentIDs)
	if err != nil {
		return nil, err
	}

	return &ports.PostDetail{
		ID:        post.ID,
		Title:     post.Title,
		Text:      post.Text,
		Status:    post.Status,
		CreatedAt: post.CreatedAt,
		Author:    author,
		Comments:  comments,
	}, nil
}

// List returns posts with authors resolved, optionally filtered by
// status.
func (s *PostService) List(ctx context.Context, status *domain.PostStatus) ([]ports.PostSummary, error) {
	posts, err := s.posts.List(ctx, status)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.PostSummary, len(posts))
	for i, p := range posts {
		ref := ports.AuthorRef{ID: p.AuthorID}
		if u, ok := authors[p.AuthorID]; ok {
			ref.Username = u.Username
		}
		summaries[i] = ports.PostSummary{
			ID:         p.ID,
			Title:      p.Title,
			Text:       p.Text,
			Status:     p.Status,
			CreatedAt:  p.CreatedAt,
			Author:     ref,
			CommentIDs: p.CommentIDs,
		}
	}
	return summaries, nil
}

// Edit replaces title, text and status of a found post. Any
// authenticated caller may edit any post; there is deliberately no
// author check here, unlike Delete.
func (s *PostService) Edit(ctx context.Context, identity ports.Identity, id string, input ports.EditPostInput) error {
	if _, err := s.posts.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.posts.Update(ctx, id, input.Title, input.Text, input.Status); err != nil {
		return err
	}

	s.log.Info().Str("post_id", id).Str("editor", identity.Username).Msg("post edited")
	return nil
}

// Delete removes a post after verifying the acting identity is its
// author. A mismatch fails with ErrNotPostAuthor, distinct from
// not-found, and leaves the post untouched.
func (s *PostService) Delete(ctx context.Context, identity ports.Identity, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != identity.UserID {
		return domain.ErrNotPostAuthor
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("post_id", id).Str("author", identity.Username).Msg("post deleted")
	return nil
}

// AddComment creates the comment first and then appends its reference
// to the target post. The two writes are not transactional; when the
// post turns out to be missing, the created comment is deleted again
// so no orphan is left behind. A failed cleanup is logged and the
// orphan left for manual reconciliation.
func (s *PostService) AddComment(ctx context.Context, postID string, input ports.AddCommentInput) (*domain.Comment, error) {
	comment, err := s.comments.Create(ctx, &domain.Comment{
		Title:     input.Title,
		Author:    input.Author,
		Text:      input.Text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create comment")
		return nil, err
	}

	if err := s.posts.AppendComment(ctx, postID, comment.ID); err != nil {
		if cleanupErr := s.comments.Delete(ctx, comment.ID); cleanupErr != nil {
			s.log.Error().Err(cleanupErr).
				Str("comment_id", comment.ID).
				Str("post_id", postID).
				Msg("orphaned comment: cleanup failed")
		}
		return nil, err
	}

	s.log.Info().Str("post_id", postID).Str("comment_id", comment.ID).Msg("comment added")
	return comment, nil
}
