package domain

import "time"

// PostStatus is the two-value publication state of a post.
type PostStatus string

const (
	StatusUnpublished PostStatus = "Unpublished"
	StatusPublished   PostStatus = "Published"
)

// IsValid reports whether s is one of the two recognised statuses.
func (s PostStatus) IsValid() bool {
	return s == StatusUnpublished || s == StatusPublished
}

// Post is the core aggregate. AuthorID references a User and never
// changes after creation; CommentIDs is append-only.
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	AuthorID   string     `json:"author_id"`
	Status     PostStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	CommentIDs []string   `json:"comment_ids"`
}
