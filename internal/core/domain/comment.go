package domain

import "time"

// Comment is a visitor comment. Author is a free-text name, not a User
// reference. A comment belongs to exactly one post's comment list; it
// is created first and attached second (see PostService.AddComment).
type Comment struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
