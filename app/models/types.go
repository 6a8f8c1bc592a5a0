package models

import "time"

// Status enumerates the lifecycle states of a blog post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Blog represents a blog post as stored by the repository.
type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogInput is the request payload for creating or updating a blog post.
// A zero ID means the payload targets a new post. Title and content may be
// empty while a post is still a draft; publishing requires both. Tags and
// Status are optional; on update, absent values resolve to the stored ones.
type BlogInput struct {
	ID      int      `json:"id,omitempty" validate:"omitempty,gte=0"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Status  Status   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
}

// User represents an authoring account. Password holds a bcrypt hash and is
// never serialized.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"-" validate:"required"`
}
