package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ParseStatus validates a status string, such as the ?status= query
// parameter. Unknown values are rejected rather than silently ignored.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid status %q: must be %q or %q", s, StatusDraft, StatusPublished)
	}
}

// Validate checks the input against the blog schema.
func (in *BlogInput) Validate() error {
	return validate.Struct(in)
}

// ToBlog builds a new, not-yet-persisted Blog from the input. Tags default
// to an empty slice and status to draft, matching the store contract.
func (in *BlogInput) ToBlog() *Blog {
	blog := &Blog{
		Title:   in.Title,
		Content: in.Content,
		Tags:    in.Tags,
		Status:  in.Status,
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	if blog.Status == "" {
		blog.Status = StatusDraft
	}
	return blog
}

// ApplyTo merges the input onto an existing blog. Title and content always
// overwrite; tags and status fall back to the stored values when absent.
// CreatedAt is never touched; the caller owns UpdatedAt.
func (in *BlogInput) ApplyTo(blog *Blog) {
	blog.Title = in.Title
	blog.Content = in.Content
	if in.Tags != nil {
		blog.Tags = in.Tags
	}
	if in.Status != "" {
		blog.Status = in.Status
	}
}

// Validate checks a stored blog's invariants.
func (b *Blog) Validate() error {
	if b.Status != StatusDraft && b.Status != StatusPublished {
		return fmt.Errorf("invalid status %q", b.Status)
	}
	if b.CreatedAt.IsZero() {
		return fmt.Errorf("created_at cannot be zero")
	}
	if b.UpdatedAt.Before(b.CreatedAt) {
		return fmt.Errorf("updated_at precedes created_at")
	}
	return nil
}

// Touch refreshes UpdatedAt, keeping it strictly increasing even when the
// clock reads tie at nanosecond granularity.
func (b *Blog) Touch(now time.Time) {
	if !now.After(b.UpdatedAt) {
		now = b.UpdatedAt.Add(time.Nanosecond)
	}
	b.UpdatedAt = now
}
