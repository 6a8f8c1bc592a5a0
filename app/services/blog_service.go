package services

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// ErrInvalid marks validation failures so handlers can map them to a
// client error.
var ErrInvalid = errors.New("invalid blog")

// BlogService handles business logic for blog posts.
type BlogService struct {
	repo repositories.BlogRepository
}

// NewBlogService creates a new BlogService
func NewBlogService(repo repositories.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

// ListBlogs retrieves all blogs, restricted to one status when non-empty.
func (s *BlogService) ListBlogs(status models.Status) ([]*models.Blog, error) {
	return s.repo.List(status)
}

// GetBlog retrieves a blog by id.
func (s *BlogService) GetBlog(id int) (*models.Blog, error) {
	return s.repo.GetByID(id)
}

// SaveDraft stores the payload as a draft. The returned bool reports
// whether a new blog was created rather than an existing one updated.
func (s *BlogService) SaveDraft(in models.BlogInput) (*models.Blog, bool, error) {
	return s.save(in, models.StatusDraft)
}

// Publish stores the payload as published. The returned bool reports
// whether a new blog was created.
func (s *BlogService) Publish(in models.BlogInput) (*models.Blog, bool, error) {
	return s.save(in, models.StatusPublished)
}

// requirePublishable enforces that a post being published carries a title
// and content. Drafts are free to stay partial.
func requirePublishable(in models.BlogInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: title and content are required to publish", ErrInvalid)
	}
	return nil
}

// save coerces the status, validates, and routes to create or update.
// The branch on the payload id is taken exactly once, here.
func (s *BlogService) save(in models.BlogInput, status models.Status) (*models.Blog, bool, error) {
	in.Status = status
	if err := in.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if status == models.StatusPublished {
		if err := requirePublishable(in); err != nil {
			return nil, false, err
		}
	}

	if in.ID > 0 {
		blog, err := s.repo.Update(in.ID, in)
		if err != nil {
			return nil, false, err
		}
		return blog, false, nil
	}

	blog := in.ToBlog()
	if err := s.repo.Create(blog); err != nil {
		return nil, false, err
	}
	return blog, true, nil
}

// UpdateBlog updates an existing blog with validation.
func (s *BlogService) UpdateBlog(id int, in models.BlogInput) (*models.Blog, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if in.Status == models.StatusPublished {
		if err := requirePublishable(in); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(id, in)
}

// DeleteBlog deletes a blog by id.
func (s *BlogService) DeleteBlog(id int) error {
	return s.repo.Delete(id)
}
