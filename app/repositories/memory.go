package repositories

import (
	"sync"
	"time"

	"inkwell/app/models"
)

// MemoryBlogRepository implements BlogRepository with an in-process map.
// All data is lost when the process exits.
//
// One mutex guards both the map and the id counter, so concurrent creates
// never observe the same id.
type MemoryBlogRepository struct {
	mu     sync.RWMutex
	blogs  map[int]*models.Blog
	order  []int
	nextID int
}

// NewMemoryBlogRepository creates an empty in-memory blog repository.
func NewMemoryBlogRepository() *MemoryBlogRepository {
	return &MemoryBlogRepository{
		blogs:  make(map[int]*models.Blog),
		nextID: 1,
	}
}

// Create assigns the next id and both timestamps, then stores the blog.
func (r *MemoryBlogRepository) Create(blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	blog.ID = r.nextID
	r.nextID++

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	if blog.Status == "" {
		blog.Status = models.StatusDraft
	}

	r.blogs[blog.ID] = cloneBlog(blog)
	r.order = append(r.order, blog.ID)
	return nil
}

// GetByID retrieves a blog by id.
func (r *MemoryBlogRepository) GetByID(id int) (*models.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blog, ok := r.blogs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBlog(blog), nil
}

// List returns blogs in insertion order, filtered by status when non-empty.
func (r *MemoryBlogRepository) List(status models.Status) ([]*models.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blogs := make([]*models.Blog, 0, len(r.order))
	for _, id := range r.order {
		blog := r.blogs[id]
		if status != "" && blog.Status != status {
			continue
		}
		blogs = append(blogs, cloneBlog(blog))
	}
	return blogs, nil
}

// Update merges the input onto the stored blog and refreshes UpdatedAt.
func (r *MemoryBlogRepository) Update(id int, in models.BlogInput) (*models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blog, ok := r.blogs[id]
	if !ok {
		return nil, ErrNotFound
	}

	in.ApplyTo(blog)
	blog.Touch(time.Now())
	return cloneBlog(blog), nil
}

// Delete removes a blog by id.
func (r *MemoryBlogRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[id]; !ok {
		return ErrNotFound
	}
	delete(r.blogs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// cloneBlog copies a blog so callers never share the stored instance.
func cloneBlog(b *models.Blog) *models.Blog {
	c := *b
	c.Tags = append([]string{}, b.Tags...)
	return &c
}
