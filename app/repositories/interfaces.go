package repositories

import (
	"errors"

	"inkwell/app/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned when creating a user whose
	// username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
)

// BlogRepository defines the interface for blog post data access.
//
// Implementations must assign strictly increasing, never-reused ids on
// Create, and List must preserve insertion order.
type BlogRepository interface {
	Create(blog *models.Blog) error
	GetByID(id int) (*models.Blog, error)
	// List returns all blogs, restricted to one status when status is
	// non-empty.
	List(status models.Status) ([]*models.Blog, error)
	// Update merges the input onto the stored blog and refreshes
	// UpdatedAt. CreatedAt is preserved.
	Update(id int, in models.BlogInput) (*models.Blog, error)
	Delete(id int) error
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}
