package repositories

import (
	"time"

	"github.com/dgraph-io/badger/v4"

	"inkwell/app/models"
)

// BadgerBlogRepository implements BlogRepository using BadgerDB, for
// deployments that want posts to survive a restart.
type BadgerBlogRepository struct {
	db *badger.DB
}

// NewBadgerBlogRepository creates a new BadgerBlogRepository
func NewBadgerBlogRepository(db *badger.DB) *BadgerBlogRepository {
	return &BadgerBlogRepository{db: db}
}

// Create assigns the next id and both timestamps, then stores the blog.
func (r *BadgerBlogRepository) Create(blog *models.Blog) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, BlogSeqKey)
		if err != nil {
			return err
		}
		blog.ID = id

		now := time.Now()
		blog.CreatedAt = now
		blog.UpdatedAt = now
		if blog.Tags == nil {
			blog.Tags = []string{}
		}
		if blog.Status == "" {
			blog.Status = models.StatusDraft
		}

		data, err := marshalEntity(blog)
		if err != nil {
			return err
		}
		return txn.Set(blogKey(blog.ID), data)
	})
}

// GetByID retrieves a blog by ID
func (r *BadgerBlogRepository) GetByID(id int) (*models.Blog, error) {
	var blog models.Blog

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blogKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &blog)
		})
	})

	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// List retrieves all blogs in insertion order, filtered by status when
// non-empty.
func (r *BadgerBlogRepository) List(status models.Status) ([]*models.Blog, error) {
	blogs := []*models.Blog{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BlogKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var blog models.Blog
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &blog)
			})
			if err != nil {
				return err
			}
			if status != "" && blog.Status != status {
				continue
			}
			blogs = append(blogs, &blog)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// Update merges the input onto the stored blog and refreshes UpdatedAt.
func (r *BadgerBlogRepository) Update(id int, in models.BlogInput) (*models.Blog, error) {
	var blog models.Blog

	err := r.db.Update(func(txn *badger.Txn) error {
		key := blogKey(id)
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &blog)
		}); err != nil {
			return err
		}

		in.ApplyTo(&blog)
		blog.Touch(time.Now())

		data, err := marshalEntity(&blog)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})

	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Delete deletes a blog by ID
func (r *BadgerBlogRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := blogKey(id)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}
