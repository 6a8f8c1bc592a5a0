package repositories

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/models"
)

func TestMemoryBlogRepositoryCreate(t *testing.T) {
	repo := NewMemoryBlogRepository()

	blog := &models.Blog{Title: "First", Content: "Body"}
	require.NoError(t, repo.Create(blog))

	assert.Equal(t, 1, blog.ID)
	assert.Equal(t, models.StatusDraft, blog.Status)
	assert.NotNil(t, blog.Tags)
	assert.False(t, blog.CreatedAt.IsZero())
	assert.Equal(t, blog.CreatedAt, blog.UpdatedAt)

	got, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "Body", got.Content)
	assert.Equal(t, blog.CreatedAt, got.CreatedAt)
}

func TestMemoryBlogRepositoryGetMissing(t *testing.T) {
	repo := NewMemoryBlogRepository()

	_, err := repo.GetByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBlogRepositoryListOrderAndFilter(t *testing.T) {
	repo := NewMemoryBlogRepository()

	for _, b := range []*models.Blog{
		{Title: "one", Content: "c", Status: models.StatusDraft},
		{Title: "two", Content: "c", Status: models.StatusPublished},
		{Title: "three", Content: "c", Status: models.StatusDraft},
	} {
		require.NoError(t, repo.Create(b))
	}

	all, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{all[0].Title, all[1].Title, all[2].Title})

	drafts, err := repo.List(models.StatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "one", drafts[0].Title)
	assert.Equal(t, "three", drafts[1].Title)

	published, err := repo.List(models.StatusPublished)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "two", published[0].Title)
}

func TestMemoryBlogRepositoryUpdate(t *testing.T) {
	repo := NewMemoryBlogRepository()

	blog := &models.Blog{Title: "orig", Content: "body", Tags: []string{"go"}}
	require.NoError(t, repo.Create(blog))

	updated, err := repo.Update(blog.ID, models.BlogInput{Title: "new", Content: "body2"})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "body2", updated.Content)
	assert.Equal(t, []string{"go"}, updated.Tags, "absent tags keep stored value")
	assert.Equal(t, models.StatusDraft, updated.Status)
	assert.Equal(t, blog.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(blog.UpdatedAt), "updated_at strictly increases")

	_, err = repo.Update(99, models.BlogInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBlogRepositoryDelete(t *testing.T) {
	repo := NewMemoryBlogRepository()

	blog := &models.Blog{Title: "t", Content: "c"}
	require.NoError(t, repo.Create(blog))

	assert.ErrorIs(t, repo.Delete(99), ErrNotFound)
	require.NoError(t, repo.Delete(blog.ID))

	_, err := repo.GetByID(blog.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryBlogRepositoryIDsNotReused(t *testing.T) {
	repo := NewMemoryBlogRepository()

	first := &models.Blog{Title: "a", Content: "c"}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Delete(first.ID))

	second := &models.Blog{Title: "b", Content: "c"}
	require.NoError(t, repo.Create(second))
	assert.Greater(t, second.ID, first.ID)
}

func TestMemoryBlogRepositoryConcurrentCreates(t *testing.T) {
	repo := NewMemoryBlogRepository()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			blog := &models.Blog{Title: "t", Content: "c"}
			if err := repo.Create(blog); err == nil {
				ids <- blog.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestMemoryBlogRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryBlogRepository()

	blog := &models.Blog{Title: "t", Content: "c", Tags: []string{"a"}}
	require.NoError(t, repo.Create(blog))

	got, err := repo.GetByID(blog.ID)
	require.NoError(t, err)
	got.Title = "mutated"
	got.Tags[0] = "mutated"

	again, err := repo.GetByID(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", again.Title)
	assert.Equal(t, []string{"a"}, again.Tags)
}
