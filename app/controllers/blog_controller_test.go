package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"
)

func setupTestBlogController() (*BlogController, *services.BlogService) {
	service := services.NewBlogService(repositories.NewMemoryBlogRepository())
	return NewBlogController(service), service
}

func setupRouter(controller *BlogController) *mux.Router {
	router := mux.NewRouter()

	blogs := router.PathPrefix("/api/blogs").Subrouter()
	blogs.HandleFunc("", controller.Index).Methods("GET")
	blogs.HandleFunc("/save-draft", controller.SaveDraft).Methods("POST")
	blogs.HandleFunc("/publish", controller.Publish).Methods("POST")
	blogs.HandleFunc("/{id}", controller.Show).Methods("GET")
	blogs.HandleFunc("/{id}", controller.Update).Methods("PUT")
	blogs.HandleFunc("/{id}", controller.Delete).Methods("DELETE")

	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBlog(t *testing.T, w *httptest.ResponseRecorder) models.Blog {
	t.Helper()
	var blog models.Blog
	require.NoError(t, json.NewDecoder(w.Body).Decode(&blog))
	return blog
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["message"]
}

func TestSaveDraftCreatesWith201(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"A","content":"B"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	blog := decodeBlog(t, w)
	assert.Equal(t, 1, blog.ID)
	assert.Equal(t, models.StatusDraft, blog.Status)
	assert.NotNil(t, blog.Tags)
}

func TestSaveDraftUpdatesWith200(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	created := decodeBlog(t, doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"A","content":"B"}`))

	w := doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"id":1,"title":"A2","content":"B2"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	blog := decodeBlog(t, w)
	assert.Equal(t, created.ID, blog.ID)
	assert.Equal(t, "A2", blog.Title)
}

func TestSaveDraftAcceptsPartialDraft(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	// Auto-save fires while only one of the fields has text; the draft is
	// persisted rather than rejected.
	w := doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"","content":"typed so far"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	blog := decodeBlog(t, w)
	assert.Equal(t, "", blog.Title)
	assert.Equal(t, "typed so far", blog.Content)
	assert.Equal(t, models.StatusDraft, blog.Status)
}

func TestSaveDraftValidationError(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"id":-1,"title":"A","content":"B"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decodeMessage(t, w))
}

func TestPublishValidationError(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/publish", `{"title":"","content":"B"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeMessage(t, w), "required to publish")
}

func TestSaveDraftMalformedJSON(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveDraftUnknownID(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"id":42,"title":"A","content":"B"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublishEndpoint(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	w := doJSON(t, router, http.MethodPost, "/api/blogs/publish", `{"title":"A","content":"B"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.StatusPublished, decodeBlog(t, w).Status)
}

func TestShow(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"A","content":"B"}`)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"existing blog", "/api/blogs/1", http.StatusOK},
		{"missing blog", "/api/blogs/7", http.StatusNotFound},
		{"non-numeric id", "/api/blogs/abc", http.StatusBadRequest},
		{"non-positive id", "/api/blogs/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestIndexStatusFilter(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"d","content":"c"}`)
	doJSON(t, router, http.MethodPost, "/api/blogs/publish", `{"title":"p","content":"c"}`)

	t.Run("unfiltered", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/blogs", "")
		require.Equal(t, http.StatusOK, w.Code)
		var blogs []models.Blog
		require.NoError(t, json.NewDecoder(w.Body).Decode(&blogs))
		assert.Len(t, blogs, 2)
	})

	t.Run("drafts only", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/blogs?status=draft", "")
		require.Equal(t, http.StatusOK, w.Code)
		var blogs []models.Blog
		require.NoError(t, json.NewDecoder(w.Body).Decode(&blogs))
		require.Len(t, blogs, 1)
		assert.Equal(t, "d", blogs[0].Title)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/blogs?status=archived", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeMessage(t, w), "archived")
	})
}

func TestUpdateEndpoint(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"A","content":"B"}`)

	w := doJSON(t, router, http.MethodPut, "/api/blogs/1", `{"title":"A2","content":"B2","status":"published"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	blog := decodeBlog(t, w)
	assert.Equal(t, "A2", blog.Title)
	assert.Equal(t, models.StatusPublished, blog.Status)

	w = doJSON(t, router, http.MethodPut, "/api/blogs/9", `{"title":"A","content":"B"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Clearing a draft is allowed; publishing an empty one is not.
	doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"B","content":"C"}`)
	w = doJSON(t, router, http.MethodPut, "/api/blogs/2", `{"title":"","content":""}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/blogs/2", `{"title":"","content":"","status":"published"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	controller, _ := setupTestBlogController()
	router := setupRouter(controller)

	doJSON(t, router, http.MethodPost, "/api/blogs/save-draft", `{"title":"A","content":"B"}`)

	w := doJSON(t, router, http.MethodDelete, "/api/blogs/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body["success"])

	w = doJSON(t, router, http.MethodDelete, "/api/blogs/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/blogs/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
