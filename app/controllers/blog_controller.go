package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/pkg/logger"
)

// BlogController handles HTTP requests for blog posts.
type BlogController struct {
	blogService *services.BlogService
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService) *BlogController {
	return &BlogController{blogService: blogService}
}

// Index handles GET /api/blogs, optionally filtered by ?status=.
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	var status models.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := models.ParseStatus(raw)
		if err != nil {
			bc.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		status = parsed
	}

	blogs, err := bc.blogService.ListBlogs(status)
	if err != nil {
		bc.sendFailure(w, r, "Failed to fetch blogs", err)
		return
	}
	bc.sendJSON(w, http.StatusOK, blogs)
}

// Show handles GET /api/blogs/{id}.
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := bc.blogID(w, r)
	if !ok {
		return
	}

	blog, err := bc.blogService.GetBlog(id)
	if err != nil {
		bc.sendFailure(w, r, "Failed to fetch blog", err)
		return
	}
	bc.sendJSON(w, http.StatusOK, blog)
}

// SaveDraft handles POST /api/blogs/save-draft. A payload with an id
// updates that blog; without one it creates a new draft.
func (bc *BlogController) SaveDraft(w http.ResponseWriter, r *http.Request) {
	bc.saveWith(w, r, bc.blogService.SaveDraft, "Failed to save draft")
}

// Publish handles POST /api/blogs/publish, same shape as SaveDraft but the
// blog comes out published.
func (bc *BlogController) Publish(w http.ResponseWriter, r *http.Request) {
	bc.saveWith(w, r, bc.blogService.Publish, "Failed to publish blog")
}

func (bc *BlogController) saveWith(w http.ResponseWriter, r *http.Request, save func(models.BlogInput) (*models.Blog, bool, error), failMsg string) {
	var in models.BlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		bc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	blog, created, err := save(in)
	if err != nil {
		bc.sendFailure(w, r, failMsg, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	bc.sendJSON(w, status, blog)
}

// Update handles PUT /api/blogs/{id}.
func (bc *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := bc.blogID(w, r)
	if !ok {
		return
	}

	var in models.BlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		bc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	blog, err := bc.blogService.UpdateBlog(id, in)
	if err != nil {
		bc.sendFailure(w, r, "Failed to update blog", err)
		return
	}
	bc.sendJSON(w, http.StatusOK, blog)
}

// Delete handles DELETE /api/blogs/{id}.
func (bc *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := bc.blogID(w, r)
	if !ok {
		return
	}

	if err := bc.blogService.DeleteBlog(id); err != nil {
		bc.sendFailure(w, r, "Failed to delete blog", err)
		return
	}
	bc.sendJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// blogID parses the {id} path variable. Non-numeric and non-positive
// values are a client error, not a routing miss.
func (bc *BlogController) blogID(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil || id <= 0 {
		bc.sendError(w, "Invalid blog ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Helper methods for consistent response handling

func (bc *BlogController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (bc *BlogController) sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// sendFailure translates a service error to the response taxonomy:
// validation to 400, unknown id to 404, everything else to a generic 500
// that does not leak internals.
func (bc *BlogController) sendFailure(w http.ResponseWriter, r *http.Request, genericMsg string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		bc.sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		bc.sendError(w, "Blog not found", http.StatusNotFound)
	default:
		logger.Sugar.Errorw(genericMsg, "method", r.Method, "path", r.URL.Path, "error", err)
		bc.sendError(w, genericMsg, http.StatusInternalServerError)
	}
}
