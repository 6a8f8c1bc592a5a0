package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"
)

// SetupRoutes wires the blog API onto a router. The repository is injected
// so each process (and each test) owns its store instance; the auto-save
// delay is advertised to editor clients on /api/config.
func SetupRoutes(repo repositories.BlogRepository, autoSaveDelay time.Duration) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	blogService := services.NewBlogService(repo)
	blogController := controllers.NewBlogController(blogService)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", controllers.EditorConfigHandler(autoSaveDelay)).Methods("GET")

	// Blogs API endpoints. The id pattern is permissive so that
	// non-numeric ids reach the handler and come back as 400, not 404.
	blogs := api.PathPrefix("/blogs").Subrouter()
	blogs.HandleFunc("", blogController.Index).Methods("GET")
	blogs.HandleFunc("/save-draft", blogController.SaveDraft).Methods("POST")
	blogs.HandleFunc("/publish", blogController.Publish).Methods("POST")
	blogs.HandleFunc("/{id}", blogController.Show).Methods("GET")
	blogs.HandleFunc("/{id}", blogController.Update).Methods("PUT")
	blogs.HandleFunc("/{id}", blogController.Delete).Methods("DELETE")

	return router
}
