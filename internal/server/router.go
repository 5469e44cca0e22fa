// Package server mounts the API routes and runs the HTTP server.
package server

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"campdirectory/internal/apperror"
	"campdirectory/internal/config"
	handlers "campdirectory/internal/handler"
	"campdirectory/internal/middleware"
	"campdirectory/internal/models"
	"campdirectory/internal/storage"
)

const (
	APIPrefix = "/api/v1"

	photoURLExpiry = 15 * time.Minute
)

// NewRouter registers every endpoint. store decides how /uploads is served.
func NewRouter(h *handlers.Handlers, store storage.Storage, cfg *config.Config) *mux.Router {
	r := withFallbacks(mux.NewRouter())

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	mountUploads(r, store, cfg)

	protect := middleware.Protect(h.AuthService)
	authorize := middleware.Authorize
	guarded := func(fn http.HandlerFunc, roles ...string) http.Handler {
		if len(roles) == 0 {
			return middleware.Chain(fn, protect)
		}
		return middleware.Chain(fn, protect, authorize(roles...))
	}

	api := subrouter(r, APIPrefix)

	auth := subrouter(api, "/auth")
	auth.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)
	auth.Handle("/me", guarded(h.Me)).Methods(http.MethodGet)
	auth.Handle("/updatedetails", guarded(h.UpdateDetails)).Methods(http.MethodPut)
	auth.Handle("/updatepassword", guarded(h.UpdatePassword)).Methods(http.MethodPut)
	auth.HandleFunc("/forgotpassword", h.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/resetpassword/{resettoken}", h.ResetPassword).Methods(http.MethodPut)

	publishers := []string{models.RolePublisher, models.RoleAdmin}
	reviewers := []string{models.RoleUser, models.RoleAdmin}

	listings := subrouter(api, "/listings")
	listings.HandleFunc("/radius/{postalCode}/{distance}", h.GetListingsInRadius).Methods(http.MethodGet)
	listings.HandleFunc("/{listingId}/courses", h.GetCourses).Methods(http.MethodGet)
	listings.Handle("/{listingId}/courses", guarded(h.CreateCourse, publishers...)).Methods(http.MethodPost)
	listings.HandleFunc("/{listingId}/reviews", h.GetReviews).Methods(http.MethodGet)
	listings.Handle("/{listingId}/reviews", guarded(h.CreateReview, reviewers...)).Methods(http.MethodPost)
	listings.Handle("/{id}/photo", guarded(h.UploadListingPhoto, publishers...)).Methods(http.MethodPut)
	listings.HandleFunc("", h.GetListings).Methods(http.MethodGet)
	listings.Handle("", guarded(h.CreateListing, publishers...)).Methods(http.MethodPost)
	listings.HandleFunc("/{id}", h.GetListing).Methods(http.MethodGet)
	listings.Handle("/{id}", guarded(h.UpdateListing, publishers...)).Methods(http.MethodPut)
	listings.Handle("/{id}", guarded(h.DeleteListing, publishers...)).Methods(http.MethodDelete)

	courses := subrouter(api, "/courses")
	courses.HandleFunc("", h.GetCourses).Methods(http.MethodGet)
	courses.HandleFunc("/{id}", h.GetCourse).Methods(http.MethodGet)
	courses.Handle("/{id}", guarded(h.UpdateCourse, publishers...)).Methods(http.MethodPut)
	courses.Handle("/{id}", guarded(h.DeleteCourse, publishers...)).Methods(http.MethodDelete)

	reviews := subrouter(api, "/reviews")
	reviews.HandleFunc("", h.GetReviews).Methods(http.MethodGet)
	reviews.HandleFunc("/{id}", h.GetReview).Methods(http.MethodGet)
	reviews.Handle("/{id}", guarded(h.UpdateReview, reviewers...)).Methods(http.MethodPut)
	reviews.Handle("/{id}", guarded(h.DeleteReview, reviewers...)).Methods(http.MethodDelete)

	users := subrouter(api, "/users")
	users.Use(mux.MiddlewareFunc(protect), mux.MiddlewareFunc(authorize(models.RoleAdmin)))
	users.HandleFunc("", h.GetUsers).Methods(http.MethodGet)
	users.HandleFunc("", h.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("/{id}", h.GetUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", h.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id}", h.DeleteUser).Methods(http.MethodDelete)

	return r
}

// withFallbacks installs the JSON 404 and 405 responses. mux does not pass a
// method mismatch from a subrouter up to its parent, so every subrouter needs them.
func withFallbacks(r *mux.Router) *mux.Router {
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Route not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}

func subrouter(parent *mux.Router, prefix string) *mux.Router {
	return withFallbacks(parent.PathPrefix(prefix).Subrouter())
}

// mountUploads serves stored photos from disk, or redirects to a presigned
// URL when the driver keeps them elsewhere.
func mountUploads(r *mux.Router, store storage.Storage, cfg *config.Config) {
	prefix := cfg.Storage.PublicPath
	if prefix == "" {
		prefix = "/uploads/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	switch s := store.(type) {
	case *storage.FileSystem:
		fs := http.StripPrefix(prefix, http.FileServer(http.Dir(s.Root())))
		r.PathPrefix(prefix).Handler(fs).Methods(http.MethodGet, http.MethodHead)
	case storage.URLSigner:
		r.PathPrefix(prefix).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			name := path.Base(strings.TrimPrefix(req.URL.Path, prefix))
			url, err := s.PresignedURL(req.Context(), name, photoURLExpiry)
			if err != nil {
				handlers.HandleError(w, req, apperror.NewUpstream("Photo unavailable", err))
				return
			}
			http.Redirect(w, req, url, http.StatusTemporaryRedirect)
		}).Methods(http.MethodGet)
	}
}
