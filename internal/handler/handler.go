package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"campdirectory/internal/apperror"
	"campdirectory/internal/config"
	"campdirectory/internal/query"
	"campdirectory/internal/service"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	ListingService service.ListingService
	CourseService  service.CourseService
	ReviewService  service.ReviewService
	DB             HealthChecker
	Cfg            *config.Config
}

func NewHandlers(services *service.Service, db HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		ListingService: services.Listing,
		CourseService:  services.Course,
		ReviewService:  services.Review,
		DB:             db,
		Cfg:            cfg,
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperror.New(apperror.Validation, "Invalid request body", err)
}

// writeList sends one page of results, restricted to the selected fields.
func writeList(w http.ResponseWriter, q *query.Query, items any, count, total int) error {
	data, err := query.Project(items, q.Fields())
	if err != nil {
		return err
	}

	pagination := q.Pagination(total)
	writeJSON(w, Response{
		Success:    true,
		Count:      &count,
		Pagination: &pagination,
		Data:       data,
	}, http.StatusOK)
	return nil
}

// Health reports whether the database answers.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		WriteError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}
	WriteSuccess(w, "ok", http.StatusOK)
}
