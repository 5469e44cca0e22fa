package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
	"campdirectory/internal/service"
)

// GetCourses serves both /courses and /listings/{listingId}/courses.
func (h *Handlers) GetCourses(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(repository.CourseCollection, r.URL.Query())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	courses, total, err := h.CourseService.List(r.Context(), q, mux.Vars(r)["listingId"])
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := writeList(w, q, courses, len(courses), total); err != nil {
		HandleError(w, r, err)
	}
}

func (h *Handlers) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.CourseService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, course, http.StatusOK)
}

func (h *Handlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in models.CourseInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	ctx := r.Context()
	course, err := h.CourseService.Create(ctx, service.UserFromContext(ctx), mux.Vars(r)["listingId"], in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, course, http.StatusCreated)
}

func (h *Handlers) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var in models.CourseInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	ctx := r.Context()
	course, err := h.CourseService.Update(ctx, service.UserFromContext(ctx), mux.Vars(r)["id"], in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, course, http.StatusOK)
}

func (h *Handlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.CourseService.Delete(ctx, service.UserFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, struct{}{}, http.StatusOK)
}
