package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
	"campdirectory/internal/service"
)

func (h *Handlers) GetReviews(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(repository.ReviewCollection, r.URL.Query())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	reviews, total, err := h.ReviewService.List(r.Context(), q, mux.Vars(r)["listingId"])
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := writeList(w, q, reviews, len(reviews), total); err != nil {
		HandleError(w, r, err)
	}
}

func (h *Handlers) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.ReviewService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, review, http.StatusOK)
}

func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in models.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	ctx := r.Context()
	review, err := h.ReviewService.Create(ctx, service.UserFromContext(ctx), mux.Vars(r)["listingId"], in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, review, http.StatusCreated)
}

func (h *Handlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var in models.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	ctx := r.Context()
	review, err := h.ReviewService.Update(ctx, service.UserFromContext(ctx), mux.Vars(r)["id"], in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, review, http.StatusOK)
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.ReviewService.Delete(ctx, service.UserFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, struct{}{}, http.StatusOK)
}
