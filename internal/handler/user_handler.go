package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
)

// Account administration. The router restricts these to admins.

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(repository.UserCollection, r.URL.Query())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	users, total, err := h.UserService.List(r.Context(), q)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := writeList(w, q, users, len(users), total); err != nil {
		HandleError(w, r, err)
	}
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	user, err := h.UserService.Create(r.Context(), in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, user, http.StatusCreated)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	user, err := h.UserService.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, struct{}{}, http.StatusOK)
}
