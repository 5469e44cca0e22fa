package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campdirectory/internal/apperror"
	"campdirectory/internal/models"
	"campdirectory/internal/query"
	"campdirectory/internal/repository"
	"campdirectory/internal/service"
)

// multipartOverhead leaves room for boundaries and headers around the photo itself.
const multipartOverhead = 1 << 20

func (h *Handlers) GetListings(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(repository.ListingCollection, r.URL.Query())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	listings, total, err := h.ListingService.List(r.Context(), q)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := writeList(w, q, listings, len(listings), total); err != nil {
		HandleError(w, r, err)
	}
}

func (h *Handlers) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.ListingService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, listing, http.StatusOK)
}

func (h *Handlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	var in models.ListingInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	listing, err := h.ListingService.Create(r.Context(), service.UserFromContext(r.Context()), in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, listing, http.StatusCreated)
}

func (h *Handlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	var in models.ListingInput
	if err := decodeJSON(r, &in); err != nil {
		HandleError(w, r, err)
		return
	}

	ctx := r.Context()
	listing, err := h.ListingService.Update(ctx, service.UserFromContext(ctx), mux.Vars(r)["id"], in)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, listing, http.StatusOK)
}

func (h *Handlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.ListingService.Delete(ctx, service.UserFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, struct{}{}, http.StatusOK)
}

func (h *Handlers) GetListingsInRadius(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	distance, err := strconv.ParseFloat(vars["distance"], 64)
	if err != nil {
		HandleError(w, r, apperror.NewValidation("Distance must be a number of miles"))
		return
	}

	listings, err := h.ListingService.WithinRadius(r.Context(), vars["postalCode"], distance)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	count := len(listings)
	writeJSON(w, Response{Success: true, Count: &count, Data: listings}, http.StatusOK)
}

// UploadListingPhoto accepts a multipart form with the image in the "file" field.
// An oversized body is only reported by size, so ownership is still checked first.
func (h *Handlers) UploadListingPhoto(w http.ResponseWriter, r *http.Request) {
	maxSize := h.Cfg.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	upload := service.PhotoUpload{}
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			upload.Size = max(r.ContentLength, maxSize+1)
		case !errors.Is(err, http.ErrNotMultipart):
			HandleError(w, r, apperror.New(apperror.Validation, "Invalid multipart form", err))
			return
		}
	}

	if upload.Size == 0 {
		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			upload = service.PhotoUpload{File: file, Filename: header.Filename, Size: header.Size}
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			// the service reports the missing file after checking ownership
		default:
			HandleError(w, r, apperror.New(apperror.Validation, "Invalid multipart form", err))
			return
		}
	}

	ctx := r.Context()
	name, err := h.ListingService.UploadPhoto(ctx, service.UserFromContext(ctx), mux.Vars(r)["id"], upload)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, name, http.StatusOK)
}
