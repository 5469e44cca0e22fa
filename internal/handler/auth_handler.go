package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"campdirectory/internal/apperror"
	"campdirectory/internal/models"
	"campdirectory/internal/service"
)

const TokenCookie = "token"

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	_, token, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	h.sendToken(w, token, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), req)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	h.sendToken(w, token, http.StatusOK)
}

// Logout overwrites the token cookie with one that expires almost immediately.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
	})
	WriteSuccess(w, struct{}{}, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user := service.UserFromContext(r.Context())
	if user == nil {
		HandleError(w, r, apperror.NewUnauthenticated("Not authorized to access this route"))
		return
	}
	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	user := service.UserFromContext(r.Context())
	if user == nil {
		HandleError(w, r, apperror.NewUnauthenticated("Not authorized to access this route"))
		return
	}

	var req models.UpdateDetailsRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	updated, err := h.AuthService.UpdateDetails(r.Context(), user.ID, req)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := service.UserFromContext(r.Context())
	if user == nil {
		HandleError(w, r, apperror.NewUnauthenticated("Not authorized to access this route"))
		return
	}

	var req models.UpdatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	token, err := h.AuthService.UpdatePassword(r.Context(), user.ID, req)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	h.sendToken(w, token, http.StatusOK)
}

func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.AuthService.ForgotPassword(r.Context(), req, resetURL(r)); err != nil {
		HandleError(w, r, err)
		return
	}
	WriteSuccess(w, "Email sent", http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err)
		return
	}

	token, err := h.AuthService.ResetPassword(r.Context(), mux.Vars(r)["resettoken"], req)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	h.sendToken(w, token, http.StatusOK)
}

// resetURL is the address the emailed token is appended to.
func resetURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s/api/v1/auth/resetpassword/", scheme, r.Host)
}

// sendToken returns the token in the body and in an httpOnly cookie.
func (h *Handlers) sendToken(w http.ResponseWriter, token string, statusCode int) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Cfg.CookieExpire()),
		HttpOnly: true,
		Secure:   h.Cfg.IsProduction(),
	})
	writeJSON(w, Response{Success: true, Token: token}, statusCode)
}
