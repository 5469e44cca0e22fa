package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"campdirectory/internal/apperror"
	handlers "campdirectory/internal/handler"
	"campdirectory/internal/logger"
	"campdirectory/internal/service"
)

type Middleware func(http.Handler) http.Handler

// Protect resolves the bearer token, from the Authorization header or the
// token cookie, to an account and stores it in the request context.
func Protect(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authService.Authenticate(r.Context(), tokenFromRequest(r))
			if err != nil {
				handlers.HandleError(w, r, err)
				return
			}

			ctx := service.ContextWithUser(r.Context(), user)
			ctx, _ = logger.ContextWithIdentity(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && scheme == "Bearer" {
		return strings.TrimSpace(token)
	}
	if cookie, err := r.Cookie(handlers.TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Authorize lets the request through only for the listed roles. It must run after Protect.
func Authorize(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := service.UserFromContext(r.Context())
			if user == nil {
				handlers.HandleError(w, r, apperror.NewUnauthenticated("Not authorized to access this route"))
				return
			}

			if !slices.Contains(roles, user.Role) {
				handlers.HandleError(w, r, apperror.NewForbidden(
					fmt.Sprintf("User role %s is not authorized to access this route", user.Role)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Chain wraps h so that the first middleware listed runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
