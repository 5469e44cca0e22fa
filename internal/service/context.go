package service

import (
	"context"

	"campdirectory/internal/models"
)

type contextKeyUserType struct{}

var contextKeyUser = &contextKeyUserType{}

// ContextWithUser attaches the authenticated account to ctx.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// UserFromContext returns the authenticated account, or nil on public routes.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(contextKeyUser).(*models.User)
	return user
}
