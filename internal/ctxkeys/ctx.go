package ctxkeys

import (
	"context"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey  contextKey = "user"
	AdminKey contextKey = "admin"
)

// User returns the authenticated user, or nil outside a protected route.
func User(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// Admin returns the authenticated admin, or nil outside an admin route.
func Admin(ctx context.Context) *models.Admin {
	admin, _ := ctx.Value(AdminKey).(*models.Admin)
	return admin
}

func WithAdmin(ctx context.Context, admin *models.Admin) context.Context {
	return context.WithValue(ctx, AdminKey, admin)
}
