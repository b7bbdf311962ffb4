package services

import (
	"context"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence the services need for user accounts.
// Implemented by repository.UserStore.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type AdminStore interface {
	Create(ctx context.Context, a *models.Admin) error
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
}

type CollectionPointStore interface {
	Create(ctx context.Context, cp *models.CollectionPoint) error
	FindByID(ctx context.Context, id string) (*models.CollectionPoint, error)
	Find(ctx context.Context, f query.Filter) ([]models.CollectionPoint, error)
	UpdateContent(ctx context.Context, cp *models.CollectionPoint) error
	SetStatus(ctx context.Context, id string, status models.Status) (*models.CollectionPoint, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context, f query.Filter) (int64, error)
	GroupCount(ctx context.Context, field query.Field) ([]models.GroupCount, error)
}

// AuditLog records admin actions. Implemented by repository.AuditLog.
type AuditLog interface {
	Record(ctx context.Context, e *models.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// NopAuditLog is used when no audit database is configured.
type NopAuditLog struct{}

func (NopAuditLog) Record(context.Context, *models.AuditEntry) error { return nil }

func (NopAuditLog) Recent(context.Context, int) ([]models.AuditEntry, error) {
	return []models.AuditEntry{}, nil
}
