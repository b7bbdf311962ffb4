package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/esangrahan-backend/internal/database"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminStore struct {
	c *mongo.Collection
}

func NewAdminStore(db *mongo.Database) *AdminStore {
	return &AdminStore{c: db.Collection(database.AdminsCollection)}
}

func (s *AdminStore) Create(ctx context.Context, a *models.Admin) error {
	a.Normalize()
	if err := a.Validate(); err != nil {
		return err
	}
	hashed, err := hashPassword(a.Password)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := *a
	doc.ID = primitive.NewObjectID()
	doc.Password = hashed
	doc.IsAdmin = true
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	*a = doc
	return nil
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByID loads an admin without the password digest.
func (s *AdminStore) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var a models.Admin
	opts := options.FindOne().SetProjection(withoutPassword)
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
