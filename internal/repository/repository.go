// Package repository holds the MongoDB stores for users, admins and
// collection points, and the PostgreSQL admin audit log.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/esangrahan-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when an id or email does not resolve. Malformed
	// ids are reported the same way.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("a record with this email already exists")
)

const opTimeout = 10 * time.Second

var (
	newestFirst     = bson.D{{Key: "createdAt", Value: -1}}
	withoutPassword = bson.D{{Key: "password", Value: 0}}
)

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// hashPassword hashes a password on the create path. Every non-empty value
// is client input and is hashed, whatever it looks like. An empty password
// (Google-only accounts) stays empty.
func hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	return utils.HashPassword(password)
}
