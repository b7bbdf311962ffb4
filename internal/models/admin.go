package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin lives in its own collection; admin ids never resolve as users.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password,omitempty" json:"-"`
	IsAdmin  bool   `bson:"isAdmin" json:"isAdmin"`
}

func (a *Admin) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = NormalizeEmail(a.Email)
}

func (a *Admin) Validate() error {
	var msgs []string
	if a.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	msgs = append(msgs, validateEmail(a.Email)...)
	switch {
	case a.Password == "":
		msgs = append(msgs, "Password is required")
	case len(a.Password) < MinPasswordLength:
		msgs = append(msgs, "Password must be at least 6 characters")
	}
	return schemaError(msgs)
}
