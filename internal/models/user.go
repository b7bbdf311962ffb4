package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailPattern is the single email shape accepted anywhere in the service.
var EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const MinPasswordLength = 6

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password,omitempty" json:"-"` // Don't return password in JSON

	// Federated (Google) sign-in
	GoogleLogin bool   `bson:"googleLogin" json:"googleLogin"`
	GoogleID    string `bson:"googleId,omitempty" json:"googleId,omitempty"`

	IsAuthenticated bool `bson:"isAuthenticated" json:"isAuthenticated"`
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize trims free-text fields and lowercases the email.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
}

// Validate enforces the stored shape of a user. Password is required unless
// the account signs in through Google.
func (u *User) Validate() error {
	var msgs []string
	if u.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	msgs = append(msgs, validateEmail(u.Email)...)
	switch {
	case u.Password == "" && !u.GoogleLogin:
		msgs = append(msgs, "Password is required")
	case u.Password != "" && len(u.Password) < MinPasswordLength:
		msgs = append(msgs, "Password must be at least 6 characters")
	}
	return schemaError(msgs)
}

func validateEmail(email string) []string {
	if email == "" {
		return []string{"Email is required"}
	}
	if !EmailPattern.MatchString(email) {
		return []string{"Please provide a valid email"}
	}
	return nil
}
