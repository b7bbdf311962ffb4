// Package apperrors defines the error taxonomy shared by services and
// handlers, and the classifier that maps arbitrary failures onto it.
package apperrors

import (
	"context"
	"errors"
	"net/http"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthenticated
	Forbidden
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its response code. Duplicate unique fields are
// reported as 400, not 409, for compatibility with existing clients.
func (k Kind) HTTPStatus() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an expected failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Errors  []string // per-rule messages for validation failures
	Err     error    // underlying cause, never rendered
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func NewValidation(msg string, errs []string) *Error {
	return &Error{Kind: Validation, Message: msg, Errors: errs}
}

// Token verification failures. The token service returns these; the
// classifier maps them to Unauthenticated.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
)

const (
	msgDatabase  = "Database connection error. Please try again later."
	msgServer    = "Server Error"
	msgDuplicate = "Duplicate field value entered"
	msgNotFound  = "Resource not found"
	msgBadToken  = "Invalid or expired token"
)

// Classify turns any error into an *Error. Expected errors pass through;
// driver and runtime failures are recognised by type and code.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var schemaErr *models.SchemaError
	if errors.As(err, &schemaErr) {
		return &Error{Kind: Validation, Message: schemaErr.Error(), Errors: schemaErr.Messages, Err: err}
	}

	switch {
	case errors.Is(err, ErrTokenMalformed), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalidSignature):
		return Wrap(Unauthenticated, msgBadToken, err)
	case errors.Is(err, primitive.ErrInvalidHex), errors.Is(err, mongo.ErrNoDocuments):
		return Wrap(NotFound, msgNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return Wrap(Conflict, msgDuplicate, err)
	case isDatabaseError(err):
		return Wrap(Internal, msgDatabase, err)
	}

	return Wrap(Internal, msgServer, err)
}

func isDatabaseError(err error) bool {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var serverErr mongo.ServerError
	return errors.As(err, &serverErr)
}
