package validation

import (
	"strings"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
)

// Result is the outcome of an advisory pre-check. Errors keeps every
// violated rule in check order.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// IsValidEmail uses the same pattern as the stored-record schema.
func IsValidEmail(email string) bool {
	return models.EmailPattern.MatchString(email)
}

// IsValidPassword checks the minimum length accepted by the user schema.
func IsValidPassword(password string) bool {
	return len(password) >= models.MinPasswordLength
}

// ValidateCollectionPoint runs the structural pre-checks on a create payload.
// Enum membership and the years-of-use bounds are left to
// models.CollectionPoint.Validate, which runs on every write.
func ValidateCollectionPoint(in models.CollectionPointInput) Result {
	errors := []string{}

	if strings.TrimSpace(in.Name) == "" {
		errors = append(errors, "Name is required")
	}

	if in.Email == "" || !IsValidEmail(in.Email) {
		errors = append(errors, "Valid email is required")
	}

	if strings.TrimSpace(in.Address) == "" {
		errors = append(errors, "Address is required")
	}

	if !in.Latitude.Present || !in.Longitude.Present {
		errors = append(errors, "Location coordinates are required")
	}

	if in.WasteType == "" {
		errors = append(errors, "Waste type is required")
	}

	if in.Condition == "" {
		errors = append(errors, "Condition is required")
	}

	if _, ok := in.YearsOfUse.Float(); !ok {
		errors = append(errors, "Valid years of use is required")
	}

	return Result{IsValid: len(errors) == 0, Errors: errors}
}
