package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSigningSecret is returned by Issue when no JWT secret is configured.
var ErrNoSigningSecret = errors.New("JWT secret is not configured")

// Claims is the token payload. User and admin tokens share it; which store
// the id resolves against is decided by the route.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. With an empty
// secret it issues nothing and accepts nothing.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), lifetime: lifetime, now: time.Now}
}

// Issue signs a token for subjectID that expires after the configured lifetime.
func (s *TokenService) Issue(subjectID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSigningSecret
	}
	now := s.now()
	claims := Claims{
		ID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject id.
func (s *TokenService) Verify(token string) (string, error) {
	if len(s.secret) == 0 {
		return "", apperrors.ErrTokenInvalidSignature
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", apperrors.ErrTokenInvalidSignature
		default:
			return "", fmt.Errorf("%w: %v", apperrors.ErrTokenMalformed, err)
		}
	}

	subject := claims.ID
	if subject == "" {
		subject = claims.Subject
	}
	if subject == "" {
		return "", apperrors.ErrTokenMalformed
	}
	return subject, nil
}
