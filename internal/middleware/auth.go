package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/AnshRaj112/esangrahan-backend/internal/ctxkeys"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/repository"
	"github.com/AnshRaj112/esangrahan-backend/pkg/response"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PrincipalLoader resolves a token subject against one store. The returned
// record must not carry the password digest.
type PrincipalLoader[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
}

// Protect admits requests carrying a valid token whose subject is a user.
func Protect(tokens TokenVerifier, users PrincipalLoader[models.User], rd *response.Renderer) func(http.Handler) http.Handler {
	return authenticate(tokens, users, ctxkeys.WithUser, "Not authorized, user not found", rd)
}

// ProtectAdmin admits requests carrying a valid token whose subject is an
// admin. User ids do not resolve here.
func ProtectAdmin(tokens TokenVerifier, admins PrincipalLoader[models.Admin], rd *response.Renderer) func(http.Handler) http.Handler {
	return authenticate(tokens, admins, ctxkeys.WithAdmin, "Not authorized, admin not found", rd)
}

func authenticate[T any](
	tokens TokenVerifier,
	loader PrincipalLoader[T],
	attach func(context.Context, *T) context.Context,
	notFoundMsg string,
	rd *response.Renderer,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				rd.Error(w, r, apperrors.New(apperrors.Unauthenticated, "Not authorized, no token"))
				return
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				rd.Error(w, r, apperrors.Wrap(apperrors.Unauthenticated, "Not authorized, invalid or expired token", err))
				return
			}

			principal, err := loader.FindByID(r.Context(), subject)
			if errors.Is(err, repository.ErrNotFound) {
				rd.Error(w, r, apperrors.New(apperrors.Unauthenticated, notFoundMsg))
				return
			}
			if err != nil {
				rd.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(attach(r.Context(), principal)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
