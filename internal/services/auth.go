package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/repository"
	"github.com/AnshRaj112/esangrahan-backend/pkg/utils"
	"go.uber.org/zap"
)

// AuthUser is the user view returned by the auth endpoints.
type AuthUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	GoogleLogin     bool   `json:"googleLogin,omitempty"`
}

type AuthAdmin struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsAdmin         bool   `json:"isAdmin"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

type UserSession struct {
	Token string
	User  AuthUser
}

type AdminSession struct {
	Token string
	Admin AuthAdmin
}

func NewAuthUser(u *models.User) AuthUser {
	return AuthUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, IsAuthenticated: true}
}

func NewAuthAdmin(a *models.Admin) AuthAdmin {
	return AuthAdmin{ID: a.ID.Hex(), Name: a.Name, Email: a.Email, IsAdmin: true, IsAuthenticated: true}
}

var errInvalidCredentials = apperrors.New(apperrors.Unauthenticated, "Invalid credentials")

// AuthService handles sign-up and sign-in for users and admins.
type AuthService struct {
	users          UserStore
	admins         AdminStore
	tokens         *TokenService
	adminSecretKey string
	log            *zap.Logger
}

func NewAuthService(users UserStore, admins AdminStore, tokens *TokenService, adminSecretKey string, log *zap.Logger) *AuthService {
	return &AuthService{users: users, admins: admins, tokens: tokens, adminSecretKey: adminSecretKey, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*UserSession, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.New(apperrors.Validation, "Please provide name, email, and password")
	}

	exists, err := s.userExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.New(apperrors.Conflict, "User already exists")
	}

	u := &models.User{Name: name, Email: email, Password: password, IsAuthenticated: true}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Wrap(apperrors.Conflict, "User already exists", err)
		}
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID.Hex()))

	return s.userSession(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*UserSession, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.New(apperrors.Validation, "Please provide email and password")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(password, u.Password) {
		return nil, errInvalidCredentials
	}

	return s.userSession(u)
}

// GoogleAuth signs in a user verified by Google, linking an existing
// password account or creating a new one. externalID falls back to the email.
func (s *AuthService) GoogleAuth(ctx context.Context, name, email, externalID string) (*UserSession, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, apperrors.New(apperrors.Validation, "Please provide name and email")
	}
	if externalID == "" {
		externalID = models.NormalizeEmail(email)
	}

	u, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		u = &models.User{
			Name:            name,
			Email:           email,
			GoogleLogin:     true,
			GoogleID:        externalID,
			IsAuthenticated: true,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		s.log.Info("user registered with google", zap.String("user_id", u.ID.Hex()))
	case err != nil:
		return nil, err
	case !u.GoogleLogin:
		u.GoogleLogin = true
		u.GoogleID = externalID
		if err := s.users.Save(ctx, u); err != nil {
			return nil, err
		}
	}

	session, err := s.userSession(u)
	if err != nil {
		return nil, err
	}
	session.User.GoogleLogin = true
	return session, nil
}

func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password, adminKey string) (*AdminSession, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" || adminKey == "" {
		return nil, apperrors.New(apperrors.Validation, "Please provide all required fields")
	}
	if !s.adminKeyMatches(adminKey) {
		return nil, apperrors.New(apperrors.Forbidden, "Invalid admin secret key")
	}

	_, err := s.admins.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.New(apperrors.Conflict, "Admin already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	a := &models.Admin{Name: name, Email: email, Password: password, IsAdmin: true}
	if err := s.admins.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Wrap(apperrors.Conflict, "Admin already exists", err)
		}
		return nil, err
	}
	s.log.Info("admin registered", zap.String("admin_id", a.ID.Hex()))

	return s.adminSession(a)
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*AdminSession, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.New(apperrors.Validation, "Please provide email and password")
	}

	a, err := s.admins.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(password, a.Password) {
		return nil, errInvalidCredentials
	}

	return s.adminSession(a)
}

// adminKeyMatches never accepts anything while the server secret is unset.
func (s *AuthService) adminKeyMatches(key string) bool {
	if s.adminSecretKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.adminSecretKey)) == 1
}

func (s *AuthService) userExists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *AuthService) userSession(u *models.User) (*UserSession, error) {
	token, err := s.tokens.Issue(u.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &UserSession{Token: token, User: NewAuthUser(u)}, nil
}

func (s *AuthService) adminSession(a *models.Admin) (*AdminSession, error) {
	token, err := s.tokens.Issue(a.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AdminSession{Token: token, Admin: NewAuthAdmin(a)}, nil
}
