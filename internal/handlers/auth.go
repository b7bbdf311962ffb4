package handlers

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/esangrahan-backend/internal/ctxkeys"
	"github.com/AnshRaj112/esangrahan-backend/internal/services"
	"github.com/AnshRaj112/esangrahan-backend/pkg/response"
)

// AuthService is implemented by services.AuthService.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*services.UserSession, error)
	Login(ctx context.Context, email, password string) (*services.UserSession, error)
	GoogleAuth(ctx context.Context, name, email, externalID string) (*services.UserSession, error)
	RegisterAdmin(ctx context.Context, name, email, password, adminKey string) (*services.AdminSession, error)
	LoginAdmin(ctx context.Context, email, password string) (*services.AdminSession, error)
}

// User Register Request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User / Admin Login Request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest carries the profile the frontend got from Google.
// externalId is accepted as an alias of googleId.
type GoogleAuthRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	GoogleID   string `json:"googleId"`
	ExternalID string `json:"externalId"`
}

// Admin Register Request
type AdminRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	AdminKey string `json:"adminKey"`
}

type AuthHandler struct {
	auth AuthService
	rd   *response.Renderer
}

func NewAuthHandler(auth AuthService, rd *response.Renderer) *AuthHandler {
	return &AuthHandler{auth: auth, rd: rd}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rd.Error(w, r, err)
		return
	}

	session, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Envelope{
		Success: true,
		Message: "User registered successfully",
		Token:   session.Token,
		User:    session.User,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rd.Error(w, r, err)
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Login successful",
		Token:   session.Token,
		User:    session.User,
	})
}

// GoogleAuth handles POST /api/auth/google
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req GoogleAuthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rd.Error(w, r, err)
		return
	}
	externalID := req.GoogleID
	if externalID == "" {
		externalID = req.ExternalID
	}

	session, err := h.auth.GoogleAuth(r.Context(), req.Name, req.Email, externalID)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Google authentication successful",
		Token:   session.Token,
		User:    session.User,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, User: ctxkeys.User(r.Context())})
}

// RegisterAdmin handles POST /api/auth/admin/register
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminRegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rd.Error(w, r, err)
		return
	}

	session, err := h.auth.RegisterAdmin(r.Context(), req.Name, req.Email, req.Password, req.AdminKey)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Envelope{
		Success: true,
		Message: "Admin registered successfully",
		Token:   session.Token,
		Admin:   session.Admin,
	})
}

// LoginAdmin handles POST /api/auth/admin/login
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rd.Error(w, r, err)
		return
	}

	session, err := h.auth.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Admin login successful",
		Token:   session.Token,
		Admin:   session.Admin,
	})
}

// AdminMe handles GET /api/auth/admin/me
func (h *AuthHandler) AdminMe(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Admin: ctxkeys.Admin(r.Context())})
}
