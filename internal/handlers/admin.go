package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AnshRaj112/esangrahan-backend/internal/ctxkeys"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/services"
	"github.com/AnshRaj112/esangrahan-backend/pkg/response"
	"github.com/go-chi/chi/v5"
)

// AdminService is implemented by services.AdminService.
type AdminService interface {
	ListAll(ctx context.Context, status, search string) (*services.AdminListing, error)
	Get(ctx context.Context, id string) (*models.PopulatedCollectionPoint, error)
	UpdateStatus(ctx context.Context, admin *models.Admin, id, status string) (*models.CollectionPoint, error)
	Delete(ctx context.Context, admin *models.Admin, id string) error
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// Status Update Request
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// AdminHandler serves /api/admin. Every route sits behind
// middleware.ProtectAdmin.
type AdminHandler struct {
	admin AdminService
	rd    *response.Renderer
}

func NewAdminHandler(admin AdminService, rd *response.Renderer) *AdminHandler {
	return &AdminHandler{admin: admin, rd: rd}
}

// ListCollectionPoints handles GET /api/admin/collection-points?status=&search=
func (h *AdminHandler) ListCollectionPoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing, err := h.admin.ListAll(r.Context(), q.Get("status"), q.Get("search"))
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Count:   response.Count(len(listing.Points)),
		Stats:   listing.Stats,
		Data:    listing.Points,
	})
}

func (h *AdminHandler) GetCollectionPoint(w http.ResponseWriter, r *http.Request) {
	cp, err := h.admin.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: cp})
}

// UpdateStatus handles PUT /api/admin/collection-points/{id}/status
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.rd.Error(w, r, err)
		return
	}

	cp, err := h.admin.UpdateStatus(r.Context(), ctxkeys.Admin(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Collection point " + string(cp.Status) + " successfully",
		Data:    cp,
	})
}

func (h *AdminHandler) DeleteCollectionPoint(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Delete(r.Context(), ctxkeys.Admin(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Collection point deleted successfully",
		Data:    struct{}{},
	})
}

// DashboardStats handles GET /api/admin/dashboard/stats
func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.DashboardStats(r.Context())
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: stats})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Count:   response.Count(len(users)),
		Data:    users,
	})
}

// ListAudit handles GET /api/admin/audit?limit=
func (h *AdminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.admin.ListAudit(r.Context(), limit)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Count:   response.Count(len(entries)),
		Data:    entries,
	})
}
