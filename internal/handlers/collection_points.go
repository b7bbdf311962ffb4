package handlers

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/esangrahan-backend/internal/ctxkeys"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/pkg/response"
	"github.com/go-chi/chi/v5"
)

// CollectionPointService is implemented by services.CollectionPointService.
type CollectionPointService interface {
	Create(ctx context.Context, user *models.User, in models.CollectionPointInput) (*models.CollectionPoint, error)
	ListMine(ctx context.Context, user *models.User) ([]models.CollectionPoint, error)
	Get(ctx context.Context, user *models.User, id string) (*models.CollectionPoint, error)
	Update(ctx context.Context, user *models.User, id string, patch models.CollectionPointPatch) (*models.CollectionPoint, error)
	Delete(ctx context.Context, user *models.User, id string) error
}

// CollectionPointHandler serves /api/collection-points. Every route sits
// behind middleware.Protect.
type CollectionPointHandler struct {
	points CollectionPointService
	rd     *response.Renderer
}

func NewCollectionPointHandler(points CollectionPointService, rd *response.Renderer) *CollectionPointHandler {
	return &CollectionPointHandler{points: points, rd: rd}
}

func (h *CollectionPointHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CollectionPointInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.rd.Error(w, r, err)
		return
	}

	cp, err := h.points.Create(r.Context(), ctxkeys.User(r.Context()), in)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Envelope{
		Success: true,
		Message: "Collection point created successfully",
		Data:    cp,
	})
}

func (h *CollectionPointHandler) List(w http.ResponseWriter, r *http.Request) {
	points, err := h.points.ListMine(r.Context(), ctxkeys.User(r.Context()))
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Count:   response.Count(len(points)),
		Data:    points,
	})
}

func (h *CollectionPointHandler) Get(w http.ResponseWriter, r *http.Request) {
	cp, err := h.points.Get(r.Context(), ctxkeys.User(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: cp})
}

func (h *CollectionPointHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.CollectionPointPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.rd.Error(w, r, err)
		return
	}

	cp, err := h.points.Update(r.Context(), ctxkeys.User(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Collection point updated successfully",
		Data:    cp,
	})
}

func (h *CollectionPointHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.points.Delete(r.Context(), ctxkeys.User(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.rd.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Collection point deleted successfully",
		Data:    struct{}{},
	})
}
