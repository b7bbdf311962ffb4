package services

import (
	"context"
	"errors"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/query"
	"github.com/AnshRaj112/esangrahan-backend/internal/repository"
	"github.com/AnshRaj112/esangrahan-backend/internal/validation"
	"go.uber.org/zap"
)

const msgPointNotFound = "Collection point not found"

// CollectionPointService serves a user's own collection points.
type CollectionPointService struct {
	points CollectionPointStore
	log    *zap.Logger
}

func NewCollectionPointService(points CollectionPointStore, log *zap.Logger) *CollectionPointService {
	return &CollectionPointService{points: points, log: log}
}

// Create stores a new pending point owned by user.
func (s *CollectionPointService) Create(ctx context.Context, user *models.User, in models.CollectionPointInput) (*models.CollectionPoint, error) {
	if res := validation.ValidateCollectionPoint(in); !res.IsValid {
		return nil, apperrors.NewValidation("Validation failed", res.Errors)
	}

	cp := in.ToRecord()
	cp.UserID = user.ID
	cp.UserName = user.Name
	cp.Status = models.StatusPending

	if err := s.points.Create(ctx, &cp); err != nil {
		return nil, err
	}
	s.log.Info("collection point created",
		zap.String("collection_point_id", cp.ID.Hex()),
		zap.String("user_id", user.ID.Hex()),
	)
	return &cp, nil
}

// ListMine returns the points owned by user, newest first.
func (s *CollectionPointService) ListMine(ctx context.Context, user *models.User) ([]models.CollectionPoint, error) {
	return s.points.Find(ctx, query.New().OwnedBy(user.ID).Build())
}

func (s *CollectionPointService) Get(ctx context.Context, user *models.User, id string) (*models.CollectionPoint, error) {
	return s.owned(ctx, user, id, "access")
}

// Update applies patch to a point owned by user. Owner and status cannot be
// changed this way.
func (s *CollectionPointService) Update(ctx context.Context, user *models.User, id string, patch models.CollectionPointPatch) (*models.CollectionPoint, error) {
	cp, err := s.owned(ctx, user, id, "update")
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(cp); err != nil {
		return nil, err
	}
	if err := s.points.UpdateContent(ctx, cp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.NotFound, msgPointNotFound, err)
		}
		return nil, err
	}
	return cp, nil
}

func (s *CollectionPointService) Delete(ctx context.Context, user *models.User, id string) error {
	cp, err := s.owned(ctx, user, id, "delete")
	if err != nil {
		return err
	}
	if err := s.points.Delete(ctx, cp.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.Wrap(apperrors.NotFound, msgPointNotFound, err)
		}
		return err
	}
	return nil
}

func (s *CollectionPointService) owned(ctx context.Context, user *models.User, id, action string) (*models.CollectionPoint, error) {
	cp, err := findPoint(ctx, s.points, id)
	if err != nil {
		return nil, err
	}
	if err := assertOwner(cp, user, action); err != nil {
		return nil, err
	}
	return cp, nil
}

// assertOwner is the only place a record's owner is compared with the caller.
func assertOwner(cp *models.CollectionPoint, user *models.User, action string) error {
	if user == nil || cp.UserID != user.ID {
		return apperrors.New(apperrors.Forbidden, "Not authorized to "+action+" this collection point")
	}
	return nil
}

func findPoint(ctx context.Context, points CollectionPointStore, id string) (*models.CollectionPoint, error) {
	cp, err := points.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.NotFound, msgPointNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return cp, nil
}
